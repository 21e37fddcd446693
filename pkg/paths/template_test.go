package paths_test

import (
	"testing"

	. "github.com/pseudomuto/concierge/pkg/paths"
	"github.com/stretchr/testify/require"
)

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		want     string
		params   []string
		literals []string
	}{
		{
			name:     "literals only",
			path:     "/api/v1/users",
			want:     "/api/v1/users",
			literals: []string{"api", "v1", "users"},
		},
		{
			name:     "trailing placeholder",
			path:     "/users/{id}",
			want:     "/users/{id}",
			params:   []string{"id"},
			literals: []string{"users"},
		},
		{
			name:     "placeholder mid-path",
			path:     "/projects/{id}/events",
			want:     "/projects/{id}/events",
			params:   []string{"id"},
			literals: []string{"projects", "events"},
		},
		{
			name: "root",
			path: "/",
			want: "/",
		},
		{
			name:     "trailing slash dropped",
			path:     "/users/",
			want:     "/users",
			literals: []string{"users"},
		},
		{
			name:     "missing leading slash normalized",
			path:     "status",
			want:     "/status",
			literals: []string{"status"},
		},
		{
			name:     "mixed segment",
			path:     "/files/{name}-{ext}",
			want:     "/files/{name}-{ext}",
			params:   []string{"name", "ext"},
			literals: []string{"files"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := ParseTemplate(tt.path)
			require.NoError(t, err)
			require.Equal(t, tt.want, tmpl.String())
			require.Equal(t, tt.params, tmpl.Params())
			require.Equal(t, tt.literals, tmpl.Literals())
		})
	}
}

func TestParseTemplateRejectsUnbalancedBraces(t *testing.T) {
	_, err := ParseTemplate("/users/{id")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid path template")
}

func TestEndsWithParam(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/users/{id}", want: true},
		{path: "/users", want: false},
		{path: "/projects/{id}/events", want: false},
		{path: "/", want: false},
		{path: "/files/{name}-{ext}", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			tmpl, err := ParseTemplate(tt.path)
			require.NoError(t, err)
			require.Equal(t, tt.want, tmpl.EndsWithParam())
		})
	}
}

func TestSegments(t *testing.T) {
	// Only literal segments name groups; placeholder and mixed segments are
	// dropped.
	segs, err := Segments("/users/{id}/posts")
	require.NoError(t, err)
	require.Equal(t, []string{"users", "posts"}, segs)

	segs, err = Segments("/")
	require.NoError(t, err)
	require.Empty(t, segs)

	segs, err = Segments("/{id}")
	require.NoError(t, err)
	require.Empty(t, segs)

	segs, err = Segments("/files/{name}-{ext}")
	require.NoError(t, err)
	require.Equal(t, []string{"files"}, segs)
}
