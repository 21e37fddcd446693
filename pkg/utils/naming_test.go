package utils_test

import (
	"testing"

	"github.com/pseudomuto/concierge/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestKebab(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "camelCase",
			input:    "userId",
			expected: "user-id",
		},
		{
			name:     "snake_case",
			input:    "user_id",
			expected: "user-id",
		},
		{
			name:     "acronym prefix",
			input:    "APIKey",
			expected: "api-key",
		},
		{
			name:     "acronym in the middle",
			input:    "HTTPServerID",
			expected: "http-server-id",
		},
		{
			name:     "already kebab",
			input:    "already-kebab",
			expected: "already-kebab",
		},
		{
			name:     "dotted name",
			input:    "page.size",
			expected: "page-size",
		},
		{
			name:     "spaces",
			input:    "sort order",
			expected: "sort-order",
		},
		{
			name:     "single word",
			input:    "limit",
			expected: "limit",
		},
		{
			name:     "digits at boundary",
			input:    "ipv4Address",
			expected: "ipv4-address",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "leading and trailing separators",
			input:    "_internal_",
			expected: "internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, utils.Kebab(tt.input))
		})
	}
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "kebab segment",
			input:    "user-profiles",
			expected: "User profiles",
		},
		{
			name:     "snake segment",
			input:    "api_keys",
			expected: "Api keys",
		},
		{
			name:     "plain segment",
			input:    "widgets",
			expected: "Widgets",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only separators",
			input:    "--",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, utils.Humanize(tt.input))
		})
	}
}

func TestSingularKey(t *testing.T) {
	require.Equal(t, utils.SingularKey("Users"), utils.SingularKey("user"))
	require.Equal(t, "widget", utils.SingularKey("widgets"))

	// The trim is naive on purpose: both spellings map to the same key,
	// which is all the matching needs.
	require.Equal(t, utils.SingularKey("status"), utils.SingularKey("Status"))

	// Single letters are left alone.
	require.Equal(t, "s", utils.SingularKey("s"))
}
