package invoke_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/concierge/pkg/api"
	"github.com/pseudomuto/concierge/pkg/command"
	. "github.com/pseudomuto/concierge/pkg/invoke"
	"github.com/pseudomuto/concierge/pkg/paths"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type capture struct {
	req Request
}

func (c *capture) Dispatch(_ context.Context, req Request) (any, error) {
	c.req = req
	return "ok", nil
}

func buildLeaf(t *testing.T, op api.Operation) *command.Leaf {
	t.Helper()

	tree, err := command.Build(&api.Document{Operations: []api.Operation{op}}, paths.RuleSet{})
	require.NoError(t, err)

	leaves := tree.Leaves()
	require.Len(t, leaves, 1)
	return leaves[0]
}

func itemsLeaf(t *testing.T) *command.Leaf {
	t.Helper()

	return buildLeaf(t, api.Operation{
		Method: api.MethodPost,
		Path:   "/items",
		Body: &api.BodySchema{
			Required: true,
			Properties: map[string]api.Property{
				"title": {Type: "string", Required: true},
				"count": {Type: "integer"},
			},
		},
	})
}

func TestInvokeMissingRequiredBodyFields(t *testing.T) {
	leaf := itemsLeaf(t)
	binder := New(&capture{}, nil)

	values := NewValues()
	values.Put("count", "3", true)

	_, err := binder.Invoke(context.Background(), leaf, values)
	require.Error(t, err)

	var uerr *UsageError
	require.True(t, errors.As(err, &uerr))
	require.Equal(t, "items create", uerr.Command)
	require.Contains(t, uerr.Reason, "title")
}

func TestInvokeNamesEveryMissingBodyField(t *testing.T) {
	leaf := buildLeaf(t, api.Operation{
		Method: api.MethodPost,
		Path:   "/accounts",
		Body: &api.BodySchema{
			Properties: map[string]api.Property{
				"email": {Type: "string", Required: true},
				"name":  {Type: "string", Required: true},
				"note":  {Type: "string"},
			},
		},
	})

	_, err := New(&capture{}, nil).Invoke(context.Background(), leaf, NewValues())
	require.Error(t, err)

	var uerr *UsageError
	require.True(t, errors.As(err, &uerr))
	require.Equal(t, "missing required body fields: email, name", uerr.Reason)
}

func TestInvokeAssemblesBodyFromFields(t *testing.T) {
	leaf := itemsLeaf(t)
	sink := &capture{}

	values := NewValues()
	values.Put("title", "X", true)

	result, err := New(sink, nil).Invoke(context.Background(), leaf, values)
	require.NoError(t, err)
	require.Equal(t, "ok", result)

	require.Equal(t, api.MethodPost, sink.req.Method)
	require.Equal(t, "/items", sink.req.Path)
	require.Equal(t, `{"title":"X"}`, string(sink.req.Body))
	require.Equal(t, "application/json", sink.req.ContentType)
}

func TestInvokeRawOverrideWinsPerKey(t *testing.T) {
	leaf := itemsLeaf(t)
	sink := &capture{}

	values := NewValues()
	values.Put("title", "X", true)
	values.Put("body", `{"title":"Y"}`, true)

	_, err := New(sink, nil).Invoke(context.Background(), leaf, values)
	require.NoError(t, err)
	require.Equal(t, `{"title":"Y"}`, string(sink.req.Body))
}

func TestInvokeRawOverrideSkipsRequiredCheck(t *testing.T) {
	leaf := itemsLeaf(t)
	sink := &capture{}

	// No title flag at all; the override satisfies the body wholesale.
	values := NewValues()
	values.Put("body", `{"title":"Z","extra":true}`, true)

	_, err := New(sink, nil).Invoke(context.Background(), leaf, values)
	require.NoError(t, err)
	require.JSONEq(t, `{"title":"Z","extra":true}`, string(sink.req.Body))
}

func TestInvokeNonObjectOverrideReplacesBody(t *testing.T) {
	leaf := itemsLeaf(t)
	sink := &capture{}

	values := NewValues()
	values.Put("body", `[1,2,3]`, true)

	_, err := New(sink, nil).Invoke(context.Background(), leaf, values)
	require.NoError(t, err)
	require.Equal(t, `[1,2,3]`, string(sink.req.Body))
}

func TestInvokeTypedFieldConversion(t *testing.T) {
	leaf := itemsLeaf(t)
	sink := &capture{}

	values := NewValues()
	values.Put("title", "X", true)
	values.Put("count", "3", true)

	_, err := New(sink, nil).Invoke(context.Background(), leaf, values)
	require.NoError(t, err)
	require.JSONEq(t, `{"title":"X","count":3}`, string(sink.req.Body))

	bad := NewValues()
	bad.Put("title", "X", true)
	bad.Put("count", "lots", true)

	_, err = New(sink, nil).Invoke(context.Background(), leaf, bad)
	var uerr *UsageError
	require.True(t, errors.As(err, &uerr))
	require.Contains(t, uerr.Reason, `invalid integer value "lots"`)
}

func TestInvokePathSubstitution(t *testing.T) {
	leaf := buildLeaf(t, api.Operation{
		Method: api.MethodGet,
		Path:   "/projects/{projectId}/tasks/{taskId}",
	})
	sink := &capture{}

	values := NewValues()
	values.Put("project-id", "p1", true)
	values.Put("task-id", "t 1", true)

	_, err := New(sink, nil).Invoke(context.Background(), leaf, values)
	require.NoError(t, err)
	require.Equal(t, "/projects/p1/tasks/t%201", sink.req.Path)
}

func TestInvokeMissingPositional(t *testing.T) {
	leaf := buildLeaf(t, api.Operation{Method: api.MethodGet, Path: "/things/{id}"})

	_, err := New(&capture{}, nil).Invoke(context.Background(), leaf, NewValues())
	require.Error(t, err)

	var uerr *UsageError
	require.True(t, errors.As(err, &uerr))
	require.Contains(t, uerr.Reason, `missing required argument "id"`)
}

func TestInvokeQueryParameters(t *testing.T) {
	leaf := buildLeaf(t, api.Operation{
		Method: api.MethodGet,
		Path:   "/logs",
		Parameters: []api.Parameter{
			{Name: "q", In: api.LocationQuery, Type: "string"},
			{Name: "limit", In: api.LocationQuery, Type: "integer", Default: "100"},
			{Name: "X-Trace", In: api.LocationHeader, Type: "string"},
		},
	})
	sink := &capture{}

	values := NewValues()
	values.Put("q", "errors", true)
	values.Put("x-trace", "on", true)

	_, err := New(sink, nil).Invoke(context.Background(), leaf, values)
	require.NoError(t, err)

	// Supplied values and declared defaults are present; header values fold
	// into the same set.
	require.Equal(t, "errors", sink.req.Query.Get("q"))
	require.Equal(t, "100", sink.req.Query.Get("limit"))
	require.Equal(t, "on", sink.req.Query.Get("X-Trace"))
	require.Nil(t, sink.req.Body)
}

func TestInvokeStructuredBodyField(t *testing.T) {
	leaf := buildLeaf(t, api.Operation{
		Method: api.MethodPost,
		Path:   "/docs",
		Body: &api.BodySchema{
			Properties: map[string]api.Property{
				"meta": {Type: "object"},
			},
		},
	})
	sink := &capture{}

	// JSON parses directly.
	values := NewValues()
	values.Put("meta", `{"a":1}`, true)
	_, err := New(sink, nil).Invoke(context.Background(), leaf, values)
	require.NoError(t, err)
	require.JSONEq(t, `{"meta":{"a":1}}`, string(sink.req.Body))

	// YAML is the second chance.
	values = NewValues()
	values.Put("meta", "a: 1", true)
	_, err = New(sink, nil).Invoke(context.Background(), leaf, values)
	require.NoError(t, err)
	require.JSONEq(t, `{"meta":{"a":1}}`, string(sink.req.Body))

	// Neither parses; the literal string survives.
	values = NewValues()
	values.Put("meta", "not: [valid", true)
	_, err = New(sink, nil).Invoke(context.Background(), leaf, values)
	require.NoError(t, err)
	require.JSONEq(t, `{"meta":"not: [valid"}`, string(sink.req.Body))
}

func TestInvokeOpaqueBodyPassthrough(t *testing.T) {
	leaf := buildLeaf(t, api.Operation{
		Method: api.MethodPost,
		Path:   "/upload",
		Body:   &api.BodySchema{ContentTypes: []string{"text/plain"}},
	})
	sink := &capture{}

	values := NewValues()
	values.Put("body", "hello there", true)

	_, err := New(sink, nil).Invoke(context.Background(), leaf, values)
	require.NoError(t, err)
	require.Equal(t, "hello there", string(sink.req.Body))
	require.Equal(t, "text/plain", sink.req.ContentType)
}

func TestInvokeBodyReference(t *testing.T) {
	leaf := buildLeaf(t, api.Operation{Method: api.MethodPost, Path: "/files"})
	sink := &capture{}

	path := filepath.Join(t.TempDir(), "body.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"z"}`), 0o644))

	values := NewValues()
	values.Put("body", "@"+path, true)

	_, err := New(sink, nil).Invoke(context.Background(), leaf, values)
	require.NoError(t, err)
	require.Equal(t, `{"name":"z"}`, string(sink.req.Body))
}

func TestInvokeUnresolvableBodyReference(t *testing.T) {
	leaf := buildLeaf(t, api.Operation{Method: api.MethodPost, Path: "/files"})

	values := NewValues()
	values.Put("body", "@/no/such/file.json", true)

	_, err := New(&capture{}, nil).Invoke(context.Background(), leaf, values)
	require.Error(t, err)

	var uerr *UsageError
	require.True(t, errors.As(err, &uerr))
	require.Contains(t, uerr.Reason, "unresolvable body reference")
}

func TestInvokeDryRun(t *testing.T) {
	leaf := itemsLeaf(t)

	var out bytes.Buffer
	values := NewValues()
	values.Put("title", "X", true)

	result, err := New(nil, &out).Invoke(context.Background(), leaf, values)
	require.NoError(t, err)
	require.Nil(t, result)
	require.Equal(t, "dry-run: POST /items application/json {\"title\":\"X\"}\n", out.String())
}

func TestInvokeConcurrentInvocations(t *testing.T) {
	// One tree serves many in-flight invocations without synchronization.
	leaf := buildLeaf(t, api.Operation{Method: api.MethodGet, Path: "/things/{id}"})
	binder := New(nil, nil)

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		id := fmt.Sprintf("id-%d", i)
		g.Go(func() error {
			values := NewValues()
			values.Put("id", id, true)

			_, err := binder.Invoke(context.Background(), leaf, values)
			return err
		})
	}
	require.NoError(t, g.Wait())
}
