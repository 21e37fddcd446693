package host_test

import (
	"context"
	"io"
	"testing"

	"github.com/pseudomuto/concierge/pkg/api"
	"github.com/pseudomuto/concierge/pkg/command"
	"github.com/pseudomuto/concierge/pkg/invoke"
	"github.com/pseudomuto/concierge/pkg/paths"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	. "github.com/pseudomuto/concierge/pkg/host"
)

type capture struct {
	req    invoke.Request
	called bool
}

func (c *capture) Dispatch(_ context.Context, req invoke.Request) (any, error) {
	c.req = req
	c.called = true
	return "ok", nil
}

func taskTree(t *testing.T) *command.Tree {
	t.Helper()

	doc := &api.Document{
		Title: "Tasks",
		Operations: []api.Operation{
			{
				Method: api.MethodGet,
				Path:   "/api/v1/tasks",
				Parameters: []api.Parameter{
					{Name: "state", In: api.LocationQuery, Type: "string"},
					{Name: "all", In: api.LocationQuery, Type: "boolean"},
				},
			},
			{
				Method: api.MethodPost,
				Path:   "/api/v1/tasks",
				Body: &api.BodySchema{
					Properties: map[string]api.Property{
						"title":  {Type: "string", Required: true},
						"urgent": {Type: "boolean"},
					},
				},
			},
			{
				Method: api.MethodGet,
				Path:   "/api/v1/tasks/{id}",
			},
		},
	}

	tree, err := command.Build(doc, paths.RuleSet{})
	require.NoError(t, err)
	return tree
}

func runUrfave(t *testing.T, tree *command.Tree, binder *invoke.Binder, args ...string) error {
	t.Helper()

	app := &cli.Command{
		Name:      "taskctl",
		Commands:  UrfaveCommands(tree, binder),
		Writer:    io.Discard,
		ErrWriter: io.Discard,
	}
	return app.Run(context.Background(), append([]string{"taskctl"}, args...))
}

func runCobra(t *testing.T, tree *command.Tree, binder *invoke.Binder, args ...string) error {
	t.Helper()

	root := &cobra.Command{Use: "taskctl", SilenceErrors: true, SilenceUsage: true}
	for _, c := range CobraCommands(tree, binder) {
		root.AddCommand(c)
	}
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.Execute()
}

func TestUrfaveCommandLayout(t *testing.T) {
	cmds := UrfaveCommands(taskTree(t), invoke.New(nil, nil))

	require.Len(t, cmds, 1)
	require.Equal(t, "tasks", cmds[0].Name)
	require.Equal(t, "Tasks.", cmds[0].Usage)

	var verbs []string
	for _, sub := range cmds[0].Commands {
		verbs = append(verbs, sub.Name)
	}
	require.Equal(t, []string{"list", "create", "get"}, verbs)

	get := cmds[0].Commands[2]
	require.Equal(t, "<id>", get.ArgsUsage)
	require.Empty(t, get.Flags)
}

func TestUrfaveDispatch(t *testing.T) {
	tree := taskTree(t)

	t.Run("assembles body from field flags", func(t *testing.T) {
		sink := &capture{}
		err := runUrfave(t, tree, invoke.New(sink, nil), "tasks", "create", "--title", "X", "--urgent")

		require.NoError(t, err)
		require.True(t, sink.called)
		require.Equal(t, api.MethodPost, sink.req.Method)
		require.Equal(t, "/api/v1/tasks", sink.req.Path)
		require.Equal(t, "application/json", sink.req.ContentType)
		require.JSONEq(t, `{"title":"X","urgent":true}`, string(sink.req.Body))
	})

	t.Run("binds positionals into the original path", func(t *testing.T) {
		sink := &capture{}
		err := runUrfave(t, tree, invoke.New(sink, nil), "tasks", "get", "42")

		require.NoError(t, err)
		require.Equal(t, api.MethodGet, sink.req.Method)
		require.Equal(t, "/api/v1/tasks/42", sink.req.Path)
		require.Nil(t, sink.req.Body)
	})

	t.Run("collects flags as query parameters", func(t *testing.T) {
		sink := &capture{}
		err := runUrfave(t, tree, invoke.New(sink, nil), "tasks", "list", "--state", "open", "--all")

		require.NoError(t, err)
		require.Equal(t, "open", sink.req.Query.Get("state"))
		require.Equal(t, "true", sink.req.Query.Get("all"))
	})

	t.Run("unset switch stays absent", func(t *testing.T) {
		sink := &capture{}
		err := runUrfave(t, tree, invoke.New(sink, nil), "tasks", "list", "--state", "open")

		require.NoError(t, err)
		require.NotContains(t, sink.req.Query, "all")
	})
}

func TestUrfaveUsageError(t *testing.T) {
	sink := &capture{}
	err := runUrfave(t, taskTree(t), invoke.New(sink, nil), "tasks", "create")

	require.Error(t, err)
	require.False(t, sink.called)

	var uerr *invoke.UsageError
	require.ErrorAs(t, err, &uerr)
	require.Equal(t, "tasks create", uerr.Command)
	require.Contains(t, uerr.Reason, "title")
}

func TestUrfaveSurplusArgument(t *testing.T) {
	err := runUrfave(t, taskTree(t), invoke.New(&capture{}, nil), "tasks", "get", "1", "2")

	require.Error(t, err)
	require.Contains(t, err.Error(), `unexpected argument "2"`)
}

func TestCobraDispatch(t *testing.T) {
	tree := taskTree(t)

	t.Run("assembles body from field flags", func(t *testing.T) {
		sink := &capture{}
		err := runCobra(t, tree, invoke.New(sink, nil), "tasks", "create", "--title", "X")

		require.NoError(t, err)
		require.Equal(t, api.MethodPost, sink.req.Method)
		require.JSONEq(t, `{"title":"X"}`, string(sink.req.Body))
	})

	t.Run("binds positionals into the original path", func(t *testing.T) {
		sink := &capture{}
		err := runCobra(t, tree, invoke.New(sink, nil), "tasks", "get", "42")

		require.NoError(t, err)
		require.Equal(t, "/api/v1/tasks/42", sink.req.Path)
	})

	t.Run("missing body field surfaces as usage error", func(t *testing.T) {
		err := runCobra(t, tree, invoke.New(&capture{}, nil), "tasks", "create")

		var uerr *invoke.UsageError
		require.ErrorAs(t, err, &uerr)
		require.Equal(t, "tasks create", uerr.Command)
	})
}

// Both bridges bind the same invocation to the same request, so a tree built
// once serves whichever front end the host process prefers.
func TestBridgesAgree(t *testing.T) {
	tree := taskTree(t)

	fromUrfave := &capture{}
	require.NoError(t,
		runUrfave(t, tree, invoke.New(fromUrfave, nil), "tasks", "create", "--title", "X", "--urgent"))

	fromCobra := &capture{}
	require.NoError(t,
		runCobra(t, tree, invoke.New(fromCobra, nil), "tasks", "create", "--title", "X", "--urgent"))

	require.Equal(t, fromUrfave.req, fromCobra.req)
}

func TestDeprecatedOperationMarksUsage(t *testing.T) {
	doc := &api.Document{
		Operations: []api.Operation{{
			Method:     api.MethodGet,
			Path:       "/things/{id}",
			Summary:    "Get a thing",
			Deprecated: true,
		}},
	}

	tree, err := command.Build(doc, paths.RuleSet{})
	require.NoError(t, err)

	urfave := UrfaveCommands(tree, invoke.New(nil, nil))
	require.Equal(t, "Get a thing (deprecated)", urfave[0].Commands[0].Usage)

	cobraCmds := CobraCommands(tree, invoke.New(nil, nil))
	require.Equal(t, "Get a thing (deprecated)", cobraCmds[0].Commands()[0].Short)
}
