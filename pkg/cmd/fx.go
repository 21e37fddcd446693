package cmd

import (
	"log/slog"
	"os"

	"github.com/pseudomuto/concierge/pkg/api"
	"github.com/pseudomuto/concierge/pkg/command"
	"github.com/pseudomuto/concierge/pkg/config"
	"github.com/pseudomuto/concierge/pkg/host"
	"github.com/pseudomuto/concierge/pkg/invoke"
	"github.com/pseudomuto/concierge/pkg/openapi"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

var Module = fx.Module("cli",
	fx.Provide(
		loadDocument,
		buildTree,
		newBinder,
		fx.Annotate(apiCommands, fx.ResultTags(`group:"commands,flatten"`)),
		fx.Annotate(describe, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(initCmd, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)

// loadDocument loads the API description named by the config. Without a config
// file concierge still runs, it just has no API commands to offer.
func loadDocument(cfg *config.Config) (*api.Document, error) {
	if cfg == nil {
		slog.Warn("No concierge.yaml found; only builtin commands are available")
		return nil, nil
	}

	return openapi.LoadFile(cfg.Source)
}

// buildTree turns the document into the command tree. A build failure here
// aborts startup; a partial tree is never served.
func buildTree(cfg *config.Config, doc *api.Document) (*command.Tree, error) {
	if doc == nil {
		return nil, nil
	}

	return command.Build(doc, cfg.Rules)
}

// newBinder returns the invocation binder. No dispatcher is wired into this
// binary, so every invocation dry-runs to stderr.
func newBinder() *invoke.Binder {
	return invoke.New(nil, os.Stderr)
}

func apiCommands(tree *command.Tree, binder *invoke.Binder) []*cli.Command {
	if tree == nil {
		return nil
	}

	return host.UrfaveCommands(tree, binder)
}
