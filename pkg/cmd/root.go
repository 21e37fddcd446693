package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run creates and executes the main concierge CLI application with the given
// command-line arguments. The application's command set is assembled from the
// fx command group: the builtin describe command plus one command per group
// and operation of the loaded API description.
//
// Configuration is resolved before the CLI parses anything: concierge.yaml in
// the working directory, or the file named by CONCIERGE_CONFIG. A missing
// config leaves only the builtins; a config naming an unloadable or invalid
// API description fails startup outright.
//
// Example usage:
//
//	# List the generated commands
//	concierge describe
//
//	# Invoke an operation (dry-run by default)
//	concierge users create --name Jo
//
// Errors from command execution are logged and reflected in the process exit
// code.
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := &cli.Command{
		Name:  "concierge",
		Usage: "Serve an API description as a command-line interface",
		Description: `concierge reads an API description, rewrites its paths into a command
hierarchy, and exposes every operation as a CLI command. Invocations are
bound and rendered as dry-run lines until a dispatcher is wired in.`,
		Version:  p.Version.Version,
		Commands: p.Commands,
	}

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("Error running command", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}
