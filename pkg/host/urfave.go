package host

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/pseudomuto/concierge/pkg/command"
	"github.com/pseudomuto/concierge/pkg/invoke"
	"github.com/urfave/cli/v3"
)

// UrfaveCommands converts a command tree into urfave/cli commands, one command
// per group and one subcommand per leaf. The commands are driven entirely by
// the tree's descriptors; parsed values are handed to the binder, which owns
// validation, conversion, and dispatch.
//
// Root-group leaves come first, then child groups in sorted order, so an
// operation on "/" surfaces as a top-level command next to the groups.
//
// Example usage:
//
//	tree, _ := command.Build(doc, rules)
//	binder := invoke.New(nil, os.Stderr)
//
//	app := &cli.Command{
//		Name:     "petctl",
//		Commands: host.UrfaveCommands(tree, binder),
//	}
//	err := app.Run(ctx, os.Args)
func UrfaveCommands(tree *command.Tree, binder *invoke.Binder) []*cli.Command {
	root := tree.Root

	cmds := make([]*cli.Command, 0, len(root.Leaves)+len(root.Children))
	for _, leaf := range root.Leaves {
		cmds = append(cmds, urfaveLeaf(leaf, binder))
	}
	for _, child := range root.SortedChildren() {
		cmds = append(cmds, urfaveGroup(child, binder))
	}
	return cmds
}

func urfaveGroup(g *command.Group, binder *invoke.Binder) *cli.Command {
	sub := make([]*cli.Command, 0, len(g.Leaves)+len(g.Children))
	for _, leaf := range g.Leaves {
		sub = append(sub, urfaveLeaf(leaf, binder))
	}
	for _, child := range g.SortedChildren() {
		sub = append(sub, urfaveGroup(child, binder))
	}

	return &cli.Command{
		Name:     g.Name,
		Usage:    g.Help,
		Commands: sub,
	}
}

func urfaveLeaf(leaf *command.Leaf, binder *invoke.Binder) *cli.Command {
	positionals := positionalDescriptors(leaf)

	var flags []cli.Flag
	for _, d := range leaf.Descriptors {
		if d.Kind == command.KindPositional {
			continue
		}
		flags = append(flags, urfaveFlag(d))
	}

	return &cli.Command{
		Name:      leaf.Verb,
		Usage:     leafUsage(leaf),
		ArgsUsage: argsUsage(positionals),
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() > len(positionals) {
				return errors.Errorf("unexpected argument %q", cmd.Args().Get(len(positionals)))
			}

			values := invoke.NewValues()
			for i, d := range positionals {
				if i < cmd.Args().Len() {
					values.Put(d.CLIName, cmd.Args().Get(i), true)
				}
			}

			for _, d := range leaf.Descriptors {
				if d.Kind == command.KindPositional {
					continue
				}

				if d.Type == "boolean" {
					// An unset switch with no declared default stays
					// absent rather than binding "false".
					if !cmd.IsSet(d.CLIName) && d.Default == "" {
						continue
					}
					values.Put(d.CLIName, strconv.FormatBool(cmd.Bool(d.CLIName)), cmd.IsSet(d.CLIName))
					continue
				}

				values.Put(d.CLIName, cmd.String(d.CLIName), cmd.IsSet(d.CLIName))
			}

			_, err := binder.Invoke(ctx, leaf, values)
			return err
		},
	}
}

// urfaveFlag maps one descriptor onto a CLI flag. Everything surfaces as a
// string except booleans, which become switches; the binder converts typed
// values itself. Only flag-kind descriptors are marked required so a raw body
// override can still satisfy required body fields.
func urfaveFlag(d command.Descriptor) cli.Flag {
	required := d.Required && d.Kind == command.KindFlag

	if d.Type == "boolean" {
		def, _ := strconv.ParseBool(d.Default)
		return &cli.BoolFlag{
			Name:     d.CLIName,
			Usage:    d.Help,
			Value:    def,
			Required: required,
		}
	}

	return &cli.StringFlag{
		Name:     d.CLIName,
		Usage:    d.Help,
		Value:    d.Default,
		Required: required,
	}
}
