package host

import (
	"strconv"

	"github.com/pseudomuto/concierge/pkg/command"
	"github.com/pseudomuto/concierge/pkg/invoke"
	"github.com/spf13/cobra"
)

// CobraCommands converts a command tree into cobra commands. It mirrors
// UrfaveCommands so the same tree drives either front end: groups become
// parent commands, leaves become runnable subcommands, and every parsed value
// flows through the binder unchanged.
//
// Example usage:
//
//	root := &cobra.Command{Use: "petctl"}
//	for _, c := range host.CobraCommands(tree, binder) {
//		root.AddCommand(c)
//	}
//	err := root.Execute()
func CobraCommands(tree *command.Tree, binder *invoke.Binder) []*cobra.Command {
	root := tree.Root

	cmds := make([]*cobra.Command, 0, len(root.Leaves)+len(root.Children))
	for _, leaf := range root.Leaves {
		cmds = append(cmds, cobraLeaf(leaf, binder))
	}
	for _, child := range root.SortedChildren() {
		cmds = append(cmds, cobraGroup(child, binder))
	}
	return cmds
}

func cobraGroup(g *command.Group, binder *invoke.Binder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   g.Name,
		Short: g.Help,
	}
	for _, leaf := range g.Leaves {
		cmd.AddCommand(cobraLeaf(leaf, binder))
	}
	for _, child := range g.SortedChildren() {
		cmd.AddCommand(cobraGroup(child, binder))
	}
	return cmd
}

func cobraLeaf(leaf *command.Leaf, binder *invoke.Binder) *cobra.Command {
	positionals := positionalDescriptors(leaf)

	use := leaf.Verb
	if hint := argsUsage(positionals); hint != "" {
		use += " " + hint
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: leafUsage(leaf),
		Args:  cobra.MaximumNArgs(len(positionals)),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := invoke.NewValues()
			for i, d := range positionals {
				if i < len(args) {
					values.Put(d.CLIName, args[i], true)
				}
			}

			for _, d := range leaf.Descriptors {
				if d.Kind == command.KindPositional {
					continue
				}

				supplied := cmd.Flags().Changed(d.CLIName)
				if d.Type == "boolean" {
					if !supplied && d.Default == "" {
						continue
					}
					val, _ := cmd.Flags().GetBool(d.CLIName)
					values.Put(d.CLIName, strconv.FormatBool(val), supplied)
					continue
				}

				val, _ := cmd.Flags().GetString(d.CLIName)
				values.Put(d.CLIName, val, supplied)
			}

			_, err := binder.Invoke(cmd.Context(), leaf, values)
			return err
		},
	}

	for _, d := range leaf.Descriptors {
		if d.Kind == command.KindPositional {
			continue
		}

		if d.Type == "boolean" {
			def, _ := strconv.ParseBool(d.Default)
			cmd.Flags().Bool(d.CLIName, def, d.Help)
		} else {
			cmd.Flags().String(d.CLIName, d.Default, d.Help)
		}

		if d.Required && d.Kind == command.KindFlag {
			_ = cmd.MarkFlagRequired(d.CLIName)
		}
	}

	return cmd
}
