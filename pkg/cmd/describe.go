package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/concierge/pkg/api"
	"github.com/pseudomuto/concierge/pkg/command"
	"github.com/pseudomuto/concierge/pkg/consts"
	"github.com/urfave/cli/v3"
)

// describe returns a CLI command that renders the command tree derived from
// the loaded API description: every group with its help text, every leaf with
// its verb and argument descriptors. This is the quickest way to see what a
// path rule set did to an API's surface.
//
// Optional flags:
//   - --out, -o: Output file path (defaults to stdout)
//
// Example usage:
//
//	# Print the tree
//	concierge describe
//
//	# Write it to a file
//	concierge describe --out commands.txt
func describe(doc *api.Document, tree *command.Tree) *cli.Command {
	return &cli.Command{
		Name:  "describe",
		Usage: "Print the command tree derived from the API description",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "File to write the output to",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var buf bytes.Buffer
			renderTree(&buf, doc, tree)

			if path := cmd.String("out"); path != "" {
				if err := os.WriteFile(path, buf.Bytes(), consts.ModeFile); err != nil {
					return errors.Wrapf(err, "failed to write output to file: %s", path)
				}
				return nil
			}

			_, err := buf.WriteTo(cmd.Writer)
			return err
		},
	}
}

func renderTree(buf *bytes.Buffer, doc *api.Document, tree *command.Tree) {
	if tree == nil {
		fmt.Fprintln(buf, "No API description loaded. Name one under source in concierge.yaml.")
		return
	}

	title := doc.Title
	if title == "" {
		title = "API"
	}
	if doc.Version != "" {
		title += " " + doc.Version
	}
	fmt.Fprintln(buf, title)

	if doc.Description != "" {
		fmt.Fprintln(buf, doc.Description)
	}
	fmt.Fprintln(buf)

	for _, leaf := range tree.Root.Leaves {
		renderLeaf(buf, leaf, 0)
	}
	for _, child := range tree.Root.SortedChildren() {
		renderGroup(buf, child, 0)
	}
}

func renderGroup(buf *bytes.Buffer, g *command.Group, depth int) {
	fmt.Fprintf(buf, "%s%s  %s\n", indent(depth), g.Name, g.Help)

	for _, leaf := range g.Leaves {
		renderLeaf(buf, leaf, depth+1)
	}
	for _, child := range g.SortedChildren() {
		renderGroup(buf, child, depth+1)
	}
}

func renderLeaf(buf *bytes.Buffer, leaf *command.Leaf, depth int) {
	line := leaf.Verb
	for _, d := range leaf.Descriptors {
		if d.Kind == command.KindPositional {
			line += " <" + d.CLIName + ">"
		}
	}

	summary := leaf.Operation.Summary
	if summary == "" {
		summary = fmt.Sprintf("%s %s", leaf.Operation.Method, leaf.DisplayPath)
	}
	if leaf.Operation.Deprecated {
		summary += " (deprecated)"
	}
	fmt.Fprintf(buf, "%s%s  %s\n", indent(depth), line, summary)

	for _, d := range leaf.Descriptors {
		fmt.Fprintf(buf, "%s%s\n", indent(depth+1), descriptorLine(d))
	}
}

func descriptorLine(d command.Descriptor) string {
	name := "--" + d.CLIName
	if d.Kind == command.KindPositional {
		name = "<" + d.CLIName + ">"
	}

	line := name + " " + d.Type

	var markers []string
	if d.Required && d.Kind != command.KindPositional {
		markers = append(markers, "required")
	}
	if d.Default != "" {
		markers = append(markers, "default: "+d.Default)
	}
	if len(markers) > 0 {
		line += " (" + strings.Join(markers, ", ") + ")"
	}

	if d.Help != "" {
		line += "  " + d.Help
	}
	return line
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
