package command

import (
	"github.com/pkg/errors"
	"github.com/pseudomuto/concierge/pkg/api"
	"github.com/pseudomuto/concierge/pkg/paths"
)

// Build turns an API description into its command tree: display paths are
// computed under the rule set, operations are grouped by literal segment,
// verbs are resolved per group (first claim wins), and argument descriptors
// are synthesized per operation. Construction is all or nothing: any
// structural problem fails the whole build, and a built tree is immutable.
//
// Every operation maps to exactly one leaf, and an operation set loaded once
// can serve any number of concurrent invocations.
//
// Example usage:
//
//	tree, err := command.Build(doc, paths.RuleSet{})
//	if err != nil {
//		return err
//	}
//
//	for _, leaf := range tree.Leaves() {
//		fmt.Println(leaf.Verb, leaf.Path)
//	}
func Build(doc *api.Document, rules paths.RuleSet) (*Tree, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	raw := make([]string, 0, len(doc.Operations))
	for _, op := range doc.Operations {
		raw = append(raw, op.Path)
	}

	display, err := paths.Transform(raw, rules)
	if err != nil {
		return nil, errors.Wrap(err, "applying path rules")
	}

	tree := newTree()
	for _, op := range doc.Operations {
		rawTmpl, err := paths.ParseTemplate(op.Path)
		if err != nil {
			return nil, api.NewStructuralError(op, "invalid path template: %v", err)
		}

		displayTmpl, err := paths.ParseTemplate(display[op.Path])
		if err != nil {
			return nil, api.NewStructuralError(op, "invalid display path: %v", err)
		}

		descriptors, err := synthesizeDescriptors(op, rawTmpl)
		if err != nil {
			return nil, err
		}

		segments := displayTmpl.Literals()
		group := tree.ensure(segments)
		group.Leaves = append(group.Leaves, &Leaf{
			Verb:        claimVerb(group.claimed, baseVerb(op.Method, displayTmpl), op.Method),
			Operation:   op,
			Descriptors: descriptors,
			Path:        op.Path,
			DisplayPath: displayTmpl.String(),
			Segments:    segments,
			Template:    rawTmpl,
		})
	}

	assignHelp(doc, tree.Root)
	return tree, nil
}

// assignHelp fills in group help once all leaves are placed, so synthesis
// sees the complete group.
func assignHelp(doc *api.Document, g *Group) {
	g.Help = groupHelp(doc, g)
	for _, child := range g.Children {
		assignHelp(doc, child)
	}
}
