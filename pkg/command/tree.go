package command

import (
	"sort"
	"strings"

	"github.com/pseudomuto/concierge/pkg/api"
	"github.com/pseudomuto/concierge/pkg/consts"
	"github.com/pseudomuto/concierge/pkg/paths"
)

type (
	// Tree is the command hierarchy built from an API description. Internal
	// nodes are literal path segments, leaves are invocable commands. A tree
	// is built once and held immutable afterwards, so concurrent readers need
	// no locking.
	Tree struct {
		Root *Group
	}

	// Group is one tree node: a literal path segment and the commands grouped
	// directly under it. Operations whose display path has no literal
	// segments land in the synthetic root group.
	Group struct {
		// Name is the node's segment, consts.RootGroupName at the root
		Name string

		// Path is the segment prefix from the root down to this node
		Path []string

		// Help is the synthesized group help text
		Help string

		// Children maps segment name to child node
		Children map[string]*Group

		// Leaves holds the commands directly under this node, in declaration
		// order
		Leaves []*Leaf

		claimed map[string]struct{}
	}

	// Leaf is one invocable command: a verb bound to its source operation and
	// the argument descriptors the host surface is built from.
	Leaf struct {
		// Verb is the command name, unique within its group
		Verb string

		// Operation is the source operation as declared
		Operation api.Operation

		// Descriptors in presentation order: positionals, flags, body fields,
		// raw body override
		Descriptors []Descriptor

		// Path is the original raw path template the binder substitutes into
		Path string

		// DisplayPath is the rewritten path this leaf's tree position derives
		// from
		DisplayPath string

		// Segments are the literal segments of DisplayPath, naming the groups
		// above this leaf
		Segments []string

		// Template is the parsed form of Path
		Template *paths.Template
	}
)

// CommandPath is the space-joined command line that reaches this leaf, e.g.
// "users create". Used when reporting invocation errors.
func (l *Leaf) CommandPath() string {
	return strings.Join(append(append([]string(nil), l.Segments...), l.Verb), " ")
}

func newTree() *Tree {
	return &Tree{Root: &Group{
		Name:     consts.RootGroupName,
		Children: map[string]*Group{},
		claimed:  map[string]struct{}{},
	}}
}

// ensure returns the node at the given segment path, creating every prefix
// node on the way down.
func (t *Tree) ensure(segments []string) *Group {
	node := t.Root
	for i, seg := range segments {
		child, ok := node.Children[seg]
		if !ok {
			child = &Group{
				Name:     seg,
				Path:     append([]string(nil), segments[:i+1]...),
				Children: map[string]*Group{},
				claimed:  map[string]struct{}{},
			}
			node.Children[seg] = child
		}
		node = child
	}
	return node
}

// SortedChildren returns the node's children ordered by segment name for
// deterministic rendering.
func (g *Group) SortedChildren() []*Group {
	names := make([]string, 0, len(g.Children))
	for name := range g.Children {
		names = append(names, name)
	}
	sort.Strings(names)

	children := make([]*Group, 0, len(names))
	for _, name := range names {
		children = append(children, g.Children[name])
	}
	return children
}

// Leaves returns every leaf in the tree: the root group's first, then each
// subtree depth-first in sorted child order.
func (t *Tree) Leaves() []*Leaf {
	var out []*Leaf

	var walk func(g *Group)
	walk = func(g *Group) {
		out = append(out, g.Leaves...)
		for _, child := range g.SortedChildren() {
			walk(child)
		}
	}
	walk(t.Root)

	return out
}
