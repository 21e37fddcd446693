package host

import (
	"fmt"
	"strings"

	"github.com/pseudomuto/concierge/pkg/command"
)

// positionalDescriptors returns the leaf's positional descriptors in template
// order.
func positionalDescriptors(leaf *command.Leaf) []command.Descriptor {
	var out []command.Descriptor
	for _, d := range leaf.Descriptors {
		if d.Kind == command.KindPositional {
			out = append(out, d)
		}
	}
	return out
}

// leafUsage is the one-line help for a leaf command. Deprecation is surfaced
// here only; it never changes how the command binds or dispatches.
func leafUsage(leaf *command.Leaf) string {
	usage := leaf.Operation.Summary
	if usage == "" {
		usage = fmt.Sprintf("%s %s", leaf.Operation.Method, leaf.DisplayPath)
	}
	if leaf.Operation.Deprecated {
		usage += " (deprecated)"
	}
	return usage
}

// argsUsage renders the positional argument hint, e.g. "<project-id> <id>".
func argsUsage(positionals []command.Descriptor) string {
	if len(positionals) == 0 {
		return ""
	}

	parts := make([]string, len(positionals))
	for i, d := range positionals {
		parts[i] = "<" + d.CLIName + ">"
	}
	return strings.Join(parts, " ")
}
