package invoke

import (
	"fmt"

	"github.com/pseudomuto/concierge/pkg/command"
)

// UsageError reports a problem with a single invocation's arguments: a
// missing required body field, an unresolvable @reference, or a value that
// doesn't convert to its declared type. It is scoped to the invocation that
// raised it and carries the command path so hosts can point at the right help
// screen. The host process survives; only the offending call exits non-zero.
type UsageError struct {
	// Command is the space-joined command path, e.g. "users create"
	Command string

	// Reason describes what went wrong
	Reason string
}

func (e *UsageError) Error() string {
	if e.Command == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Reason)
}

func usageErrorf(leaf *command.Leaf, format string, args ...any) *UsageError {
	return &UsageError{Command: leaf.CommandPath(), Reason: fmt.Sprintf(format, args...)}
}
