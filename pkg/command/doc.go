// Package command builds the hierarchical command tree an API description
// drives: operations are grouped by the literal segments of their display
// paths, each group's leaves carry canonical verbs (list, get, create, ...),
// and every leaf holds the argument descriptors a host front end needs to
// surface it.
//
// Build is the entry point. The resulting Tree is immutable; host bridges in
// pkg/host walk it to register commands, and pkg/invoke binds parsed argument
// values back onto a leaf's source operation.
package command
