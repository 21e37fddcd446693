// Package invoke executes leaf commands: it binds parsed argument values
// back onto an operation, substitutes path placeholders, folds non-body
// values into query parameters, assembles the request body, and hands the
// bound request to a Dispatcher. Without a dispatcher the binder runs dry,
// writing one diagnostic line per invocation instead.
//
// Binding is pure per invocation; the only I/O at this layer is resolving an
// @<path> body reference, and its failure is scoped to that one call.
package invoke
