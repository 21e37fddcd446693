// Package paths parses URL path templates and rewrites them into the display
// paths the command tree is built from.
//
// A template is a slash-separated list of segments, where each segment is a
// run of literals and {placeholder} parts ("/users/{id}/posts"). ParseTemplate
// produces the structured form; Transform applies a RuleSet (prefix stripping,
// keep/skip lists, collapse overrides) to a whole set of templates at once;
// Segments lists the literal names a display path contributes to the tree.
//
// Example usage:
//
//	display, err := paths.Transform([]string{
//		"/api/v1/users",
//		"/api/v1/users/{id}",
//	}, paths.RuleSet{})
//	if err != nil { ... }
//
//	display["/api/v1/users/{id}"] // "/users/{id}"
package paths
