// Package api defines the immutable model of a parsed API description.
//
// A Document holds the operations, parameters, body schemas, and tag
// descriptions that concierge turns into a command tree. Instances are built
// once (by pkg/openapi, or directly in tests), validated, and never mutated
// afterwards, so every later stage can treat them as read-only data shared
// freely across goroutines.
//
// Validation is all-or-nothing: a Document that fails Validate produces no
// tree at all. Problems are reported as *StructuralError with enough context
// to identify the offending operation.
package api
