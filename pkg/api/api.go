package api

import (
	"fmt"
	"strings"
)

// Method is an HTTP request method as declared by an API description.
type Method string

// The methods concierge maps to canonical command verbs. Descriptions may
// declare methods outside this set; those fall back to the method's own name
// when a verb is chosen.
const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
)

// KnownMethods is the recognized method set. Initialized once and never
// mutated.
var KnownMethods = map[Method]bool{
	MethodGet:     true,
	MethodPost:    true,
	MethodPut:     true,
	MethodPatch:   true,
	MethodDelete:  true,
	MethodHead:    true,
	MethodOptions: true,
	MethodTrace:   true,
}

// bodyMethods are methods that conventionally carry a request body even when
// the description declares no schema for it.
var bodyMethods = map[Method]bool{
	MethodPost:  true,
	MethodPut:   true,
	MethodPatch: true,
}

// Lower returns the lower-cased method name, used for verb fallbacks and
// collision suffixes.
func (m Method) Lower() string {
	return strings.ToLower(string(m))
}

// Location identifies where a parameter is carried on the wire.
type Location string

const (
	LocationPath   Location = "path"
	LocationQuery  Location = "query"
	LocationHeader Location = "header"
	LocationCookie Location = "cookie"
)

type (
	// Document is a parsed API description: the immutable input this system
	// turns into a command tree. It is built once per load and never mutated
	// afterwards, so concurrent readers need no synchronization.
	Document struct {
		// Title of the API, surfaced by the describe command
		Title string

		// Description of the API as a whole
		Description string

		// Version string declared by the description
		Version string

		// Tags holds tag-name/description pairs used for group help synthesis
		Tags []Tag

		// Operations in declaration order. Order matters: the first operation
		// to claim a verb within a group keeps it.
		Operations []Operation
	}

	// Tag is a declared tag with an optional human description.
	Tag struct {
		Name        string
		Description string
	}

	// Operation is one (method, path template) pair from the description.
	Operation struct {
		// ID is the description's operation identifier, when declared. Used
		// only to label the operation in setup failures.
		ID string

		Method Method `validate:"required"`

		// Path is the raw path template, with {name} placeholders.
		Path string `validate:"required,startswith=/"`

		Summary     string
		Description string

		// Tags this operation is labelled with
		Tags []string

		Parameters []Parameter `validate:"dive"`

		// Body is the declared request body schema, if any
		Body *BodySchema

		Deprecated bool
	}

	// Parameter describes one declared operation parameter.
	Parameter struct {
		Name     string   `validate:"required"`
		In       Location `validate:"required,oneof=path query header cookie"`
		Required bool

		// Type is the parameter's declared value type ("string", "integer",
		// "number", "boolean", "array", "object")
		Type string

		// Format is the declared type format ("date-time", "uuid", ...)
		Format string

		// Default is the declared default rendered as text
		Default string

		// Enum lists the permitted values, when declared. Enums surface in
		// help text only, never as structural enforcement.
		Enum []string

		Description string
	}

	// BodySchema describes an operation's request body.
	BodySchema struct {
		// Required reports whether the description marks the body required
		Required bool

		// ContentTypes lists the declared body content types, most specific
		// first. Empty means the default structured content type.
		ContentTypes []string

		// Properties maps property name to its schema, when the body declares
		// an object shape. A nil map means the body is opaque and raw values
		// pass through unassembled.
		Properties map[string]Property
	}

	// Property is one declared body property.
	Property struct {
		Type        string
		Description string
		Required    bool
		Default     string
		Enum        []string
	}
)

// Label identifies the operation in error messages: the declared operation ID
// when present, otherwise "METHOD /path".
func (o Operation) Label() string {
	if o.ID != "" {
		return o.ID
	}
	return fmt.Sprintf("%s %s", o.Method, o.Path)
}

// AcceptsBody reports whether invocations of this operation may carry a body:
// either the description declares a schema, or the method conventionally
// carries one.
func (o Operation) AcceptsBody() bool {
	return o.Body != nil || bodyMethods[o.Method]
}

// ContentType returns the body content type for this operation: the first
// declared content type, or fallback when the description states none.
func (o Operation) ContentType(fallback string) string {
	if o.Body != nil && len(o.Body.ContentTypes) > 0 {
		return o.Body.ContentTypes[0]
	}
	return fallback
}

// TagDescription looks up the description declared for a tag name. The second
// return reports whether the tag was declared with a non-empty description.
func (d *Document) TagDescription(name string) (string, bool) {
	for _, t := range d.Tags {
		if t.Name == name && t.Description != "" {
			return t.Description, true
		}
	}
	return "", false
}
