package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pseudomuto/concierge/pkg/api"
	"github.com/pseudomuto/concierge/pkg/consts"
	"github.com/pseudomuto/concierge/pkg/paths"
	"github.com/pseudomuto/concierge/pkg/utils"
)

// Kind classifies how an argument descriptor surfaces on the command line and
// where its value binds at invocation time.
type Kind string

const (
	// KindPositional binds a path placeholder. Always required.
	KindPositional Kind = "positional"

	// KindFlag binds a query, header, or cookie parameter.
	KindFlag Kind = "flag"

	// KindBodyField binds one declared body property.
	KindBodyField Kind = "bodyField"

	// KindRawBody is the catch-all raw request body override.
	KindRawBody Kind = "rawBodyOverride"
)

type (
	// Descriptor is one command-line argument synthesized from an operation:
	// how it is named on the CLI, where its value comes from, and where it is
	// bound when the command runs.
	Descriptor struct {
		// CLIName is the kebab-cased name the host front end exposes
		CLIName string

		// SourceName is the declared parameter or property name the value
		// binds to. Empty for the raw body override.
		SourceName string

		Kind Kind

		// Type is the declared value type, "string" when undeclared
		Type string

		// Required reports whether the source declares the value required.
		// Host front ends enforce it for positionals and flags only; body
		// fields are checked at assembly time instead, so a raw body override
		// can satisfy them.
		Required bool

		// Default is the declared default rendered as text
		Default string

		// Help is the descriptor help text, with enum values folded in
		Help string

		// Location is the declared parameter location, empty for body kinds
		Location api.Location
	}
)

// Structured reports whether values of this descriptor are parsed as
// structured data at invocation time rather than bound as scalars.
func (d Descriptor) Structured() bool {
	return d.Kind == KindBodyField && (d.Type == "object" || d.Type == "array")
}

// synthesizeDescriptors produces an operation's argument descriptors in
// presentation order: positionals (one per path placeholder), flags for
// query/header/cookie parameters, body-field flags for declared body
// properties, then the raw body override whenever the operation accepts a
// body. The override's name is reserved before anything else claims it.
func synthesizeDescriptors(op api.Operation, tmpl *paths.Template) ([]Descriptor, error) {
	placeholders := tmpl.Params()

	inTemplate := make(map[string]struct{}, len(placeholders))
	for _, name := range placeholders {
		inTemplate[name] = struct{}{}
	}

	declared := make(map[string]api.Parameter, len(op.Parameters))
	for _, p := range op.Parameters {
		if p.In != api.LocationPath {
			continue
		}
		if _, ok := inTemplate[p.Name]; !ok {
			return nil, api.NewStructuralError(op, "path parameter %q does not appear in %q", p.Name, op.Path)
		}
		declared[p.Name] = p
	}

	taken := make(map[string]struct{})
	if op.AcceptsBody() {
		taken[consts.RawBodyFlag] = struct{}{}
	}

	descriptors := make([]Descriptor, 0, len(placeholders)+len(op.Parameters)+2)

	// A placeholder without a declared parameter still binds; it synthesizes
	// as a required string.
	for _, name := range placeholders {
		kebab := utils.Kebab(name)
		d := Descriptor{
			CLIName:    claimName(taken, kebab, kebab+"-path"),
			SourceName: name,
			Kind:       KindPositional,
			Type:       "string",
			Required:   true,
			Location:   api.LocationPath,
		}
		if p, ok := declared[name]; ok {
			if p.Type != "" {
				d.Type = p.Type
			}
			d.Default = p.Default
			d.Help = paramHelp(p.Description, p.Enum)
		}
		descriptors = append(descriptors, d)
	}

	for _, p := range op.Parameters {
		if p.In == api.LocationPath {
			continue
		}

		name := utils.Kebab(p.Name)
		descriptors = append(descriptors, Descriptor{
			CLIName:    claimName(taken, name, name+"-"+string(p.In)),
			SourceName: p.Name,
			Kind:       KindFlag,
			Type:       valueType(p.Type),
			Required:   p.Required,
			Default:    p.Default,
			Help:       paramHelp(p.Description, p.Enum),
			Location:   p.In,
		})
	}

	if op.Body != nil && len(op.Body.Properties) > 0 {
		names := make([]string, 0, len(op.Body.Properties))
		for name := range op.Body.Properties {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			prop := op.Body.Properties[name]
			kebab := utils.Kebab(name)
			descriptors = append(descriptors, Descriptor{
				CLIName:    claimName(taken, kebab, kebab+"-field"),
				SourceName: name,
				Kind:       KindBodyField,
				Type:       valueType(prop.Type),
				Required:   prop.Required,
				Default:    prop.Default,
				Help:       paramHelp(prop.Description, prop.Enum),
			})
		}
	}

	if op.AcceptsBody() {
		descriptors = append(descriptors, Descriptor{
			CLIName: consts.RawBodyFlag,
			Kind:    KindRawBody,
			Type:    "string",
			Help: fmt.Sprintf(
				"Raw request body sent as %s. Use @<path> to read it from a file. Overrides field flags per key.",
				op.ContentType(consts.DefaultContentType),
			),
		})
	}

	return descriptors, nil
}

// claimName reserves the first free candidate name, falling back to numbered
// variants when every candidate is taken.
func claimName(taken map[string]struct{}, candidates ...string) string {
	for _, c := range candidates {
		if _, ok := taken[c]; !ok {
			taken[c] = struct{}{}
			return c
		}
	}

	base := candidates[len(candidates)-1]
	for i := 2; ; i++ {
		c := fmt.Sprintf("%s-%d", base, i)
		if _, ok := taken[c]; !ok {
			taken[c] = struct{}{}
			return c
		}
	}
}

func valueType(t string) string {
	if t == "" {
		return "string"
	}
	return t
}

// paramHelp folds enum values into help text. Enums never become structural
// enforcement.
func paramHelp(description string, enum []string) string {
	if len(enum) == 0 {
		return description
	}

	hint := fmt.Sprintf("(one of: %s)", strings.Join(enum, ", "))
	if description == "" {
		return hint
	}
	return description + " " + hint
}
