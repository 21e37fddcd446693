package paths

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var (
	// templateLexer tokenizes path templates into slashes, braces, and runs
	// of everything else.
	templateLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Punct", Pattern: `[/{}]`},
		{Name: "Text", Pattern: `[^/{}]+`},
	})

	// templateParser is the participle parser instance for path templates
	templateParser = participle.MustBuild[Template](
		participle.Lexer(templateLexer),
	)
)

type (
	// Template is a parsed path template: an ordered list of slash-delimited
	// segments, each of which is literal text, a {name} placeholder, or a
	// mix of both.
	Template struct {
		Segments []*Segment `parser:"( '/' @@? )+"`
	}

	// Segment is one slash-delimited path component.
	Segment struct {
		Parts []*Part `parser:"@@+"`
	}

	// Part is a single {name} placeholder or a run of literal text.
	Part struct {
		Param   *string `parser:"'{' @Text '}'"`
		Literal *string `parser:"| @Text"`
	}
)

// ParseTemplate parses a path template such as "/users/{id}". The leading
// slash is normalized in, so "status" and "/status" parse identically. An
// unbalanced brace is a parse error.
func ParseTemplate(path string) (*Template, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	tmpl, err := templateParser.ParseString("", path)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid path template %q", path)
	}

	return tmpl, nil
}

// String reconstructs the template in canonical form: a leading slash, each
// segment rendered back with its braces.
func (t *Template) String() string {
	if len(t.Segments) == 0 {
		return "/"
	}

	var b strings.Builder
	for _, seg := range t.Segments {
		b.WriteByte('/')
		b.WriteString(seg.Text())
	}
	return b.String()
}

// Params returns every placeholder name in order of appearance.
func (t *Template) Params() []string {
	var names []string
	for _, seg := range t.Segments {
		for _, part := range seg.Parts {
			if part.Param != nil {
				names = append(names, *part.Param)
			}
		}
	}
	return names
}

// Literals returns the literal segments in order, dropping any segment that
// contains a placeholder. This is the command-segment view of the path: "/"
// and all-placeholder paths yield nothing.
func (t *Template) Literals() []string {
	var out []string
	for _, seg := range t.Segments {
		if !seg.ContainsParam() {
			out = append(out, seg.Text())
		}
	}
	return out
}

// EndsWithParam reports whether the final segment carries a placeholder,
// mixed literal/placeholder segments included. A bare "/" has no segments and
// reports false (collection shape).
func (t *Template) EndsWithParam() bool {
	if len(t.Segments) == 0 {
		return false
	}
	return t.Segments[len(t.Segments)-1].ContainsParam()
}

// ContainsParam reports whether any part of the segment is a placeholder.
func (s *Segment) ContainsParam() bool {
	for _, part := range s.Parts {
		if part.Param != nil {
			return true
		}
	}
	return false
}

// Text reconstructs the segment's source text, braces included.
func (s *Segment) Text() string {
	var b strings.Builder
	for _, part := range s.Parts {
		switch {
		case part.Param != nil:
			b.WriteByte('{')
			b.WriteString(*part.Param)
			b.WriteByte('}')
		case part.Literal != nil:
			b.WriteString(*part.Literal)
		}
	}
	return b.String()
}
