package invoke

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/pseudomuto/concierge/pkg/api"
	"github.com/pseudomuto/concierge/pkg/command"
	"github.com/pseudomuto/concierge/pkg/consts"
)

type (
	// Request is the bound form of one invocation, handed to the dispatcher.
	Request struct {
		Method api.Method

		// Path is the resolved path, every placeholder substituted
		Path string

		// Query carries every non-body value; query, header, and cookie
		// parameters alike
		Query url.Values

		// Body is the resolved request body, nil when the invocation carries
		// none
		Body []byte

		// ContentType of Body, empty when Body is nil
		ContentType string
	}

	// Dispatcher forwards a bound invocation to wherever requests go. Retry
	// and timeout policy live behind this interface, not in the binder.
	Dispatcher interface {
		Dispatch(ctx context.Context, req Request) (any, error)
	}

	// Binder turns parsed argument values into dispatch calls. A Binder holds
	// no per-invocation state, so one instance serves any number of
	// concurrent invocations.
	Binder struct {
		dispatcher Dispatcher
		out        io.Writer
	}

	// Values holds the argument values one invocation supplied, keyed by
	// descriptor CLI name.
	Values struct {
		raw      map[string]string
		supplied map[string]bool
	}
)

// NewValues returns an empty value set.
func NewValues() *Values {
	return &Values{raw: map[string]string{}, supplied: map[string]bool{}}
}

// Put records a value for a descriptor's CLI name. supplied marks values the
// user actually passed, as opposed to defaults the host filled in.
func (v *Values) Put(name, value string, supplied bool) {
	v.raw[name] = value
	if supplied {
		v.supplied[name] = true
	}
}

// Supplied reports whether the named value was explicitly passed.
func (v *Values) Supplied(name string) bool { return v.supplied[name] }

// Get returns the recorded value for name, defaulted or supplied.
func (v *Values) Get(name string) string { return v.raw[name] }

// New returns a Binder. A nil dispatcher puts the binder in dry-run mode:
// each invocation renders a single line to out instead of dispatching. A nil
// out discards those lines.
func New(dispatcher Dispatcher, out io.Writer) *Binder {
	if out == nil {
		out = io.Discard
	}
	return &Binder{dispatcher: dispatcher, out: out}
}

// Invoke binds the supplied values onto the leaf and performs exactly one
// dispatch call, or renders one dry-run line when no dispatcher is
// configured. Argument problems surface as *UsageError scoped to this
// invocation; once binding starts it runs to completion or fails, with no
// cancellation at this layer.
//
// Example usage:
//
//	binder := invoke.New(nil, os.Stderr) // dry-run mode
//
//	values := invoke.NewValues()
//	values.Put("id", "42", true)
//
//	if _, err := binder.Invoke(ctx, leaf, values); err != nil {
//		var uerr *invoke.UsageError
//		if errors.As(err, &uerr) {
//			// bad arguments for this one call
//		}
//	}
func (b *Binder) Invoke(ctx context.Context, leaf *command.Leaf, values *Values) (any, error) {
	req, err := bindRequest(leaf, values)
	if err != nil {
		return nil, err
	}

	if b.dispatcher == nil {
		fmt.Fprintln(b.out, dryRunLine(req))
		return nil, nil
	}
	return b.dispatcher.Dispatch(ctx, req)
}

func bindRequest(leaf *command.Leaf, values *Values) (Request, error) {
	path, err := resolvePath(leaf, values)
	if err != nil {
		return Request{}, err
	}

	query, err := resolveQuery(leaf, values)
	if err != nil {
		return Request{}, err
	}

	body, err := resolveBody(leaf, values)
	if err != nil {
		return Request{}, err
	}

	req := Request{Method: leaf.Operation.Method, Path: path, Query: query}
	if body != nil {
		req.Body = body
		req.ContentType = leaf.Operation.ContentType(consts.DefaultContentType)
	}
	return req, nil
}

// resolvePath substitutes every placeholder in the original path template
// with its positional value. Values are path-escaped so separators survive
// the round trip.
func resolvePath(leaf *command.Leaf, values *Values) (string, error) {
	byName := make(map[string]string)
	for _, d := range leaf.Descriptors {
		if d.Kind != command.KindPositional {
			continue
		}
		if !values.Supplied(d.CLIName) {
			return "", usageErrorf(leaf, "missing required argument %q", d.CLIName)
		}

		val := values.Get(d.CLIName)
		if _, err := convertScalar(leaf, d, val); err != nil {
			return "", err
		}
		byName[d.SourceName] = val
	}

	var sb strings.Builder
	for _, seg := range leaf.Template.Segments {
		sb.WriteByte('/')
		for _, part := range seg.Parts {
			switch {
			case part.Param != nil:
				sb.WriteString(url.PathEscape(byName[*part.Param]))
			case part.Literal != nil:
				sb.WriteString(*part.Literal)
			}
		}
	}

	if sb.Len() == 0 {
		return "/", nil
	}
	return sb.String(), nil
}

// resolveQuery folds every flag value into the query set. Unsupplied optional
// flags fall back to their declared default and are omitted when there is
// none.
func resolveQuery(leaf *command.Leaf, values *Values) (url.Values, error) {
	query := url.Values{}
	for _, d := range leaf.Descriptors {
		if d.Kind != command.KindFlag {
			continue
		}

		val := values.Get(d.CLIName)
		switch {
		case values.Supplied(d.CLIName):
		case val != "":
			// host filled in the declared default
		case d.Default != "":
			val = d.Default
		case d.Required:
			return nil, usageErrorf(leaf, "missing required flag %q", d.CLIName)
		default:
			continue
		}

		if _, err := convertScalar(leaf, d, val); err != nil {
			return nil, err
		}
		query.Set(d.SourceName, val)
	}
	return query, nil
}

// convertScalar converts a literal to the descriptor's declared scalar type.
// Undeclared and string types pass through as-is.
func convertScalar(leaf *command.Leaf, d command.Descriptor, raw string) (any, error) {
	switch d.Type {
	case "integer":
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, usageErrorf(leaf, "invalid integer value %q for %q", raw, d.CLIName)
		}
		return n, nil
	case "number":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, usageErrorf(leaf, "invalid number value %q for %q", raw, d.CLIName)
		}
		return f, nil
	case "boolean":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, usageErrorf(leaf, "invalid boolean value %q for %q", raw, d.CLIName)
		}
		return b, nil
	default:
		return raw, nil
	}
}

// dryRunLine renders the single diagnostic line written in place of a
// dispatch call.
func dryRunLine(req Request) string {
	var sb strings.Builder
	sb.WriteString("dry-run: ")
	sb.WriteString(string(req.Method))
	sb.WriteByte(' ')
	sb.WriteString(req.Path)

	if enc := req.Query.Encode(); enc != "" {
		sb.WriteByte('?')
		sb.WriteString(enc)
	}
	if req.Body != nil {
		fmt.Fprintf(&sb, " %s %s", req.ContentType, req.Body)
	}
	return sb.String()
}
