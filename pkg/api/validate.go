package api

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// validate checks struct shape (required fields, recognized parameter
// locations). Created once; validator instances are safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// StructuralError reports malformed operation data discovered while building
// the command tree. Construction is all-or-nothing: the first structural
// problem aborts the build and no partial tree is ever served.
type StructuralError struct {
	// Op labels the offending operation (operation ID, or "METHOD /path")
	Op string

	// Reason is a human-readable explanation of what is malformed
	Reason string
}

func (e *StructuralError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("malformed API description: %s", e.Reason)
	}
	return fmt.Sprintf("malformed operation %s: %s", e.Op, e.Reason)
}

// NewStructuralError builds a StructuralError for the given operation.
func NewStructuralError(op Operation, format string, args ...any) *StructuralError {
	return &StructuralError{Op: op.Label(), Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the document for malformed operation data: missing methods,
// paths that don't start with "/", and unrecognized parameter locations. It
// returns a StructuralError describing the first problem found. Two operations
// sharing a (method, path) pair are not an error; they are disambiguated
// during verb resolution instead.
//
// Example:
//
//	doc, err := openapi.LoadFile("api.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := doc.Validate(); err != nil {
//		var serr *api.StructuralError
//		if errors.As(err, &serr) {
//			log.Fatalf("unusable description: %v", serr)
//		}
//	}
func (d *Document) Validate() error {
	for i := range d.Operations {
		op := d.Operations[i]
		if err := validate.Struct(op); err != nil {
			return errors.WithStack(&StructuralError{
				Op:     op.Label(),
				Reason: shapeReason(err),
			})
		}
	}

	return nil
}

// shapeReason flattens a validator error into a single readable reason line.
func shapeReason(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("missing %s", fe.Field())
	case "startswith":
		return fmt.Sprintf("%s must start with %q", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fe.Error()
	}
}
