package openapi

import (
	"context"
	"io"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/pkg/errors"
	"github.com/pseudomuto/concierge/pkg/api"
)

// Load reads an OpenAPI description (JSON or YAML) from r, validates it, and
// converts it into the neutral document model the command tree is built from.
//
// Example usage:
//
//	f, err := os.Open("api.yaml")
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//
//	doc, err := openapi.Load(f)
//	if err != nil {
//		return err
//	}
//
//	tree, err := command.Build(doc, rules)
func Load(r io.Reader) (*api.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading API description")
	}

	loader := newLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, errors.Wrap(err, "loading API description")
	}

	return validateAndConvert(loader, doc)
}

// LoadFile is like Load, but reads the description from the named file.
// Relative $ref targets resolve against the file's directory.
func LoadFile(path string) (*api.Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "opening API description %s", path)
	}

	loader := newLoader()
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loading API description %s", path)
	}

	return validateAndConvert(loader, doc)
}

func newLoader() *openapi3.Loader {
	loader := openapi3.NewLoader()
	loader.Context = context.Background()
	loader.IsExternalRefsAllowed = true
	return loader
}

func validateAndConvert(loader *openapi3.Loader, doc *openapi3.T) (*api.Document, error) {
	if err := doc.Validate(loader.Context); err != nil {
		return nil, errors.Wrap(err, "invalid API description")
	}
	return convert(doc)
}
