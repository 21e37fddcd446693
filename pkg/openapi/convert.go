package openapi

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/pkg/errors"
	"github.com/pseudomuto/concierge/pkg/api"
)

// methodOrder fixes the order operations are emitted in for each path. Verb
// resolution is first-claim, so emission order must be deterministic.
var methodOrder = []api.Method{
	api.MethodGet,
	api.MethodPost,
	api.MethodPut,
	api.MethodPatch,
	api.MethodDelete,
	api.MethodHead,
	api.MethodOptions,
	api.MethodTrace,
}

// convert maps a validated openapi3 document onto the neutral model. Paths
// are walked in sorted order and methods in canonical order, so the same
// description always yields the same operation sequence.
func convert(doc *openapi3.T) (*api.Document, error) {
	out := &api.Document{}
	if doc.Info != nil {
		out.Title = doc.Info.Title
		out.Description = doc.Info.Description
		out.Version = doc.Info.Version
	}

	for _, t := range doc.Tags {
		if t == nil {
			continue
		}
		out.Tags = append(out.Tags, api.Tag{Name: t.Name, Description: t.Description})
	}

	if doc.Paths == nil {
		return out, nil
	}

	items := doc.Paths.Map()
	pathKeys := make([]string, 0, len(items))
	for k := range items {
		pathKeys = append(pathKeys, k)
	}
	sort.Strings(pathKeys)

	for _, path := range pathKeys {
		item := items[path]
		if item == nil {
			continue
		}

		ops := item.Operations()
		for _, method := range methodOrder {
			op := ops[string(method)]
			if op == nil {
				continue
			}

			converted, err := convertOperation(path, method, item, op)
			if err != nil {
				return nil, err
			}
			out.Operations = append(out.Operations, converted)
		}
	}

	return out, nil
}

func convertOperation(path string, method api.Method, item *openapi3.PathItem, op *openapi3.Operation) (api.Operation, error) {
	converted := api.Operation{
		ID:          op.OperationID,
		Method:      method,
		Path:        path,
		Summary:     op.Summary,
		Description: op.Description,
		Tags:        op.Tags,
		Deprecated:  op.Deprecated,
		Body:        convertBody(op),
	}

	params, err := mergeParameters(item, op)
	if err != nil {
		return api.Operation{}, errors.Wrapf(err, "operation %s %s", method, path)
	}
	converted.Parameters = params

	return converted, nil
}

// mergeParameters combines path-item and operation parameters. Operation
// parameters override path-item ones sharing the same (in, name) pair, in
// place, so declaration order is preserved.
func mergeParameters(item *openapi3.PathItem, op *openapi3.Operation) ([]api.Parameter, error) {
	var out []api.Parameter
	index := make(map[string]int)

	add := func(refs openapi3.Parameters) error {
		for _, ref := range refs {
			if ref == nil || ref.Value == nil {
				return errors.New("parameter is nil")
			}
			p := ref.Value

			converted := api.Parameter{
				Name:        p.Name,
				In:          api.Location(p.In),
				Required:    p.Required || p.In == "path",
				Description: p.Description,
			}
			if p.Schema != nil && p.Schema.Value != nil {
				s := p.Schema.Value
				converted.Type = schemaType(s)
				converted.Format = s.Format
				converted.Default = renderValue(s.Default)
				converted.Enum = renderEnum(s.Enum)
			}

			key := p.In + ":" + p.Name
			if i, ok := index[key]; ok {
				out[i] = converted
				continue
			}
			index[key] = len(out)
			out = append(out, converted)
		}
		return nil
	}

	if err := add(item.Parameters); err != nil {
		return nil, err
	}
	if err := add(op.Parameters); err != nil {
		return nil, err
	}
	return out, nil
}

// convertBody extracts the request body schema. JSON leads the content type
// list when declared; the shape of the preferred media type's schema becomes
// the property map. A body whose schema declares no properties stays opaque.
func convertBody(op *openapi3.Operation) *api.BodySchema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	rb := op.RequestBody.Value

	body := &api.BodySchema{Required: rb.Required}

	ctKeys := make([]string, 0, len(rb.Content))
	for ct := range rb.Content {
		ctKeys = append(ctKeys, ct)
	}
	sort.Strings(ctKeys)

	if _, ok := rb.Content["application/json"]; ok {
		body.ContentTypes = append(body.ContentTypes, "application/json")
	}
	for _, ct := range ctKeys {
		if ct != "application/json" {
			body.ContentTypes = append(body.ContentTypes, ct)
		}
	}

	media := rb.Content["application/json"]
	if media == nil && len(ctKeys) > 0 {
		media = rb.Content[ctKeys[0]]
	}
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return body
	}

	schema := media.Schema.Value
	if len(schema.Properties) == 0 {
		return body
	}

	requiredSet := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		requiredSet[name] = true
	}

	body.Properties = make(map[string]api.Property, len(schema.Properties))
	for name, ref := range schema.Properties {
		prop := api.Property{Required: requiredSet[name]}
		if ref != nil && ref.Value != nil {
			prop.Type = schemaType(ref.Value)
			prop.Description = ref.Value.Description
			prop.Default = renderValue(ref.Value.Default)
			prop.Enum = renderEnum(ref.Value.Enum)
		}
		body.Properties[name] = prop
	}

	return body
}

// schemaType extracts the effective type from kin-openapi's type slice,
// skipping "null" entries. Undeclared types come back empty and synthesize
// as strings downstream.
func schemaType(s *openapi3.Schema) string {
	if s.Type == nil {
		return ""
	}
	for _, t := range *s.Type {
		if t != "null" {
			return t
		}
	}
	return ""
}

func renderValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func renderEnum(values []any) []string {
	if len(values) == 0 {
		return nil
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}
