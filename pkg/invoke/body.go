package invoke

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/concierge/pkg/command"
	"github.com/pseudomuto/concierge/pkg/consts"
	"gopkg.in/yaml.v3"
)

// resolveBody assembles the request body for one invocation. Supplied body
// fields form an object; a supplied raw override merges over it, winning per
// key on conflict; schema-required fields are checked only when no override
// was given; and with no declared properties at all, any raw value passes
// through unassembled.
func resolveBody(leaf *command.Leaf, values *Values) ([]byte, error) {
	var (
		fields  []command.Descriptor
		rawDesc *command.Descriptor
	)
	for i := range leaf.Descriptors {
		switch leaf.Descriptors[i].Kind {
		case command.KindBodyField:
			fields = append(fields, leaf.Descriptors[i])
		case command.KindRawBody:
			rawDesc = &leaf.Descriptors[i]
		}
	}

	var override []byte
	haveOverride := false
	if rawDesc != nil && values.Supplied(rawDesc.CLIName) {
		var err error
		if override, err = resolveReference(leaf, values.Get(rawDesc.CLIName)); err != nil {
			return nil, err
		}
		haveOverride = true
	}

	if len(fields) == 0 {
		if haveOverride {
			return override, nil
		}
		return nil, nil
	}

	assembled := make(map[string]any)
	for _, d := range fields {
		if !values.Supplied(d.CLIName) {
			continue
		}

		val, err := fieldValue(leaf, d, values.Get(d.CLIName))
		if err != nil {
			return nil, err
		}
		assembled[d.SourceName] = val
	}

	if haveOverride {
		merged, ok := parseObject(override)
		if !ok {
			// Not an object; the override replaces the body wholesale.
			return override, nil
		}
		for k, v := range merged {
			assembled[k] = v
		}
	} else {
		var missing []string
		for _, d := range fields {
			if !d.Required {
				continue
			}
			if _, ok := assembled[d.SourceName]; !ok {
				missing = append(missing, d.SourceName)
			}
		}
		if len(missing) > 0 {
			return nil, usageErrorf(leaf, "missing required body fields: %s", strings.Join(missing, ", "))
		}
	}

	if len(assembled) == 0 && !haveOverride {
		return nil, nil
	}
	return marshalBody(leaf, assembled)
}

// fieldValue converts one body-field literal to its typed value. Object and
// array fields parse as structured data, falling back to the literal string
// when the value parses as neither JSON nor YAML.
func fieldValue(leaf *command.Leaf, d command.Descriptor, raw string) (any, error) {
	if d.Structured() {
		return parseStructured(raw), nil
	}
	return convertScalar(leaf, d, raw)
}

// parseStructured parses raw as JSON first, then YAML, then gives up and
// returns the literal string.
func parseStructured(raw string) any {
	var out any
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		return out
	}
	if err := yaml.Unmarshal([]byte(raw), &out); err == nil {
		return out
	}
	return raw
}

// parseObject parses raw as a JSON or YAML object. ok is false when the
// value is valid but not an object, or not parseable at all.
func parseObject(raw []byte) (map[string]any, bool) {
	var viaJSON map[string]any
	if err := json.Unmarshal(raw, &viaJSON); err == nil && viaJSON != nil {
		return viaJSON, true
	}

	var viaYAML map[string]any
	if err := yaml.Unmarshal(raw, &viaYAML); err == nil && viaYAML != nil {
		return viaYAML, true
	}
	return nil, false
}

// resolveReference resolves a raw body value. A value of the form @<path>
// reads the referenced file's contents as the body; anything else is the
// body itself. An unreadable reference fails this invocation alone.
func resolveReference(leaf *command.Leaf, raw string) ([]byte, error) {
	if !strings.HasPrefix(raw, "@") {
		return []byte(raw), nil
	}

	data, err := os.ReadFile(strings.TrimPrefix(raw, "@"))
	if err != nil {
		return nil, usageErrorf(leaf, "unresolvable body reference %q: %v", raw, err)
	}
	return data, nil
}

// marshalBody renders the assembled object in the operation's content type:
// YAML for YAML content types, JSON for everything else.
func marshalBody(leaf *command.Leaf, body map[string]any) ([]byte, error) {
	if strings.Contains(leaf.Operation.ContentType(consts.DefaultContentType), "yaml") {
		data, err := yaml.Marshal(body)
		return data, errors.Wrap(err, "encoding request body")
	}

	data, err := json.Marshal(body)
	return data, errors.Wrap(err, "encoding request body")
}
