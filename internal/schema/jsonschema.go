package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/idcard-extractor/constants"
	"github.com/joseph-ayodele/idcard-extractor/internal/common"
)

// JSONSchema returns a JSON-Schema for the fields of dt as a generic map.
// Every leaf accepts either a raw value or the {value, valid} wrapper, and
// unknown keys are tolerated.
func JSONSchema(dt constants.DocumentType) map[string]any {
	root := objectNode()
	for _, f := range Fields(dt) {
		node := root
		segs := strings.Split(f.Key, ".")
		for _, seg := range segs[:len(segs)-1] {
			props := node["properties"].(map[string]any)
			child, ok := props[seg].(map[string]any)
			if !ok {
				child = objectNode()
				props[seg] = child
			}
			node = child
		}
		node["properties"].(map[string]any)[segs[len(segs)-1]] = leafNode(f.Multi)
	}
	return root
}

func objectNode() map[string]any {
	return map[string]any{
		"type":                 []any{"object", "null"},
		"additionalProperties": true,
		"properties":           map[string]any{},
	}
}

func leafNode(multi bool) map[string]any {
	raw := map[string]any{"type": []any{"string", "number", "null"}}
	if multi {
		raw = map[string]any{
			"anyOf": []any{
				map[string]any{"type": "array", "items": map[string]any{"type": []any{"string", "null"}}},
				map[string]any{"type": []any{"string", "null"}},
			},
		}
	}
	wrapper := map[string]any{
		"type":     "object",
		"required": []any{"value"},
		"properties": map[string]any{
			"value": raw,
			"valid": map[string]any{"type": []any{"boolean", "null"}},
		},
	}
	return map[string]any{"anyOf": []any{raw, wrapper}}
}

// Validate checks fields (the document variant object) against JSONSchema(dt).
func Validate(dt constants.DocumentType, fields []byte) error {
	if !dt.Valid() {
		return fmt.Errorf("unsupported document type %q", dt)
	}
	return validateAgainst(JSONSchema(dt), fields)
}

func validateAgainst(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("document.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	compiled, err := compiler.Compile("document.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("%w: document does not match schema: %w", common.ErrValidation, err)
	}
	return nil
}
