package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ocrsift/ocrsift/internal/schema"
)

// buildJSONSchema derives the structured-output contract for one schema:
// an object with an "items" array whose entries carry exactly the schema's
// fields. Every field is optional and nullable so the model can report
// absence instead of guessing.
func buildJSONSchema(s schema.Schema) map[string]any {
	props := make(map[string]any, len(s.Fields()))
	for _, f := range s.Fields() {
		props[f.Name] = fieldProp(f)
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties":           props,
				},
			},
		},
		"required": []string{"items"},
	}
}

func fieldProp(f schema.FieldSpec) map[string]any {
	switch f.Type {
	case schema.Number:
		return map[string]any{"type": []string{"number", "null"}, "description": f.Description}
	case schema.Enum:
		vals := make([]any, 0, len(f.EnumValues)+1)
		for _, v := range f.EnumValues {
			vals = append(vals, v)
		}
		vals = append(vals, nil)
		return map[string]any{"enum": vals, "description": f.Description}
	case schema.StringList:
		return map[string]any{
			"type":        []string{"array", "null"},
			"items":       map[string]any{"type": "string"},
			"description": f.Description,
		}
	default:
		return map[string]any{"type": []string{"string", "null"}, "description": f.Description}
	}
}

// validateAgainst checks raw JSON content against the derived contract.
func validateAgainst(contract map[string]any, raw []byte) error {
	contractJSON, err := json.Marshal(contract)
	if err != nil {
		return fmt.Errorf("marshal contract: %w", err)
	}
	compiled, err := jsonschema.CompileString("extraction.schema.json", string(contractJSON))
	if err != nil {
		return fmt.Errorf("compile contract: %w", err)
	}
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode content: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("content does not match contract: %w", err)
	}
	return nil
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
