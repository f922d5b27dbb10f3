package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ViolationError reports a field value that does not match its declared
// semantic type. It indicates a bug in an extractor, not bad input text.
type ViolationError struct {
	SchemaType string
	Field      string
	Reason     string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("schema violation: %s.%s: %s", e.SchemaType, e.Field, e.Reason)
}

// Record is one extracted instance of a schema. It is immutable once
// constructed; the orchestrator stamps Confidence and Provenance on its own
// copy before returning records to callers.
type Record struct {
	schemaType string
	values     map[string]any
	missing    []string

	Confidence float64
	Provenance string
}

// New validates values against the schema and builds a record. Absent and
// empty values are permitted and land in the missing-field set; a value of
// the wrong semantic type or an undeclared field name fails with
// *ViolationError.
func New(s Schema, values map[string]any) (Record, error) {
	clean := make(map[string]any, len(values))
	for name, v := range values {
		spec, ok := Field(s, name)
		if !ok {
			return Record{}, &ViolationError{SchemaType: s.Type(), Field: name, Reason: "field not declared by schema"}
		}
		cv, present, err := coerce(s.Type(), spec, v)
		if err != nil {
			return Record{}, err
		}
		if present {
			clean[name] = cv
		}
	}
	var missing []string
	for _, f := range s.Fields() {
		if _, ok := clean[f.Name]; !ok {
			missing = append(missing, f.Name)
		}
	}
	sort.Strings(missing)
	return Record{schemaType: s.Type(), values: clean, missing: missing}, nil
}

// Type returns the extraction type identifier of the producing schema.
func (r *Record) Type() string { return r.schemaType }

// Get returns a field value and whether it is set.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// GetString returns a string field value, or "" when absent.
func (r *Record) GetString(name string) string {
	if v, ok := r.values[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetNumber returns a number field value, or 0 when absent.
func (r *Record) GetNumber(name string) float64 {
	if v, ok := r.values[name]; ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return 0
}

// GetList returns a list field value, or nil when absent.
func (r *Record) GetList(name string) []string {
	if v, ok := r.values[name]; ok {
		if l, ok := v.([]string); ok {
			return append([]string(nil), l...)
		}
	}
	return nil
}

// MissingFields returns exactly the schema fields with no value, sorted.
func (r *Record) MissingFields() []string {
	return append([]string(nil), r.missing...)
}

// Values returns a copy of the set field values.
func (r *Record) Values() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		if l, ok := v.([]string); ok {
			out[k] = append([]string(nil), l...)
			continue
		}
		out[k] = v
	}
	return out
}

// MarshalJSON flattens the record into one object: field values alongside
// confidence, missing_fields and provenance.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.values)+3)
	for k, v := range r.values {
		out[k] = v
	}
	out["confidence"] = r.Confidence
	out["missing_fields"] = r.missing
	if r.missing == nil {
		out["missing_fields"] = []string{}
	}
	out["provenance"] = r.Provenance
	return json.Marshal(out)
}

// coerce normalizes a raw value to the field's semantic type. The second
// return reports whether the value is non-empty and should be stored.
func coerce(schemaType string, spec FieldSpec, v any) (any, bool, error) {
	if v == nil {
		return nil, false, nil
	}
	switch spec.Type {
	case String:
		s, ok := v.(string)
		if !ok {
			return nil, false, violation(schemaType, spec, v, "expected string")
		}
		s = strings.TrimSpace(s)
		return s, s != "", nil
	case Number:
		switch n := v.(type) {
		case float64:
			return n, true, nil
		case float32:
			return float64(n), true, nil
		case int:
			return float64(n), true, nil
		case int64:
			return float64(n), true, nil
		}
		return nil, false, violation(schemaType, spec, v, "expected number")
	case Enum:
		s, ok := v.(string)
		if !ok {
			return nil, false, violation(schemaType, spec, v, "expected enum string")
		}
		if strings.TrimSpace(s) == "" {
			return nil, false, nil
		}
		canonical, ok := normalizeEnum(spec, s)
		if !ok {
			return nil, false, violation(schemaType, spec, v, fmt.Sprintf("value %q not in enum %v", s, spec.EnumValues))
		}
		return canonical, true, nil
	case StringList:
		var items []string
		switch l := v.(type) {
		case []string:
			items = l
		case []any:
			items = make([]string, 0, len(l))
			for _, e := range l {
				s, ok := e.(string)
				if !ok {
					return nil, false, violation(schemaType, spec, e, "expected list of strings")
				}
				items = append(items, s)
			}
		default:
			return nil, false, violation(schemaType, spec, v, "expected list of strings")
		}
		clean := make([]string, 0, len(items))
		for _, s := range items {
			if s = strings.TrimSpace(s); s != "" {
				clean = append(clean, s)
			}
		}
		return clean, len(clean) > 0, nil
	}
	return nil, false, violation(schemaType, spec, v, "unknown field type")
}

func violation(schemaType string, spec FieldSpec, v any, msg string) error {
	return &ViolationError{
		SchemaType: schemaType,
		Field:      spec.Name,
		Reason:     fmt.Sprintf("%s, got %T", msg, v),
	}
}
