// Package schema defines the record shapes the extraction engine can
// produce: named optional fields with semantic types, plus the confidence
// rule every schema carries.
package schema

import (
	"strings"
)

// FieldType is the semantic type of a schema field.
type FieldType int

const (
	String FieldType = iota
	Number
	Enum
	StringList
)

func (t FieldType) String() string {
	switch t {
	case String:
		return "string"
	case Number:
		return "number"
	case Enum:
		return "enum"
	case StringList:
		return "string_list"
	default:
		return "unknown"
	}
}

// FieldSpec describes a single named, optional field of a schema.
// EnumValues is consulted only when Type is Enum.
type FieldSpec struct {
	Name        string
	Type        FieldType
	Description string
	EnumValues  []string
}

// Schema describes one record shape keyed by its extraction type.
// Confidence must stay within [0,1] and may only boost the default rule,
// never reduce it for having data present.
type Schema interface {
	Type() string
	Description() string
	Fields() []FieldSpec
	Confidence(rec *Record) float64
}

// BoostFunc adjusts a base confidence for one record. Implementations must
// be monotonic: the returned value is clamped to [base, 1].
type BoostFunc func(rec *Record, base float64) float64

// Def is a declarative Schema implementation. Most schemas are plain data:
// a type identifier, a field list, and optionally a confidence boost hook.
type Def struct {
	TypeName   string
	Desc       string
	FieldSpecs []FieldSpec
	Boost      BoostFunc
}

func (d *Def) Type() string        { return d.TypeName }
func (d *Def) Description() string { return d.Desc }
func (d *Def) Fields() []FieldSpec { return d.FieldSpecs }

// Confidence implements the default rule: the fraction of schema fields
// holding a non-empty value, optionally boosted by the schema's hook.
func (d *Def) Confidence(rec *Record) float64 {
	total := len(d.FieldSpecs)
	if total == 0 {
		return 0
	}
	base := float64(total-len(rec.missing)) / float64(total)
	out := base
	if d.Boost != nil {
		out = d.Boost(rec, base)
		if out < base {
			out = base
		}
	}
	return clamp01(out)
}

// Field returns the spec for a named field, if the schema declares it.
func Field(s Schema, name string) (FieldSpec, bool) {
	for _, f := range s.Fields() {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func normalizeEnum(spec FieldSpec, v string) (string, bool) {
	v = strings.TrimSpace(v)
	for _, allowed := range spec.EnumValues {
		if strings.EqualFold(v, allowed) {
			return allowed, true
		}
	}
	return "", false
}
