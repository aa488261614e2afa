// Package constraints models value restrictions for a single field
// independently of the schema dialect that produced them. Adapters translate
// their native constraint vocabulary into this shape so the binding layer can
// validate values without knowing the source framework.
package constraints

import "encoding/json"

// Constraints enumerates the restrictions a field value must satisfy. Every
// field is optional and independently settable; nil means "no restriction".
// No cross-field consistency is enforced: MinValue > MaxValue is accepted and
// simply makes the field unsatisfiable.
type Constraints struct {
	// MinValue is the lower bound for numeric values.
	MinValue *float64 `json:"minValue,omitempty"`
	// MaxValue is the upper bound for numeric values.
	MaxValue *float64 `json:"maxValue,omitempty"`
	// ExclusiveMin makes MinValue a strict bound. Only meaningful when
	// MinValue is set.
	ExclusiveMin bool `json:"exclusiveMin,omitempty"`
	// ExclusiveMax makes MaxValue a strict bound. Only meaningful when
	// MaxValue is set.
	ExclusiveMax bool `json:"exclusiveMax,omitempty"`
	// MultipleOf requires numeric values to be an exact multiple.
	MultipleOf *float64 `json:"multipleOf,omitempty"`
	// MinLength is the minimum length for text values.
	MinLength *int `json:"minLength,omitempty"`
	// MaxLength is the maximum length for text values.
	MaxLength *int `json:"maxLength,omitempty"`
	// Pattern is a regular expression text values must match from the start.
	Pattern string `json:"pattern,omitempty"`
	// MinItems is the minimum element count for collection values.
	MinItems *int `json:"minItems,omitempty"`
	// MaxItems is the maximum element count for collection values.
	MaxItems *int `json:"maxItems,omitempty"`
	// AllowedValues restricts the value to a fixed membership list. Order is
	// preserved for presentation; only membership is tested.
	AllowedValues []any `json:"allowedValues,omitempty"`
}

// IsZero reports whether no restriction is set.
func (c Constraints) IsZero() bool {
	return c.MinValue == nil && c.MaxValue == nil &&
		!c.ExclusiveMin && !c.ExclusiveMax &&
		c.MultipleOf == nil &&
		c.MinLength == nil && c.MaxLength == nil &&
		c.Pattern == "" &&
		c.MinItems == nil && c.MaxItems == nil &&
		c.AllowedValues == nil
}

// Float64 returns a pointer to v. Convenience for literal constraint values.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v. Convenience for literal constraint values.
func Int(v int) *int { return &v }

// Comparison carries the comparison-operator dialect used by annotation-style
// frameworks: gt/ge map to MinValue with and without exclusivity, lt/le to
// MaxValue likewise.
type Comparison struct {
	GT         *float64
	GE         *float64
	LT         *float64
	LE         *float64
	MultipleOf *float64
	MinLength  *int
	MaxLength  *int
	Pattern    string
}

// FromComparison builds Constraints from the comparison-operator dialect.
// Well-formed sources supply at most one bound per side; when both the
// exclusive and inclusive forms are present the exclusive bound wins.
func FromComparison(cmp Comparison) Constraints {
	c := Constraints{
		MultipleOf: cmp.MultipleOf,
		MinLength:  cmp.MinLength,
		MaxLength:  cmp.MaxLength,
		Pattern:    cmp.Pattern,
	}

	switch {
	case cmp.GT != nil:
		c.MinValue = cmp.GT
		c.ExclusiveMin = true
	case cmp.GE != nil:
		c.MinValue = cmp.GE
	}

	switch {
	case cmp.LT != nil:
		c.MaxValue = cmp.LT
		c.ExclusiveMax = true
	case cmp.LE != nil:
		c.MaxValue = cmp.LE
	}

	return c
}

// FromJSONSchema builds Constraints from the structural dialect used by JSON
// Schema and OpenAPI documents. Absent keys leave the corresponding field
// unset; exclusiveMinimum/exclusiveMaximum carry the bound value as in Draft 4
// and set the exclusivity flag alongside it.
func FromJSONSchema(schema map[string]any) Constraints {
	c := Constraints{}
	if len(schema) == 0 {
		return c
	}

	if v, ok := numberValue(schema["minimum"]); ok {
		c.MinValue = &v
	}
	if v, ok := numberValue(schema["maximum"]); ok {
		c.MaxValue = &v
	}
	if v, ok := numberValue(schema["exclusiveMinimum"]); ok {
		c.MinValue = &v
		c.ExclusiveMin = true
	}
	if v, ok := numberValue(schema["exclusiveMaximum"]); ok {
		c.MaxValue = &v
		c.ExclusiveMax = true
	}
	if v, ok := numberValue(schema["multipleOf"]); ok {
		c.MultipleOf = &v
	}

	if v, ok := intValue(schema["minLength"]); ok {
		c.MinLength = &v
	}
	if v, ok := intValue(schema["maxLength"]); ok {
		c.MaxLength = &v
	}
	if pattern, ok := schema["pattern"].(string); ok && pattern != "" {
		c.Pattern = pattern
	}

	if v, ok := intValue(schema["minItems"]); ok {
		c.MinItems = &v
	}
	if v, ok := intValue(schema["maxItems"]); ok {
		c.MaxItems = &v
	}

	if enum, ok := schema["enum"].([]any); ok && len(enum) > 0 {
		c.AllowedValues = append([]any(nil), enum...)
	}

	return c
}

func numberValue(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func intValue(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(parsed), true
	default:
		return 0, false
	}
}
