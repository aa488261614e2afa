package binding

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-modelbind/pkg/metadata"
)

// Validate checks the field's current value against its descriptor. The
// required check short-circuits; every other check is independent and
// cumulative, so one value can yield several details in a single pass.
func (b *FieldBinding) Validate() []metadata.ErrorDetail {
	var details []metadata.ErrorDetail

	field := b.Field
	value := b.Value()

	if isNil(value) {
		if !field.HasDefault() && field.Required {
			details = append(details, metadata.ErrorDetail{
				Kind:       metadata.ErrorKindMissing,
				Message:    "This field is required",
				Location:   []any{field.Name},
				InputValue: value,
			})
		}
		return details
	}

	c := field.Constraints

	if number, ok := numericValue(value); ok {
		if c.MinValue != nil {
			limit := *c.MinValue
			switch {
			case c.ExclusiveMin && number <= limit:
				details = append(details, metadata.ErrorDetail{
					Kind:       metadata.ErrorKindNotGT,
					Message:    fmt.Sprintf("Must be greater than %v", limit),
					Location:   []any{field.Name},
					InputValue: value,
					Context:    map[string]any{"limit_value": limit},
				})
			case !c.ExclusiveMin && number < limit:
				details = append(details, metadata.ErrorDetail{
					Kind:       metadata.ErrorKindNotGE,
					Message:    fmt.Sprintf("Must be greater than or equal to %v", limit),
					Location:   []any{field.Name},
					InputValue: value,
					Context:    map[string]any{"limit_value": limit},
				})
			}
		}

		if c.MaxValue != nil {
			limit := *c.MaxValue
			switch {
			case c.ExclusiveMax && number >= limit:
				details = append(details, metadata.ErrorDetail{
					Kind:       metadata.ErrorKindNotLT,
					Message:    fmt.Sprintf("Must be less than %v", limit),
					Location:   []any{field.Name},
					InputValue: value,
					Context:    map[string]any{"limit_value": limit},
				})
			case !c.ExclusiveMax && number > limit:
				details = append(details, metadata.ErrorDetail{
					Kind:       metadata.ErrorKindNotLE,
					Message:    fmt.Sprintf("Must be less than or equal to %v", limit),
					Location:   []any{field.Name},
					InputValue: value,
					Context:    map[string]any{"limit_value": limit},
				})
			}
		}

		if c.MultipleOf != nil && math.Mod(number, *c.MultipleOf) != 0 {
			details = append(details, metadata.ErrorDetail{
				Kind:       metadata.ErrorKindNotMultiple,
				Message:    fmt.Sprintf("Must be a multiple of %v", *c.MultipleOf),
				Location:   []any{field.Name},
				InputValue: value,
				Context:    map[string]any{"multiple_of": *c.MultipleOf},
			})
		}
	}

	if text, ok := value.(string); ok {
		length := utf8.RuneCountInString(text)
		if c.MinLength != nil && length < *c.MinLength {
			details = append(details, metadata.ErrorDetail{
				Kind:       metadata.ErrorKindMinLength,
				Message:    fmt.Sprintf("Must be at least %d characters", *c.MinLength),
				Location:   []any{field.Name},
				InputValue: value,
				Context:    map[string]any{"min_length": *c.MinLength},
			})
		}
		if c.MaxLength != nil && length > *c.MaxLength {
			details = append(details, metadata.ErrorDetail{
				Kind:       metadata.ErrorKindMaxLength,
				Message:    fmt.Sprintf("Must be at most %d characters", *c.MaxLength),
				Location:   []any{field.Name},
				InputValue: value,
				Context:    map[string]any{"max_length": *c.MaxLength},
			})
		}
		if c.Pattern != "" && !matchesFromStart(c.Pattern, text) {
			details = append(details, metadata.ErrorDetail{
				Kind:       metadata.ErrorKindPattern,
				Message:    fmt.Sprintf("Must match pattern: %s", c.Pattern),
				Location:   []any{field.Name},
				InputValue: value,
				Context:    map[string]any{"pattern": c.Pattern},
			})
		}
	}

	if count, ok := itemCount(value); ok {
		if c.MinItems != nil && count < *c.MinItems {
			details = append(details, metadata.ErrorDetail{
				Kind:       metadata.ErrorKindMinItems,
				Message:    fmt.Sprintf("Must have at least %d items", *c.MinItems),
				Location:   []any{field.Name},
				InputValue: value,
				Context:    map[string]any{"min_items": *c.MinItems},
			})
		}
		if c.MaxItems != nil && count > *c.MaxItems {
			details = append(details, metadata.ErrorDetail{
				Kind:       metadata.ErrorKindMaxItems,
				Message:    fmt.Sprintf("Must have at most %d items", *c.MaxItems),
				Location:   []any{field.Name},
				InputValue: value,
				Context:    map[string]any{"max_items": *c.MaxItems},
			})
		}
	}

	if c.AllowedValues != nil && !containsValue(c.AllowedValues, value) {
		listed := make([]string, 0, len(c.AllowedValues))
		for _, v := range c.AllowedValues {
			listed = append(listed, fmt.Sprintf("%v", v))
		}
		details = append(details, metadata.ErrorDetail{
			Kind:       metadata.ErrorKindNotInEnum,
			Message:    "Value must be one of: " + strings.Join(listed, ", "),
			Location:   []any{field.Name},
			InputValue: value,
			Context:    map[string]any{"allowed_values": c.AllowedValues},
		})
	}

	return details
}

// isNil treats untyped nil and nil-valued pointers, interfaces, maps, slices,
// and funcs as absent.
func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func itemCount(value any) (int, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len(), true
	default:
		return 0, false
	}
}

// matchesFromStart anchors the pattern at the beginning of the text, so only
// a prefix match counts. An uncompilable pattern never matches.
func matchesFromStart(pattern, text string) bool {
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

func containsValue(allowed []any, value any) bool {
	number, numeric := numericValue(value)
	for _, candidate := range allowed {
		if reflect.DeepEqual(candidate, value) {
			return true
		}
		if numeric {
			if cn, ok := numericValue(candidate); ok && cn == number {
				return true
			}
		}
	}
	return false
}
