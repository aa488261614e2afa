package render

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/goliatone/go-modelbind/pkg/binding"
	"github.com/goliatone/go-modelbind/pkg/metadata"
)

// SelectHandler presents fields with a fixed membership: enum types, literal
// types, and anything carrying allowed values.
type SelectHandler struct{}

func (SelectHandler) Name() string { return "select" }

func (SelectHandler) CanHandle(field metadata.Field) bool {
	return len(selectOptions(field)) > 0
}

func (SelectHandler) Prepare(fb *binding.FieldBinding) (Plan, error) {
	options := selectOptions(fb.Field)
	labels := make([]string, len(options))
	selected := -1
	current := fb.Value()
	for i, option := range options {
		labels[i] = fmt.Sprintf("%v", option)
		if current != nil && reflect.DeepEqual(option, current) {
			selected = i
		}
	}
	return Plan{
		Widget: WidgetSelect,
		Args: map[string]any{
			"options":  options,
			"labels":   labels,
			"selected": selected,
		},
	}, nil
}

// ProcessValue accepts an option index, an option label, or the option value
// itself.
func (SelectHandler) ProcessValue(field metadata.Field, raw any) (any, error) {
	options := selectOptions(field)
	switch v := raw.(type) {
	case int:
		if v < 0 || v >= len(options) {
			return nil, fmt.Errorf("render: option index %d out of range", v)
		}
		return options[v], nil
	default:
		for _, option := range options {
			if reflect.DeepEqual(option, raw) || fmt.Sprintf("%v", option) == fmt.Sprintf("%v", raw) {
				return option, nil
			}
		}
		return nil, fmt.Errorf("render: %v is not a valid option for field %q", raw, field.Name)
	}
}

func selectOptions(field metadata.Field) []any {
	if len(field.Constraints.AllowedValues) > 0 {
		return field.Constraints.AllowedValues
	}
	if len(field.Type.Members) > 0 {
		return field.Type.Members
	}
	if len(field.Type.Literals) > 0 {
		return field.Type.Literals
	}
	return nil
}

// BooleanHandler presents boolean fields as a checkbox.
type BooleanHandler struct{}

func (BooleanHandler) Name() string { return "boolean" }

func (BooleanHandler) CanHandle(field metadata.Field) bool {
	return field.Type.Is(metadata.KindBoolean)
}

func (BooleanHandler) Prepare(fb *binding.FieldBinding) (Plan, error) {
	checked, _ := fb.Value().(bool)
	return Plan{
		Widget: WidgetCheckbox,
		Args:   map[string]any{"checked": checked},
	}, nil
}

func (BooleanHandler) ProcessValue(field metadata.Field, raw any) (any, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("render: %q is not a boolean for field %q", v, field.Name)
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("render: cannot read %T as boolean for field %q", raw, field.Name)
	}
}

// NumberHandler presents integer, float, and decimal fields.
type NumberHandler struct{}

func (NumberHandler) Name() string { return "number" }

func (NumberHandler) CanHandle(field metadata.Field) bool {
	return field.Type.Is(metadata.KindInteger, metadata.KindFloat, metadata.KindDecimal)
}

func (NumberHandler) Prepare(fb *binding.FieldBinding) (Plan, error) {
	field := fb.Field
	integer := field.Type.Is(metadata.KindInteger)

	args := map[string]any{
		"value":   fb.Value(),
		"integer": integer,
	}
	c := field.Constraints
	if c.MinValue != nil {
		args["min"] = *c.MinValue
	}
	if c.MaxValue != nil {
		args["max"] = *c.MaxValue
	}
	if c.MultipleOf != nil {
		args["step"] = *c.MultipleOf
	} else if integer {
		args["step"] = float64(1)
	}
	return Plan{Widget: WidgetNumber, Args: args}, nil
}

func (NumberHandler) ProcessValue(field metadata.Field, raw any) (any, error) {
	integer := field.Type.Is(metadata.KindInteger)

	switch v := raw.(type) {
	case int:
		if integer {
			return v, nil
		}
		return float64(v), nil
	case int64:
		if integer {
			return int(v), nil
		}
		return float64(v), nil
	case float64:
		if integer {
			if v != float64(int(v)) {
				return nil, fmt.Errorf("render: %v is not an integer for field %q", v, field.Name)
			}
			return int(v), nil
		}
		return v, nil
	case string:
		if integer {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("render: %q is not an integer for field %q", v, field.Name)
			}
			return parsed, nil
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("render: %q is not a number for field %q", v, field.Name)
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("render: cannot read %T as number for field %q", raw, field.Name)
	}
}

// MultilineHandler presents string fields tagged as long-form text.
type MultilineHandler struct{}

func (MultilineHandler) Name() string { return "multiline" }

func (MultilineHandler) CanHandle(field metadata.Field) bool {
	if !field.Type.Is(metadata.KindString) {
		return false
	}
	return field.FieldType == "multiline" || field.FieldType == "textarea"
}

func (MultilineHandler) Prepare(fb *binding.FieldBinding) (Plan, error) {
	return Plan{
		Widget: WidgetTextArea,
		Args: map[string]any{
			"value":       textValue(fb.Field, fb.Value()),
			"placeholder": fb.Field.Placeholder,
		},
	}, nil
}

func (MultilineHandler) ProcessValue(_ metadata.Field, raw any) (any, error) {
	if raw == nil {
		return "", nil
	}
	return fmt.Sprintf("%v", raw), nil
}

// TextHandler is the catch-all for strings, temporal kinds, and anything the
// other handlers decline. Temporal values round-trip through their canonical
// text layout.
type TextHandler struct{}

func (TextHandler) Name() string { return "text" }

func (TextHandler) CanHandle(field metadata.Field) bool {
	return field.Type.Is(
		metadata.KindString,
		metadata.KindDate,
		metadata.KindTime,
		metadata.KindDateTime,
		metadata.KindAny,
	)
}

func (TextHandler) Prepare(fb *binding.FieldBinding) (Plan, error) {
	field := fb.Field
	args := map[string]any{
		"value":       textValue(field, fb.Value()),
		"placeholder": field.Placeholder,
	}
	if field.Constraints.MaxLength != nil {
		args["maxLength"] = *field.Constraints.MaxLength
	}
	if layout := temporalLayout(field.Type.Kind); layout != "" {
		args["format"] = layout
	}
	return Plan{Widget: WidgetTextInput, Args: args}, nil
}

func (TextHandler) ProcessValue(field metadata.Field, raw any) (any, error) {
	text := ""
	if raw != nil {
		text = fmt.Sprintf("%v", raw)
	}

	layout := temporalLayout(field.Type.Kind)
	if layout == "" {
		return text, nil
	}
	parsed, err := time.Parse(layout, text)
	if err != nil {
		return nil, fmt.Errorf("render: %q does not match layout %s for field %q", text, layout, field.Name)
	}
	return parsed, nil
}

func temporalLayout(kind metadata.Kind) string {
	switch kind {
	case metadata.KindDate:
		return "2006-01-02"
	case metadata.KindTime:
		return "15:04:05"
	case metadata.KindDateTime:
		return time.RFC3339
	default:
		return ""
	}
}

func textValue(field metadata.Field, value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		if layout := temporalLayout(field.Type.Kind); layout != "" {
			return v.Format(layout)
		}
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}
