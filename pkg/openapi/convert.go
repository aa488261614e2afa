package openapi

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-modelbind/pkg/constraints"
	"github.com/goliatone/go-modelbind/pkg/metadata"
)

const (
	extFieldType   = "x-field-type"
	extPlaceholder = "x-placeholder"
	extHidden      = "x-hidden"
	extFrozen      = "x-frozen"
)

// modelFromRef converts an object schema into a model descriptor. Non-object
// schemas yield nil; the operation then has no request model. Property order
// is alphabetical: the underlying document model does not retain declaration
// order, so a stable order is chosen instead.
func modelFromRef(fallbackName string, ref *openapi3.SchemaRef) *metadata.Model {
	if ref == nil || ref.Value == nil {
		return nil
	}
	schema := ref.Value
	if firstType(schema.Type) != "object" {
		return nil
	}
	return buildModel(fallbackName, schema)
}

func buildModel(fallbackName string, schema *openapi3.Schema) *metadata.Model {
	name := schema.Title
	if name == "" {
		name = fallbackName
	}

	model := &metadata.Model{
		Name:        name,
		Title:       metadata.TitleFromName(name),
		Description: schema.Description,
		Frozen:      extensionBool(schema.Extensions, extFrozen),
	}
	if schema.Title != "" {
		model.Title = schema.Title
	}
	model.Metadata = metadataFromExtensions(schema.Extensions, extFrozen)

	required := make(map[string]bool, len(schema.Required))
	for _, entry := range schema.Required {
		required[entry] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for propName := range schema.Properties {
		names = append(names, propName)
	}
	sort.Strings(names)

	for _, propName := range names {
		prop := schema.Properties[propName]
		if prop == nil || prop.Value == nil {
			continue
		}
		model.Fields = append(model.Fields, buildField(propName, prop.Value, required[propName]))
	}
	return model
}

func buildField(name string, schema *openapi3.Schema, required bool) metadata.Field {
	var examples []any
	if schema.Example != nil {
		examples = []any{schema.Example}
	}

	field := metadata.Field{
		Name:        name,
		Type:        typeFromSchema(name, schema),
		FieldType:   extensionString(schema.Extensions, extFieldType),
		Title:       schema.Title,
		Description: schema.Description,
		Placeholder: metadata.ResolvePlaceholder(extensionString(schema.Extensions, extPlaceholder), "", examples),
		Examples:    examples,
		Hidden:      extensionBool(schema.Extensions, extHidden),
		ReadOnly:    schema.ReadOnly,
		Deprecated:  schema.Deprecated,
		Required:    required,
		Constraints: constraintsFromSchema(schema),
		Access:      mapAccessor(name),
	}
	if field.Title == "" {
		field.Title = metadata.TitleFromName(name)
	}
	if schema.Default != nil {
		field.Default = metadata.DefaultOf(schema.Default)
	}
	field.Metadata = metadataFromExtensions(schema.Extensions, extFieldType, extPlaceholder, extHidden)
	return field
}

// metadataFromExtensions keeps the extensions the converter did not consume,
// so document annotations survive into the descriptor.
func metadataFromExtensions(ext map[string]any, consumed ...string) map[string]any {
	var out map[string]any
	for key, value := range ext {
		skip := false
		for _, name := range consumed {
			if key == name {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[key] = value
	}
	return out
}

func typeFromSchema(name string, schema *openapi3.Schema) metadata.Type {
	t := scalarType(name, schema)
	t.Nullable = schema.Nullable || includesNull(schema.Type)
	return t
}

func scalarType(name string, schema *openapi3.Schema) metadata.Type {
	switch firstType(schema.Type) {
	case "string":
		switch schema.Format {
		case "date":
			return metadata.Type{Kind: metadata.KindDate}
		case "time":
			return metadata.Type{Kind: metadata.KindTime}
		case "date-time":
			return metadata.Type{Kind: metadata.KindDateTime}
		default:
			return metadata.Type{Kind: metadata.KindString}
		}
	case "integer":
		return metadata.Type{Kind: metadata.KindInteger}
	case "number":
		return metadata.Type{Kind: metadata.KindFloat}
	case "boolean":
		return metadata.Type{Kind: metadata.KindBoolean}
	case "array":
		elem := metadata.Type{Kind: metadata.KindAny}
		if schema.Items != nil && schema.Items.Value != nil {
			elem = typeFromSchema(name, schema.Items.Value)
		}
		return metadata.Type{Kind: metadata.KindList, Elems: []metadata.Type{elem}}
	case "object":
		nested := buildModel(name, schema)
		return metadata.Type{
			Kind:  metadata.KindModel,
			Name:  nested.Name,
			Model: nested,
			New: func() (any, error) {
				return NewInstance(nested), nil
			},
		}
	default:
		return metadata.Type{Kind: metadata.KindAny}
	}
}

// constraintsFromSchema maps the document's own constraint keywords.
// Exclusivity flags only apply when the matching bound is present.
func constraintsFromSchema(schema *openapi3.Schema) constraints.Constraints {
	c := constraints.Constraints{}

	if schema.Min != nil {
		value := *schema.Min
		c.MinValue = &value
		c.ExclusiveMin = schema.ExclusiveMin
	}
	if schema.Max != nil {
		value := *schema.Max
		c.MaxValue = &value
		c.ExclusiveMax = schema.ExclusiveMax
	}
	if schema.MultipleOf != nil {
		value := *schema.MultipleOf
		c.MultipleOf = &value
	}

	if schema.MinLength != 0 {
		value := int(schema.MinLength)
		c.MinLength = &value
	}
	if schema.MaxLength != nil {
		value := int(*schema.MaxLength)
		c.MaxLength = &value
	}
	if schema.Pattern != "" {
		c.Pattern = schema.Pattern
	}

	if schema.MinItems != 0 {
		value := int(schema.MinItems)
		c.MinItems = &value
	}
	if schema.MaxItems != nil {
		value := int(*schema.MaxItems)
		c.MaxItems = &value
	}

	if len(schema.Enum) > 0 {
		c.AllowedValues = append([]any(nil), schema.Enum...)
	}
	return c
}

// firstType picks the effective type tag, skipping a null branch so that
// ["string", "null"] reads as a nullable string.
func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}

func includesNull(types *openapi3.Types) bool {
	if types == nil {
		return false
	}
	for _, value := range types.Slice() {
		if value == "null" {
			return true
		}
	}
	return false
}

func mapAccessor(name string) metadata.Accessor {
	return metadata.Accessor{
		Get: func(instance any) any {
			m, ok := instance.(map[string]any)
			if !ok {
				return nil
			}
			return m[name]
		},
		Set: func(instance any, value any) error {
			m, ok := instance.(map[string]any)
			if !ok {
				return fmt.Errorf("openapi: instance is %T, want map[string]any", instance)
			}
			m[name] = value
			return nil
		},
	}
}

func extensionString(ext map[string]any, key string) string {
	v, _ := ext[key].(string)
	return v
}

func extensionBool(ext map[string]any, key string) bool {
	switch v := ext[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}
