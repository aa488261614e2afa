package jsonschema

import (
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-modelbind/pkg/constraints"
	"github.com/goliatone/go-modelbind/pkg/metadata"
)

// Extension keys understood by the converter on top of standard JSON Schema
// vocabulary.
const (
	extFieldType   = "x-field-type"
	extPlaceholder = "x-placeholder"
	extHidden      = "x-hidden"
	extFrozen      = "x-frozen"
)

// Keys consumed while building descriptors; everything else a schema carries
// flows into the metadata map.
var consumedModelKeys = map[string]struct{}{
	"$schema": {}, "$id": {}, "title": {}, "description": {},
	"type": {}, "properties": {}, "required": {}, extFrozen: {},
}

var consumedFieldKeys = map[string]struct{}{
	"type": {}, "format": {}, "title": {}, "description": {},
	"default": {}, "examples": {}, "enum": {}, "const": {},
	"deprecated": {}, "readOnly": {}, "properties": {}, "required": {},
	"items": {},
	"minimum": {}, "maximum": {}, "exclusiveMinimum": {}, "exclusiveMaximum": {},
	"multipleOf": {}, "minLength": {}, "maxLength": {}, "pattern": {},
	"minItems": {}, "maxItems": {},
	extFieldType: {}, extPlaceholder: {}, extHidden: {},
}

// Parse decodes a schema document (JSON or YAML) and converts it into a model
// descriptor. Property order in the document is preserved as field order.
func Parse(doc Document) (*metadata.Model, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc.Raw(), &root); err != nil {
		return nil, fmt.Errorf("jsonschema: decode document: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("jsonschema: document %q is empty", doc.Location())
	}

	node := root.Content[0]
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("jsonschema: document %q is not an object schema", doc.Location())
	}

	model, err := buildModel(node)
	if err != nil {
		return nil, err
	}
	if model.Name == "" {
		model.Name = nameFromLocation(doc.Location())
	}
	if model.Title == "" {
		model.Title = model.Name
	}
	return model, nil
}

func buildModel(node *yaml.Node) (*metadata.Model, error) {
	raw, err := decodeMap(node)
	if err != nil {
		return nil, err
	}

	model := &metadata.Model{
		Name:        modelName(raw),
		Description: stringKey(raw, "description"),
		Frozen:      boolKey(raw, extFrozen),
	}
	if title := stringKey(raw, "title"); title != "" {
		model.Title = title
	} else {
		model.Title = model.Name
	}

	for key, value := range raw {
		if _, consumed := consumedModelKeys[key]; consumed {
			continue
		}
		if model.Metadata == nil {
			model.Metadata = make(map[string]any)
		}
		model.Metadata[key] = value
	}

	required := requiredSet(raw)

	propsNode := mappingValue(node, "properties")
	if propsNode == nil {
		return model, nil
	}
	if propsNode.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("jsonschema: properties of %q is not a mapping", model.Name)
	}

	for i := 0; i+1 < len(propsNode.Content); i += 2 {
		name := propsNode.Content[i].Value
		field, err := buildField(name, propsNode.Content[i+1], required[name])
		if err != nil {
			return nil, err
		}
		model.Fields = append(model.Fields, field)
	}

	return model, nil
}

func buildField(name string, node *yaml.Node, required bool) (metadata.Field, error) {
	raw, err := decodeMap(node)
	if err != nil {
		return metadata.Field{}, fmt.Errorf("jsonschema: property %q: %w", name, err)
	}

	field := metadata.Field{
		Name:        name,
		FieldType:   stringKey(raw, extFieldType),
		Description: stringKey(raw, "description"),
		Hidden:      boolKey(raw, extHidden),
		ReadOnly:    boolKey(raw, "readOnly"),
		Deprecated:  boolKey(raw, "deprecated"),
		Required:    required,
		Constraints: constraints.FromJSONSchema(raw),
		Access:      mapAccessor(name),
	}

	if title := stringKey(raw, "title"); title != "" {
		field.Title = title
	} else {
		field.Title = metadata.TitleFromName(name)
	}

	if examples, ok := raw["examples"].([]any); ok {
		field.Examples = examples
	}
	field.Placeholder = metadata.ResolvePlaceholder(stringKey(raw, extPlaceholder), "", field.Examples)

	if value, ok := raw["default"]; ok {
		field.Default = metadata.DefaultOf(value)
	}

	fieldType, err := buildType(name, node, raw)
	if err != nil {
		return metadata.Field{}, err
	}
	field.Type = fieldType

	for key, value := range raw {
		if _, consumed := consumedFieldKeys[key]; consumed {
			continue
		}
		if field.Metadata == nil {
			field.Metadata = make(map[string]any)
		}
		field.Metadata[key] = value
	}

	return field, nil
}

func buildType(name string, node *yaml.Node, raw map[string]any) (metadata.Type, error) {
	if value, ok := raw["const"]; ok {
		return metadata.Type{Kind: metadata.KindLiteral, Literals: []any{value}}, nil
	}

	switch typed := raw["type"].(type) {
	case string:
		return scalarType(name, typed, node, raw)
	case []any:
		return unionType(name, typed, node, raw)
	default:
		return metadata.Type{Kind: metadata.KindAny}, nil
	}
}

func scalarType(name, tag string, node *yaml.Node, raw map[string]any) (metadata.Type, error) {
	switch tag {
	case "string":
		switch stringKey(raw, "format") {
		case "date":
			return metadata.Type{Kind: metadata.KindDate}, nil
		case "time":
			return metadata.Type{Kind: metadata.KindTime}, nil
		case "date-time":
			return metadata.Type{Kind: metadata.KindDateTime}, nil
		}
		return metadata.Type{Kind: metadata.KindString}, nil
	case "integer":
		return metadata.Type{Kind: metadata.KindInteger}, nil
	case "number":
		return metadata.Type{Kind: metadata.KindFloat}, nil
	case "boolean":
		return metadata.Type{Kind: metadata.KindBoolean}, nil
	case "null":
		return metadata.Type{Kind: metadata.KindUnion, Nullable: true}, nil
	case "array":
		t := metadata.Type{Kind: metadata.KindList}
		if itemsNode := mappingValue(node, "items"); itemsNode != nil {
			itemsRaw, err := decodeMap(itemsNode)
			if err != nil {
				return metadata.Type{}, fmt.Errorf("jsonschema: items of %q: %w", name, err)
			}
			elem, err := buildType(name, itemsNode, itemsRaw)
			if err != nil {
				return metadata.Type{}, err
			}
			t.Elems = []metadata.Type{elem}
		}
		return t, nil
	case "object":
		if mappingValue(node, "properties") == nil {
			return metadata.Type{Kind: metadata.KindMap}, nil
		}
		nested, err := buildModel(node)
		if err != nil {
			return metadata.Type{}, err
		}
		if nested.Name == "" {
			nested.Name = name
			nested.Title = metadata.TitleFromName(name)
		}
		return metadata.Type{
			Kind:  metadata.KindModel,
			Name:  nested.Name,
			Model: nested,
			New:   func() (any, error) { return map[string]any{}, nil },
		}, nil
	default:
		return metadata.Type{Kind: metadata.KindAny}, nil
	}
}

func unionType(name string, tags []any, node *yaml.Node, raw map[string]any) (metadata.Type, error) {
	union := metadata.Type{Kind: metadata.KindUnion}
	for _, entry := range tags {
		tag, ok := entry.(string)
		if !ok {
			continue
		}
		if tag == "null" {
			union.Nullable = true
			continue
		}
		branch, err := scalarType(name, tag, node, raw)
		if err != nil {
			return metadata.Type{}, err
		}
		union.Elems = append(union.Elems, branch)
	}
	return union, nil
}

func modelName(raw map[string]any) string {
	if title := stringKey(raw, "title"); title != "" {
		return title
	}
	if id := stringKey(raw, "$id"); id != "" {
		return nameFromLocation(id)
	}
	return ""
}

func nameFromLocation(location string) string {
	base := path.Base(strings.TrimSpace(location))
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." || base == "/" {
		return "Model"
	}
	return base
}

func requiredSet(raw map[string]any) map[string]bool {
	out := make(map[string]bool)
	if listed, ok := raw["required"].([]any); ok {
		for _, entry := range listed {
			if name, ok := entry.(string); ok {
				out[name] = true
			}
		}
	}
	return out
}

func decodeMap(node *yaml.Node) (map[string]any, error) {
	var out map[string]any
	if err := node.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// mappingValue returns the value node for a key of a mapping node.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func stringKey(raw map[string]any, key string) string {
	if value, ok := raw[key].(string); ok {
		return value
	}
	return ""
}

func boolKey(raw map[string]any, key string) bool {
	value, ok := raw[key].(bool)
	return ok && value
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
				return fmt.Errorf("jsonschema: instance is %T, want map[string]any", instance)
			}
			m[name] = value
			return nil
		},
	}
}
