// Package structmeta adapts plain Go structs into model descriptors. Field
// shape and ordering come from reflection; titles, constraints, and extras
// come from `json` and `jsonschema` struct tags, reflected through a JSON
// Schema so the structural constraint dialect applies unchanged. Accessors
// are closures over struct field indices, so bound instances are read and
// written without name lookups.
package structmeta

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
	"time"

	invopop "github.com/invopop/jsonschema"

	"github.com/goliatone/go-modelbind/pkg/constraints"
	"github.com/goliatone/go-modelbind/pkg/metadata"
)

const (
	extFieldType   = "x-field-type"
	extPlaceholder = "x-placeholder"
	extHidden      = "x-hidden"
)

// Validatable is the native validation hook. When a struct type (or its
// pointer) implements it and no custom validator was configured, the produced
// descriptor runs the per-field constraint pass and then Validate, reporting
// a Validate failure as a global error.
type Validatable interface {
	Validate() error
}

// Option customises the adapter configuration.
type Option func(*Adapter)

// WithReflector replaces the schema reflector, letting callers tune tag
// handling, naming, or required-field policy.
func WithReflector(r *invopop.Reflector) Option {
	return func(a *Adapter) {
		if r != nil {
			a.reflector = r
		}
	}
}

// WithValidator installs a custom validator on every produced descriptor,
// replacing both the default per-field pass and the Validatable hook.
func WithValidator(validator metadata.Validator) Option {
	return func(a *Adapter) {
		a.validator = validator
	}
}

// Adapter builds descriptors for struct and pointer-to-struct instances.
// Descriptors are cached per reflect.Type; every instance of the same type
// shares one descriptor.
type Adapter struct {
	mu        sync.RWMutex
	cache     map[reflect.Type]*metadata.Model
	reflector *invopop.Reflector
	validator metadata.Validator
}

// New constructs the adapter. It claims any struct, so it works as the
// registry fallback.
func New(options ...Option) *Adapter {
	a := &Adapter{
		cache: make(map[reflect.Type]*metadata.Model),
		reflector: &invopop.Reflector{
			DoNotReference: true,
			ExpandedStruct: true,
		},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	return a
}

// Name identifies the adapter in a registry.
func (a *Adapter) Name() string { return "structmeta" }

// CanAdapt claims struct and pointer-to-struct instances.
func (a *Adapter) CanAdapt(instance any) bool {
	_, ok := structType(instance)
	return ok
}

// Adapt returns the descriptor for the instance's struct type, building and
// caching it on first use.
func (a *Adapter) Adapt(instance any) (*metadata.Model, error) {
	t, ok := structType(instance)
	if !ok {
		return nil, fmt.Errorf("structmeta: instance %T is not a struct", instance)
	}
	return a.descriptor(t), nil
}

// Descriptor returns the cached descriptor for a struct type directly,
// without going through a live instance.
func (a *Adapter) Descriptor(t reflect.Type) (*metadata.Model, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("structmeta: %v is not a struct type", t)
	}
	return a.descriptor(t), nil
}

func (a *Adapter) descriptor(t reflect.Type) *metadata.Model {
	a.mu.RLock()
	model, ok := a.cache[t]
	a.mu.RUnlock()
	if ok {
		return model
	}

	model = a.build(t)

	a.mu.Lock()
	if cached, ok := a.cache[t]; ok {
		model = cached
	} else {
		a.cache[t] = model
	}
	a.mu.Unlock()
	return model
}

func (a *Adapter) build(t reflect.Type) *metadata.Model {
	schema := a.reflectSchema(t)
	model := a.buildModel(t, schema, map[reflect.Type]bool{t: true})
	if model.Validator == nil {
		model.Validator = a.validator
	}
	if model.Validator == nil && implementsValidatable(t) {
		model.Validator = validatableValidator
	}
	return model
}

// reflectSchema runs the tag reflector and flattens its output into the plain
// map shape the constraint dialect expects. A reflector failure degrades to an
// empty map; the descriptor then carries types and accessors but no tag
// annotations.
func (a *Adapter) reflectSchema(t reflect.Type) map[string]any {
	defer func() { _ = recover() }()

	reflected := a.reflector.ReflectFromType(t)
	if reflected == nil {
		return nil
	}
	data, err := json.Marshal(reflected)
	if err != nil {
		return nil
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil
	}
	return schema
}

func (a *Adapter) buildModel(t reflect.Type, schema map[string]any, seen map[reflect.Type]bool) *metadata.Model {
	name := t.Name()
	if name == "" {
		name = t.String()
	}

	model := &metadata.Model{
		Name:        name,
		Title:       stringKey(schema, "title"),
		Description: stringKey(schema, "description"),
	}
	if model.Title == "" {
		model.Title = metadata.TitleFromName(name)
	}

	props, _ := schema["properties"].(map[string]any)
	required := requiredSet(schema)

	for _, sf := range reflect.VisibleFields(t) {
		fieldName, ok := propertyName(sf)
		if !ok {
			continue
		}
		prop, _ := props[fieldName].(map[string]any)
		model.Fields = append(model.Fields, a.buildField(fieldName, sf, prop, required[fieldName], seen))
	}
	return model
}

func (a *Adapter) buildField(name string, sf reflect.StructField, prop map[string]any, required bool, seen map[reflect.Type]bool) metadata.Field {
	examples, _ := prop["examples"].([]any)

	field := metadata.Field{
		Name:        name,
		Type:        a.goType(sf.Type, prop, seen),
		FieldType:   stringKey(prop, extFieldType),
		Title:       stringKey(prop, "title"),
		Description: stringKey(prop, "description"),
		Placeholder: metadata.ResolvePlaceholder(stringKey(prop, extPlaceholder), "", examples),
		Examples:    examples,
		Hidden:      boolKey(prop, extHidden),
		ReadOnly:    boolKey(prop, "readOnly"),
		Deprecated:  boolKey(prop, "deprecated"),
		Required:    required,
		Constraints: constraints.FromJSONSchema(prop),
		Access:      fieldAccessor(sf.Index),
	}
	if field.Title == "" {
		field.Title = metadata.TitleFromName(name)
	}
	if field.Description == "" {
		field.Description = sf.Tag.Get("doc")
	}
	if raw, ok := prop["default"]; ok {
		field.Default = metadata.DefaultOf(raw)
	}
	return field
}

// goType maps a Go type to the descriptor type IR. Pointers mark the inner
// type nullable; nested structs become nested model descriptors with a
// constructor, except when the walk is already inside that type, which keeps
// self-referential structs from recursing forever.
func (a *Adapter) goType(t reflect.Type, prop map[string]any, seen map[reflect.Type]bool) metadata.Type {
	if t == nil {
		return metadata.Type{Kind: metadata.KindAny}
	}

	switch t.Kind() {
	case reflect.Pointer:
		inner := a.goType(t.Elem(), prop, seen)
		inner.Nullable = true
		return inner
	case reflect.String:
		return metadata.Type{Kind: stringKind(stringKey(prop, "format"))}
	case reflect.Bool:
		return metadata.Type{Kind: metadata.KindBoolean}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return metadata.Type{Kind: metadata.KindInteger}
	case reflect.Float32, reflect.Float64:
		return metadata.Type{Kind: metadata.KindFloat}
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return metadata.Type{Kind: metadata.KindString}
		}
		items, _ := prop["items"].(map[string]any)
		return metadata.Type{
			Kind:  metadata.KindList,
			Elems: []metadata.Type{a.goType(t.Elem(), items, seen)},
		}
	case reflect.Map:
		return metadata.Type{
			Kind:  metadata.KindMap,
			Elems: []metadata.Type{a.goType(t.Elem(), nil, seen)},
		}
	case reflect.Struct:
		if t == reflect.TypeOf(time.Time{}) {
			return metadata.Type{Kind: metadata.KindDateTime}
		}
		if seen[t] {
			return metadata.Type{Kind: metadata.KindModel, Name: t.Name()}
		}
		seen[t] = true
		nested := a.buildModel(t, prop, seen)
		delete(seen, t)
		elemType := t
		return metadata.Type{
			Kind:  metadata.KindModel,
			Name:  t.Name(),
			Model: nested,
			New: func() (any, error) {
				return reflect.New(elemType).Interface(), nil
			},
		}
	case reflect.Interface:
		return metadata.Type{Kind: metadata.KindAny}
	default:
		return metadata.Type{Kind: metadata.KindAny}
	}
}

func stringKind(format string) metadata.Kind {
	switch format {
	case "date":
		return metadata.KindDate
	case "time":
		return metadata.KindTime
	case "date-time":
		return metadata.KindDateTime
	default:
		return metadata.KindString
	}
}

func structType(instance any) (reflect.Type, bool) {
	t := reflect.TypeOf(instance)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, false
	}
	return t, true
}

// propertyName resolves the schema property name of a struct field from its
// json tag, mirroring encoding/json: `-` and unexported fields are skipped,
// untagged embedded structs are flattened through their promoted leaves.
func propertyName(sf reflect.StructField) (string, bool) {
	if sf.PkgPath != "" {
		return "", false
	}
	tag := sf.Tag.Get("json")
	name := tag
	if idx := indexComma(tag); idx >= 0 {
		name = tag[:idx]
	}
	if name == "-" {
		return "", false
	}
	if sf.Anonymous && name == "" && structKind(sf.Type) {
		return "", false
	}
	if name == "" {
		name = sf.Name
	}
	return name, true
}

func structKind(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

func indexComma(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			return i
		}
	}
	return -1
}

func requiredSet(schema map[string]any) map[string]bool {
	raw, _ := schema["required"].([]any)
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]bool, len(raw))
	for _, entry := range raw {
		if name, ok := entry.(string); ok {
			out[name] = true
		}
	}
	return out
}

func stringKey(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

func boolKey(m map[string]any, key string) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

func implementsValidatable(t reflect.Type) bool {
	marker := reflect.TypeOf((*Validatable)(nil)).Elem()
	return t.Implements(marker) || reflect.PointerTo(t).Implements(marker)
}

// validatableValidator layers the instance's own Validate method on top of
// the per-field constraint pass. Tag constraints are still checked; a
// Validate failure is reported as a single global error alongside them.
func validatableValidator(b metadata.Bound) metadata.Result {
	result := metadata.Result{Valid: true, ValidatedInstance: b.Instance()}
	if fv, ok := b.(interface{ ValidateFields() metadata.Result }); ok {
		result = fv.ValidateFields()
	}

	v, ok := b.Instance().(Validatable)
	if !ok {
		return result
	}
	if err := v.Validate(); err != nil {
		result.Valid = false
		result.ValidatedInstance = nil
		result.GlobalErrors = append(result.GlobalErrors, metadata.ErrorDetail{
			Kind:       metadata.ErrorKindValue,
			Message:    err.Error(),
			InputValue: b.Instance(),
		})
	}
	return result
}
