package metadata

// Model is the immutable per-type descriptor: ordered fields, presentation
// metadata, and an optional custom validator. Adapters build one per model
// type; it can be cached and shared across any number of bindings.
type Model struct {
	// Name identifies the model type.
	Name string
	// Title is the display title, defaulting to Name at the adapter's
	// discretion.
	Title string
	// Description holds longer help text.
	Description string
	// Frozen marks the model immutable.
	Frozen bool
	// Fields lists the field descriptors in declaration order. Names are
	// unique.
	Fields []Field
	// Metadata carries adapter-specific extras.
	Metadata map[string]any
	// Validator, when set, replaces the default per-field validation pass.
	// Adapters use it to run framework-native validation.
	Validator Validator
}

// Field returns the descriptor with the given name.
func (m *Model) Field(name string) (Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Filter selects a subset of a model's fields. Nil members are not applied;
// set members must all match (logical AND).
type Filter struct {
	Required   *bool
	Hidden     *bool
	ReadOnly   *bool
	Deprecated *bool
	// FieldType matches the adapter-supplied classification string exactly.
	FieldType *string
}

// Bool returns a pointer to v for use in Filter literals.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v for use in Filter literals.
func String(v string) *string { return &v }

// Select returns the fields satisfying every set filter member, preserving
// declaration order.
func (m *Model) Select(filter Filter) []Field {
	out := make([]Field, 0, len(m.Fields))
	for _, f := range m.Fields {
		if filter.Required != nil && f.Required != *filter.Required {
			continue
		}
		if filter.Hidden != nil && f.Hidden != *filter.Hidden {
			continue
		}
		if filter.ReadOnly != nil && f.ReadOnly != *filter.ReadOnly {
			continue
		}
		if filter.Deprecated != nil && f.Deprecated != *filter.Deprecated {
			continue
		}
		if filter.FieldType != nil && f.FieldType != *filter.FieldType {
			continue
		}
		out = append(out, f)
	}
	return out
}
