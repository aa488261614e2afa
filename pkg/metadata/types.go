// Package metadata defines the framework-neutral descriptor shape for models
// and their fields: a small type IR, per-field constraints and presentation
// hints, default/initial-value resolution, and the validation result types
// shared with the binding layer. Adapters translate concrete modeling
// frameworks (Go structs, JSON Schema, OpenAPI) into these descriptors.
package metadata

// Kind tags the outermost shape of a field type. The descriptor layer only
// interprets this closed set; anything richer stays opaque to it.
type Kind string

const (
	KindString   Kind = "string"
	KindInteger  Kind = "integer"
	KindFloat    Kind = "float"
	KindBoolean  Kind = "boolean"
	KindDecimal  Kind = "decimal"
	KindDate     Kind = "date"
	KindTime     Kind = "time"
	KindDateTime Kind = "datetime"
	KindEnum     Kind = "enum"
	KindLiteral  Kind = "literal"
	KindUnion    Kind = "union"
	KindList     Kind = "list"
	KindMap      Kind = "map"
	KindSet      Kind = "set"
	KindTuple    Kind = "tuple"
	KindModel    Kind = "model"
	KindAny      Kind = "any"
)

// Type is the descriptor-level view of a field's type. For parameterized
// shapes Kind carries the outer container tag and Elems the type arguments
// (element type for lists/maps/sets, slot types for tuples, branches for
// unions).
type Type struct {
	// Kind is the outer type tag.
	Kind Kind
	// Name optionally records the source type name (enum or model types).
	Name string
	// Nullable marks union types that included a null branch. The null branch
	// itself is not kept in Elems.
	Nullable bool
	// Elems holds type arguments in declaration order.
	Elems []Type
	// Literals lists the admissible values of a literal type, in order.
	Literals []any
	// Members lists the declared members of an enumerated type, in order.
	Members []any
	// Model references the nested model descriptor for KindModel types.
	Model *Model
	// New constructs a zero-argument instance of a nested model type.
	// Optional; initial-value synthesis falls back to nil without it.
	New func() (any, error)
}

// Is reports whether the type's outer tag matches any of the candidates.
func (t Type) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// Elem returns the first type argument, or a KindAny type when none exists.
func (t Type) Elem() Type {
	if len(t.Elems) == 0 {
		return Type{Kind: KindAny}
	}
	return t.Elems[0]
}
