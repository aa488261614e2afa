package metadata

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-modelbind/pkg/constraints"
)

// Default distinguishes "no default configured" from a default that is
// legitimately nil. The zero value is unset.
type Default struct {
	value any
	set   bool
}

// DefaultOf wraps a configured default value, including a nil one.
func DefaultOf(value any) Default {
	return Default{value: value, set: true}
}

// NoDefault returns the unset marker. Equivalent to the zero value; provided
// for call sites that read better spelling it out.
func NoDefault() Default {
	return Default{}
}

// IsSet reports whether a default was configured.
func (d Default) IsSet() bool { return d.set }

// Value returns the configured default, or nil when unset.
func (d Default) Value() any { return d.value }

// Get returns the default and whether one was configured.
func (d Default) Get() (any, bool) { return d.value, d.set }

// Accessor is the read/write pair an adapter captures for one field so the
// binding layer never performs name-based lookups at validation time. Get
// returns nil when the attribute is absent on the instance.
type Accessor struct {
	Get func(instance any) any
	Set func(instance any, value any) error
}

// Field is the immutable per-field descriptor: shape, defaults, constraints,
// and presentation hints. Adapters build these once per model type; bindings
// share them read-only.
type Field struct {
	// Name uniquely identifies the field within its model.
	Name string
	// Type is the descriptor-level type tag.
	Type Type
	// FieldType is an optional free-form classification supplied by the
	// adapter and consumed by render handlers. Not interpreted here.
	FieldType string
	// Title is the display label.
	Title string
	// Description holds longer help text.
	Description string
	// Placeholder is shown while the field is empty.
	Placeholder string
	// Examples lists sample values in source order.
	Examples []any
	// Hidden excludes the field from presentation.
	Hidden bool
	// ReadOnly marks the field immutable after initialization.
	ReadOnly bool
	// Deprecated flags the field as deprecated by its source.
	Deprecated bool
	// Required marks the field mandatory per the source framework's own
	// semantics. Independent of Default; the two are not reconciled here.
	Required bool
	// Default carries the configured default, if any.
	Default Default
	// Constraints restrict admissible values.
	Constraints constraints.Constraints
	// Metadata carries adapter-specific extras.
	Metadata map[string]any
	// Access is the read/write pair for this field on a bound instance.
	Access Accessor
}

// HasDefault reports whether a default value was configured, independent of
// Required.
func (f Field) HasDefault() bool {
	return f.Default.IsSet()
}

// IsOfType reports whether the field's outer type tag matches any candidate.
func (f Field) IsOfType(kinds ...Kind) bool {
	return f.Type.Is(kinds...)
}

// TitleFromName derives a display title from a snake_case field name:
// underscores become spaces and the first rune is upper-cased.
func TitleFromName(name string) string {
	cleaned := strings.ReplaceAll(strings.TrimSpace(name), "_", " ")
	if cleaned == "" {
		return ""
	}
	return strings.ToUpper(cleaned[:1]) + cleaned[1:]
}

// ResolvePlaceholder applies the placeholder priority contract: an explicit
// placeholder wins, then a value tagged as placeholder on the annotated type,
// then the first example's text form. Returns "" when nothing applies.
func ResolvePlaceholder(explicit, tagged string, examples []any) string {
	if explicit != "" {
		return explicit
	}
	if tagged != "" {
		return tagged
	}
	if len(examples) > 0 && examples[0] != nil {
		return fmt.Sprintf("%v", examples[0])
	}
	return ""
}
