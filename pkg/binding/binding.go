// Package binding connects model descriptors to live instances. A binding is
// cheap, session-scoped state: it reads and writes field values through
// accessors captured at construction time and recomputes validity on demand.
// Descriptors stay shared and immutable; the instance is never synchronized
// here, so concurrent use of one instance needs external mutual exclusion.
package binding

import (
	"fmt"

	"github.com/goliatone/go-modelbind/pkg/metadata"
)

// FieldBinding connects one field descriptor to one live instance. Values are
// never cached: every read and write goes through the instance so the binding
// cannot go stale.
type FieldBinding struct {
	// Field is the shared, read-only descriptor.
	Field metadata.Field
	// UIState is presentation-layer bookkeeping (dirty flags and the like).
	// The validation engine never reads it.
	UIState map[string]any

	instance any
	get      func() any
	set      func(any) error
}

// NewFieldBinding captures the field's accessor pair against the instance.
func NewFieldBinding(field metadata.Field, instance any) *FieldBinding {
	b := &FieldBinding{
		Field:    field,
		UIState:  make(map[string]any),
		instance: instance,
	}

	access := field.Access
	if access.Get != nil {
		getter := access.Get
		b.get = func() any { return getter(instance) }
	} else {
		b.get = func() any { return nil }
	}
	if access.Set != nil {
		setter := access.Set
		b.set = func(value any) error { return setter(instance, value) }
	} else {
		name := field.Name
		b.set = func(any) error {
			return fmt.Errorf("binding: field %q has no setter", name)
		}
	}

	return b
}

// Instance returns the bound instance.
func (b *FieldBinding) Instance() any { return b.instance }

// Value reads the field's current value from the instance, nil when absent.
func (b *FieldBinding) Value() any { return b.get() }

// SetValue writes a new value through to the instance.
func (b *FieldBinding) SetValue(value any) error { return b.set(value) }

// IsValid reports whether the current value passes every local constraint.
func (b *FieldBinding) IsValid() bool { return len(b.Validate()) == 0 }

// ModelBinding connects one model descriptor to one live instance and owns an
// ordered FieldBinding per descriptor field.
type ModelBinding struct {
	// Fields holds one binding per descriptor field, in descriptor order.
	Fields []*FieldBinding
	// UIState is presentation-layer bookkeeping for the whole model.
	UIState map[string]any

	model    *metadata.Model
	instance any
}

var _ metadata.Bound = (*ModelBinding)(nil)

// New composes a ModelBinding from a descriptor and an instance.
func New(model *metadata.Model, instance any) *ModelBinding {
	fields := make([]*FieldBinding, 0, len(model.Fields))
	for _, f := range model.Fields {
		fields = append(fields, NewFieldBinding(f, instance))
	}
	return &ModelBinding{
		Fields:   fields,
		UIState:  make(map[string]any),
		model:    model,
		instance: instance,
	}
}

// Descriptor returns the shared model descriptor.
func (b *ModelBinding) Descriptor() *metadata.Model { return b.model }

// Instance returns the bound instance.
func (b *ModelBinding) Instance() any { return b.instance }

// Values snapshots the current value of every field, keyed by name.
func (b *ModelBinding) Values() map[string]any {
	out := make(map[string]any, len(b.Fields))
	for _, fb := range b.Fields {
		out[fb.Field.Name] = fb.Value()
	}
	return out
}

// FieldBinding returns the binding for the named field. Unknown names are a
// caller error and fail fast.
func (b *ModelBinding) FieldBinding(name string) (*FieldBinding, error) {
	for _, fb := range b.Fields {
		if fb.Field.Name == name {
			return fb, nil
		}
	}
	return nil, &FieldNotFoundError{Model: b.model.Name, Field: name}
}

// Validate runs a validation pass over the live instance. A custom validator
// on the descriptor replaces the default per-field aggregation entirely.
func (b *ModelBinding) Validate() metadata.Result {
	if b.model.Validator != nil {
		return b.model.Validator(b)
	}
	return b.ValidateFields()
}

// ValidateFields runs the default per-field constraint pass, ignoring any
// custom validator on the descriptor. Custom validators call it to layer
// their own checks on top of the field checks.
func (b *ModelBinding) ValidateFields() metadata.Result {
	fieldErrors := make(map[string][]metadata.ErrorDetail)
	for _, fb := range b.Fields {
		if details := fb.Validate(); len(details) > 0 {
			fieldErrors[fb.Field.Name] = details
		}
	}
	if len(fieldErrors) == 0 {
		fieldErrors = nil
	}

	return metadata.Result{
		Valid:             len(fieldErrors) == 0,
		FieldErrors:       fieldErrors,
		ValidatedInstance: b.instance,
	}
}
