// Package render defines the presentation contract: type handlers decide how
// a field is rendered and how widget values flow back into the binding, a
// priority-ordered registry resolves the handler for each field, and
// FormRenderer orchestrates a full model pass against a WidgetRenderer.
// Renderer implementations live under pkg/renderers.
package render

import (
	"github.com/goliatone/go-modelbind/pkg/binding"
	"github.com/goliatone/go-modelbind/pkg/metadata"
)

// Widget identifiers produced by the built-in handlers. A WidgetRenderer maps
// each identifier to a concrete control.
const (
	WidgetTextInput = "text-input"
	WidgetTextArea  = "text-area"
	WidgetNumber    = "number-input"
	WidgetCheckbox  = "checkbox"
	WidgetSelect    = "select"
)

// Plan tells a WidgetRenderer which widget to draw and with what arguments.
// Argument keys are a loose contract between handler and renderer; renderers
// ignore keys they do not understand.
type Plan struct {
	Widget string
	Args   map[string]any
}

// TypeHandler decides whether it can present a field, plans the widget, and
// converts raw widget values back into instance values.
type TypeHandler interface {
	// Name identifies the handler.
	Name() string
	// CanHandle reports whether the handler understands the field.
	CanHandle(field metadata.Field) bool
	// Prepare plans the widget for the field's current binding state.
	Prepare(fb *binding.FieldBinding) (Plan, error)
	// ProcessValue converts a raw widget value into an instance value.
	ProcessValue(field metadata.Field, raw any) (any, error)
}

// ChangeHandler builds the write-through callback for one field: raw widget
// values are processed by the handler and written to the instance via the
// binding.
func ChangeHandler(h TypeHandler, fb *binding.FieldBinding) func(any) error {
	return func(raw any) error {
		value, err := h.ProcessValue(fb.Field, raw)
		if err != nil {
			return err
		}
		return fb.SetValue(value)
	}
}
