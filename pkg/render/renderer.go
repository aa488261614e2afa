package render

import (
	"context"
	"errors"

	"github.com/goliatone/go-modelbind/pkg/binding"
	"github.com/goliatone/go-modelbind/pkg/metadata"
)

// Option customises a FormRenderer.
type Option func(*FormRenderer)

// WithRegistry replaces the handler registry.
func WithRegistry(registry *Registry) Option {
	return func(r *FormRenderer) {
		if registry != nil {
			r.registry = registry
		}
	}
}

// WithSubmitLabel overrides the submit control label.
func WithSubmitLabel(label string) Option {
	return func(r *FormRenderer) {
		if label != "" {
			r.submitLabel = label
		}
	}
}

// WithTranslator localizes validation messages before display, keyed by error
// kind.
func WithTranslator(locale string, translator binding.Translator) Option {
	return func(r *FormRenderer) {
		r.locale = locale
		r.translator = translator
	}
}

// WithMissingTranslationHandler overrides the fallback used when a
// translation is unavailable.
func WithMissingTranslationHandler(handler binding.MissingTranslationHandler) Option {
	return func(r *FormRenderer) {
		r.onMissing = handler
	}
}

// FormRenderer walks a model binding through a WidgetRenderer: every visible
// field is planned and drawn, the submit control decides whether validation
// runs, and validation messages are displayed through the renderer.
type FormRenderer struct {
	widgets     WidgetRenderer
	registry    *Registry
	submitLabel string

	locale     string
	translator binding.Translator
	onMissing  binding.MissingTranslationHandler
}

// NewFormRenderer constructs a renderer over the given widget implementation,
// with the built-in handlers registered.
func NewFormRenderer(widgets WidgetRenderer, options ...Option) (*FormRenderer, error) {
	if widgets == nil {
		return nil, errors.New("render: widget renderer is required")
	}
	r := &FormRenderer{
		widgets:     widgets,
		registry:    NewRegistry(),
		submitLabel: "Submit",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

// Registry exposes the handler registry for custom registrations.
func (r *FormRenderer) Registry() *Registry { return r.registry }

// RenderModel renders every non-hidden field of the binding, draws the submit
// control, and validates on submission. It reports whether the form was
// submitted and, when it was, the validation result. A field no handler
// claims fails fast before anything is drawn.
func (r *FormRenderer) RenderModel(ctx context.Context, mb *binding.ModelBinding) (bool, *metadata.Result, error) {
	if mb == nil {
		return false, nil, errors.New("render: model binding is required")
	}

	type planned struct {
		fb      *binding.FieldBinding
		handler TypeHandler
	}
	var fields []planned
	for _, fb := range mb.Fields {
		if fb.Field.Hidden {
			continue
		}
		handler, ok := r.registry.Resolve(fb.Field)
		if !ok {
			return false, nil, &UnhandledFieldTypeError{
				Field: fb.Field.Name,
				Kind:  fb.Field.Type.Kind,
			}
		}
		fields = append(fields, planned{fb: fb, handler: handler})
	}

	if err := r.widgets.BeginForm(ctx, mb.Descriptor()); err != nil {
		return false, nil, err
	}

	for _, entry := range fields {
		plan, err := entry.handler.Prepare(entry.fb)
		if err != nil {
			return false, nil, err
		}
		widget := Widget{
			Binding:  entry.fb,
			Plan:     plan,
			OnChange: ChangeHandler(entry.handler, entry.fb),
		}
		if err := r.widgets.RenderWidget(ctx, widget); err != nil {
			return false, nil, err
		}
	}

	submitted, err := r.widgets.SubmitControl(ctx, r.submitLabel)
	if err != nil {
		return false, nil, err
	}
	if !submitted {
		return false, nil, r.widgets.EndForm(ctx)
	}

	result := mb.Validate()
	if r.translator != nil || r.onMissing != nil {
		result = binding.LocalizeResult(result, r.locale, r.translator, r.onMissing)
	}
	if !result.Valid {
		if err := r.showErrors(ctx, mb, result); err != nil {
			return true, &result, err
		}
	}
	return true, &result, r.widgets.EndForm(ctx)
}

// showErrors walks validation messages in field order so the display is
// deterministic, then the model-level messages under the empty field name.
func (r *FormRenderer) showErrors(ctx context.Context, mb *binding.ModelBinding, result metadata.Result) error {
	for _, fb := range mb.Fields {
		details := result.FieldErrors[fb.Field.Name]
		if len(details) == 0 {
			continue
		}
		messages := make([]string, 0, len(details))
		for _, detail := range details {
			messages = append(messages, detail.Message)
		}
		if err := r.widgets.RenderErrors(ctx, fb.Field.Name, normalizeMessages(messages)); err != nil {
			return err
		}
	}

	if len(result.GlobalErrors) > 0 {
		messages := make([]string, 0, len(result.GlobalErrors))
		for _, detail := range result.GlobalErrors {
			messages = append(messages, detail.Message)
		}
		return r.widgets.RenderErrors(ctx, "", normalizeMessages(messages))
	}
	return nil
}
