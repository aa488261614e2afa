package render

import (
	"context"

	"github.com/goliatone/go-modelbind/pkg/binding"
	"github.com/goliatone/go-modelbind/pkg/metadata"
)

// Widget is one field ready to present: the live binding, the handler's plan,
// and the write-through change callback.
type Widget struct {
	Binding  *binding.FieldBinding
	Plan     Plan
	OnChange func(raw any) error
}

// Field is shorthand for the widget's field descriptor.
func (w Widget) Field() metadata.Field {
	return w.Binding.Field
}

// WidgetRenderer draws widgets for one rendering pass. Interactive
// implementations collect values during RenderWidget and report submission
// from SubmitControl; static ones emit markup and never submit.
type WidgetRenderer interface {
	// Name identifies the renderer.
	Name() string
	// BeginForm opens the form container.
	BeginForm(ctx context.Context, model *metadata.Model) error
	// RenderWidget draws one field widget per its plan.
	RenderWidget(ctx context.Context, widget Widget) error
	// RenderErrors displays validation messages. An empty field name carries
	// the model-level messages.
	RenderErrors(ctx context.Context, fieldName string, messages []string) error
	// SubmitControl draws the submit control and reports whether the form was
	// submitted.
	SubmitControl(ctx context.Context, label string) (bool, error)
	// EndForm closes the form container.
	EndForm(ctx context.Context) error
}
