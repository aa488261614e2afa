package render

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelbind/pkg/binding"
	"github.com/goliatone/go-modelbind/pkg/constraints"
	"github.com/goliatone/go-modelbind/pkg/metadata"
)

type stubHandler struct {
	name   string
	claims func(metadata.Field) bool
}

func (s stubHandler) Name() string                      { return s.name }
func (s stubHandler) CanHandle(f metadata.Field) bool   { return s.claims(f) }
func (s stubHandler) Prepare(*binding.FieldBinding) (Plan, error) {
	return Plan{Widget: WidgetTextInput}, nil
}
func (s stubHandler) ProcessValue(_ metadata.Field, raw any) (any, error) {
	return raw, nil
}

// fakeWidgets records the rendering pass and plays back scripted interaction:
// raw inputs per field and the submit decision.
type fakeWidgets struct {
	submit bool
	inputs map[string]any

	calls  []string
	errors map[string][]string
}

func (f *fakeWidgets) Name() string { return "fake" }

func (f *fakeWidgets) BeginForm(_ context.Context, model *metadata.Model) error {
	f.calls = append(f.calls, "begin:"+model.Name)
	return nil
}

func (f *fakeWidgets) RenderWidget(_ context.Context, w Widget) error {
	f.calls = append(f.calls, "widget:"+w.Field().Name)
	if raw, ok := f.inputs[w.Field().Name]; ok {
		return w.OnChange(raw)
	}
	return nil
}

func (f *fakeWidgets) RenderErrors(_ context.Context, fieldName string, messages []string) error {
	f.calls = append(f.calls, "errors:"+fieldName)
	if f.errors == nil {
		f.errors = make(map[string][]string)
	}
	f.errors[fieldName] = messages
	return nil
}

func (f *fakeWidgets) SubmitControl(_ context.Context, label string) (bool, error) {
	f.calls = append(f.calls, "submit:"+label)
	return f.submit, nil
}

func (f *fakeWidgets) EndForm(context.Context) error {
	f.calls = append(f.calls, "end")
	return nil
}

func profileModel() *metadata.Model {
	return &metadata.Model{
		Name: "profile",
		Fields: []metadata.Field{
			mapField("name", metadata.KindString, constraints.Constraints{
				MinLength: constraints.Int(1),
			}),
			mapField("age", metadata.KindInteger, constraints.Constraints{
				MaxValue: constraints.Float64(150),
			}),
			func() metadata.Field {
				f := mapField("token", metadata.KindString, constraints.Constraints{})
				f.Hidden = true
				return f
			}(),
		},
	}
}

func TestRenderModel_SubmittedValid(t *testing.T) {
	t.Parallel()

	widgets := &fakeWidgets{
		submit: true,
		inputs: map[string]any{"name": "Ada", "age": "36"},
	}
	renderer, err := NewFormRenderer(widgets, WithSubmitLabel("Save"))
	if err != nil {
		t.Fatalf("NewFormRenderer() error = %v", err)
	}

	instance := map[string]any{"name": "", "age": 0}
	submitted, result, err := renderer.RenderModel(context.Background(), binding.New(profileModel(), instance))
	if err != nil {
		t.Fatalf("RenderModel() error = %v", err)
	}
	if !submitted {
		t.Fatal("expected submission")
	}
	if !result.Valid {
		t.Fatalf("expected valid result, got %+v", result)
	}
	if instance["name"] != "Ada" || instance["age"] != 36 {
		t.Errorf("instance after interaction = %v", instance)
	}

	want := []string{"begin:profile", "widget:name", "widget:age", "submit:Save", "end"}
	if diff := cmp.Diff(want, widgets.calls); diff != "" {
		t.Fatalf("call sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderModel_NotSubmitted(t *testing.T) {
	t.Parallel()

	widgets := &fakeWidgets{submit: false}
	renderer, err := NewFormRenderer(widgets)
	if err != nil {
		t.Fatalf("NewFormRenderer() error = %v", err)
	}

	submitted, result, err := renderer.RenderModel(context.Background(), binding.New(profileModel(), map[string]any{"name": "x"}))
	if err != nil {
		t.Fatalf("RenderModel() error = %v", err)
	}
	if submitted || result != nil {
		t.Fatalf("got submitted=%v result=%v, want false/nil", submitted, result)
	}
	if len(widgets.errors) != 0 {
		t.Error("no errors should render without submission")
	}
}

func TestRenderModel_InvalidShowsErrors(t *testing.T) {
	t.Parallel()

	widgets := &fakeWidgets{
		submit: true,
		inputs: map[string]any{"age": 200},
	}
	renderer, err := NewFormRenderer(widgets)
	if err != nil {
		t.Fatalf("NewFormRenderer() error = %v", err)
	}

	instance := map[string]any{"name": "ok", "age": 0}
	submitted, result, err := renderer.RenderModel(context.Background(), binding.New(profileModel(), instance))
	if err != nil {
		t.Fatalf("RenderModel() error = %v", err)
	}
	if !submitted || result.Valid {
		t.Fatalf("expected submitted invalid result, got %v %+v", submitted, result)
	}
	if details := result.FieldErrors["age"]; len(details) != 1 || details[0].Kind != metadata.ErrorKindNotLE {
		t.Fatalf("age errors = %+v", details)
	}
	if msgs := widgets.errors["age"]; len(msgs) != 1 {
		t.Fatalf("rendered age messages = %v", msgs)
	}
}

func TestRenderModel_UnhandledField(t *testing.T) {
	t.Parallel()

	model := &metadata.Model{
		Name: "blob",
		Fields: []metadata.Field{
			mapField("payload", metadata.KindMap, constraints.Constraints{}),
		},
	}
	widgets := &fakeWidgets{}
	renderer, err := NewFormRenderer(widgets)
	if err != nil {
		t.Fatalf("NewFormRenderer() error = %v", err)
	}

	_, _, err = renderer.RenderModel(context.Background(), binding.New(model, map[string]any{}))
	var unhandled *UnhandledFieldTypeError
	if !errors.As(err, &unhandled) {
		t.Fatalf("error = %v, want UnhandledFieldTypeError", err)
	}
	if unhandled.Field != "payload" || unhandled.Kind != metadata.KindMap {
		t.Errorf("error detail = %+v", unhandled)
	}
	if len(widgets.calls) != 0 {
		t.Error("nothing should render when resolution fails")
	}
}

type upperTranslator struct{}

func (upperTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if key == metadata.ErrorKindNotLE {
		return "demasiado grande", nil
	}
	return "", errors.New("missing")
}

func TestRenderModel_LocalizedErrors(t *testing.T) {
	t.Parallel()

	widgets := &fakeWidgets{submit: true, inputs: map[string]any{"age": 200}}
	renderer, err := NewFormRenderer(widgets, WithTranslator("es", upperTranslator{}))
	if err != nil {
		t.Fatalf("NewFormRenderer() error = %v", err)
	}

	_, result, err := renderer.RenderModel(context.Background(), binding.New(profileModel(), map[string]any{"name": "ok", "age": 0}))
	if err != nil {
		t.Fatalf("RenderModel() error = %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if msgs := widgets.errors["age"]; len(msgs) != 1 || msgs[0] != "demasiado grande" {
		t.Fatalf("localized messages = %v", msgs)
	}
}
