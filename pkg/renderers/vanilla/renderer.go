// Package vanilla implements the widget contract as static HTML. A rendering
// pass accumulates markup; the widgets never interact, so SubmitControl draws
// the button and reports no submission. Markup is produced through pongo2
// templates; description and help text pass a sanitizer before being injected
// unescaped.
package vanilla

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-modelbind/pkg/metadata"
	"github.com/goliatone/go-modelbind/pkg/render"
)

// Option customises the renderer.
type Option func(*Renderer)

// WithTheme injects a theme selection: container classes, a variant
// attribute, and a CSS custom-property block.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(r *Renderer) {
		r.theme = buildThemeContext(cfg)
	}
}

// WithEngineOptions forwards options to the template engine.
func WithEngineOptions(options ...EngineOption) Option {
	return func(r *Renderer) {
		r.engineOptions = append(r.engineOptions, options...)
	}
}

// Renderer implements render.WidgetRenderer by accumulating HTML.
type Renderer struct {
	engine        *engine
	engineOptions []EngineOption
	theme         rendererTheme

	out strings.Builder
}

var _ render.WidgetRenderer = (*Renderer)(nil)

// New constructs a renderer over the embedded template set.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	eng, err := newEngine(r.engineOptions...)
	if err != nil {
		return nil, err
	}
	r.engine = eng
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string { return "vanilla" }

// HTML returns the markup accumulated by the last rendering pass.
func (r *Renderer) HTML() []byte { return []byte(r.out.String()) }

// BeginForm resets the output and opens the form container.
func (r *Renderer) BeginForm(_ context.Context, model *metadata.Model) error {
	r.out.Reset()

	title := model.Title
	if title == "" {
		title = model.Name
	}
	return r.renderTo("form_begin", map[string]any{
		"title":          title,
		"description":    sanitizeRichText(model.Description),
		"theme_name":     r.theme.Name,
		"theme_variant":  r.theme.Variant,
		"css_vars_style": r.theme.CSSVarsStyle,
	})
}

// RenderWidget emits the markup for one field widget per its plan.
func (r *Renderer) RenderWidget(_ context.Context, w render.Widget) error {
	field := w.Field()
	data := map[string]any{
		"name":     field.Name,
		"label":    labelFor(field),
		"required": field.Required,
		"help":     sanitizeRichText(field.Description),
	}

	template := ""
	switch w.Plan.Widget {
	case render.WidgetTextInput:
		template = "text_input"
		data["value"] = stringArg(w.Plan.Args, "value")
		data["placeholder"] = stringArg(w.Plan.Args, "placeholder")
		data["maxlength"] = intAttr(w.Plan.Args, "maxLength")
	case render.WidgetTextArea:
		template = "text_area"
		data["value"] = stringArg(w.Plan.Args, "value")
		data["placeholder"] = stringArg(w.Plan.Args, "placeholder")
	case render.WidgetNumber:
		template = "number_input"
		data["value"] = numberAttr(w.Plan.Args["value"])
		data["min"] = numberAttr(w.Plan.Args["min"])
		data["max"] = numberAttr(w.Plan.Args["max"])
		data["step"] = numberAttr(w.Plan.Args["step"])
	case render.WidgetCheckbox:
		template = "checkbox"
		checked, _ := w.Plan.Args["checked"].(bool)
		data["checked"] = checked
	case render.WidgetSelect:
		template = "select"
		labels, _ := w.Plan.Args["labels"].([]string)
		selected, _ := w.Plan.Args["selected"].(int)
		data["labels"] = labels
		data["selected"] = selected
	default:
		return fmt.Errorf("vanilla: unknown widget %q for field %q", w.Plan.Widget, field.Name)
	}
	return r.renderTo(template, data)
}

// RenderErrors emits a message list, tagged with the field name when one is
// given.
func (r *Renderer) RenderErrors(_ context.Context, fieldName string, messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	return r.renderTo("errors", map[string]any{
		"field":    fieldName,
		"messages": messages,
	})
}

// SubmitControl draws the button. Static markup cannot submit, so the pass
// always reports false.
func (r *Renderer) SubmitControl(_ context.Context, label string) (bool, error) {
	if err := r.renderTo("submit", map[string]any{"label": label}); err != nil {
		return false, err
	}
	return false, nil
}

// EndForm closes the container.
func (r *Renderer) EndForm(context.Context) error {
	return r.renderTo("form_end", map[string]any{})
}

func (r *Renderer) renderTo(template string, data map[string]any) error {
	markup, err := r.engine.render(template, data)
	if err != nil {
		return err
	}
	r.out.WriteString(markup)
	return nil
}

func labelFor(field metadata.Field) string {
	if field.Title != "" {
		return field.Title
	}
	return field.Name
}

func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func intAttr(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

// numberAttr formats numeric plan arguments for HTML attributes, trimming the
// trailing zeros a float format would add to whole numbers.
func numberAttr(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
