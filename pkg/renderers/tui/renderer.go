// Package tui implements the widget contract over terminal prompts. Every
// widget becomes an interactive prompt; answers flow back through the
// widget's change callback during the rendering pass.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-modelbind/pkg/metadata"
	"github.com/goliatone/go-modelbind/pkg/render"
)

// Option customises the renderer.
type Option func(*Renderer)

// WithDriver replaces the prompt driver. Tests use this to script a session.
func WithDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithPageSize caps the number of visible options in select prompts.
func WithPageSize(size int) Option {
	return func(r *Renderer) {
		if size > 0 {
			r.pageSize = size
		}
	}
}

// Renderer implements render.WidgetRenderer over a PromptDriver.
type Renderer struct {
	driver   PromptDriver
	pageSize int
}

var _ render.WidgetRenderer = (*Renderer)(nil)

// New constructs a renderer with the survey-backed driver by default.
func New(options ...Option) *Renderer {
	r := &Renderer{driver: newSurveyDriver()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string { return "tui" }

// BeginForm prints the model heading.
func (r *Renderer) BeginForm(ctx context.Context, model *metadata.Model) error {
	title := model.Title
	if title == "" {
		title = model.Name
	}
	if err := r.driver.Info(ctx, title); err != nil {
		return err
	}
	if model.Description != "" {
		return r.driver.Info(ctx, model.Description)
	}
	return nil
}

// RenderWidget runs the prompt matching the widget plan and writes the answer
// through the change callback.
func (r *Renderer) RenderWidget(ctx context.Context, w render.Widget) error {
	field := w.Field()
	message := promptMessage(field)
	help := field.Description

	switch w.Plan.Widget {
	case render.WidgetSelect:
		labels, _ := w.Plan.Args["labels"].([]string)
		selected, _ := w.Plan.Args["selected"].(int)
		index, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: selected,
			Help:         help,
			PageSize:     r.pageSize,
		})
		if err != nil {
			return err
		}
		return w.OnChange(index)

	case render.WidgetCheckbox:
		checked, _ := w.Plan.Args["checked"].(bool)
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: checked,
			Help:    help,
		})
		if err != nil {
			return err
		}
		return w.OnChange(answer)

	case render.WidgetTextArea:
		value, _ := w.Plan.Args["value"].(string)
		answer, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: value,
			Help:    help,
		})
		if err != nil {
			return err
		}
		return w.OnChange(answer)

	case render.WidgetTextInput, render.WidgetNumber:
		answer, err := r.driver.Input(ctx, InputConfig{
			Message: message,
			Default: argText(w.Plan.Args["value"]),
			Help:    promptHelp(field, help),
		})
		if err != nil {
			return err
		}
		return w.OnChange(answer)

	default:
		return fmt.Errorf("%w: %s for field %q", ErrUnknownWidget, w.Plan.Widget, field.Name)
	}
}

// RenderErrors prints validation messages, prefixed with the field name.
func (r *Renderer) RenderErrors(ctx context.Context, fieldName string, messages []string) error {
	for _, message := range messages {
		line := message
		if fieldName != "" {
			line = fieldName + ": " + message
		}
		if err := r.driver.Info(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

// SubmitControl asks for confirmation; declining leaves the form unsubmitted.
func (r *Renderer) SubmitControl(ctx context.Context, label string) (bool, error) {
	return r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: true})
}

// EndForm is a no-op for terminal sessions.
func (r *Renderer) EndForm(context.Context) error { return nil }

func promptMessage(field metadata.Field) string {
	title := field.Title
	if title == "" {
		title = field.Name
	}
	if field.Required {
		title += " *"
	}
	return title
}

// promptHelp folds the placeholder into the help text, since terminal inputs
// have no empty-state hint of their own.
func promptHelp(field metadata.Field, help string) string {
	if field.Placeholder == "" {
		return help
	}
	hint := "e.g. " + field.Placeholder
	if help == "" {
		return hint
	}
	return help + " (" + hint + ")"
}

func argText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
