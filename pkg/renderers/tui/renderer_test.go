package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelbind/pkg/binding"
	"github.com/goliatone/go-modelbind/pkg/constraints"
	"github.com/goliatone/go-modelbind/pkg/metadata"
	"github.com/goliatone/go-modelbind/pkg/render"
)

// fakeDriver plays back scripted answers per prompt type and records every
// prompt message.
type fakeDriver struct {
	inputs    []string
	confirms  []bool
	selects   []int
	textareas []string

	messages []string
	infos    []string
	failWith error
}

func (d *fakeDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	d.messages = append(d.messages, cfg.Message)
	if d.failWith != nil {
		return "", d.failWith
	}
	answer := d.inputs[0]
	d.inputs = d.inputs[1:]
	return answer, nil
}

func (d *fakeDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	d.messages = append(d.messages, cfg.Message)
	answer := d.confirms[0]
	d.confirms = d.confirms[1:]
	return answer, nil
}

func (d *fakeDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	d.messages = append(d.messages, cfg.Message)
	answer := d.selects[0]
	d.selects = d.selects[1:]
	return answer, nil
}

func (d *fakeDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	d.messages = append(d.messages, cfg.Message)
	answer := d.textareas[0]
	d.textareas = d.textareas[1:]
	return answer, nil
}

func (d *fakeDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func mapField(name string, kind metadata.Kind) metadata.Field {
	return metadata.Field{
		Name: name,
		Type: metadata.Type{Kind: kind},
		Access: metadata.Accessor{
			Get: func(instance any) any {
				return instance.(map[string]any)[name]
			},
			Set: func(instance any, value any) error {
				instance.(map[string]any)[name] = value
				return nil
			},
		},
	}
}

func sessionModel() *metadata.Model {
	name := mapField("name", metadata.KindString)
	name.Title = "Name"
	name.Required = true
	name.Constraints = constraints.Constraints{MinLength: constraints.Int(1)}

	age := mapField("age", metadata.KindInteger)
	age.Title = "Age"

	active := mapField("active", metadata.KindBoolean)
	active.Title = "Active"

	status := mapField("status", metadata.KindString)
	status.Title = "Status"
	status.Constraints = constraints.Constraints{AllowedValues: []any{"draft", "live"}}

	notes := mapField("notes", metadata.KindString)
	notes.Title = "Notes"
	notes.FieldType = "multiline"

	return &metadata.Model{
		Name:   "session",
		Title:  "New session",
		Fields: []metadata.Field{name, age, active, status, notes},
	}
}

func TestRenderer_FullSession(t *testing.T) {
	t.Parallel()

	driver := &fakeDriver{
		inputs:    []string{"Ada", "36"},
		selects:   []int{1},
		confirms:  []bool{true, true}, // active, then submit
		textareas: []string{"first contact"},
	}
	renderer, err := render.NewFormRenderer(New(WithDriver(driver)))
	if err != nil {
		t.Fatalf("NewFormRenderer() error = %v", err)
	}

	instance := map[string]any{}
	submitted, result, err := renderer.RenderModel(context.Background(), binding.New(sessionModel(), instance))
	if err != nil {
		t.Fatalf("RenderModel() error = %v", err)
	}
	if !submitted {
		t.Fatal("expected submission")
	}
	if !result.Valid {
		t.Fatalf("expected valid result, got %+v", result)
	}

	want := map[string]any{
		"name":   "Ada",
		"age":    36,
		"active": true,
		"status": "live",
		"notes":  "first contact",
	}
	if diff := cmp.Diff(want, instance); diff != "" {
		t.Fatalf("instance mismatch (-want +got):\n%s", diff)
	}

	wantMessages := []string{"Name *", "Age", "Active", "Status", "Notes", "Submit"}
	if diff := cmp.Diff(wantMessages, driver.messages); diff != "" {
		t.Fatalf("prompt messages mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infos) == 0 || driver.infos[0] != "New session" {
		t.Errorf("heading = %v", driver.infos)
	}
}

func TestRenderer_InvalidShowsErrorLines(t *testing.T) {
	t.Parallel()

	driver := &fakeDriver{
		inputs:    []string{"", "36"},
		selects:   []int{0},
		confirms:  []bool{true, true},
		textareas: []string{""},
	}
	renderer, err := render.NewFormRenderer(New(WithDriver(driver)))
	if err != nil {
		t.Fatalf("NewFormRenderer() error = %v", err)
	}

	submitted, result, err := renderer.RenderModel(context.Background(), binding.New(sessionModel(), map[string]any{}))
	if err != nil {
		t.Fatalf("RenderModel() error = %v", err)
	}
	if !submitted || result.Valid {
		t.Fatalf("expected submitted invalid result, got %v %+v", submitted, result)
	}

	found := false
	for _, line := range driver.infos {
		if len(line) > 5 && line[:5] == "name:" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a name error line, infos = %v", driver.infos)
	}
}

func TestRenderer_AbortSurfaces(t *testing.T) {
	t.Parallel()

	driver := &fakeDriver{failWith: ErrAborted}
	renderer, err := render.NewFormRenderer(New(WithDriver(driver)))
	if err != nil {
		t.Fatalf("NewFormRenderer() error = %v", err)
	}

	_, _, err = renderer.RenderModel(context.Background(), binding.New(sessionModel(), map[string]any{}))
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("error = %v, want ErrAborted", err)
	}
}
