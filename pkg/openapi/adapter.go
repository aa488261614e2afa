package openapi

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-modelbind/pkg/metadata"
)

// Option customises the adapter configuration.
type Option func(*Adapter)

// WithName overrides the registry name, letting callers register adapters
// for several operations side by side.
func WithName(name string) Option {
	return func(a *Adapter) {
		if name != "" {
			a.name = name
		}
	}
}

// WithValidator installs a custom validator on the served descriptor,
// replacing the default per-field pass.
func WithValidator(validator metadata.Validator) Option {
	return func(a *Adapter) {
		a.validator = validator
	}
}

// Adapter serves the request-body descriptor of one operation. Instances are
// map[string]any values; the adapter claims any of them, so register it below
// more specific adapters.
type Adapter struct {
	name      string
	model     *metadata.Model
	validator metadata.Validator
}

// NewAdapter builds an adapter for the operation's request body. Operations
// without a request model are rejected.
func NewAdapter(op Operation, options ...Option) (*Adapter, error) {
	if !op.HasRequestModel() {
		return nil, fmt.Errorf("openapi: operation %q has no request body model", op.ID)
	}

	a := &Adapter{name: "openapi:" + op.ID}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}

	model := op.Model()
	if a.validator != nil {
		clone := *model
		clone.Validator = a.validator
		model = &clone
	}
	a.model = model
	return a, nil
}

// Name identifies the adapter in a registry.
func (a *Adapter) Name() string { return a.name }

// Model returns the served descriptor.
func (a *Adapter) Model() *metadata.Model { return a.model }

// CanAdapt claims map[string]any instances.
func (a *Adapter) CanAdapt(instance any) bool {
	_, ok := instance.(map[string]any)
	return ok
}

// Adapt returns the cached descriptor for map instances.
func (a *Adapter) Adapt(instance any) (*metadata.Model, error) {
	if !a.CanAdapt(instance) {
		return nil, errors.New("openapi: instance is not a map[string]any")
	}
	return a.model, nil
}

// NewInstance builds a map instance pre-populated with each field's initial
// value.
func NewInstance(model *metadata.Model) map[string]any {
	out := make(map[string]any, len(model.Fields))
	for _, field := range model.Fields {
		out[field.Name] = field.InitialValue()
	}
	return out
}
