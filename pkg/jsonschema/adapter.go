package jsonschema

import (
	"errors"

	"github.com/goliatone/go-modelbind/pkg/metadata"
)

// Option customises the adapter configuration.
type Option func(*Adapter)

// WithName overrides the registry name, letting callers register several
// schema adapters side by side.
func WithName(name string) Option {
	return func(a *Adapter) {
		if name != "" {
			a.name = name
		}
	}
}

// WithValidator installs a custom validator on the produced descriptor,
// replacing the default per-field pass.
func WithValidator(validator metadata.Validator) Option {
	return func(a *Adapter) {
		a.validator = validator
	}
}

// Adapter serves the descriptor parsed from one schema document. Instances
// are map[string]any values; the adapter claims any of them, so register it
// below more specific adapters.
type Adapter struct {
	name      string
	model     *metadata.Model
	validator metadata.Validator
}

// New parses the document eagerly and constructs the adapter. The parsed
// descriptor is cached; repeated Adapt calls return the same content.
func New(doc Document, options ...Option) (*Adapter, error) {
	a := &Adapter{name: "jsonschema"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}

	model, err := Parse(doc)
	if err != nil {
		return nil, err
	}
	model.Validator = a.validator
	a.model = model
	return a, nil
}

// Name identifies the adapter in a registry.
func (a *Adapter) Name() string { return a.name }

// Model returns the parsed descriptor.
func (a *Adapter) Model() *metadata.Model { return a.model }

// CanAdapt claims map[string]any instances.
func (a *Adapter) CanAdapt(instance any) bool {
	_, ok := instance.(map[string]any)
	return ok
}

// Adapt returns the cached descriptor for map instances.
func (a *Adapter) Adapt(instance any) (*metadata.Model, error) {
	if !a.CanAdapt(instance) {
		return nil, errors.New("jsonschema: instance is not a map[string]any")
	}
	return a.model, nil
}

// NewInstance builds a map instance pre-populated with each visible field's
// initial value.
func NewInstance(model *metadata.Model) map[string]any {
	out := make(map[string]any, len(model.Fields))
	for _, field := range model.Fields {
		out[field.Name] = field.InitialValue()
	}
	return out
}
