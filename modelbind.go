package modelbind

import (
	"sync"

	"github.com/goliatone/go-modelbind/pkg/adapters"
	"github.com/goliatone/go-modelbind/pkg/binding"
	"github.com/goliatone/go-modelbind/pkg/metadata"
	"github.com/goliatone/go-modelbind/pkg/structmeta"
)

// Model aliases the neutral model descriptor exported via the root package for
// convenience.
type Model = metadata.Model

// Field aliases the neutral field descriptor.
type Field = metadata.Field

// Result aliases a validation outcome.
type Result = metadata.Result

// ModelBinding aliases the live model binding.
type ModelBinding = binding.ModelBinding

// FieldBinding aliases the live field binding.
type FieldBinding = binding.FieldBinding

// Adapter aliases the framework adapter contract so custom adapters can be
// registered through the root package.
type Adapter = adapters.Adapter

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *adapters.Registry
)

// DefaultRegistry returns the process-wide adapter registry. The structural
// adapter is installed as the fallback, so plain Go structs bind without any
// explicit registration.
func DefaultRegistry() *adapters.Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = adapters.NewRegistry()
		defaultRegistry.SetFallback(structmeta.New())
	})
	return defaultRegistry
}

// Register adds an adapter to the default registry. Higher priority wins;
// ties resolve in registration order.
func Register(adapter Adapter, priority int) error {
	return DefaultRegistry().Register(adapter, priority)
}

// Describe resolves the instance's descriptor through the default registry.
func Describe(instance any) (*Model, error) {
	return DefaultRegistry().Adapt(instance)
}

// Bind resolves the instance's descriptor and composes a model binding with
// one field binding per descriptor field. It is the simplest entry point for
// callers that just want to bind and validate a value.
func Bind(instance any) (*ModelBinding, error) {
	return DefaultRegistry().Bind(instance)
}

// Validate binds the instance and runs field validation plus the model's
// native validator in one call.
func Validate(instance any) (*Result, error) {
	mb, err := Bind(instance)
	if err != nil {
		return nil, err
	}
	result := mb.Validate()
	return &result, nil
}
