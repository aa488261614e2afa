// Package adapters defines the contract a modeling-framework adapter must
// satisfy and a priority-ordered registry that resolves the right adapter for
// a live instance. Adapters translate one concrete framework's type
// information into the neutral descriptor shape; the registry tries them in
// descending priority with registration order breaking ties, falling back to
// a structural adapter when nothing claims the instance.
package adapters

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-modelbind/pkg/binding"
	"github.com/goliatone/go-modelbind/pkg/metadata"
)

// Adapter produces a model descriptor from a live instance's concrete type.
// Repeated calls for the same type must be stable in content; caching is a
// valid adapter strategy but not required.
type Adapter interface {
	// Name identifies the adapter.
	Name() string
	// CanAdapt reports whether this adapter understands the instance's type.
	CanAdapt(instance any) bool
	// Adapt builds the descriptor for the instance's type. Introspection
	// failures should degrade to a descriptor with an empty field list rather
	// than a hard error where possible.
	Adapt(instance any) (*metadata.Model, error)
}

type rule struct {
	adapter  Adapter
	priority int
	order    int
}

// Registry resolves adapters for instances. Higher priority wins; ties fall
// back to registration order. An optional fallback adapter catches instances
// no registered adapter claims.
type Registry struct {
	mu       sync.RWMutex
	rules    []rule
	fallback Adapter
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an adapter with the provided priority. Duplicate names return
// an error.
func (r *Registry) Register(adapter Adapter, priority int) error {
	if adapter == nil {
		return fmt.Errorf("adapters: adapter is required")
	}
	name := strings.TrimSpace(adapter.Name())
	if name == "" {
		return fmt.Errorf("adapters: adapter name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.rules {
		if entry.adapter.Name() == name {
			return fmt.Errorf("adapters: adapter %q already registered", name)
		}
	}

	r.rules = append(r.rules, rule{
		adapter:  adapter,
		priority: priority,
		order:    len(r.rules),
	})
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(adapter Adapter, priority int) {
	if err := r.Register(adapter, priority); err != nil {
		panic(err)
	}
}

// SetFallback installs the structural fallback adapter consulted when no
// registered adapter claims an instance.
func (r *Registry) SetFallback(adapter Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = adapter
}

// List returns the registered adapter names in resolution order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ordered := r.orderedRules()
	names := make([]string, 0, len(ordered))
	for _, entry := range ordered {
		names = append(names, entry.adapter.Name())
	}
	return names
}

// Resolve returns the highest-priority adapter claiming the instance, or the
// fallback when none does.
func (r *Registry) Resolve(instance any) (Adapter, error) {
	r.mu.RLock()
	ordered := r.orderedRules()
	fallback := r.fallback
	r.mu.RUnlock()

	for _, entry := range ordered {
		if entry.adapter.CanAdapt(instance) {
			return entry.adapter, nil
		}
	}
	if fallback != nil && fallback.CanAdapt(instance) {
		return fallback, nil
	}
	return nil, fmt.Errorf("adapters: no adapter for instance of type %T", instance)
}

// Adapt resolves the adapter for the instance and builds its descriptor.
func (r *Registry) Adapt(instance any) (*metadata.Model, error) {
	adapter, err := r.Resolve(instance)
	if err != nil {
		return nil, err
	}
	return adapter.Adapt(instance)
}

// Bind resolves the instance's descriptor and composes a ModelBinding with
// one FieldBinding per descriptor field, in order.
func (r *Registry) Bind(instance any) (*binding.ModelBinding, error) {
	model, err := r.Adapt(instance)
	if err != nil {
		return nil, err
	}
	return binding.New(model, instance), nil
}

func (r *Registry) orderedRules() []rule {
	ordered := append([]rule(nil), r.rules...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].priority == ordered[j].priority {
			return ordered[i].order < ordered[j].order
		}
		return ordered[i].priority > ordered[j].priority
	})
	return ordered
}
