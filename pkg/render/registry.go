package render

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-modelbind/pkg/metadata"
)

type rule struct {
	handler  TypeHandler
	priority int
	order    int
}

// Registry selects type handlers for fields. Higher priority wins; ties fall
// back to registration order. An empty registry never resolves a handler.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in handlers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// NewEmptyRegistry constructs a registry without built-ins, for callers that
// want full control over handler resolution.
func NewEmptyRegistry() *Registry {
	return &Registry{}
}

// Register adds a handler with the provided priority. Higher priority values
// take precedence over the built-ins, which sit between 10 and 40.
func (r *Registry) Register(handler TypeHandler, priority int) {
	if r == nil || handler == nil {
		return
	}
	if strings.TrimSpace(handler.Name()) == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		handler:  handler,
		priority: priority,
		order:    len(r.rules),
	})
}

// Resolve returns the first handler claiming the field, in priority order.
func (r *Registry) Resolve(field metadata.Field) (TypeHandler, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return nil, false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.handler.CanHandle(field) {
			return entry.handler, true
		}
	}
	return nil, false
}

func (r *Registry) registerBuiltins() {
	r.Register(SelectHandler{}, 40)
	r.Register(BooleanHandler{}, 30)
	r.Register(NumberHandler{}, 30)
	r.Register(MultilineHandler{}, 20)
	r.Register(TextHandler{}, 10)
}
