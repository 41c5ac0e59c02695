package chart

import (
	"sort"
	"sync"

	"github.com/matzehuels/apexkit/pkg/errors"
)

// Factory returns a fresh definition for one request.
type Factory func() Definition

// Registry maps chart names to definition factories. It is safe for
// concurrent use; the server registers at startup and looks up per request.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Factory)}
}

// Register adds a factory under name. Names must pass
// errors.ValidateChartName and may be registered only once.
func (r *Registry) Register(name string, f Factory) error {
	if err := errors.ValidateChartName(name); err != nil {
		return err
	}
	if f == nil {
		return errors.New(errors.ErrCodeInvalidDefinition, "nil factory for chart %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[name]; ok {
		return errors.New(errors.ErrCodeDuplicate, "chart %q already registered", name)
	}
	r.entries[name] = f
	return nil
}

// Lookup returns a new definition for name.
func (r *Registry) Lookup(name string) (Definition, error) {
	r.mu.RLock()
	f, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeChartNotFound, "chart %q not found", name)
	}
	return f(), nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered charts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
