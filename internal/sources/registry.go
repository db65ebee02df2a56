package sources

import (
	"fmt"
	"sort"
)

// Registry is the static map from source name to adapter, assembled
// once at startup. There is no runtime plugin discovery: a source
// exists only if main registered it.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register adds an adapter under its own name. Registering the same
// name twice is a programming error.
func (r *Registry) Register(adapter Adapter) error {
	name := adapter.Name()
	if _, exists := r.adapters[name]; exists {
		return fmt.Errorf("source %q already registered", name)
	}
	r.adapters[name] = adapter
	return nil
}

// Get returns the adapter for a source name
func (r *Registry) Get(name string) (Adapter, error) {
	adapter, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("unknown source %q", name)
	}
	return adapter, nil
}

// Names returns the registered source names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
