package routing

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/savoirtech/ctop/internal/mgmt"
)

// ErrDuplicateContext is returned when a context name is already taken.
var ErrDuplicateContext = errors.New("context already exists")

// Runtime owns the contexts of one process and the management registry
// their routes publish to.
type Runtime struct {
	mu       sync.RWMutex
	contexts map[string]*Context
	registry *mgmt.Registry
}

// NewRuntime creates a runtime. A nil registry gets a fresh one.
func NewRuntime(registry *mgmt.Registry) *Runtime {
	if registry == nil {
		registry = mgmt.NewRegistry()
	}
	return &Runtime{
		contexts: make(map[string]*Context),
		registry: registry,
	}
}

// Registry returns the management registry shared by all contexts.
func (rt *Runtime) Registry() *mgmt.Registry {
	return rt.registry
}

// NewContext creates and adds a context.
func (rt *Runtime) NewContext(name, version string, opts ...ContextOption) (*Context, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if _, exists := rt.contexts[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateContext, name)
	}
	c := NewContext(name, version, rt.registry, opts...)
	rt.contexts[name] = c
	return c, nil
}

// ResolveContext returns the named context.
func (rt *Runtime) ResolveContext(name string) (*Context, bool) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	c, ok := rt.contexts[name]
	return c, ok
}

// ContextNames lists context names alphabetically.
func (rt *Runtime) ContextNames() []string {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	names := make([]string, 0, len(rt.contexts))
	for name := range rt.contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Shutdown stops every context and closes the registry.
func (rt *Runtime) Shutdown() {
	rt.mu.RLock()
	for _, c := range rt.contexts {
		c.Stop()
	}
	rt.mu.RUnlock()
	rt.registry.Close()
}
