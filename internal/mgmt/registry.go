package mgmt

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registry errors.
var (
	ErrUnavailable       = errors.New("management registry unavailable")
	ErrNotFound          = errors.New("management entry not found")
	ErrAttributeNotFound = errors.New("attribute not found")
	ErrAlreadyRegistered = errors.New("management entry already registered")
)

// Attribute returns the current value of one named attribute.
type Attribute func() any

// Attributes maps attribute names to their getters.
type Attributes map[string]Attribute

type entry struct {
	name  ObjectName
	attrs Attributes
}

// Registry holds management entries. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	closed  bool
}

// NewRegistry creates an empty, open registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*entry),
	}
}

// Register adds an entry. The attribute map is copied.
func (r *Registry) Register(name ObjectName, attrs Attributes) error {
	if err := name.Validate(); err != nil {
		return err
	}

	cp := make(Attributes, len(attrs))
	for k, v := range attrs {
		cp[k] = v
	}

	key := name.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrUnavailable
	}
	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, key)
	}
	r.entries[key] = &entry{name: NewObjectName(name.Domain, name.Properties), attrs: cp}
	return nil
}

// Unregister removes an entry.
func (r *Registry) Unregister(name ObjectName) error {
	key := name.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrUnavailable
	}
	if _, exists := r.entries[key]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	delete(r.entries, key)
	return nil
}

// Query returns the names of all entries matching pattern, sorted by their
// canonical string form.
func (r *Registry) Query(pattern ObjectName) ([]ObjectName, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, ErrUnavailable
	}

	var names []ObjectName
	for _, e := range r.entries {
		if e.name.Matches(pattern) {
			names = append(names, e.name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return names[i].String() < names[j].String()
	})
	return names, nil
}

// GetAttribute reads one attribute of one entry. The getter runs outside the
// registry lock.
func (r *Registry) GetAttribute(name ObjectName, attr string) (any, error) {
	key := name.String()

	r.mu.RLock()
	if r.closed {
		r.mu.RUnlock()
		return nil, ErrUnavailable
	}
	e, ok := r.entries[key]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	get, ok := e.attrs[attr]
	if !ok || get == nil {
		return nil, fmt.Errorf("%w: %s on %s", ErrAttributeNotFound, attr, key)
	}
	return get(), nil
}

// AttributeNames lists the attributes of an entry, sorted.
func (r *Registry) AttributeNames(name ObjectName) ([]string, error) {
	key := name.String()

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, ErrUnavailable
	}
	e, ok := r.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	names := make([]string, 0, len(e.attrs))
	for k := range e.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, nil
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Close drops all entries and makes every later call fail with
// ErrUnavailable. Closing twice is a no-op.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.entries = make(map[string]*entry)
}
