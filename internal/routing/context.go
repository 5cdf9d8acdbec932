package routing

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/savoirtech/ctop/internal/mgmt"
)

// DefaultDomain is the management domain routes register under.
const DefaultDomain = "routing"

// Context errors.
var (
	ErrDuplicateRoute = errors.New("route already exists")
	ErrUnknownRoute   = errors.New("route not found")
)

// Status is the lifecycle state of a Context.
type Status int

const (
	StatusStopped Status = iota
	StatusStarting
	StatusStarted
	StatusSuspended
)

// String returns the display name of the status.
func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "Stopped"
	case StatusStarting:
		return "Starting"
	case StatusStarted:
		return "Started"
	case StatusSuspended:
		return "Suspended"
	default:
		return "Unknown"
	}
}

// Context is a named group of routes with a lifecycle.
type Context struct {
	mu          sync.RWMutex
	name        string
	version     string
	domain      string
	status      Status
	startedAt   time.Time
	autoStartup bool
	tracing     bool
	routes      []*Route
	registry    *mgmt.Registry
	now         func() time.Time
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithDomain overrides the management domain.
func WithDomain(domain string) ContextOption {
	return func(c *Context) { c.domain = domain }
}

// WithAutoStartup sets the autoStartup flag.
func WithAutoStartup(auto bool) ContextOption {
	return func(c *Context) { c.autoStartup = auto }
}

// WithTracing sets the tracing flag.
func WithTracing(tracing bool) ContextOption {
	return func(c *Context) { c.tracing = tracing }
}

// WithClock replaces time.Now, for uptime and exchange timing.
func WithClock(now func() time.Time) ContextOption {
	return func(c *Context) { c.now = now }
}

// NewContext creates a stopped context whose routes register in registry.
func NewContext(name, version string, registry *mgmt.Registry, opts ...ContextOption) *Context {
	c := &Context{
		name:        name,
		version:     version,
		domain:      DefaultDomain,
		autoStartup: true,
		registry:    registry,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Context) Name() string    { return c.name }
func (c *Context) Version() string { return c.version }
func (c *Context) Domain() string  { return c.domain }

// Status returns the lifecycle state as a display string.
func (c *Context) Status() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status.String()
}

// State returns the lifecycle state.
func (c *Context) State() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Uptime is the time since Start, or 0 while stopped.
func (c *Context) Uptime() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.status == StatusStopped || c.startedAt.IsZero() {
		return 0
	}
	return c.now().Sub(c.startedAt)
}

// UptimeString renders Uptime truncated to whole seconds.
func (c *Context) UptimeString() string {
	return c.Uptime().Truncate(time.Second).String()
}

func (c *Context) AutoStartup() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.autoStartup
}

func (c *Context) Tracing() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tracing
}

// SetTracing toggles tracing.
func (c *Context) SetTracing(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tracing = on
}

// StartingRoutes reports whether the context is still starting its routes.
func (c *Context) StartingRoutes() bool {
	return c.State() == StatusStarting
}

// Suspended reports whether the context is suspended.
func (c *Context) Suspended() bool {
	return c.State() == StatusSuspended
}

// Start resets route statistics while Starting, then moves the context to
// Started and resets its uptime.
func (c *Context) Start() {
	c.mu.Lock()
	c.status = StatusStarting
	routes := append([]*Route(nil), c.routes...)
	c.mu.Unlock()

	for _, r := range routes {
		r.stats.Reset()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = StatusStarted
	c.startedAt = c.now()
}

// Stop moves the context to Stopped.
func (c *Context) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = StatusStopped
	c.startedAt = time.Time{}
}

// Suspend pauses a started context; uptime keeps counting.
func (c *Context) Suspend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusStarted {
		c.status = StatusSuspended
	}
}

// Resume restarts a suspended context.
func (c *Context) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusSuspended {
		c.status = StatusStarted
	}
}

// AddRoute creates a route and registers its management entry.
func (c *Context) AddRoute(id string) (*Route, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range c.routes {
		if r.id == id {
			return nil, fmt.Errorf("%w: %s in context %s", ErrDuplicateRoute, id, c.name)
		}
	}

	r := &Route{
		id:      id,
		ctxName: c.name,
		now:     c.now,
		mbean: mgmt.NewObjectName(c.domain, map[string]string{
			"context": c.name,
			"type":    "routes",
			"name":    id,
		}),
	}
	if c.registry != nil {
		if err := c.registry.Register(r.mbean, r.attributes(c.Status)); err != nil {
			return nil, fmt.Errorf("register route %s: %w", id, err)
		}
	}
	c.routes = append(c.routes, r)
	return r, nil
}

// RemoveRoute unregisters and drops a route.
func (c *Context) RemoveRoute(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, r := range c.routes {
		if r.id != id {
			continue
		}
		if c.registry != nil {
			if err := c.registry.Unregister(r.mbean); err != nil && !errors.Is(err, mgmt.ErrNotFound) {
				return fmt.Errorf("unregister route %s: %w", id, err)
			}
		}
		c.routes = append(c.routes[:i], c.routes[i+1:]...)
		return nil
	}
	return fmt.Errorf("%w: %s in context %s", ErrUnknownRoute, id, c.name)
}

// Route looks up a route by id.
func (c *Context) Route(id string) (*Route, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.routes {
		if r.id == id {
			return r, true
		}
	}
	return nil, false
}

// Routes returns the routes in insertion order.
func (c *Context) Routes() []*Route {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Route, len(c.routes))
	copy(out, c.routes)
	return out
}

// RouteIDs returns the route ids in insertion order.
func (c *Context) RouteIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, len(c.routes))
	for i, r := range c.routes {
		ids[i] = r.id
	}
	return ids
}
