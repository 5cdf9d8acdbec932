package routing

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoTopology []byte

// ErrSimulatedFailure marks an exchange the workload failed on purpose.
var ErrSimulatedFailure = errors.New("simulated exchange failure")

// Topology describes contexts, routes and the traffic each route receives.
type Topology struct {
	Contexts []ContextSpec `yaml:"contexts"`
}

// ContextSpec describes one context of a Topology.
type ContextSpec struct {
	Name        string      `yaml:"name"`
	Version     string      `yaml:"version"`
	Tracing     bool        `yaml:"tracing"`
	AutoStartup *bool       `yaml:"auto_startup"`
	Routes      []RouteSpec `yaml:"routes"`
}

// RouteSpec describes one route and its synthetic traffic.
type RouteSpec struct {
	ID          string  `yaml:"id"`
	LatencyMs   int     `yaml:"latency_ms"`
	JitterMs    int     `yaml:"jitter_ms"`
	PauseMs     int     `yaml:"pause_ms"`
	FailureRate float64 `yaml:"failure_rate"`
}

// ParseTopology decodes and validates a YAML topology.
func ParseTopology(data []byte) (*Topology, error) {
	var t Topology
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse topology: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTopology reads a topology file.
func LoadTopology(path string) (*Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topology: %w", err)
	}
	return ParseTopology(data)
}

// DefaultTopology returns the embedded demo topology.
func DefaultTopology() *Topology {
	t, err := ParseTopology(demoTopology)
	if err != nil {
		panic(fmt.Sprintf("embedded demo topology is invalid: %v", err))
	}
	return t
}

// Validate checks names, uniqueness and traffic parameters.
func (t *Topology) Validate() error {
	if len(t.Contexts) == 0 {
		return errors.New("topology has no contexts")
	}
	seen := make(map[string]bool)
	for _, c := range t.Contexts {
		if c.Name == "" {
			return errors.New("topology has a context without a name")
		}
		if seen[c.Name] {
			return fmt.Errorf("context %q is declared twice", c.Name)
		}
		seen[c.Name] = true

		routes := make(map[string]bool)
		for _, r := range c.Routes {
			if r.ID == "" {
				return fmt.Errorf("context %q has a route without an id", c.Name)
			}
			if routes[r.ID] {
				return fmt.Errorf("route %q is declared twice in context %q", r.ID, c.Name)
			}
			routes[r.ID] = true
			if r.LatencyMs < 0 || r.JitterMs < 0 || r.PauseMs < 0 {
				return fmt.Errorf("route %q in context %q has a negative duration", r.ID, c.Name)
			}
			if r.FailureRate < 0 || r.FailureRate > 1 {
				return fmt.Errorf("route %q in context %q: failure_rate must be between 0 and 1", r.ID, c.Name)
			}
		}
	}
	return nil
}

// Build creates and starts every context and route of t in rt.
func (t *Topology) Build(rt *Runtime, opts ...ContextOption) error {
	for _, spec := range t.Contexts {
		ctxOpts := append([]ContextOption{WithTracing(spec.Tracing)}, opts...)
		if spec.AutoStartup != nil {
			ctxOpts = append(ctxOpts, WithAutoStartup(*spec.AutoStartup))
		}
		c, err := rt.NewContext(spec.Name, spec.Version, ctxOpts...)
		if err != nil {
			return err
		}
		for _, r := range spec.Routes {
			if _, err := c.AddRoute(r.ID); err != nil {
				return err
			}
		}
		if c.AutoStartup() {
			c.Start()
		}
	}
	return nil
}

// Workload drives every route of a topology with synthetic exchanges.
type Workload struct {
	rt    *Runtime
	topo  *Topology
	sleep func(ctx context.Context, d time.Duration) error
	roll  func() float64
}

// WorkloadOption configures a Workload.
type WorkloadOption func(*Workload)

// WithSleeper replaces the context-aware sleep used for latency and pauses.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) WorkloadOption {
	return func(w *Workload) { w.sleep = sleep }
}

// WithRoll replaces the random source deciding failures and jitter.
func WithRoll(roll func() float64) WorkloadOption {
	return func(w *Workload) { w.roll = roll }
}

// NewWorkload creates a workload for a topology already built into rt.
func NewWorkload(rt *Runtime, topo *Topology, opts ...WorkloadOption) *Workload {
	w := &Workload{
		rt:    rt,
		topo:  topo,
		sleep: sleepContext,
		roll:  rand.Float64,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run drives all routes concurrently until ctx is cancelled.
func (w *Workload) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, cs := range w.topo.Contexts {
		c, ok := w.rt.ResolveContext(cs.Name)
		if !ok {
			return fmt.Errorf("context %q is not built", cs.Name)
		}
		for _, rs := range cs.Routes {
			r, ok := c.Route(rs.ID)
			if !ok {
				return fmt.Errorf("route %q is not built in context %q", rs.ID, cs.Name)
			}
			g.Go(func() error {
				return w.drive(gctx, c, r, rs)
			})
		}
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Wait bounds for drive. A route never sends faster than one exchange per
// minPause, and a route of a context that is not Started rechecks the
// context every idlePoll.
const (
	minPause = time.Millisecond
	idlePoll = 50 * time.Millisecond
)

// drive sends exchanges through one route until ctx is done. Nothing is
// sent while the context is not Started.
func (w *Workload) drive(ctx context.Context, c *Context, r *Route, spec RouteSpec) error {
	pause := max(time.Duration(spec.PauseMs)*time.Millisecond, minPause)
	for {
		if c.State() != StatusStarted {
			if err := w.sleep(ctx, idlePoll); err != nil {
				return err
			}
			continue
		}
		if err := w.sleep(ctx, pause); err != nil {
			return err
		}

		latency := w.latency(spec)
		fail := w.roll() < spec.FailureRate
		_ = r.Process(ctx, func(ctx context.Context) error {
			if err := w.sleep(ctx, latency); err != nil {
				return err
			}
			if fail {
				return ErrSimulatedFailure
			}
			return nil
		})
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// latency picks a processing time in [latency-jitter, latency+jitter].
func (w *Workload) latency(spec RouteSpec) time.Duration {
	ms := float64(spec.LatencyMs) + (w.roll()*2-1)*float64(spec.JitterMs)
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms * float64(time.Millisecond))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
