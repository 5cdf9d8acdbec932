package monitor

import (
	"context"
	stderrors "errors"
	"sync/atomic"
	"time"

	"github.com/savoirtech/ctop/internal/config"
	"github.com/savoirtech/ctop/internal/errors"
	"github.com/savoirtech/ctop/internal/logger"
)

// ErrLoopStarted is returned when Run is called on a loop that already ran.
var ErrLoopStarted = stderrors.New("refresh loop already started")

// State is the refresh loop's position in its cycle.
type State int32

const (
	StateIdle State = iota
	StatePolling
	StateRendering
	StateSleeping
	StateStopped
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePolling:
		return "polling"
	case StateRendering:
		return "rendering"
	case StateSleeping:
		return "sleeping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Source produces one cycle's samples.
type Source interface {
	Collect(ctx context.Context, handle Context) (SampleSet, error)
}

// Drawer draws one frame.
type Drawer interface {
	Render(header HeaderInfo, cfg config.RefreshConfig, rows SampleSet) error
}

// Clock abstracts time so the loop can be driven by tests.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Cycle describes one finished poll/render pass.
type Cycle struct {
	N        int
	Started  time.Time
	Rows     int
	Rendered bool
	Err      error
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithClock replaces the wall clock.
func WithClock(c Clock) LoopOption {
	return func(l *Loop) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithLogger sets the logger used for per-cycle diagnostics.
func WithLogger(log logger.Logger) LoopOption {
	return func(l *Loop) {
		if log != nil {
			l.log = log
		}
	}
}

// WithCycleHook registers fn to run after every cycle, before the loop sleeps.
func WithCycleHook(fn func(Cycle)) LoopOption {
	return func(l *Loop) {
		l.hook = fn
	}
}

// Loop polls a context, sorts the samples and redraws them every interval
// until its context is cancelled. Cycles run strictly one after another.
type Loop struct {
	handle Context
	source Source
	drawer Drawer
	cfg    config.RefreshConfig
	clock  Clock
	log    logger.Logger
	hook   func(Cycle)
	state  atomic.Int32
}

// NewLoop validates cfg and builds a loop for handle.
func NewLoop(handle Context, source Source, drawer Drawer, cfg config.RefreshConfig, opts ...LoopOption) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if handle == nil {
		return nil, errors.New(errors.ErrContext, "No context to monitor", "")
	}

	l := &Loop{
		handle: handle,
		source: source,
		drawer: drawer,
		cfg:    cfg,
		clock:  realClock{},
		log:    logger.Noop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Config returns the loop's refresh configuration.
func (l *Loop) Config() config.RefreshConfig {
	return l.cfg
}

// State returns the current state.
func (l *Loop) State() State {
	return State(l.state.Load())
}

func (l *Loop) setState(s State) {
	l.state.Store(int32(s))
}

// Run polls immediately, then once per interval, until ctx is cancelled.
// Collection and render failures only skip the cycle they happen in.
// Run returns nil on cancellation and draws nothing after it.
func (l *Loop) Run(ctx context.Context) error {
	if !l.state.CompareAndSwap(int32(StateIdle), int32(StatePolling)) {
		return ErrLoopStarted
	}
	defer l.setState(StateStopped)

	for n := 1; ; n++ {
		if ctx.Err() != nil {
			return nil
		}
		l.setState(StatePolling)

		cycle := l.runCycle(ctx, n)
		if l.hook != nil {
			l.hook(cycle)
		}

		l.setState(StateSleeping)
		select {
		case <-ctx.Done():
			return nil
		case <-l.clock.After(l.cfg.Interval):
		}
	}
}

func (l *Loop) runCycle(ctx context.Context, n int) Cycle {
	cycle := Cycle{N: n, Started: l.clock.Now()}

	samples, err := l.source.Collect(ctx, l.handle)
	if err != nil {
		cycle.Err = err
		l.log.Debug("cycle %d: collection skipped: %v", n, err)
		return cycle
	}
	if ctx.Err() != nil {
		return cycle
	}

	l.setState(StateRendering)
	rows := Sort(samples, l.cfg.SortColumn, l.cfg.Reverse)
	cycle.Rows = len(rows)

	if err := l.drawer.Render(HeaderFrom(l.handle), l.cfg, rows); err != nil {
		cycle.Err = err
		l.log.Debug("cycle %d: render failed: %v", n, err)
		return cycle
	}
	cycle.Rendered = true
	return cycle
}
