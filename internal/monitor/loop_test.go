package monitor

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/savoirtech/ctop/internal/config"
	ctoperrors "github.com/savoirtech/ctop/internal/errors"
	"github.com/savoirtech/ctop/internal/logger"
	"github.com/savoirtech/ctop/internal/mgmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances by the requested duration on every After call and
// fires immediately.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.sleeps = append(c.sleeps, d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

func (c *fakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// stuckClock never wakes up.
type stuckClock struct{}

func (stuckClock) Now() time.Time                         { return time.Time{} }
func (stuckClock) After(d time.Duration) <-chan time.Time { return make(chan time.Time) }

type sourceFunc func(ctx context.Context, handle Context) (SampleSet, error)

func (f sourceFunc) Collect(ctx context.Context, handle Context) (SampleSet, error) {
	return f(ctx, handle)
}

func staticSource(rows SampleSet) Source {
	return sourceFunc(func(context.Context, Context) (SampleSet, error) {
		return rows, nil
	})
}

// recordingDrawer keeps every frame it was asked to draw.
type recordingDrawer struct {
	mu     sync.Mutex
	clock  Clock
	frames []SampleSet
	at     []time.Time
	err    error
}

func (d *recordingDrawer) Render(_ HeaderInfo, _ config.RefreshConfig, rows SampleSet) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames = append(d.frames, rows)
	if d.clock != nil {
		d.at = append(d.at, d.clock.Now())
	}
	return d.err
}

func (d *recordingDrawer) Frames() []SampleSet {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]SampleSet(nil), d.frames...)
}

// stopAfter returns a cycle hook that cancels after n cycles and records them.
func stopAfter(n int, cancel context.CancelFunc, cycles *[]Cycle) func(Cycle) {
	return func(c Cycle) {
		*cycles = append(*cycles, c)
		if c.N >= n {
			cancel()
		}
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state  State
		expect string
	}{
		{StateIdle, "idle"},
		{StatePolling, "polling"},
		{StateRendering, "rendering"},
		{StateSleeping, "sleeping"},
		{StateStopped, "stopped"},
		{State(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expect, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.state.String())
		})
	}
}

func TestNewLoop_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.RefreshConfig
	}{
		{"zero interval", config.RefreshConfig{Interval: 0, SortColumn: config.ExchangesTotal}},
		{"negative interval", config.RefreshConfig{Interval: -time.Second, SortColumn: config.ExchangesTotal}},
		{"unknown column", config.RefreshConfig{Interval: time.Second, SortColumn: config.DisplayColumn(99)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			polled := false
			source := sourceFunc(func(context.Context, Context) (SampleSet, error) {
				polled = true
				return nil, nil
			})

			l, err := NewLoop(newFakeContext(), source, &recordingDrawer{}, tt.cfg)
			require.Error(t, err)
			assert.Nil(t, l)
			assert.True(t, ctoperrors.IsCode(err, ctoperrors.ErrConfig))
			assert.False(t, polled)
		})
	}
}

func TestNewLoop_NilHandle(t *testing.T) {
	_, err := NewLoop(nil, staticSource(nil), &recordingDrawer{}, config.DefaultRefreshConfig())
	require.Error(t, err)
	assert.True(t, ctoperrors.IsCode(err, ctoperrors.ErrContext))
}

func TestLoop_RendersSortedRows(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cycles []Cycle
	drawer := &recordingDrawer{}
	cfg := config.RefreshConfig{Interval: time.Second, SortColumn: config.ExchangesTotal, Reverse: true}

	l, err := NewLoop(newFakeContext(), staticSource(totals("A", 5, "B", 12, "C", 5)), drawer, cfg,
		WithClock(newFakeClock()), WithCycleHook(stopAfter(1, cancel, &cycles)))
	require.NoError(t, err)
	assert.Equal(t, StateIdle, l.State())
	assert.Equal(t, cfg, l.Config())

	require.NoError(t, l.Run(ctx))
	assert.Equal(t, StateStopped, l.State())

	frames := drawer.Frames()
	require.Len(t, frames, 1)
	assert.Equal(t, []string{"B", "A", "C"}, frames[0].IDs())

	require.Len(t, cycles, 1)
	assert.True(t, cycles[0].Rendered)
	assert.Equal(t, 3, cycles[0].Rows)
	assert.NoError(t, cycles[0].Err)
}

func TestLoop_OneRenderPerSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := newFakeClock()
	drawer := &recordingDrawer{clock: clock}
	var cycles []Cycle
	cfg := config.RefreshConfig{Interval: 250 * time.Millisecond, SortColumn: config.ExchangesTotal}

	l, err := NewLoop(newFakeContext(), staticSource(totals("a", 1)), drawer, cfg,
		WithClock(clock), WithCycleHook(stopAfter(5, cancel, &cycles)))
	require.NoError(t, err)
	require.NoError(t, l.Run(ctx))

	sleeps := clock.Sleeps()
	frames := drawer.Frames()
	assert.Len(t, frames, 5)
	assert.GreaterOrEqual(t, len(sleeps), len(frames)-1, "at most one render per sleep")
	for _, d := range sleeps {
		assert.Equal(t, cfg.Interval, d, "each sleep lasts exactly the interval")
	}
	for i := 1; i < len(drawer.at); i++ {
		assert.GreaterOrEqual(t, drawer.at[i].Sub(drawer.at[i-1]), cfg.Interval)
	}
}

func TestLoop_WallClockInterval(t *testing.T) {
	if testing.Short() {
		t.Skip("uses real sleeps")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var renders []time.Time
	drawer := drawerFunc(func(HeaderInfo, config.RefreshConfig, SampleSet) error {
		mu.Lock()
		defer mu.Unlock()
		renders = append(renders, time.Now())
		return nil
	})

	var cycles []Cycle
	interval := 20 * time.Millisecond
	l, err := NewLoop(newFakeContext(), staticSource(nil), drawer,
		config.RefreshConfig{Interval: interval, SortColumn: config.ExchangesTotal},
		WithCycleHook(stopAfter(3, cancel, &cycles)))
	require.NoError(t, err)
	require.NoError(t, l.Run(ctx))

	require.Len(t, renders, 3)
	for i := 1; i < len(renders); i++ {
		assert.GreaterOrEqual(t, renders[i].Sub(renders[i-1]), interval)
	}
}

func TestLoop_CollectFailureSkipsCycle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	source := sourceFunc(func(context.Context, Context) (SampleSet, error) {
		calls++
		if calls == 2 {
			return nil, ctoperrors.New(ctoperrors.ErrCollect, "Management registry unavailable", "")
		}
		return totals("a", calls), nil
	})

	log := logger.NewBufferLogger()
	drawer := &recordingDrawer{}
	var cycles []Cycle
	l, err := NewLoop(newFakeContext(), source, drawer, config.DefaultRefreshConfig(),
		WithClock(newFakeClock()), WithLogger(log), WithCycleHook(stopAfter(3, cancel, &cycles)))
	require.NoError(t, err)

	require.NoError(t, l.Run(ctx), "collection failures never leave the loop")

	frames := drawer.Frames()
	require.Len(t, frames, 2)
	assert.Equal(t, int64(1), frames[0][0].ExchangesTotal)
	assert.Equal(t, int64(3), frames[1][0].ExchangesTotal)

	require.Len(t, cycles, 3)
	assert.False(t, cycles[1].Rendered)
	assert.True(t, ctoperrors.IsCode(cycles[1].Err, ctoperrors.ErrCollect))
	assert.True(t, log.HasLevel("debug"))
	assert.False(t, log.HasLevel("error"), "nothing is surfaced above debug")
}

func TestLoop_RenderErrorAbsorbed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	drawer := &recordingDrawer{err: errors.New("broken pipe")}
	var cycles []Cycle
	l, err := NewLoop(newFakeContext(), staticSource(totals("a", 1)), drawer, config.DefaultRefreshConfig(),
		WithClock(newFakeClock()), WithCycleHook(stopAfter(3, cancel, &cycles)))
	require.NoError(t, err)

	require.NoError(t, l.Run(ctx))
	assert.Len(t, drawer.Frames(), 3, "the loop keeps drawing after a failed write")
	for _, c := range cycles {
		assert.False(t, c.Rendered)
		assert.Error(t, c.Err)
	}
}

func TestLoop_CancelDuringPoll(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := sourceFunc(func(context.Context, Context) (SampleSet, error) {
		cancel()
		return totals("a", 1), nil
	})
	drawer := &recordingDrawer{}

	l, err := NewLoop(newFakeContext(), source, drawer, config.DefaultRefreshConfig(), WithClock(newFakeClock()))
	require.NoError(t, err)

	require.NoError(t, l.Run(ctx))
	assert.Empty(t, drawer.Frames(), "nothing is drawn once cancelled")
	assert.Equal(t, StateStopped, l.State())
}

func TestLoop_CancelDuringSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	drawer := &recordingDrawer{}
	rendered := make(chan struct{})
	l, err := NewLoop(newFakeContext(), staticSource(totals("a", 1)), drawer, config.DefaultRefreshConfig(),
		WithClock(stuckClock{}),
		WithCycleHook(func(Cycle) { close(rendered) }))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	<-rendered
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop on cancellation")
	}
	assert.Len(t, drawer.Frames(), 1)
}

func TestLoop_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	polled := false
	source := sourceFunc(func(context.Context, Context) (SampleSet, error) {
		polled = true
		return nil, nil
	})
	l, err := NewLoop(newFakeContext(), source, &recordingDrawer{}, config.DefaultRefreshConfig())
	require.NoError(t, err)

	require.NoError(t, l.Run(ctx))
	assert.False(t, polled)
}

func TestLoop_RunTwice(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l, err := NewLoop(newFakeContext(), staticSource(nil), &recordingDrawer{}, config.DefaultRefreshConfig())
	require.NoError(t, err)
	require.NoError(t, l.Run(ctx))
	assert.ErrorIs(t, l.Run(ctx), ErrLoopStarted)
}

func TestLoop_States(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var l *Loop
	var seen []State
	source := sourceFunc(func(context.Context, Context) (SampleSet, error) {
		seen = append(seen, l.State())
		return nil, nil
	})
	drawer := drawerFunc(func(HeaderInfo, config.RefreshConfig, SampleSet) error {
		seen = append(seen, l.State())
		return nil
	})

	var cycles []Cycle
	var err error
	l, err = NewLoop(newFakeContext(), source, drawer, config.DefaultRefreshConfig(),
		WithClock(newFakeClock()), WithCycleHook(stopAfter(2, cancel, &cycles)))
	require.NoError(t, err)
	require.NoError(t, l.Run(ctx))

	assert.Equal(t, []State{StatePolling, StateRendering, StatePolling, StateRendering}, seen)
	assert.Equal(t, StateStopped, l.State())
}

func TestLoop_ExcludesPartialRoutes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := mgmt.NewRegistry()
	register(t, reg, "billing", "healthy", routeAttributes("billing", 1))
	partial := routeAttributes("billing", 1)
	delete(partial, "TotalProcessingTime")
	register(t, reg, "billing", "partial", partial)

	var buf bytes.Buffer
	var cycles []Cycle
	l, err := NewLoop(newFakeContext("partial", "healthy"), NewCollector(reg),
		NewRenderer(&buf, WithColorMode(config.ColorNever)), config.DefaultRefreshConfig(),
		WithClock(newFakeClock()), WithCycleHook(stopAfter(1, cancel, &cycles)))
	require.NoError(t, err)
	require.NoError(t, l.Run(ctx))

	require.Len(t, cycles, 1)
	assert.True(t, cycles[0].Rendered)
	assert.Equal(t, 1, cycles[0].Rows)

	out := buf.String()
	assert.Contains(t, out, "\nhealthy ")
	assert.False(t, strings.Contains(out, "\npartial"), "partial route is not drawn")
}

type drawerFunc func(HeaderInfo, config.RefreshConfig, SampleSet) error

func (f drawerFunc) Render(h HeaderInfo, cfg config.RefreshConfig, rows SampleSet) error {
	return f(h, cfg, rows)
}
