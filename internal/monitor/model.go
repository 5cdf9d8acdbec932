package monitor

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/savoirtech/ctop/internal/config"
	"github.com/savoirtech/ctop/internal/logger"
)

// collectTimeout bounds one collection in interactive mode.
const collectTimeout = 5 * time.Second

// Model is the Bubble Tea model for the interactive display. It drives the
// same collector, sorter and frame as the plain loop, but lets the sort
// column and direction be changed while running.
type Model struct {
	handle   Context
	source   Source
	renderer *Renderer
	cfg      config.RefreshConfig
	keys     KeyMap
	help     help.Model
	log      logger.Logger
	now      func() time.Time

	header     HeaderInfo
	rows       SampleSet // last good collection, in collection order
	lastUpdate time.Time
	lastErr    error
	collecting bool
	width      int
	height     int
	quitting   bool
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// refreshMsg asks for a collection outside the tick schedule.
type refreshMsg struct{}

// samplesMsg carries the result of one collection.
type samplesMsg struct {
	rows   SampleSet
	header HeaderInfo
	err    error
	time   time.Time
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithModelLogger sets the logger used for skipped cycles.
func WithModelLogger(l logger.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithModelClock replaces time.Now for the "updated" line.
func WithModelClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// NewModel validates cfg and builds the interactive model.
func NewModel(handle Context, source Source, renderer *Renderer, cfg config.RefreshConfig, opts ...ModelOption) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}

	m := Model{
		handle:   handle,
		source:   source,
		renderer: renderer,
		cfg:      cfg,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		log:      logger.Noop(),
		now:      time.Now,
		header:   HeaderFrom(handle),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m, nil
}

// Init starts the tick timer and requests the first collection.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), func() tea.Msg { return refreshMsg{} })
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		collect := m.startCollect()
		return m, tea.Batch(m.tickCmd(), collect)

	case refreshMsg:
		collect := m.startCollect()
		return m, collect

	case samplesMsg:
		m.collecting = false
		if msg.err != nil {
			// Keep the last good frame; the cycle is skipped.
			m.lastErr = msg.err
			m.log.Debug("interactive refresh skipped: %v", msg.err)
			return m, nil
		}
		m.lastErr = nil
		m.rows = msg.rows
		m.header = msg.header
		m.lastUpdate = msg.time
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextSort):
		m.cfg.SortColumn = m.cfg.SortColumn.Next()

	case key.Matches(msg, m.keys.PrevSort):
		m.cfg.SortColumn = m.cfg.SortColumn.Prev()

	case key.Matches(msg, m.keys.Reverse):
		m.cfg.Reverse = !m.cfg.Reverse

	case key.Matches(msg, m.keys.Refresh):
		return m, func() tea.Msg { return refreshMsg{} }

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// View renders the display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderer.Frame(m.header, m.cfg, Sort(m.rows, m.cfg.SortColumn, m.cfg.Reverse)))
	b.WriteString(m.renderDetails())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderDetails renders the extended context flags and totals.
func (m Model) renderDetails() string {
	s := m.renderer.Styles()

	flag := func(name string, on bool) string {
		style := s.FlagOff
		if on {
			style = s.Flag
		}
		return s.Label.Render(name+": ") + style.Render(strconv.FormatBool(on))
	}

	parts := []string{
		flag("AutoStartup", m.header.AutoStartup),
		flag("StartingRoutes", m.header.StartingRoutes),
		flag("Suspended", m.header.Suspended),
		flag("Tracing", m.header.Tracing),
		s.Label.Render("Exchanges: ") + s.Value.Render(humanize.Comma(m.rows.Sum(config.ExchangesTotal))),
	}

	updated := "waiting for first refresh"
	if !m.lastUpdate.IsZero() {
		updated = "updated " + humanize.RelTime(m.lastUpdate, m.now(), "ago", "from now")
	}
	if m.lastErr != nil {
		updated += " (last refresh skipped)"
	}
	parts = append(parts, s.Footer.Render(updated))

	return strings.Join(parts, "  ")
}

// SortColumn returns the active sort column.
func (m Model) SortColumn() config.DisplayColumn {
	return m.cfg.SortColumn
}

// Reverse reports whether rows are sorted descending.
func (m Model) Reverse() bool {
	return m.cfg.Reverse
}

// Rows returns the last collected samples in collection order.
func (m Model) Rows() SampleSet {
	return m.rows
}

// startCollect begins a collection unless one is already in flight.
func (m *Model) startCollect() tea.Cmd {
	if m.collecting {
		return nil
	}
	m.collecting = true
	return m.collectCmd()
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// collectCmd returns a command that collects one sample set.
func (m Model) collectCmd() tea.Cmd {
	handle, source, now := m.handle, m.source, m.now
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
		defer cancel()

		rows, err := source.Collect(ctx, handle)
		return samplesMsg{
			rows:   rows,
			header: HeaderFrom(handle),
			err:    err,
			time:   now(),
		}
	}
}
