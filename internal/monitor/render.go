package monitor

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/savoirtech/ctop/internal/config"
	"github.com/savoirtech/ctop/internal/errors"
)

// ClearScreen erases the display and moves the cursor to the top-left corner.
var ClearScreen = termenv.CSI + fmt.Sprintf(termenv.EraseDisplaySeq, 2) +
	termenv.CSI + fmt.Sprintf(termenv.CursorPositionSeq, 1, 1)

// Table geometry
const (
	routeIDHeader = "RouteID"
	cellWidth     = 12
)

// Renderer draws frames to a console.
type Renderer struct {
	out    io.Writer
	styles Styles
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererOptions)

type rendererOptions struct {
	color string
}

// WithColorMode selects auto, always or never coloring.
func WithColorMode(mode string) RendererOption {
	return func(o *rendererOptions) {
		o.color = mode
	}
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer, opts ...RendererOption) *Renderer {
	o := rendererOptions{color: config.ColorAuto}
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{
		out:    w,
		styles: NewStyles(newLipglossRenderer(w, o.color)),
	}
}

// Styles returns the styles bound to the renderer's output.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Render clears the console and draws one frame. The frame is written with
// a single Write call.
func (r *Renderer) Render(header HeaderInfo, cfg config.RefreshConfig, rows SampleSet) error {
	frame := ClearScreen + r.Frame(header, cfg, rows)
	if _, err := io.WriteString(r.out, frame); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Failed to draw frame",
			"The frame is dropped and redrawn on the next refresh")
	}
	return nil
}

// Frame returns the frame content without the clear sequence.
func (r *Renderer) Frame(header HeaderInfo, cfg config.RefreshConfig, rows SampleSet) string {
	s := r.styles
	idWidth := routeIDWidth(rows)
	widths := columnWidths(rows)
	total := idWidth
	for _, w := range widths {
		total += w
	}
	separator := s.Separator.Render(strings.Repeat("-", total))

	var b strings.Builder

	b.WriteString(r.headerLine(header))
	b.WriteString("\n")

	b.WriteString(s.Label.Render("Sorted by: "))
	b.WriteString(s.Value.Render(cfg.SortColumn.String()))
	b.WriteString(s.Label.Render(" (" + cfg.Direction() + ")"))
	b.WriteString("\n")

	b.WriteString(separator)
	b.WriteString("\n")

	b.WriteString(s.Column.Render(padRight(routeIDHeader, idWidth)))
	for _, col := range config.Columns() {
		cell := fmt.Sprintf("%*s", widths[col], col.Label())
		if col == cfg.SortColumn {
			b.WriteString(s.ActiveColumn.Render(cell))
		} else {
			b.WriteString(s.Column.Render(cell))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		b.WriteString(s.RouteID.Render(padRight(row.ID, idWidth)))
		for _, col := range config.Columns() {
			b.WriteString(s.Cell.Render(fmt.Sprintf("%*d", widths[col], row.Value(col))))
		}
		b.WriteString("\n")
	}

	b.WriteString(s.Footer.Render(fmt.Sprintf(
		"Note: Context stats updated at %d ms intervals. Press Ctrl+C to exit.",
		cfg.IntervalMillis())))
	b.WriteString("\n")

	b.WriteString(separator)
	b.WriteString("\n")

	return b.String()
}

func (r *Renderer) headerLine(h HeaderInfo) string {
	s := r.styles
	return s.Title.Render("ctop") + " " +
		s.Label.Render("Context: ") + s.Value.Render(h.Name) + " " +
		s.Label.Render("Version: ") + s.Value.Render(h.Version) + " " +
		s.Label.Render("Status: ") + s.StatusStyle(h.Status).Render(h.Status) + " " +
		s.Label.Render("Uptime: ") + s.Value.Render(h.Uptime)
}

// routeIDWidth is the display width of the widest route id, at least the
// width of the column header.
func routeIDWidth(rows SampleSet) int {
	width := lipgloss.Width(routeIDHeader)
	for _, row := range rows {
		if w := lipgloss.Width(row.ID); w > width {
			width = w
		}
	}
	return width
}

// columnWidths returns the width of every counter column, indexed by
// column. A column is cellWidth wide unless its label or one of its values
// needs more; cells keep at least one leading space.
func columnWidths(rows SampleSet) []int {
	cols := config.Columns()
	widths := make([]int, len(cols))
	for i, col := range cols {
		widths[i] = max(cellWidth, lipgloss.Width(col.Label())+1)
		for _, row := range rows {
			widths[i] = max(widths[i], len(strconv.FormatInt(row.Value(col), 10))+1)
		}
	}
	return widths
}

func padRight(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
