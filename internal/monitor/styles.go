package monitor

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/savoirtech/ctop/internal/config"
)

// Display color palette
const (
	// Text colors
	ColorTextPrimary   = lipgloss.Color("#FFFFFF") // Pure white
	ColorTextSecondary = lipgloss.Color("#B4B4D0") // Lavender gray
	ColorTextMuted     = lipgloss.Color("#6B6B8D") // Purple-gray

	// Semantic colors for context status
	ColorHealthy  = lipgloss.Color("#39FF14") // Neon green
	ColorWarning  = lipgloss.Color("#FFAA00") // Electric amber
	ColorCritical = lipgloss.Color("#FF0055") // Hot red-pink

	// Accent colors
	ColorAccent = lipgloss.Color("#FF2E97") // Neon pink

	// Separator lines
	ColorSeparator = lipgloss.Color("#00FFFF") // Neon cyan
)

// Styles holds every style used to draw a frame. Styles are bound to one
// lipgloss renderer so the color profile follows the output they are
// written to.
type Styles struct {
	Title        lipgloss.Style
	Label        lipgloss.Style
	Value        lipgloss.Style
	Separator    lipgloss.Style
	Column       lipgloss.Style
	ActiveColumn lipgloss.Style
	RouteID      lipgloss.Style
	Cell         lipgloss.Style
	Footer       lipgloss.Style
	Flag         lipgloss.Style
	FlagOff      lipgloss.Style
}

// NewStyles builds the display styles on r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().
			Foreground(ColorAccent).
			Bold(true),

		Label: r.NewStyle().
			Foreground(ColorTextSecondary),

		Value: r.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true),

		Separator: r.NewStyle().
			Foreground(ColorSeparator),

		Column: r.NewStyle().
			Foreground(ColorTextSecondary).
			Bold(true),

		ActiveColumn: r.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Underline(true),

		RouteID: r.NewStyle().
			Foreground(ColorTextPrimary),

		Cell: r.NewStyle().
			Foreground(ColorTextPrimary),

		Footer: r.NewStyle().
			Foreground(ColorTextMuted),

		Flag: r.NewStyle().
			Foreground(ColorHealthy),

		FlagOff: r.NewStyle().
			Foreground(ColorTextMuted),
	}
}

// StatusStyle returns the style for a context status string.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	switch status {
	case "Started":
		return s.Value.Foreground(ColorHealthy)
	case "Starting", "Suspended":
		return s.Value.Foreground(ColorWarning)
	case "Stopped":
		return s.Value.Foreground(ColorCritical)
	default:
		return s.Value
	}
}

// newLipglossRenderer binds a lipgloss renderer to w for the given color
// mode. In auto mode the profile is detected from w, so buffers and pipes
// get plain text and NO_COLOR is honored.
func newLipglossRenderer(w io.Writer, mode string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case config.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case config.ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	default:
		if os.Getenv("NO_COLOR") != "" {
			r.SetColorProfile(termenv.Ascii)
		}
	}
	return r
}
