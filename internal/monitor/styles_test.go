package monitor

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/savoirtech/ctop/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestStyles_StatusStyle(t *testing.T) {
	s := NewStyles(lipgloss.NewRenderer(&bytes.Buffer{}))

	tests := []struct {
		status string
		expect lipgloss.TerminalColor
	}{
		{"Started", ColorHealthy},
		{"Starting", ColorWarning},
		{"Suspended", ColorWarning},
		{"Stopped", ColorCritical},
		{"Unknown", ColorTextPrimary},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.expect, s.StatusStyle(tt.status).GetForeground())
		})
	}
}

func TestNewLipglossRenderer_Profiles(t *testing.T) {
	var buf bytes.Buffer

	assert.Equal(t, termenv.Ascii, newLipglossRenderer(&buf, config.ColorNever).ColorProfile())
	assert.Equal(t, termenv.ANSI256, newLipglossRenderer(&buf, config.ColorAlways).ColorProfile())
	assert.Equal(t, termenv.Ascii, newLipglossRenderer(&buf, config.ColorAuto).ColorProfile(), "buffers are not terminals")

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, newLipglossRenderer(&buf, config.ColorAuto).ColorProfile())
}
