package ui

import "github.com/charmbracelet/lipgloss"

// Text colors using ANSI color codes for terminal compatibility.
const (
	ColorPrimary lipgloss.Color = "7" // White/default
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
)
