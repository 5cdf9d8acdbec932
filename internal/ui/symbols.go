package ui

// Unicode symbols for context status.
const (
	SymbolPending  = "○" // Stopped
	SymbolProgress = "◐" // Starting or suspended
	SymbolComplete = "●" // Started
)

// StatusSymbol returns the indicator for a context status string.
func StatusSymbol(status string) string {
	switch status {
	case "Started":
		return SymbolComplete
	case "Starting", "Suspended":
		return SymbolProgress
	default:
		return SymbolPending
	}
}
