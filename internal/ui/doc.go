// Package ui provides the styled one-shot output of ctop's commands.
//
// The live display lives in the monitor package; this package covers the
// plain listings printed by commands such as "ctop contexts".
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorPrimary   (white) - Headers and cells
//	ColorMuted     (gray)  - Table borders
//
// # Symbols
//
//	SymbolComplete (filled)     - Started
//	SymbolProgress (half-fill)  - Starting or suspended
//	SymbolPending  (circle)     - Stopped
package ui
