// Package monitor implements the live route statistics display.
//
// Every refresh cycle reads the counters of each route in one routing
// context from the management registry, orders them by a chosen column and
// redraws a fixed-width table on the console.
//
// # Key Components
//
//	Collector   - Reads the eight route counters per cycle, skipping incomplete routes
//	Sort        - Stable ordering of a SampleSet by one DisplayColumn
//	Renderer    - Draws header, table and footer in a single write
//	Loop        - Poll, sort, render, sleep until cancelled
//	Model       - Bubble Tea model for the interactive mode
//
// # Refresh Cycle
//
// The plain loop runs strictly sequential cycles:
//
//  1. Polling: Collector.Collect builds a fresh SampleSet
//  2. Rendering: Sort orders it, Renderer.Render draws it
//  3. Sleeping: wait for the configured interval
//
// A failed collection skips straight to sleeping; a failed write is dropped.
// Neither stops the loop. Only cancelling the context passed to Run does.
//
// # Exclusion Policy
//
// A route appears in a cycle only if exactly one management entry matches
// it, the entry's ContextId names the monitored context, and all eight
// counters read as non-negative integers. Anything else leaves the route
// out of that cycle without failing it.
//
// # Keyboard Shortcuts
//
// The interactive mode is handled via keybindings defined in keybindings.go:
//
//	q, Ctrl+C   - Quit
//	s / S       - Next / previous sort column
//	r           - Reverse sort order
//	Space       - Refresh now
//	?           - Toggle full help
package monitor
