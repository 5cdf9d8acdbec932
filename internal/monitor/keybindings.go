package monitor

import "github.com/charmbracelet/bubbles/key"

// Key bindings as constants for consistency.
const (
	KeyQuit       = "q"
	KeyQuitAlt    = "ctrl+c"
	KeyNextSort   = "s"
	KeyPrevSort   = "S"
	KeyReverse    = "r"
	KeyRefresh    = " "
	KeyToggleHelp = "?"
)

// KeyMap holds the interactive key bindings. It implements help.KeyMap.
type KeyMap struct {
	Quit     key.Binding
	NextSort key.Binding
	PrevSort key.Binding
	Reverse  key.Binding
	Refresh  key.Binding
	Help     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys(KeyQuit, KeyQuitAlt),
			key.WithHelp("q", "quit"),
		),
		NextSort: key.NewBinding(
			key.WithKeys(KeyNextSort),
			key.WithHelp("s", "next sort column"),
		),
		PrevSort: key.NewBinding(
			key.WithKeys(KeyPrevSort),
			key.WithHelp("S", "previous sort column"),
		),
		Reverse: key.NewBinding(
			key.WithKeys(KeyReverse),
			key.WithHelp("r", "reverse order"),
		),
		Refresh: key.NewBinding(
			key.WithKeys(KeyRefresh),
			key.WithHelp("space", "refresh now"),
		),
		Help: key.NewBinding(
			key.WithKeys(KeyToggleHelp),
			key.WithHelp("?", "more keys"),
		),
	}
}

// ShortHelp returns the bindings shown in the one-line help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.NextSort, k.Reverse, k.Help}
}

// FullHelp returns every binding, grouped into columns.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextSort, k.PrevSort, k.Reverse},
		{k.Refresh, k.Help, k.Quit},
	}
}
