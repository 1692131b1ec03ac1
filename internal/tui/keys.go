package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the board key bindings with built-in help text.
type KeyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	About     key.Binding
	Back      key.Binding

	// Board
	PrevDate key.Binding
	NextDate key.Binding
	Up       key.Binding
	Down     key.Binding
	Reload   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		About: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "about"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "a", "b"),
			key.WithHelp("esc", "back"),
		),

		PrevDate: key.NewBinding(
			key.WithKeys("left", "["),
			key.WithHelp("←/[", "prev date"),
		),
		NextDate: key.NewBinding(
			key.WithKeys("right", "]"),
			key.WithHelp("→/]", "next date"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevDate, k.NextDate, k.About, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevDate, k.NextDate, k.Up, k.Down},
		{k.About, k.Reload},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
