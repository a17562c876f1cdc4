package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	NextRegion key.Binding
	PrevRegion key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Enter      key.Binding
	Add        key.Binding
	Remove     key.Binding
	Reload     key.Binding
	Close      key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextRegion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "region"),
		),
		PrevRegion: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "backspace", "delete"),
			key.WithHelp("d", "remove"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "x"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DetailKeyMap returns keybindings active while the detail overlay is open.
// Region navigation is disabled so arrows scroll the overlay.
func DetailKeyMap() KeyMap {
	km := DefaultKeyMap()
	km.NextRegion.SetEnabled(false)
	km.PrevRegion.SetEnabled(false)
	km.Left.SetEnabled(false)
	km.Right.SetEnabled(false)
	km.Enter.SetEnabled(false)
	km.Remove.SetEnabled(false)
	km.Reload.SetEnabled(false)
	km.Up.SetHelp("↑/k", "scroll")
	km.Down.SetHelp("↓/j", "scroll")
	return km
}
