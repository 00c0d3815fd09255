package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the kiosk key bindings. Screens with a text field use
// control keys for actions so letters stay typeable.
type KeyMap struct {
	// Login grid.
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Choose  key.Binding
	Admin   key.Binding
	Refresh key.Binding

	// Scan screen.
	Undo      key.Binding
	PinButton key.Binding
	Logout    key.Binding
	NextTile  key.Binding
	PrevTile  key.Binding
	BuyTile   key.Binding

	// Keypad, stocktake and dialogs.
	Submit    key.Binding
	Backspace key.Binding
	Cancel    key.Binding
	Yes       key.Binding
	No        key.Binding
	NextField key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("→", "right"),
	),
	Choose: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "log in"),
	),
	Admin: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "stocktake"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),

	Undo: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("C-u", "undo"),
	),
	PinButton: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("C-p", "PIN"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("C-x", "log out"),
	),
	NextTile: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next item"),
	),
	PrevTile: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "previous item"),
	),
	BuyTile: key.NewBinding(
		key.WithKeys("ctrl+b"),
		key.WithHelp("C-b", "buy item"),
	),

	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "ok"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("⌫", "clear"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n", "no"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "switch field"),
	),

	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}
