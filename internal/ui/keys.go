package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts for the application.
// Related bindings (Up/Down) share identical help text since they appear as
// a single row in the help overlay.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Home     key.Binding
	End      key.Binding
	Enter    key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Escape   key.Binding

	// Notes
	NewNote    key.Binding
	EditNote   key.Binding
	DeleteNote key.Binding
	Copy       key.Binding
	Save       key.Binding

	// Filters
	FilterTitle key.Binding
	FilterTags  key.Binding

	// Tags overlay
	ManageTags key.Binding
	RenameTag  key.Binding
	DeleteTag  key.Binding

	// General
	Theme key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default keybindings for notekeeper.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓  j/k", "Move up/down"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↑/↓  j/k", "Move up/down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home  g", "Jump to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End   G", "Jump to bottom"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎ (Enter)", "Open note"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("⇥ (Tab)", "Next field"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("⇧⇥", "Previous field"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Back/cancel"),
		),

		NewNote: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New note"),
		),
		EditNote: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit note"),
		),
		DeleteNote: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d d", "Delete note"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy markdown"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("Ctrl+S", "Save note"),
		),

		FilterTitle: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Filter by title"),
		),
		FilterTags: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Filter by tags"),
		),

		ManageTags: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Edit tags"),
		),
		RenameTag: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Rename tag"),
		),
		DeleteTag: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d d", "Delete tag"),
		),

		Theme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
	}
}
