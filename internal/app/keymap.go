package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all application keybindings.
type KeyMap struct {
	// Global
	Quit           key.Binding
	QuitNormal     key.Binding
	CommandPalette key.Binding
	HistoryPicker  key.Binding
	Help           key.Binding

	// Panel navigation
	CycleFocus    key.Binding
	CycleFocusRev key.Binding
	FocusSearch   key.Binding
	FocusResult   key.Binding
	FocusHistory  key.Binding
	ToggleSidebar key.Binding
	StartSearch   key.Binding

	// Display
	ToggleTheme      key.Binding
	ToggleColorBlind key.Binding
	ToggleRaw        key.Binding

	// Actions
	CopyProduct  key.Binding
	CopyBarcode  key.Binding
	ClearHistory key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		QuitNormal: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		CommandPalette: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "command palette"),
		),
		HistoryPicker: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "recent lookups"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		CycleFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next panel"),
		),
		CycleFocusRev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev panel"),
		),
		FocusSearch: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "search"),
		),
		FocusResult: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "result"),
		),
		FocusHistory: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "history"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "toggle sidebar"),
		),
		StartSearch: key.NewBinding(
			key.WithKeys("/", "i"),
			key.WithHelp("/", "type a barcode"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "light/dark"),
		),
		ToggleColorBlind: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "color-blind mode"),
		),
		ToggleRaw: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "raw json"),
		),
		CopyProduct: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy json"),
		),
		CopyBarcode: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy barcode"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "clear history"),
		),
	}
}
