package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/consulteja/internal/ui/layout"
	"github.com/sadopc/consulteja/internal/ui/msgs"
)

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Quit) {
		return a, tea.Quit
	}

	if a.commandPalette.Visible {
		var cmd tea.Cmd
		a.commandPalette, cmd = a.commandPalette.Update(msg)
		return a, cmd
	}
	if a.help.Visible {
		var cmd tea.Cmd
		a.help, cmd = a.help.Update(msg)
		return a, cmd
	}
	if a.modal.Visible {
		var cmd tea.Cmd
		a.modal, cmd = a.modal.Update(msg)
		return a, cmd
	}

	if key.Matches(msg, a.keys.CommandPalette) {
		return a, func() tea.Msg { return msgs.OpenCommandPaletteMsg{} }
	}
	if key.Matches(msg, a.keys.HistoryPicker) {
		return a, func() tea.Msg { return msgs.OpenHistoryPickerMsg{} }
	}
	if key.Matches(msg, a.keys.CycleFocus) {
		return a, a.cycleFocus(false)
	}
	if key.Matches(msg, a.keys.CycleFocusRev) {
		return a, a.cycleFocus(true)
	}

	if a.focus == msgs.FocusSearch {
		return a.updateSearchInsert(msg)
	}
	if a.focus == msgs.FocusHistory && a.history.Filtering() {
		var cmd tea.Cmd
		a.history, cmd = a.history.Update(msg)
		return a, cmd
	}

	if cmd := a.handleNormalKey(msg); cmd != nil {
		return a, cmd
	}
	return a.handlePanelKey(msg)
}

// handleNormalKey handles single-letter shortcuts outside the text input.
func (a App) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.QuitNormal):
		return tea.Quit
	case key.Matches(msg, a.keys.Help):
		return func() tea.Msg { return msgs.ShowHelpMsg{} }
	case key.Matches(msg, a.keys.FocusSearch):
		return focusCmd(msgs.FocusSearch)
	case key.Matches(msg, a.keys.FocusResult):
		return focusCmd(msgs.FocusResult)
	case key.Matches(msg, a.keys.FocusHistory):
		return focusCmd(msgs.FocusHistory)
	case key.Matches(msg, a.keys.StartSearch):
		// "/" filters the history list while it has focus
		if a.focus == msgs.FocusHistory && msg.String() == "/" {
			return nil
		}
		return focusCmd(msgs.FocusSearch)
	case key.Matches(msg, a.keys.ToggleSidebar):
		return func() tea.Msg { return msgs.ToggleSidebarMsg{} }
	case key.Matches(msg, a.keys.ToggleTheme):
		return func() tea.Msg { return msgs.ToggleThemeMsg{} }
	case key.Matches(msg, a.keys.ToggleColorBlind):
		return func() tea.Msg { return msgs.ToggleColorBlindMsg{} }
	case key.Matches(msg, a.keys.ToggleRaw):
		return func() tea.Msg { return msgs.ToggleRawMsg{} }
	case key.Matches(msg, a.keys.CopyProduct):
		return func() tea.Msg { return msgs.CopyProductMsg{} }
	case key.Matches(msg, a.keys.CopyBarcode):
		return func() tea.Msg { return msgs.CopyBarcodeMsg{} }
	case key.Matches(msg, a.keys.ClearHistory):
		return func() tea.Msg { return msgs.ClearHistoryMsg{} }
	}
	return nil
}

func focusCmd(p msgs.PanelFocus) tea.Cmd {
	return func() tea.Msg { return msgs.FocusPanelMsg{Panel: p} }
}

func (a App) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.focus {
	case msgs.FocusResult:
		a.result, cmd = a.result.Update(msg)
	case msgs.FocusHistory:
		a.history, cmd = a.history.Update(msg)
	}
	return a, cmd
}

func (a App) updateSearchInsert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		return a, a.setFocus(msgs.FocusResult)
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return a, cmd
}

func (a *App) cycleFocus(reverse bool) tea.Cmd {
	panels := []msgs.PanelFocus{msgs.FocusSearch, msgs.FocusResult, msgs.FocusHistory}
	if !a.layout.SidebarVisible && !a.layout.Compact {
		panels = panels[:2]
	}

	idx := 0
	for i, p := range panels {
		if p == a.focus {
			idx = i
			break
		}
	}

	if reverse {
		idx = (idx - 1 + len(panels)) % len(panels)
	} else {
		idx = (idx + 1) % len(panels)
	}

	return a.setFocus(panels[idx])
}

// setFocus moves focus to p. The search bar is the only panel in insert mode.
func (a *App) setFocus(p msgs.PanelFocus) tea.Cmd {
	if p == msgs.FocusHistory && !a.layout.SidebarVisible && !a.layout.Compact && a.ready {
		a.sidebarVisible = true
		a.layout = layout.Calculate(a.width, a.height, true)
		a.resizePanels()
	}
	a.focus = p
	if p == msgs.FocusSearch {
		a.setMode(msgs.ModeInsert)
	} else {
		a.setMode(msgs.ModeNormal)
	}
	return a.updateFocus()
}

func (a *App) updateFocus() tea.Cmd {
	cmd := a.search.SetFocused(a.focus == msgs.FocusSearch)
	a.result.SetFocused(a.focus == msgs.FocusResult)
	a.history.SetFocused(a.focus == msgs.FocusHistory)
	return cmd
}
