package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"github.com/sadopc/consulteja/internal/core/history"
	"github.com/sadopc/consulteja/internal/ui/msgs"
	"github.com/sadopc/consulteja/internal/ui/theme"
)

// paletteCommand is a command entry in the palette.
type paletteCommand struct {
	Name     string
	Shortcut string
	Msg      tea.Msg
}

var defaultCommands = []paletteCommand{
	{Name: "Look Up Barcode", Shortcut: "/", Msg: msgs.FocusPanelMsg{Panel: msgs.FocusSearch}},
	{Name: "Toggle Theme (Light/Dark)", Shortcut: "t", Msg: msgs.ToggleThemeMsg{}},
	{Name: "Toggle Color-Blind Mode", Shortcut: "c", Msg: msgs.ToggleColorBlindMsg{}},
	{Name: "Toggle Raw JSON", Shortcut: "r", Msg: msgs.ToggleRawMsg{}},
	{Name: "Copy Product JSON", Shortcut: "y", Msg: msgs.CopyProductMsg{}},
	{Name: "Copy Barcode", Shortcut: "Y", Msg: msgs.CopyBarcodeMsg{}},
	{Name: "Open Recent Lookup", Shortcut: "Ctrl+O", Msg: msgs.OpenHistoryPickerMsg{}},
	{Name: "Focus History", Shortcut: "3", Msg: msgs.FocusPanelMsg{Panel: msgs.FocusHistory}},
	{Name: "Toggle History Sidebar", Shortcut: "b", Msg: msgs.ToggleSidebarMsg{}},
	{Name: "Clear History", Shortcut: "D", Msg: msgs.ClearHistoryMsg{}},
	{Name: "Help", Shortcut: "?", Msg: msgs.ShowHelpMsg{}},
	{Name: "Quit", Shortcut: "Ctrl+C", Msg: tea.Quit()},
}

const defaultPlaceholder = "Type a command..."

// CommandPalette is a fuzzy command palette overlay.
type CommandPalette struct {
	Visible  bool
	input    textinput.Model
	commands []paletteCommand
	filtered []paletteCommand
	cursor   int
	theme    theme.Theme
}

// NewCommandPalette creates a new command palette.
func NewCommandPalette(t theme.Theme) CommandPalette {
	ti := textinput.New()
	ti.Placeholder = defaultPlaceholder
	ti.CharLimit = 64
	ti.Width = 54

	return CommandPalette{
		input:    ti,
		commands: defaultCommands,
		filtered: defaultCommands,
		theme:    t,
	}
}

// SetTheme swaps colors after a theme toggle.
func (m *CommandPalette) SetTheme(t theme.Theme) { m.theme = t }

// Open shows the command palette.
func (m *CommandPalette) Open() {
	m.open(defaultCommands, defaultPlaceholder)
}

// OpenHistoryPicker opens the palette over the history entries.
func (m *CommandPalette) OpenHistoryPicker(entries []history.Entry) {
	cmds := make([]paletteCommand, len(entries))
	for i, e := range entries {
		cmds[i] = paletteCommand{
			Name:     e.Product.Name,
			Shortcut: e.Product.Barcode,
			Msg:      msgs.HistorySelectedMsg{ID: e.ID},
		}
	}
	m.open(cmds, "Search history...")
}

func (m *CommandPalette) open(cmds []paletteCommand, placeholder string) {
	m.Visible = true
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	m.input.Focus()
	m.commands = cmds
	m.filtered = cmds
	m.cursor = 0
}

// Close hides the command palette and restores the default commands.
func (m *CommandPalette) Close() {
	m.Visible = false
	m.input.Blur()
	m.commands = defaultCommands
	m.filtered = defaultCommands
	m.input.Placeholder = defaultPlaceholder
}

// Update implements tea.Model.
func (m CommandPalette) Update(msg tea.Msg) (CommandPalette, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.Close()
			return m, backToNormal
		case "enter":
			if m.cursor < len(m.filtered) {
				selected := m.filtered[m.cursor]
				m.Close()
				return m, tea.Batch(backToNormal, func() tea.Msg { return selected.Msg })
			}
			return m, nil
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filter(m.input.Value())
	return m, cmd
}

// filter matches query against names and shortcuts, so history entries can
// be found by barcode too.
func (m *CommandPalette) filter(query string) {
	if query == "" {
		m.filtered = m.commands
	} else {
		targets := make([]string, len(m.commands))
		for i, c := range m.commands {
			targets[i] = c.Name + " " + c.Shortcut
		}
		matches := fuzzy.Find(query, targets)
		m.filtered = make([]paletteCommand, len(matches))
		for i, match := range matches {
			m.filtered[i] = m.commands[match.Index]
		}
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the command palette overlay.
func (m CommandPalette) View() string {
	if !m.Visible {
		return ""
	}

	boxWidth := 60
	innerWidth := boxWidth - 6

	title := lipgloss.NewStyle().
		Foreground(m.theme.Text).
		Bold(true).
		Width(boxWidth - 4).
		Align(lipgloss.Center).
		Render("Command Palette")

	maxItems := min(15, len(m.filtered))

	var items []string
	for i := 0; i < maxItems; i++ {
		c := m.filtered[i]

		nameWidth := innerWidth
		if c.Shortcut != "" {
			nameWidth -= runewidth.StringWidth(c.Shortcut) + 1
		}
		name := runewidth.Truncate(c.Name, nameWidth, "…")
		gap := max(1, innerWidth-runewidth.StringWidth(name)-runewidth.StringWidth(c.Shortcut))

		var line string
		if i == m.cursor {
			line = lipgloss.NewStyle().
				Background(m.theme.Overlay).
				Foreground(m.theme.Text).
				Width(boxWidth - 4).
				Render(name + strings.Repeat(" ", gap) + c.Shortcut)
		} else {
			line = lipgloss.NewStyle().Foreground(m.theme.Text).Render(name) +
				strings.Repeat(" ", gap) +
				lipgloss.NewStyle().Foreground(m.theme.Muted).Render(c.Shortcut)
		}
		items = append(items, line)
	}
	if len(items) == 0 {
		items = append(items, lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No matches"))
	}

	content := title + "\n\n" + m.input.View() + "\n\n" + strings.Join(items, "\n")

	return lipgloss.NewStyle().
		Width(boxWidth).
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderFocused).
		Padding(1, 2).
		Render(content)
}
