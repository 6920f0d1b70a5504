package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/consulteja/internal/ui/theme"
)

type helpSection struct {
	Title    string
	Bindings []helpBinding
}

type helpBinding struct {
	Key  string
	Desc string
}

var helpSections = []helpSection{
	{
		Title: "General",
		Bindings: []helpBinding{
			{"Ctrl+C / q", "Quit"},
			{"Ctrl+K", "Open command palette"},
			{"Ctrl+O", "Open a recent lookup"},
			{"?", "Toggle this help"},
			{"Tab", "Cycle focus forward"},
			{"Shift+Tab", "Cycle focus backward"},
			{"1 / 2 / 3", "Focus search / result / history"},
			{"t", "Toggle light / dark theme"},
			{"c", "Toggle color-blind mode"},
			{"b", "Toggle history sidebar"},
		},
	},
	{
		Title: "Search",
		Bindings: []helpBinding{
			{"/ or i", "Type a barcode"},
			{"Enter", "Look up"},
			{"Esc", "Return to normal mode"},
			{"Ctrl+U", "Clear the input"},
		},
	},
	{
		Title: "Result",
		Bindings: []helpBinding{
			{"j / k", "Scroll down / up"},
			{"r", "Toggle details / raw JSON"},
			{"y", "Copy product JSON"},
			{"Y", "Copy barcode"},
		},
	},
	{
		Title: "History",
		Bindings: []helpBinding{
			{"j / k", "Move cursor down / up"},
			{"Enter", "Show selected product"},
			{"/", "Filter entries"},
			{"D", "Clear history"},
		},
	},
}

// Help is a help overlay showing keybindings.
type Help struct {
	Visible  bool
	viewport viewport.Model
	theme    theme.Theme
	width    int
	height   int
	ready    bool
}

// NewHelp creates a new help overlay.
func NewHelp(t theme.Theme) Help {
	return Help{theme: t}
}

// SetTheme swaps colors after a theme toggle.
func (m *Help) SetTheme(t theme.Theme) {
	m.theme = t
	m.ready = false
}

// SetSize sets the terminal dimensions for centering.
func (m *Help) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Toggle toggles help visibility.
func (m *Help) Toggle() {
	m.Visible = !m.Visible
	if m.Visible {
		m.buildViewport()
	}
}

func (m *Help) buildViewport() {
	boxWidth := 60
	contentWidth := boxWidth - 6 // padding + border

	keyStyle := lipgloss.NewStyle().
		Foreground(m.theme.Accent).
		Bold(true).
		Width(14).
		Align(lipgloss.Right)
	descStyle := lipgloss.NewStyle().Foreground(m.theme.Text)
	sectionStyle := lipgloss.NewStyle().
		Foreground(m.theme.Subtext).
		Bold(true).
		MarginTop(1)
	sepStyle := lipgloss.NewStyle().Foreground(m.theme.Muted)

	var lines []string
	for _, section := range helpSections {
		lines = append(lines, sectionStyle.Render(section.Title))
		lines = append(lines, sepStyle.Render(strings.Repeat("─", contentWidth)))
		for _, b := range section.Bindings {
			lines = append(lines, keyStyle.Render(b.Key)+sepStyle.Render(" │ ")+descStyle.Render(b.Desc))
		}
	}

	vpHeight := m.height - 8
	if vpHeight < 10 {
		vpHeight = 10
	}

	m.viewport = viewport.New(contentWidth, vpHeight)
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.ready = true
}

// Update implements tea.Model.
func (m Help) Update(msg tea.Msg) (Help, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "?", "q":
			m.Visible = false
			return m, backToNormal
		}
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the help overlay.
func (m Help) View() string {
	if !m.Visible {
		return ""
	}
	if !m.ready {
		m.buildViewport()
	}

	title := lipgloss.NewStyle().
		Foreground(m.theme.Text).
		Bold(true).
		Width(54).
		Align(lipgloss.Center).
		Render("Keyboard Shortcuts")

	return lipgloss.NewStyle().
		Width(60).
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderFocused).
		Padding(1, 2).
		Render(title + "\n\n" + m.viewport.View())
}
