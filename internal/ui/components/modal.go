package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/consulteja/internal/ui/msgs"
	"github.com/sadopc/consulteja/internal/ui/theme"
)

// Modal is a generic confirm dialog.
type Modal struct {
	Visible   bool
	Title     string
	Message   string
	onConfirm tea.Msg
	focusOK   bool
	theme     theme.Theme
}

// NewModal creates a new modal dialog.
func NewModal(t theme.Theme) Modal {
	return Modal{theme: t}
}

// SetTheme swaps colors after a theme toggle.
func (m *Modal) SetTheme(t theme.Theme) { m.theme = t }

// Show displays the modal with "No" focused.
func (m *Modal) Show(title, message string, onConfirm tea.Msg) {
	m.Visible = true
	m.Title = title
	m.Message = message
	m.onConfirm = onConfirm
	m.focusOK = false
}

func backToNormal() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeNormal} }

// Update implements tea.Model.
func (m Modal) Update(msg tea.Msg) (Modal, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "esc", "n":
		m.Visible = false
		return m, backToNormal
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.focusOK = !m.focusOK
	case "y":
		m.focusOK = true
		fallthrough
	case "enter":
		m.Visible = false
		if m.focusOK && m.onConfirm != nil {
			confirm := m.onConfirm
			return m, tea.Batch(backToNormal, func() tea.Msg { return confirm })
		}
		return m, backToNormal
	}
	return m, nil
}

// View renders the modal dialog.
func (m Modal) View() string {
	if !m.Visible {
		return ""
	}

	boxWidth := 50
	center := lipgloss.NewStyle().Width(boxWidth - 4).Align(lipgloss.Center)

	button := lipgloss.NewStyle().Padding(0, 3)
	idle := button.Background(m.theme.Overlay).Foreground(m.theme.Subtext)
	okStyle, cancelStyle := idle, idle
	if m.focusOK {
		okStyle = button.Background(m.theme.StatusError).Foreground(m.theme.Base).Bold(true)
	} else {
		cancelStyle = button.Background(m.theme.Accent).Foreground(m.theme.Base).Bold(true)
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		okStyle.Render("Yes"),
		"  ",
		cancelStyle.Render("No"),
	)

	content := center.Foreground(m.theme.Text).Bold(true).Render(m.Title) + "\n\n" +
		center.Foreground(m.theme.Subtext).Render(m.Message) + "\n\n" +
		center.Render(buttons)

	return lipgloss.NewStyle().
		Width(boxWidth).
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderFocused).
		Padding(1, 2).
		Render(content)
}
