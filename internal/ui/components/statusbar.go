package components

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/consulteja/internal/product"
	"github.com/sadopc/consulteja/internal/ui/msgs"
	"github.com/sadopc/consulteja/internal/ui/theme"
)

// clearStatusMsg clears a temporary status message.
type clearStatusMsg struct{}

// StatusBar is a full-width bottom status bar.
type StatusBar struct {
	source     string
	kind       product.Kind
	duration   time.Duration
	attempts   int
	providers  int
	searchedAt time.Time
	mode       msgs.AppMode
	message    string
	width      int
	theme      theme.Theme
	styles     theme.Styles
}

// NewStatusBar creates a new status bar.
func NewStatusBar(t theme.Theme, s theme.Styles) StatusBar {
	return StatusBar{
		theme:  t,
		styles: s,
		mode:   msgs.ModeNormal,
	}
}

// SetLookup records the outcome of the last lookup.
func (m *StatusBar) SetLookup(source string, kind product.Kind, duration time.Duration, attempts, providers int) {
	m.source = source
	m.kind = kind
	m.duration = duration
	m.attempts = attempts
	m.providers = providers
	m.searchedAt = time.Time{}
}

// SetHistoryEntry shows when a history entry was looked up.
func (m *StatusBar) SetHistoryEntry(source string, searchedAt time.Time) {
	m.source = source
	m.kind = ""
	m.duration = 0
	m.attempts = 0
	m.searchedAt = searchedAt
}

// SetMode sets the current app mode.
func (m *StatusBar) SetMode(mode msgs.AppMode) {
	m.mode = mode
}

// SetWidth sets the available width.
func (m *StatusBar) SetWidth(w int) {
	m.width = w
}

// SetMessage sets a temporary status message.
func (m *StatusBar) SetMessage(text string) {
	m.message = text
}

// SetTheme swaps colors after a theme toggle.
func (m *StatusBar) SetTheme(t theme.Theme, s theme.Styles) {
	m.theme = t
	m.styles = s
}

// Init implements tea.Model.
func (m StatusBar) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m StatusBar) Update(msg tea.Msg) (StatusBar, tea.Cmd) {
	switch msg.(type) {
	case clearStatusMsg:
		m.message = ""
	}
	return m, nil
}

func (m StatusBar) text(fg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(fg).Background(m.theme.Surface)
}

// View renders the status bar.
func (m StatusBar) View() string {
	barStyle := lipgloss.NewStyle().
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Width(m.width)

	// Left: source, kind, timing
	var leftParts []string

	if m.message != "" {
		leftParts = append(leftParts, m.text(m.theme.Text).Render(m.message))
	} else {
		if m.source != "" {
			leftParts = append(leftParts, m.text(m.theme.SourceColor(m.source)).Bold(true).Render(m.source))
		}
		if m.kind != "" && m.kind != product.KindUnknown {
			leftParts = append(leftParts, m.text(m.theme.Subtext).Render(string(m.kind)))
		}
		if m.duration > 0 {
			leftParts = append(leftParts, m.text(m.theme.Subtext).Render(formatDuration(m.duration)))
		}
		if m.attempts > 0 {
			leftParts = append(leftParts, m.text(m.theme.Muted).
				Render(fmt.Sprintf("%d/%d providers", m.attempts, m.providers)))
		}
		if !m.searchedAt.IsZero() {
			leftParts = append(leftParts, m.text(m.theme.Muted).Render(humanize.Time(m.searchedAt)))
		}
	}

	left := strings.Join(leftParts, " │ ")

	// Center: mode indicator
	modeStr := m.text(m.theme.Accent).Bold(true).Render("[" + m.mode.String() + "]")

	// Right: theme + hints
	hint := m.text(m.theme.Muted).Render(m.theme.Name + "  ?:help  Ctrl+K:command")

	totalContent := lipgloss.Width(left) + lipgloss.Width(modeStr) + lipgloss.Width(hint)
	if totalContent >= m.width {
		line := " " + left + " " + modeStr + " " + hint
		return barStyle.Render(line)
	}

	remaining := m.width - totalContent - 2 // padding
	gap1 := remaining / 2
	gap2 := remaining - gap1

	line := " " + left +
		strings.Repeat(" ", gap1) + modeStr +
		strings.Repeat(" ", gap2) + hint

	return barStyle.Render(line)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
