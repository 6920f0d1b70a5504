// Package search implements the barcode input bar.
package search

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/consulteja/internal/product"
	"github.com/sadopc/consulteja/internal/ui/msgs"
	"github.com/sadopc/consulteja/internal/ui/theme"
)

const placeholder = "Type or paste a barcode and press Enter"

// Model is the search bar at the top of the screen.
type Model struct {
	input   textinput.Model
	width   int
	focused bool
	loading bool

	theme  theme.Theme
	styles theme.Styles
}

// New creates a search bar.
func New(t theme.Theme, s theme.Styles) Model {
	ti := textinput.New()
	ti.Prompt = "▌ "
	ti.Placeholder = placeholder
	ti.CharLimit = 64

	return Model{input: ti, theme: t, styles: s}
}

// SetTheme swaps colors after a theme toggle.
func (m *Model) SetTheme(t theme.Theme, s theme.Styles) {
	m.theme = t
	m.styles = s
}

// SetWidth sets the bar width including its border.
func (m *Model) SetWidth(w int) {
	m.width = w
	m.input.Width = max(1, w-4-lipgloss.Width(m.input.Prompt)-hintWidth)
}

// hintWidth is reserved for the symbology hint on the right.
const hintWidth = 18

// SetFocused focuses or blurs the text input.
func (m *Model) SetFocused(f bool) tea.Cmd {
	m.focused = f
	if f {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

// Focused reports whether the input has focus.
func (m Model) Focused() bool { return m.focused }

// SetLoading disables submission while a lookup runs.
func (m *Model) SetLoading(loading bool) { m.loading = loading }

// Value returns the raw input.
func (m Model) Value() string { return m.input.Value() }

// SetValue replaces the input, e.g. when a history entry is opened.
func (m *Model) SetValue(v string) {
	m.input.SetValue(v)
	m.input.CursorEnd()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if m.loading {
				return m, nil
			}
			query := strings.TrimSpace(m.input.Value())
			return m, func() tea.Msg { return msgs.LookupMsg{Query: query} }
		case "ctrl+u":
			m.input.SetValue("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Hint describes what the current input looks like, or "" when it cannot be
// normalized.
func (m Model) Hint() string {
	code, err := product.Normalize(m.input.Value())
	if err != nil {
		return ""
	}
	info := product.Detect(code)
	if info.Kind == product.KindUnknown {
		return ""
	}
	hint := string(info.Kind)
	switch info.Kind {
	case product.KindEAN13, product.KindEAN8, product.KindUPCA, product.KindUPCE, product.KindGTIN14:
		if info.ChecksumOK {
			hint += " ✓"
		} else {
			hint += " ✗"
		}
	}
	return hint
}

// View implements tea.Model.
func (m Model) View() string {
	border := m.styles.UnfocusedBorder
	if m.focused {
		border = m.styles.FocusedBorder
	}

	innerW := max(1, m.width-2)

	hint := m.Hint()
	hintStyle := m.styles.Muted
	if strings.HasSuffix(hint, "✗") {
		hintStyle = m.styles.Warning
	}
	if m.loading {
		hint = "searching..."
		hintStyle = m.styles.Hint
	}

	left := m.input.View()
	right := hintStyle.Render(hint)
	gap := max(1, innerW-lipgloss.Width(left)-lipgloss.Width(right))

	return border.Width(innerW).Render(left + strings.Repeat(" ", gap) + right)
}
