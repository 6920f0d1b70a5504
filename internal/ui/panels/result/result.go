// Package result renders the looked-up product, the provider attempts and
// the raw JSON record.
package result

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/sadopc/consulteja/internal/product"
	"github.com/sadopc/consulteja/internal/provider"
	"github.com/sadopc/consulteja/internal/ui/theme"
)

// Model is the main result panel.
type Model struct {
	viewport viewport.Model
	spinner  spinner.Model

	product  *product.Product
	info     product.Info
	attempts []provider.Attempt
	errText  string
	query    string

	loading bool
	raw     bool
	focused bool
	width   int
	height  int

	theme  theme.Theme
	styles theme.Styles
}

// New creates a result panel.
func New(t theme.Theme, s theme.Styles) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(t.Accent)

	return Model{
		viewport: viewport.New(0, 0),
		spinner:  sp,
		theme:    t,
		styles:   s,
	}
}

// SetTheme swaps colors after a theme toggle.
func (m *Model) SetTheme(t theme.Theme, s theme.Styles) {
	m.theme = t
	m.styles = s
	m.spinner.Style = lipgloss.NewStyle().Foreground(t.Accent)
	m.render()
}

// SetSize sets the panel dimensions including the border.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = max(0, w-2)
	m.viewport.Height = max(0, h-2)
	m.render()
}

// SetFocused sets whether this panel has focus.
func (m *Model) SetFocused(f bool) {
	m.focused = f
}

// SetLoading shows the spinner. It returns the tick command that keeps it
// spinning.
func (m *Model) SetLoading(query string) tea.Cmd {
	m.loading = true
	m.query = query
	m.errText = ""
	return m.spinner.Tick
}

// SetProduct shows a product. attempts may be nil for history entries.
func (m *Model) SetProduct(p product.Product, info product.Info, attempts []provider.Attempt) {
	m.loading = false
	m.product = &p
	m.info = info
	m.attempts = attempts
	m.errText = ""
	m.viewport.GotoTop()
	m.render()
}

// SetError shows a failed lookup.
func (m *Model) SetError(text string, attempts []provider.Attempt) {
	m.loading = false
	m.product = nil
	m.attempts = attempts
	m.errText = text
	m.viewport.GotoTop()
	m.render()
}

// Clear resets the panel to its empty state.
func (m *Model) Clear() {
	m.loading = false
	m.product = nil
	m.attempts = nil
	m.errText = ""
	m.render()
}

// ToggleRaw switches between the details card and raw JSON.
func (m *Model) ToggleRaw() {
	m.raw = !m.raw
	m.viewport.GotoTop()
	m.render()
}

// Raw reports whether raw JSON is shown.
func (m Model) Raw() bool { return m.raw }

// Product returns the product on screen, or nil.
func (m Model) Product() *product.Product { return m.product }

// Loading reports whether a lookup is in flight.
func (m Model) Loading() bool { return m.loading }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		switch msg.String() {
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	border := m.styles.UnfocusedBorder
	if m.focused {
		border = m.styles.FocusedBorder
	}

	innerW := max(0, m.width-2)
	innerH := max(0, m.height-2)

	var content string
	switch {
	case m.loading:
		msg := fmt.Sprintf("%s Looking up %s...", m.spinner.View(), m.query)
		content = lipgloss.Place(innerW, innerH, lipgloss.Center, lipgloss.Center, msg)
	case m.product == nil && m.errText == "":
		msg := m.styles.Muted.Render("Enter a barcode to look up a product")
		content = lipgloss.Place(innerW, innerH, lipgloss.Center, lipgloss.Center, msg)
	default:
		content = m.viewport.View()
	}

	return border.Width(innerW).Height(innerH).Render(content)
}

// render rebuilds the viewport content from the current state.
func (m *Model) render() {
	w := m.viewport.Width
	if w <= 0 {
		return
	}
	switch {
	case m.product != nil && m.raw:
		m.viewport.SetContent(highlightJSON(RawJSON(*m.product), m.theme.Dark))
	case m.product != nil:
		m.viewport.SetContent(m.renderProduct(w))
	case m.errText != "":
		m.viewport.SetContent(m.renderError(w))
	default:
		m.viewport.SetContent("")
	}
}

func (m Model) renderProduct(w int) string {
	p := m.product
	var b strings.Builder

	b.WriteString(m.styles.Title.Width(w).Render(p.Name))
	b.WriteString("\n")
	b.WriteString(m.styles.SourceBadge(m.theme, p.Source))
	b.WriteString("  ")
	b.WriteString(m.styles.Muted.Render(barcodeLabel(p.Barcode, m.info)))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Price.Render(p.Price))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Normal.Width(w).Render(p.Description))
	b.WriteString("\n")

	attrs := p.Attributes()
	if len(attrs) > 0 {
		b.WriteString("\n")
		labelW := 0
		for _, a := range attrs {
			labelW = max(labelW, runewidth.StringWidth(a.Label))
		}
		for _, a := range attrs {
			fmt.Fprintf(&b, "%s  %s\n",
				m.styles.Key.Width(labelW).Render(a.Label),
				m.styles.Value.Render(runewidth.Truncate(a.Value, max(1, w-labelW-2), "…")),
			)
		}
	}

	if p.Image != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Key.Render("Image"))
		b.WriteString("  ")
		b.WriteString(m.styles.URL.Render(p.Image))
		b.WriteString("\n")
	}

	if len(p.Stores) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Subtitle.Render("Stores"))
		b.WriteString("\n")
		for _, s := range p.Stores {
			b.WriteString(m.listing(s.Name, s.Price, s.Currency, s.Link, w))
		}
	}
	if len(p.Offers) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Subtitle.Render("Offers"))
		b.WriteString("\n")
		for _, o := range p.Offers {
			b.WriteString(m.listing(o.Merchant, o.Price, o.Currency, o.Link, w))
		}
	}

	if len(m.attempts) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderAttempts(w))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) listing(name, price, currency, link string, w int) string {
	line := "  • " + m.styles.Normal.Render(name)
	if price != "" {
		line += "  " + m.styles.Price.Render(strings.TrimSpace(price+" "+currency))
	}
	if link != "" {
		used := lipgloss.Width(line) + 2
		line += "  " + m.styles.URL.Render(runewidth.Truncate(link, max(8, w-used), "…"))
	}
	return line + "\n"
}

func (m Model) renderError(w int) string {
	var b strings.Builder
	b.WriteString(m.styles.Error.Width(w).Render(m.errText))
	b.WriteString("\n")
	if len(m.attempts) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderAttempts(w))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderAttempts(w int) string {
	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render("Providers tried"))
	b.WriteString("\n")
	for _, a := range m.attempts {
		outcome := lipgloss.NewStyle().Foreground(m.theme.OutcomeColor(string(a.Outcome)))
		line := fmt.Sprintf("  %s %-16s %s",
			outcome.Render(outcomeIcon(a.Outcome)),
			a.Provider,
			m.styles.Muted.Render(formatDuration(a)),
		)
		if a.Error != "" {
			line += "  " + m.styles.Error.Render(runewidth.Truncate(a.Error, max(8, w-lipgloss.Width(line)-2), "…"))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func outcomeIcon(o provider.Outcome) string {
	switch o {
	case provider.OutcomeFound:
		return "✓"
	case provider.OutcomeNotFound:
		return "∅"
	default:
		return "✗"
	}
}

func formatDuration(a provider.Attempt) string {
	return fmt.Sprintf("%dms", a.Duration.Milliseconds())
}

func barcodeLabel(code string, info product.Info) string {
	if info.Kind == "" || info.Kind == product.KindUnknown {
		return code
	}
	return code + " · " + string(info.Kind)
}
