package theme

import "github.com/charmbracelet/lipgloss"

// Styles holds pre-computed Lip Gloss styles for the current theme.
type Styles struct {
	// Panel borders
	FocusedBorder   lipgloss.Style
	UnfocusedBorder lipgloss.Style

	// Text styles
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Bold       lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	URL        lipgloss.Style
	Key        lipgloss.Style
	Value      lipgloss.Style
	Hint       lipgloss.Style
	Price      lipgloss.Style
	StatusText lipgloss.Style

	// Components
	StatusBar lipgloss.Style
	Sidebar   lipgloss.Style
	Selected  lipgloss.Style
	Cursor    lipgloss.Style
	Card      lipgloss.Style
	Badge     lipgloss.Style
}

// NewStyles creates a Styles set from a Theme.
func NewStyles(t Theme) Styles {
	return Styles{
		FocusedBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocused),
		UnfocusedBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderUnfocused),

		Title:    lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(t.Subtext),
		Normal:   lipgloss.NewStyle().Foreground(t.Text),
		Muted:    lipgloss.NewStyle().Foreground(t.Muted),
		Bold:     lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(t.StatusError),
		Success:  lipgloss.NewStyle().Foreground(t.StatusOK),
		Warning:  lipgloss.NewStyle().Foreground(t.StatusWarning),
		URL:      lipgloss.NewStyle().Foreground(t.Link).Underline(true),
		Key:      lipgloss.NewStyle().Foreground(t.Accent),
		Value:    lipgloss.NewStyle().Foreground(t.Text),
		Hint:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Price:    lipgloss.NewStyle().Foreground(t.Price).Bold(true),
		StatusText: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Surface).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Background(t.Surface).
			Foreground(t.Text).
			Padding(0, 1),
		Sidebar: lipgloss.NewStyle().
			Foreground(t.Text),
		Selected: lipgloss.NewStyle().
			Background(t.Surface).
			Foreground(t.Text),
		Cursor: lipgloss.NewStyle().
			Background(t.Overlay).
			Foreground(t.Text),
		Card: lipgloss.NewStyle().
			Padding(0, 1),
		Badge: lipgloss.NewStyle().
			Foreground(t.Base).
			Bold(true).
			Padding(0, 1),
	}
}

// SourceBadge renders the product database name as a colored badge.
func (s Styles) SourceBadge(t Theme, source string) string {
	return s.Badge.Background(t.SourceColor(source)).Render(source)
}
