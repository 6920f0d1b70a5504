package theme

import "github.com/charmbracelet/lipgloss"

// Theme holds all colors for the application.
type Theme struct {
	Name       string
	Dark       bool
	ColorBlind bool

	// Base colors
	Base    lipgloss.Color
	Surface lipgloss.Color
	Overlay lipgloss.Color

	// Text
	Text    lipgloss.Color
	Subtext lipgloss.Color
	Muted   lipgloss.Color

	// Accents
	Accent lipgloss.Color
	Link   lipgloss.Color
	Price  lipgloss.Color

	// Semantic
	BorderFocused   lipgloss.Color
	BorderUnfocused lipgloss.Color
	StatusOK        lipgloss.Color
	StatusError     lipgloss.Color
	StatusWarning   lipgloss.Color

	// One per product database, in fallback order.
	Sources [4]lipgloss.Color
}

var sourceIndex = map[string]int{
	"Barcode Lookup":  0,
	"UPC Item DB":     1,
	"Open Food Facts": 2,
	"Cosmos":          3,
}

// SourceColor returns the badge color for a product database.
func (t Theme) SourceColor(source string) lipgloss.Color {
	if i, ok := sourceIndex[source]; ok && t.Sources[i] != "" {
		return t.Sources[i]
	}
	return t.Accent
}

// OutcomeColor returns the color for a provider attempt outcome.
func (t Theme) OutcomeColor(outcome string) lipgloss.Color {
	switch outcome {
	case "found":
		return t.StatusOK
	case "not_found":
		return t.StatusWarning
	case "error":
		return t.StatusError
	default:
		return t.Text
	}
}
