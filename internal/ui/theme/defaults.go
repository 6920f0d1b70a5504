package theme

import (
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/consulteja/internal/config"
	"github.com/sadopc/consulteja/internal/core/prefs"
)

// Light is the default theme.
var Light = Theme{
	Name:    "Light",
	Base:    lipgloss.Color("#ffffff"),
	Surface: lipgloss.Color("#eef1f5"),
	Overlay: lipgloss.Color("#d5dae1"),

	Text:    lipgloss.Color("#1f2328"),
	Subtext: lipgloss.Color("#4b535d"),
	Muted:   lipgloss.Color("#8b949e"),

	Accent: lipgloss.Color("#2563eb"),
	Link:   lipgloss.Color("#1d4ed8"),
	Price:  lipgloss.Color("#15803d"),

	BorderFocused:   lipgloss.Color("#2563eb"),
	BorderUnfocused: lipgloss.Color("#c2c8d0"),
	StatusOK:        lipgloss.Color("#15803d"),
	StatusError:     lipgloss.Color("#dc2626"),
	StatusWarning:   lipgloss.Color("#b45309"),

	Sources: [4]lipgloss.Color{"#7c3aed", "#0891b2", "#ea580c", "#16a34a"},
}

// Dark is the dark counterpart of Light.
var Dark = Theme{
	Name:    "Dark",
	Dark:    true,
	Base:    lipgloss.Color("#121417"),
	Surface: lipgloss.Color("#1f2329"),
	Overlay: lipgloss.Color("#2d333b"),

	Text:    lipgloss.Color("#e6edf3"),
	Subtext: lipgloss.Color("#adbac7"),
	Muted:   lipgloss.Color("#636e7b"),

	Accent: lipgloss.Color("#60a5fa"),
	Link:   lipgloss.Color("#93c5fd"),
	Price:  lipgloss.Color("#4ade80"),

	BorderFocused:   lipgloss.Color("#60a5fa"),
	BorderUnfocused: lipgloss.Color("#444c56"),
	StatusOK:        lipgloss.Color("#4ade80"),
	StatusError:     lipgloss.Color("#f87171"),
	StatusWarning:   lipgloss.Color("#fbbf24"),

	Sources: [4]lipgloss.Color{"#a78bfa", "#22d3ee", "#fb923c", "#4ade80"},
}

// Okabe-Ito palette, distinguishable under the common color vision deficiencies.
const (
	okabeOrange    = lipgloss.Color("#E69F00")
	okabeSkyBlue   = lipgloss.Color("#56B4E9")
	okabeGreen     = lipgloss.Color("#009E73")
	okabeYellow    = lipgloss.Color("#F0E442")
	okabeBlue      = lipgloss.Color("#0072B2")
	okabeVermilion = lipgloss.Color("#D55E00")
	okabePurple    = lipgloss.Color("#CC79A7")
)

// LightColorBlind replaces every hue-coded color of Light with Okabe-Ito.
var LightColorBlind = colorBlind(Light, "Light Color-Blind", okabeBlue, okabeBlue)

// DarkColorBlind replaces every hue-coded color of Dark with Okabe-Ito.
var DarkColorBlind = colorBlind(Dark, "Dark Color-Blind", okabeSkyBlue, okabeSkyBlue)

func colorBlind(t Theme, name string, accent, link lipgloss.Color) Theme {
	t.Name = name
	t.ColorBlind = true
	t.Accent = accent
	t.Link = link
	t.BorderFocused = accent
	t.StatusOK = okabeBlue
	t.StatusError = okabeVermilion
	t.StatusWarning = okabeOrange
	t.Price = okabeGreen
	t.Sources = [4]lipgloss.Color{okabePurple, okabeSkyBlue, okabeOrange, okabeGreen}
	if t.Dark {
		t.StatusOK = okabeSkyBlue
		t.StatusWarning = okabeYellow
	}
	return t
}

// Default returns the default theme.
func Default() Theme {
	return Light
}

// For returns the built-in theme matching the stored preferences.
func For(p prefs.Preferences) Theme {
	switch {
	case p.Dark() && p.ColorBlind:
		return DarkColorBlind
	case p.Dark():
		return Dark
	case p.ColorBlind:
		return LightColorBlind
	default:
		return Light
	}
}

// Resolve picks the theme for p. A non-empty name selects a catalog or
// custom theme instead; the preferences still apply to custom themes that
// declare a base.
func Resolve(name string, p prefs.Preferences) Theme {
	if name == "" {
		return For(p)
	}
	if t, ok := Get(name); ok {
		return t
	}
	customs := LoadCustomThemes(Dir(), For(p))
	if t, ok := customs[normalizeKey(name)]; ok {
		return t
	}
	return For(p)
}

// Dir is where custom theme files are read from.
func Dir() string {
	return filepath.Join(config.Dir(), "themes")
}
