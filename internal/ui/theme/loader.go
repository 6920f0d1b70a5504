package theme

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-faster/errors"
	"gopkg.in/yaml.v3"
)

// yamlTheme is the YAML representation of a theme. Empty colors are taken
// from the theme named by Base, or from the fallback passed to the loader.
type yamlTheme struct {
	Name string `yaml:"name"`
	Base string `yaml:"base"`

	Background string `yaml:"background"`
	Surface    string `yaml:"surface"`
	Overlay    string `yaml:"overlay"`

	Text    string `yaml:"text"`
	Subtext string `yaml:"subtext"`
	Muted   string `yaml:"muted"`

	Accent string `yaml:"accent"`
	Link   string `yaml:"link"`
	Price  string `yaml:"price"`

	BorderFocused   string `yaml:"border_focused"`
	BorderUnfocused string `yaml:"border_unfocused"`
	StatusOK        string `yaml:"status_ok"`
	StatusError     string `yaml:"status_error"`
	StatusWarning   string `yaml:"status_warning"`

	Sources []string `yaml:"sources"`
}

// LoadCustomTheme loads a theme from a YAML file.
func LoadCustomTheme(path string, fallback Theme) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, errors.Wrap(err, "read theme file")
	}

	var yt yamlTheme
	if err := yaml.Unmarshal(data, &yt); err != nil {
		return Theme{}, errors.Wrap(err, "parse theme yaml")
	}

	t := fallback
	if yt.Base != "" {
		base, ok := Get(yt.Base)
		if !ok {
			return Theme{}, errors.Errorf("unknown base theme %q", yt.Base)
		}
		t = base
	}

	t.Name = yt.Name
	if t.Name == "" {
		base := filepath.Base(path)
		t.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&t.Base, yt.Background)
	set(&t.Surface, yt.Surface)
	set(&t.Overlay, yt.Overlay)
	set(&t.Text, yt.Text)
	set(&t.Subtext, yt.Subtext)
	set(&t.Muted, yt.Muted)
	set(&t.Accent, yt.Accent)
	set(&t.Link, yt.Link)
	set(&t.Price, yt.Price)
	set(&t.BorderFocused, yt.BorderFocused)
	set(&t.BorderUnfocused, yt.BorderUnfocused)
	set(&t.StatusOK, yt.StatusOK)
	set(&t.StatusError, yt.StatusError)
	set(&t.StatusWarning, yt.StatusWarning)
	for i := 0; i < len(yt.Sources) && i < len(t.Sources); i++ {
		set(&t.Sources[i], yt.Sources[i])
	}
	return t, nil
}

// LoadCustomThemes loads all YAML themes from a directory. Files that fail
// to parse are skipped.
func LoadCustomThemes(dir string, fallback Theme) map[string]Theme {
	themes := make(map[string]Theme)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return themes
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		t, err := LoadCustomTheme(filepath.Join(dir, e.Name()), fallback)
		if err != nil {
			continue
		}
		themes[normalizeKey(t.Name)] = t
	}
	return themes
}
