// Package prefs persists the display preferences: theme and color-blind mode.
package prefs

import (
	"context"
	"strconv"

	"github.com/go-faster/errors"
)

// Storage keys.
const (
	KeyTheme      = "theme"
	KeyColorBlind = "colorBlindMode"
)

// Theme names.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Preferences is the persisted display state.
type Preferences struct {
	Theme      string `json:"theme" yaml:"theme"`
	ColorBlind bool   `json:"colorBlindMode" yaml:"colorBlindMode"`
}

// Default returns light theme with color-blind mode off.
func Default() Preferences {
	return Preferences{Theme: ThemeLight}
}

// Dark reports whether the dark theme is selected.
func (p Preferences) Dark() bool { return p.Theme == ThemeDark }

// Validate rejects unknown theme names.
func (p Preferences) Validate() error {
	switch p.Theme {
	case ThemeLight, ThemeDark:
		return nil
	default:
		return errors.Errorf("unknown theme %q", p.Theme)
	}
}

// KV is a string key-value table.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Repository loads and saves preferences.
type Repository interface {
	Load(ctx context.Context) (Preferences, error)
	Save(ctx context.Context, p Preferences) error
	ToggleTheme(ctx context.Context) (Preferences, error)
	ToggleColorBlind(ctx context.Context) (Preferences, error)
	Close() error
}

// Store implements Repository on top of a KV backend.
type Store struct {
	kv KV
}

var _ Repository = (*Store)(nil)

// New wraps a key-value backend.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Load reads preferences. Missing or malformed values fall back to defaults.
func (s *Store) Load(ctx context.Context) (Preferences, error) {
	p := Default()

	theme, ok, err := s.kv.Get(ctx, KeyTheme)
	if err != nil {
		return p, errors.Wrap(err, "read theme")
	}
	if ok && (theme == ThemeDark || theme == ThemeLight) {
		p.Theme = theme
	}

	cb, ok, err := s.kv.Get(ctx, KeyColorBlind)
	if err != nil {
		return p, errors.Wrap(err, "read color-blind mode")
	}
	if ok {
		if v, err := strconv.ParseBool(cb); err == nil {
			p.ColorBlind = v
		}
	}
	return p, nil
}

// Save writes both keys.
func (s *Store) Save(ctx context.Context, p Preferences) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.kv.Set(ctx, KeyTheme, p.Theme); err != nil {
		return errors.Wrap(err, "write theme")
	}
	if err := s.kv.Set(ctx, KeyColorBlind, strconv.FormatBool(p.ColorBlind)); err != nil {
		return errors.Wrap(err, "write color-blind mode")
	}
	return nil
}

// ToggleTheme flips between light and dark and persists the result.
func (s *Store) ToggleTheme(ctx context.Context) (Preferences, error) {
	p, err := s.Load(ctx)
	if err != nil {
		return p, err
	}
	if p.Dark() {
		p.Theme = ThemeLight
	} else {
		p.Theme = ThemeDark
	}
	return p, s.Save(ctx, p)
}

// ToggleColorBlind flips color-blind mode and persists the result.
func (s *Store) ToggleColorBlind(ctx context.Context) (Preferences, error) {
	p, err := s.Load(ctx)
	if err != nil {
		return p, err
	}
	p.ColorBlind = !p.ColorBlind
	return p, s.Save(ctx, p)
}

func (s *Store) Close() error {
	return s.kv.Close()
}
