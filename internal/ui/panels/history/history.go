// Package history implements the recent lookups sidebar.
package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	corehistory "github.com/sadopc/consulteja/internal/core/history"
	"github.com/sadopc/consulteja/internal/ui/msgs"
	"github.com/sadopc/consulteja/internal/ui/theme"
)

// Model is the sidebar listing recent lookups, most recent first.
type Model struct {
	entries  []corehistory.Entry
	filtered []int // indices into entries
	cursor   int   // index into filtered

	width   int
	height  int
	focused bool

	filtering   bool
	filterInput textinput.Model

	now    func() time.Time
	theme  theme.Theme
	styles theme.Styles
}

// New creates a history sidebar.
func New(t theme.Theme, s theme.Styles) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.CharLimit = 64

	return Model{
		theme:       t,
		styles:      s,
		filterInput: ti,
		now:         time.Now,
	}
}

// SetTheme swaps colors after a theme toggle.
func (m *Model) SetTheme(t theme.Theme, s theme.Styles) {
	m.theme = t
	m.styles = s
}

// SetEntries replaces the displayed entries and moves the cursor to the
// newest one.
func (m *Model) SetEntries(entries []corehistory.Entry) {
	m.entries = entries
	m.cursor = 0
	m.applyFilter()
}

// Len returns the number of entries, ignoring the filter.
func (m Model) Len() int { return len(m.entries) }

// SetSize sets the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.filterInput.Width = max(1, w-6)
}

// SetFocused sets whether this panel has focus.
func (m *Model) SetFocused(f bool) {
	m.focused = f
}

// Filtering reports whether the filter input captures keys.
func (m Model) Filtering() bool { return m.filtering }

// Selected returns the entry under the cursor.
func (m Model) Selected() (corehistory.Entry, bool) {
	if len(m.filtered) == 0 {
		return corehistory.Entry{}, false
	}
	return m.entries[m.filtered[m.cursor]], true
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.filtering {
		return m.updateFilter(msg)
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.filtering = true
		m.filterInput.Focus()
		return m, tea.Batch(textinput.Blink, setMode(msgs.ModeFilter))
	case "D":
		if len(m.entries) == 0 {
			return m, nil
		}
		return m, func() tea.Msg { return msgs.ClearHistoryMsg{} }
	}

	if len(m.filtered) == 0 {
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = len(m.filtered) - 1
	case "enter", "l":
		id := m.entries[m.filtered[m.cursor]].ID
		return m, func() tea.Msg { return msgs.HistorySelectedMsg{ID: id} }
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "esc":
			m.filtering = false
			m.filterInput.Blur()
			if key.String() == "esc" {
				m.filterInput.SetValue("")
				m.applyFilter()
			}
			return m, setMode(msgs.ModeNormal)
		}
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

func setMode(mode msgs.AppMode) tea.Cmd {
	return func() tea.Msg { return msgs.SetModeMsg{Mode: mode} }
}

// applyFilter fuzzy-matches the query against name, barcode and source.
func (m *Model) applyFilter() {
	query := m.filterInput.Value()
	m.filtered = m.filtered[:0]

	if query == "" {
		for i := range m.entries {
			m.filtered = append(m.filtered, i)
		}
	} else {
		// fuzzy ranks by score; keep recency order instead
		matched := make(map[int]bool)
		for _, match := range fuzzy.FindFrom(query, entrySource(m.entries)) {
			matched[match.Index] = true
		}
		for i := range m.entries {
			if matched[i] {
				m.filtered = append(m.filtered, i)
			}
		}
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

// entrySource adapts entries to fuzzy.Source.
type entrySource []corehistory.Entry

func (s entrySource) String(i int) string {
	p := s[i].Product
	return p.Name + " " + p.Barcode + " " + p.Source
}

func (s entrySource) Len() int { return len(s) }

// View implements tea.Model.
func (m Model) View() string {
	border := m.styles.UnfocusedBorder
	if m.focused {
		border = m.styles.FocusedBorder
	}

	innerW := max(1, m.width-2)
	innerH := max(1, m.height-2)

	lines := []string{
		m.styles.Title.Render(fmt.Sprintf("History (%d)", len(m.entries))),
		"",
	}

	switch {
	case len(m.entries) == 0:
		lines = append(lines, m.styles.Muted.Render("  No lookups yet"))
	case len(m.filtered) == 0:
		lines = append(lines, m.styles.Muted.Render("  No matches"))
	default:
		for vi, idx := range m.filtered {
			lines = append(lines, m.renderEntry(m.entries[idx], vi == m.cursor, innerW)...)
		}
	}

	availH := innerH
	if m.filtering {
		availH--
	}
	content := fitHeight(strings.Join(lines, "\n"), availH)
	if m.filtering {
		content += "\n" + m.filterInput.View()
	}

	return border.Width(innerW).Height(innerH).Render(content)
}

// renderEntry renders two lines: name, then barcode and age.
func (m Model) renderEntry(e corehistory.Entry, isCursor bool, w int) []string {
	name := runewidth.Truncate(e.Product.Name, max(1, w-2), "…")
	meta := e.Product.Barcode + " · " + humanize.RelTime(e.SearchedAt, m.now(), "ago", "from now")
	meta = runewidth.Truncate(meta, max(1, w-2), "…")

	if isCursor {
		return []string{
			m.styles.Cursor.Width(w).Render("▸ " + name),
			m.styles.Cursor.Width(w).Render("  " + meta),
		}
	}
	marker := m.styles.Muted.Foreground(m.theme.SourceColor(e.Product.Source)).Render("│ ")
	return []string{
		marker + m.styles.Normal.Render(name),
		marker + m.styles.Muted.Render(meta),
	}
}

// fitHeight keeps the first h lines of s.
func fitHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	return strings.Join(lines, "\n")
}
