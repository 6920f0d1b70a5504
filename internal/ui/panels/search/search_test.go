package search

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/consulteja/internal/ui/msgs"
	"github.com/sadopc/consulteja/internal/ui/theme"
)

func newSearchModelForTest() Model {
	th := theme.Default()
	m := New(th, theme.NewStyles(th))
	m.SetWidth(80)
	m.SetFocused(true)
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestSearch_EnterEmitsLookup(t *testing.T) {
	m := newSearchModelForTest()
	m = typeText(m, " 7891000100103 ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected lookup command")
	}
	msg, ok := cmd().(msgs.LookupMsg)
	if !ok {
		t.Fatalf("expected LookupMsg, got %T", cmd())
	}
	if msg.Query != "7891000100103" {
		t.Fatalf("query = %q", msg.Query)
	}
}

func TestSearch_EnterIgnoredWhileLoading(t *testing.T) {
	m := newSearchModelForTest()
	m = typeText(m, "123")
	m.SetLoading(true)

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatal("expected no command while loading")
	}
}

func TestSearch_CtrlUClears(t *testing.T) {
	m := newSearchModelForTest()
	m = typeText(m, "abc")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	if m.Value() != "" {
		t.Fatalf("value = %q, want empty", m.Value())
	}
}

func TestSearch_IgnoresKeysWhenBlurred(t *testing.T) {
	m := newSearchModelForTest()
	m.SetFocused(false)
	m = typeText(m, "123")
	if m.Value() != "" {
		t.Fatalf("value = %q, want empty", m.Value())
	}
}

func TestSearch_Hint(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"4006381333931", "EAN-13 ✓"},
		{"4006381333932", "EAN-13 ✗"},
		{"", ""},
		{"not valid!", ""},
	}
	for _, tt := range tests {
		m := newSearchModelForTest()
		m.SetValue(tt.input)
		if got := m.Hint(); got != tt.want {
			t.Errorf("Hint(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSearch_View(t *testing.T) {
	m := newSearchModelForTest()
	m.SetValue("4006381333931")
	if !strings.Contains(m.View(), "EAN-13") {
		t.Fatal("expected symbology hint in view")
	}

	m.SetLoading(true)
	if !strings.Contains(m.View(), "searching") {
		t.Fatal("expected loading hint in view")
	}
}
