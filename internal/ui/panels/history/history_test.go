package history

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	corehistory "github.com/sadopc/consulteja/internal/core/history"
	"github.com/sadopc/consulteja/internal/product"
	"github.com/sadopc/consulteja/internal/ui/msgs"
	"github.com/sadopc/consulteja/internal/ui/theme"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newHistoryModelForTest() Model {
	th := theme.Default()
	m := New(th, theme.NewStyles(th))
	m.now = func() time.Time { return testNow }
	m.SetSize(40, 20)
	m.SetEntries([]corehistory.Entry{
		{ID: 3, SearchedAt: testNow.Add(-2 * time.Minute), Product: product.Product{Name: "Café Torrado", Barcode: "7896005800010", Source: "Cosmos"}},
		{ID: 2, SearchedAt: testNow.Add(-time.Hour), Product: product.Product{Name: "Nutella", Barcode: "3017620422003", Source: "Open Food Facts"}},
		{ID: 1, SearchedAt: testNow.Add(-48 * time.Hour), Product: product.Product{Name: "USB Cable", Barcode: "0885909950805", Source: "UPC Item DB"}},
	})
	m.SetFocused(true)
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHistory_CursorAndSelection(t *testing.T) {
	m := newHistoryModelForTest()

	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}
	m, _ = m.Update(key("g"))
	if m.cursor != 0 {
		t.Fatalf("cursor after g = %d, want 0", m.cursor)
	}
	m, _ = m.Update(key("j"))

	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected selection command")
	}
	sel, ok := cmd().(msgs.HistorySelectedMsg)
	if !ok {
		t.Fatalf("expected HistorySelectedMsg, got %T", cmd())
	}
	if sel.ID != 2 {
		t.Fatalf("selected id = %d, want 2", sel.ID)
	}
}

func TestHistory_FilterKeepsRecencyOrder(t *testing.T) {
	m := newHistoryModelForTest()

	m, _ = m.Update(key("/"))
	if !m.Filtering() {
		t.Fatal("expected filtering mode")
	}
	for _, r := range "789" {
		m, _ = m.Update(key(string(r)))
	}
	if len(m.filtered) != 1 {
		t.Fatalf("filtered len = %d, want 1", len(m.filtered))
	}
	if e, _ := m.Selected(); e.ID != 3 {
		t.Fatalf("selected id = %d, want 3", e.ID)
	}

	m, cmd := m.Update(key("esc"))
	if m.Filtering() {
		t.Fatal("expected filtering disabled on esc")
	}
	if len(m.filtered) != 3 {
		t.Fatalf("filtered len after esc = %d, want 3", len(m.filtered))
	}
	if mode, ok := cmd().(msgs.SetModeMsg); !ok || mode.Mode != msgs.ModeNormal {
		t.Fatalf("expected SetModeMsg normal, got %#v", cmd())
	}
}

func TestHistory_ClearRequest(t *testing.T) {
	m := newHistoryModelForTest()
	_, cmd := m.Update(key("D"))
	if cmd == nil {
		t.Fatal("expected clear command")
	}
	if _, ok := cmd().(msgs.ClearHistoryMsg); !ok {
		t.Fatalf("expected ClearHistoryMsg, got %T", cmd())
	}

	m.SetEntries(nil)
	if _, cmd := m.Update(key("D")); cmd != nil {
		t.Fatal("expected no clear command on empty history")
	}
}

func TestHistory_View(t *testing.T) {
	m := newHistoryModelForTest()
	view := m.View()
	for _, want := range []string{"History (3)", "Café Torrado", "2 minutes ago", "Nutella"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m.SetEntries(nil)
	if !strings.Contains(m.View(), "No lookups yet") {
		t.Fatal("expected empty state")
	}
}

func TestHistory_SetEntriesResetsCursor(t *testing.T) {
	m := newHistoryModelForTest()
	m, _ = m.Update(key("G"))
	m.SetEntries(m.entries[:1])
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
}
