package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/consulteja/internal/config"
	"github.com/sadopc/consulteja/internal/core/history"
	"github.com/sadopc/consulteja/internal/core/prefs"
	"github.com/sadopc/consulteja/internal/core/storage"
	"github.com/sadopc/consulteja/internal/product"
	"github.com/sadopc/consulteja/internal/provider"
	"github.com/sadopc/consulteja/internal/search"
	"github.com/sadopc/consulteja/internal/ui/msgs"
)

// fakeChain answers every lookup with the same outcome.
type fakeChain struct {
	product *product.Product
	err     error
}

func (c fakeChain) Lookup(_ context.Context, barcode string) (*product.Product, []provider.Attempt, error) {
	if c.err != nil {
		return nil, []provider.Attempt{{Provider: "Cosmos", Outcome: provider.OutcomeNotFound}}, c.err
	}
	p := *c.product
	p.Barcode = barcode
	return &p, []provider.Attempt{{Provider: p.Source, Outcome: provider.OutcomeFound}}, nil
}

// memKV is an in-memory preferences backend.
type memKV map[string]string

func (kv memKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := kv[key]
	return v, ok, nil
}

func (kv memKV) Set(_ context.Context, key, value string) error {
	kv[key] = value
	return nil
}

func (kv memKV) Close() error { return nil }

func testProduct() *product.Product {
	return &product.Product{
		Name:        "Biscoito Recheado",
		Description: "Pacote 140g",
		Price:       "R$ 3,99",
		Source:      "Open Food Facts",
	}
}

func newHistoryRepo(t *testing.T) history.Repository {
	t.Helper()
	db, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "consulteja.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	repo := history.NewStore(db, history.DefaultLimit)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// testApp creates an App without persistence.
func testApp() App {
	svc := search.NewService(fakeChain{product: testProduct()})
	return New(config.DefaultConfig(), Deps{
		Lookup:    svc,
		Providers: []string{"Barcode Lookup", "UPC Item DB", "Open Food Facts", "Cosmos"},
	})
}

// testAppResized returns an App that has been resized so a.ready == true.
func testAppResized() App {
	a := testApp()
	m, _ := a.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	return m.(App)
}

// keyMsg creates a tea.KeyMsg for a single rune key.
func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// collect runs cmd and flattens batches. Only use it on commands that
// return immediately.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

func find[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	for _, msg := range collect(cmd) {
		if m, ok := msg.(T); ok {
			return m
		}
	}
	var zero T
	t.Fatalf("no %T produced", zero)
	return zero
}

func update(a App, msg tea.Msg) (App, tea.Cmd) {
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

// --- Tests ---

func TestNew_DefaultState(t *testing.T) {
	a := testApp()

	if a.mode != msgs.ModeInsert {
		t.Errorf("expected ModeInsert, got %v", a.mode)
	}
	if a.focus != msgs.FocusSearch {
		t.Errorf("expected FocusSearch, got %v", a.focus)
	}
	if !a.sidebarVisible {
		t.Error("expected sidebar visible by default")
	}
	if a.ready {
		t.Error("expected ready=false before WindowSizeMsg")
	}
	if a.store.Prefs != prefs.Default() {
		t.Errorf("expected default prefs, got %+v", a.store.Prefs)
	}
	if a.theme.Dark {
		t.Error("expected light theme by default")
	}
}

func TestWindowSizeMsg_SetsReadyAndLayout(t *testing.T) {
	a := testApp()

	a, cmd := update(a, tea.WindowSizeMsg{Width: 120, Height: 30})
	if cmd != nil {
		t.Error("expected nil cmd from WindowSizeMsg")
	}
	if !a.ready {
		t.Error("expected ready=true after WindowSizeMsg")
	}
	if a.layout.ContentHeight <= 0 {
		t.Errorf("expected positive ContentHeight, got %d", a.layout.ContentHeight)
	}
	if !a.layout.SidebarVisible {
		t.Error("expected sidebar at 120 cols")
	}

	a, _ = update(a, tea.WindowSizeMsg{Width: 50, Height: 30})
	if !a.layout.Compact {
		t.Error("expected compact layout at 50 cols")
	}
}

func TestCycleFocus_Forward(t *testing.T) {
	a := testAppResized()

	a.cycleFocus(false)
	if a.focus != msgs.FocusResult {
		t.Errorf("expected FocusResult, got %v", a.focus)
	}
	if a.mode != msgs.ModeNormal {
		t.Errorf("expected ModeNormal outside the search bar, got %v", a.mode)
	}

	a.cycleFocus(false)
	if a.focus != msgs.FocusHistory {
		t.Errorf("expected FocusHistory, got %v", a.focus)
	}

	a.cycleFocus(false)
	if a.focus != msgs.FocusSearch {
		t.Errorf("expected FocusSearch, got %v", a.focus)
	}
	if a.mode != msgs.ModeInsert {
		t.Errorf("expected ModeInsert in the search bar, got %v", a.mode)
	}
}

func TestCycleFocus_SidebarHidden(t *testing.T) {
	a := testAppResized()
	a, _ = update(a, msgs.ToggleSidebarMsg{})

	a.cycleFocus(false)
	a.cycleFocus(false)
	if a.focus != msgs.FocusSearch {
		t.Errorf("expected history skipped while hidden, got %v", a.focus)
	}
}

func TestCycleFocus_TabKey(t *testing.T) {
	a := testAppResized()

	a, _ = update(a, tea.KeyMsg{Type: tea.KeyTab})
	if a.focus != msgs.FocusResult {
		t.Errorf("expected FocusResult after Tab, got %v", a.focus)
	}
	a, _ = update(a, tea.KeyMsg{Type: tea.KeyShiftTab})
	if a.focus != msgs.FocusSearch {
		t.Errorf("expected FocusSearch after Shift+Tab, got %v", a.focus)
	}
}

func TestGlobalKey_QuitFromSearch(t *testing.T) {
	a := testAppResized()

	_, cmd := update(a, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected non-nil cmd for Ctrl+C")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg from Ctrl+C")
	}
}

func TestNormalKey_QTypesInSearch(t *testing.T) {
	a := testAppResized()

	a, _ = update(a, keyMsg('q'))
	if a.search.Value() != "q" {
		t.Errorf("expected q typed into the search bar, got %q", a.search.Value())
	}

	a, _ = update(a, tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd := update(a, keyMsg('q'))
	if cmd == nil {
		t.Fatal("expected quit in normal mode")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg from q")
	}
}

func TestEscLeavesSearch(t *testing.T) {
	a := testAppResized()

	a, _ = update(a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.focus != msgs.FocusResult {
		t.Errorf("expected FocusResult after Esc, got %v", a.focus)
	}
	if a.search.Focused() {
		t.Error("search should be blurred")
	}

	a, cmd := update(a, keyMsg('/'))
	focus := find[msgs.FocusPanelMsg](t, cmd)
	a, _ = update(a, focus)
	if a.focus != msgs.FocusSearch {
		t.Errorf("expected FocusSearch after /, got %v", a.focus)
	}
}

func TestGlobalKey_CommandPalette(t *testing.T) {
	a := testAppResized()

	_, cmd := update(a, tea.KeyMsg{Type: tea.KeyCtrlK})
	find[msgs.OpenCommandPaletteMsg](t, cmd)
}

func TestOverlayPriority_CommandPaletteBlocksKeys(t *testing.T) {
	a := testAppResized()
	a, _ = update(a, msgs.OpenCommandPaletteMsg{})

	initialFocus := a.focus
	a, _ = update(a, tea.KeyMsg{Type: tea.KeyTab})
	if a.focus != initialFocus {
		t.Errorf("key should have been consumed by command palette; focus changed from %v to %v", initialFocus, a.focus)
	}

	a, _ = update(a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.commandPalette.Visible {
		t.Error("command palette should close on Esc")
	}
}

func TestLookup_Success(t *testing.T) {
	repo := newHistoryRepo(t)
	svc := search.NewService(fakeChain{product: testProduct()}, search.WithHistory(repo))
	a := New(config.DefaultConfig(), Deps{Lookup: svc, History: repo})
	a, _ = update(a, tea.WindowSizeMsg{Width: 160, Height: 40})

	a, cmd := update(a, msgs.LookupMsg{Query: "7891000053508"})
	if !a.store.Loading || !a.result.Loading() {
		t.Fatal("expected loading state")
	}

	done := find[msgs.LookupDoneMsg](t, cmd)
	if done.Err != nil {
		t.Fatalf("lookup error: %v", done.Err)
	}
	if done.Entry == nil {
		t.Fatal("expected history entry")
	}

	a, cmd = update(a, done)
	if a.store.Loading {
		t.Error("loading should stop")
	}
	if p := a.result.Product(); p == nil || p.Name != "Biscoito Recheado" {
		t.Fatalf("unexpected product on screen: %+v", p)
	}
	if a.store.Product.Barcode != "7891000053508" {
		t.Errorf("store barcode = %q", a.store.Product.Barcode)
	}

	loaded := find[msgs.HistoryLoadedMsg](t, cmd)
	a, _ = update(a, loaded)
	if a.history.Len() != 1 || len(a.store.History) != 1 {
		t.Fatalf("history len = %d/%d, want 1", a.history.Len(), len(a.store.History))
	}
}

func TestLookup_WithoutRepositoryKeepsHistoryInMemory(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.History.Limit = 2
	a := New(cfg, Deps{Lookup: search.NewService(fakeChain{product: testProduct()})})
	a, _ = update(a, tea.WindowSizeMsg{Width: 160, Height: 40})

	for _, code := range []string{"7891000053508", "7891000100103", "4006381333931"} {
		var cmd tea.Cmd
		a, cmd = update(a, msgs.LookupMsg{Query: code})
		a, cmd = update(a, find[msgs.LookupDoneMsg](t, cmd))
		if cmd != nil {
			t.Fatalf("lookup %s should not reload history", code)
		}
	}

	if len(a.store.History) != 2 || a.history.Len() != 2 {
		t.Fatalf("history len = %d/%d, want 2", len(a.store.History), a.history.Len())
	}
	if got := a.store.History[0].Product.Barcode; got != "4006381333931" {
		t.Errorf("most recent = %q", got)
	}

	a, _ = update(a, msgs.HistorySelectedMsg{ID: a.store.History[1].ID})
	if p := a.result.Product(); p == nil || p.Barcode != "7891000100103" {
		t.Fatalf("unexpected product: %+v", p)
	}
}

func TestLookup_NotFound(t *testing.T) {
	svc := search.NewService(fakeChain{err: provider.ErrNotFound})
	a := New(config.DefaultConfig(), Deps{Lookup: svc})
	a, _ = update(a, tea.WindowSizeMsg{Width: 160, Height: 40})

	a, cmd := update(a, msgs.LookupMsg{Query: "123456"})
	done := find[msgs.LookupDoneMsg](t, cmd)
	a, _ = update(a, done)

	if a.store.Error != search.MsgNotFound {
		t.Errorf("store error = %q", a.store.Error)
	}
	if a.result.Product() != nil {
		t.Error("expected no product")
	}
	if len(a.store.Attempts) != 1 {
		t.Errorf("attempts = %d, want 1", len(a.store.Attempts))
	}
}

func TestLookup_InvalidInput(t *testing.T) {
	a := testAppResized()

	a, cmd := update(a, msgs.LookupMsg{Query: "12#34"})
	if cmd != nil {
		t.Error("expected no lookup for invalid input")
	}
	if a.store.Error != search.MsgInvalidBarcode {
		t.Errorf("store error = %q", a.store.Error)
	}

	a, _ = update(a, msgs.LookupMsg{Query: "   "})
	if a.store.Error != search.MsgEmptyBarcode {
		t.Errorf("store error = %q", a.store.Error)
	}
}

func TestLookup_IgnoresStaleResult(t *testing.T) {
	a := testAppResized()
	a, _ = update(a, msgs.LookupMsg{Query: "111"})

	a, _ = update(a, msgs.LookupDoneMsg{Query: "222", Product: testProduct()})
	if !a.store.Loading {
		t.Error("stale result should not end the lookup")
	}
	if a.result.Product() != nil {
		t.Error("stale product should not be shown")
	}
}

func TestHistorySelected(t *testing.T) {
	a := testAppResized()
	p := *testProduct()
	p.Barcode = "7891000053508"
	a, _ = update(a, msgs.HistoryLoadedMsg{Entries: []history.Entry{{ID: 7, Product: p}}})

	a, _ = update(a, msgs.HistorySelectedMsg{ID: 7})
	if got := a.result.Product(); got == nil || got.Barcode != p.Barcode {
		t.Fatalf("unexpected product: %+v", got)
	}
	if a.search.Value() != p.Barcode {
		t.Errorf("search value = %q", a.search.Value())
	}
	if a.focus != msgs.FocusResult {
		t.Errorf("expected FocusResult, got %v", a.focus)
	}

	a, _ = update(a, msgs.HistorySelectedMsg{ID: 99})
	if a.store.Selected != 0 {
		t.Errorf("unknown id should keep selection, got %d", a.store.Selected)
	}
}

func TestHistoryPicker(t *testing.T) {
	a := testAppResized()

	_, cmd := update(a, tea.KeyMsg{Type: tea.KeyCtrlO})
	find[msgs.OpenHistoryPickerMsg](t, cmd)

	a, _ = update(a, msgs.OpenHistoryPickerMsg{})
	if a.commandPalette.Visible {
		t.Fatal("picker should stay closed without history")
	}

	p := *testProduct()
	a, _ = update(a, msgs.HistoryLoadedMsg{Entries: []history.Entry{{ID: 3, Product: p}}})
	a, _ = update(a, msgs.OpenHistoryPickerMsg{})
	if !a.commandPalette.Visible {
		t.Fatal("picker should open over loaded history")
	}
	if a.mode != msgs.ModeCommandPalette {
		t.Errorf("expected ModeCommandPalette, got %v", a.mode)
	}

	_, cmd = update(a, tea.KeyMsg{Type: tea.KeyEnter})
	if got := find[msgs.HistorySelectedMsg](t, cmd); got.ID != 3 {
		t.Errorf("selected id = %d, want 3", got.ID)
	}
}

func TestClearHistory_Confirm(t *testing.T) {
	repo := newHistoryRepo(t)
	if _, err := repo.Add(context.Background(), *testProduct()); err != nil {
		t.Fatalf("add: %v", err)
	}
	a := New(config.DefaultConfig(), Deps{History: repo})
	a, _ = update(a, tea.WindowSizeMsg{Width: 160, Height: 40})
	a, _ = update(a, find[msgs.HistoryLoadedMsg](t, a.loadHistory()))

	a, _ = update(a, msgs.ClearHistoryMsg{})
	if !a.modal.Visible {
		t.Fatal("expected confirmation modal")
	}

	a, cmd := update(a, keyMsg('y'))
	a, cmd = update(a, find[clearHistoryConfirmedMsg](t, cmd))
	a, _ = update(a, find[msgs.HistoryClearedMsg](t, cmd))

	if len(a.store.History) != 0 || a.history.Len() != 0 {
		t.Error("expected history cleared")
	}
	entries, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty repository, got %d entries", len(entries))
	}
}

func TestClearHistory_Cancel(t *testing.T) {
	a := testAppResized()
	a, _ = update(a, msgs.HistoryLoadedMsg{Entries: []history.Entry{{ID: 1, Product: *testProduct()}}})

	a, _ = update(a, msgs.ClearHistoryMsg{})
	a, cmd := update(a, keyMsg('n'))
	if a.modal.Visible {
		t.Error("modal should close on n")
	}
	for _, msg := range collect(cmd) {
		if _, ok := msg.(clearHistoryConfirmedMsg); ok {
			t.Fatal("cancel must not confirm")
		}
	}
	if len(a.store.History) != 1 {
		t.Error("history should be kept")
	}
}

func TestToggleTheme_Persists(t *testing.T) {
	kv := memKV{}
	a := New(config.DefaultConfig(), Deps{Prefs: prefs.New(kv)})
	a, _ = update(a, tea.WindowSizeMsg{Width: 160, Height: 40})
	a, _ = update(a, tea.KeyMsg{Type: tea.KeyEsc})

	a, cmd := update(a, keyMsg('t'))
	a, cmd = update(a, find[msgs.ToggleThemeMsg](t, cmd))
	a, _ = update(a, find[msgs.PrefsChangedMsg](t, cmd))

	if !a.theme.Dark || !a.store.Prefs.Dark() {
		t.Error("expected dark theme after toggle")
	}
	if kv[prefs.KeyTheme] != prefs.ThemeDark {
		t.Errorf("stored theme = %q", kv[prefs.KeyTheme])
	}

	a2 := New(config.DefaultConfig(), Deps{Prefs: prefs.New(kv)})
	a2, _ = update(a2, find[msgs.PrefsChangedMsg](t, a2.loadPrefs()))
	if !a2.theme.Dark {
		t.Error("expected dark theme restored on start")
	}
}

func TestToggleColorBlind_WithoutRepository(t *testing.T) {
	a := testAppResized()

	a, cmd := update(a, msgs.ToggleColorBlindMsg{})
	a, _ = update(a, find[msgs.PrefsChangedMsg](t, cmd))
	if !a.store.Prefs.ColorBlind || !a.theme.ColorBlind {
		t.Error("expected color-blind mode on")
	}
}

func TestCopyProductAndBarcode(t *testing.T) {
	a := testAppResized()
	var copied []string
	a.copyText = func(s string) error {
		copied = append(copied, s)
		return nil
	}

	p := *testProduct()
	p.Barcode = "7891000053508"
	a, _ = update(a, msgs.HistoryLoadedMsg{Entries: []history.Entry{{ID: 1, Product: p}}})
	a, _ = update(a, msgs.HistorySelectedMsg{ID: 1})

	a, _ = update(a, msgs.CopyProductMsg{})
	a, _ = update(a, msgs.CopyBarcodeMsg{})

	if len(copied) != 2 {
		t.Fatalf("copied %d values, want 2", len(copied))
	}
	if !strings.Contains(copied[0], `"name": "Biscoito Recheado"`) {
		t.Errorf("unexpected JSON: %s", copied[0])
	}
	if copied[1] != "7891000053508" {
		t.Errorf("copied barcode = %q", copied[1])
	}
}

func TestHistoryFilterCapturesKeys(t *testing.T) {
	a := testAppResized()
	a, _ = update(a, msgs.HistoryLoadedMsg{Entries: []history.Entry{{ID: 1, Product: *testProduct()}}})
	a, _ = update(a, msgs.FocusPanelMsg{Panel: msgs.FocusHistory})

	a, _ = update(a, keyMsg('/'))
	if !a.history.Filtering() {
		t.Fatal("expected history filter active")
	}
	_, cmd := update(a, keyMsg('q'))
	for _, msg := range collect(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			t.Fatal("q should be typed into the filter")
		}
	}
}

func TestView_NotReady(t *testing.T) {
	a := testApp()
	if a.View() != "Loading..." {
		t.Errorf("expected Loading..., got %q", a.View())
	}
}

func TestView_Ready(t *testing.T) {
	a := testAppResized()
	view := a.View()
	for _, want := range []string{"History", "Enter a barcode", "INSERT"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
