package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sadopc/consulteja/internal/core/prefs"
	"github.com/sadopc/consulteja/internal/product"
	"github.com/sadopc/consulteja/internal/search"
	"github.com/sadopc/consulteja/internal/ui/msgs"
	"github.com/sadopc/consulteja/internal/ui/panels/result"
	"github.com/sadopc/consulteja/internal/ui/theme"
)

// clearHistoryConfirmedMsg is sent by the confirmation modal.
type clearHistoryConfirmedMsg struct{}

func (a App) startLookup(query string) (tea.Model, tea.Cmd) {
	if a.store.Loading {
		return a, nil
	}
	if _, err := product.Normalize(query); err != nil {
		a.store.FailLookup(search.Message(err), nil)
		a.result.SetError(search.Message(err), nil)
		return a, nil
	}
	if a.lookup == nil {
		a.result.SetError(search.MsgUnavailable, nil)
		return a, nil
	}

	a.store.StartLookup(query)
	a.search.SetLoading(true)
	spin := a.result.SetLoading(query)

	svc, ctx := a.lookup, a.ctx
	cmd := func() tea.Msg {
		start := time.Now()
		res, attempts, err := svc.Lookup(ctx, query)
		done := msgs.LookupDoneMsg{
			Query:    query,
			Attempts: attempts,
			Duration: time.Since(start),
			Err:      err,
		}
		if res != nil {
			done.Product = &res.Product
			done.Info = res.Barcode
			done.Entry = res.Entry
		}
		return done
	}

	return a, tea.Batch(cmd, spin)
}

func (a App) handleLookupDone(msg msgs.LookupDoneMsg) (tea.Model, tea.Cmd) {
	if !a.store.Loading || msg.Query != a.store.Query {
		return a, nil
	}
	a.search.SetLoading(false)

	if msg.Err != nil || msg.Product == nil {
		text := search.Message(msg.Err)
		if text == "" {
			text = search.MsgNotFound
		}
		a.store.FailLookup(text, msg.Attempts)
		a.result.SetError(text, msg.Attempts)
		a.statusBar.SetLookup("", "", msg.Duration, len(msg.Attempts), len(a.providers))
		return a, a.toast.Show(text, true, 4*time.Second)
	}

	a.store.FinishLookup(msg.Product, msg.Attempts)
	a.result.SetProduct(*msg.Product, msg.Info, msg.Attempts)
	a.statusBar.SetLookup(msg.Product.Source, msg.Info.Kind, msg.Duration, len(msg.Attempts), len(a.providers))

	switch {
	case msg.Entry != nil:
		return a, a.loadHistory()
	case a.histRepo == nil:
		a.store.Remember(*msg.Product, time.Now(), a.cfg.History.Limit)
		a.history.SetEntries(a.store.History)
	}
	return a, nil
}

func (a App) loadHistory() tea.Cmd {
	repo, ctx := a.histRepo, a.ctx
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := repo.List(ctx)
		return msgs.HistoryLoadedMsg{Entries: entries, Err: err}
	}
}

func (a App) handleHistoryLoaded(msg msgs.HistoryLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.lg.Warn("Failed to load history", zap.Error(msg.Err))
		return a, a.toast.Show("Could not load history", true, 3*time.Second)
	}
	a.store.SetHistory(msg.Entries)
	a.history.SetEntries(msg.Entries)
	return a, nil
}

func (a App) handleHistorySelected(msg msgs.HistorySelectedMsg) (tea.Model, tea.Cmd) {
	if a.store.Loading || !a.store.SelectHistoryID(msg.ID) {
		return a, nil
	}
	e := a.store.SelectedEntry()
	a.result.SetProduct(e.Product, product.Detect(e.Product.Barcode), nil)
	a.search.SetValue(e.Product.Barcode)
	a.statusBar.SetHistoryEntry(e.Product.Source, e.SearchedAt)
	return a, a.setFocus(msgs.FocusResult)
}

func (a App) confirmClearHistory() (tea.Model, tea.Cmd) {
	if len(a.store.History) == 0 {
		return a, a.toast.Show("History is already empty", false, 2*time.Second)
	}
	a.modal.Show(
		"Clear history",
		fmt.Sprintf("Delete all %d saved lookups?", len(a.store.History)),
		clearHistoryConfirmedMsg{},
	)
	a.setMode(msgs.ModeModal)
	return a, nil
}

func (a App) clearHistory() tea.Cmd {
	repo, ctx := a.histRepo, a.ctx
	if repo == nil {
		return func() tea.Msg { return msgs.HistoryClearedMsg{} }
	}
	return func() tea.Msg {
		return msgs.HistoryClearedMsg{Err: repo.Clear(ctx)}
	}
}

func (a App) handleHistoryCleared(msg msgs.HistoryClearedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.lg.Warn("Failed to clear history", zap.Error(msg.Err))
		return a, a.toast.Show("Could not clear history", true, 3*time.Second)
	}
	a.store.ClearHistory()
	a.history.SetEntries(nil)
	return a, a.toast.Show("History cleared", false, 2*time.Second)
}

func (a App) loadPrefs() tea.Cmd {
	repo, ctx := a.prefsRepo, a.ctx
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		p, err := repo.Load(ctx)
		return msgs.PrefsChangedMsg{Prefs: p, Err: err}
	}
}

// togglePrefs flips one preference and persists it. When saving fails the
// change still applies for this session.
func (a App) togglePrefs(which string) tea.Cmd {
	repo, ctx, current := a.prefsRepo, a.ctx, a.store.Prefs
	next := toggled(current, which)
	if repo == nil {
		return func() tea.Msg { return msgs.PrefsChangedMsg{Prefs: next} }
	}
	return func() tea.Msg {
		var (
			p   prefs.Preferences
			err error
		)
		if which == prefs.KeyTheme {
			p, err = repo.ToggleTheme(ctx)
		} else {
			p, err = repo.ToggleColorBlind(ctx)
		}
		if err != nil {
			return msgs.PrefsChangedMsg{Prefs: next, Err: err}
		}
		return msgs.PrefsChangedMsg{Prefs: p}
	}
}

func toggled(p prefs.Preferences, which string) prefs.Preferences {
	if which == prefs.KeyTheme {
		if p.Dark() {
			p.Theme = prefs.ThemeLight
		} else {
			p.Theme = prefs.ThemeDark
		}
		return p
	}
	p.ColorBlind = !p.ColorBlind
	return p
}

func (a App) handlePrefsChanged(msg msgs.PrefsChangedMsg) (tea.Model, tea.Cmd) {
	p := msg.Prefs
	if p.Validate() != nil {
		p = prefs.Default()
	}
	a.store.Prefs = p
	a.applyTheme(theme.Resolve(a.cfg.Theme, p))

	if msg.Err != nil {
		a.lg.Warn("Preferences not persisted", zap.Error(msg.Err))
		return a, a.toast.Show("Could not save preferences", true, 3*time.Second)
	}
	return a, nil
}

func (a App) copyProduct() (tea.Model, tea.Cmd) {
	p := a.result.Product()
	if p == nil {
		return a, a.toast.Show("No product to copy", true, 2*time.Second)
	}
	if err := a.copyText(string(result.RawJSON(*p))); err != nil {
		return a, a.toast.Show("Clipboard error: "+err.Error(), true, 3*time.Second)
	}
	return a, a.toast.Show("Copied product JSON", false, 2*time.Second)
}

func (a App) copyBarcode() (tea.Model, tea.Cmd) {
	code := a.store.Query
	if p := a.result.Product(); p != nil {
		code = p.Barcode
	}
	if code == "" {
		return a, a.toast.Show("No barcode to copy", true, 2*time.Second)
	}
	if err := a.copyText(code); err != nil {
		return a, a.toast.Show("Clipboard error: "+err.Error(), true, 3*time.Second)
	}
	return a, a.toast.Show("Copied "+code, false, 2*time.Second)
}
