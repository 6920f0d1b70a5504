// Package app wires the panels and overlays into the root Bubble Tea model.
package app

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sadopc/consulteja/internal/config"
	"github.com/sadopc/consulteja/internal/core/history"
	"github.com/sadopc/consulteja/internal/core/prefs"
	"github.com/sadopc/consulteja/internal/core/state"
	"github.com/sadopc/consulteja/internal/provider"
	"github.com/sadopc/consulteja/internal/search"
	"github.com/sadopc/consulteja/internal/ui/components"
	"github.com/sadopc/consulteja/internal/ui/layout"
	"github.com/sadopc/consulteja/internal/ui/msgs"
	historypanel "github.com/sadopc/consulteja/internal/ui/panels/history"
	"github.com/sadopc/consulteja/internal/ui/panels/result"
	searchpanel "github.com/sadopc/consulteja/internal/ui/panels/search"
	"github.com/sadopc/consulteja/internal/ui/theme"
)

// Looker runs one barcode lookup. *search.Service implements it.
type Looker interface {
	Lookup(ctx context.Context, raw string) (*search.Result, []provider.Attempt, error)
}

// Deps are the services the UI drives. History and Prefs may be nil, in
// which case nothing is persisted.
type Deps struct {
	Lookup    Looker
	History   history.Repository
	Prefs     prefs.Repository
	Providers []string
	Logger    *zap.Logger
	Context   context.Context
}

// App is the root Bubble Tea model.
type App struct {
	search  searchpanel.Model
	result  result.Model
	history historypanel.Model

	statusBar      components.StatusBar
	commandPalette components.CommandPalette
	help           components.Help
	toast          components.Toast
	modal          components.Modal

	store     *state.Store
	lookup    Looker
	histRepo  history.Repository
	prefsRepo prefs.Repository
	providers []string
	cfg       config.Config
	lg        *zap.Logger
	ctx       context.Context
	copyText  func(string) error

	mode           msgs.AppMode
	focus          msgs.PanelFocus
	sidebarVisible bool
	layout         layout.PanelLayout
	keys           KeyMap

	theme  theme.Theme
	styles theme.Styles

	width  int
	height int
	ready  bool
}

// New creates a new App model.
func New(cfg config.Config, deps Deps) App {
	store := state.NewStore()
	t := theme.Resolve(cfg.Theme, store.Prefs)
	s := theme.NewStyles(t)

	lg := deps.Logger
	if lg == nil {
		lg = zap.NewNop()
	}
	ctx := deps.Context
	if ctx == nil {
		ctx = context.Background()
	}

	a := App{
		search:  searchpanel.New(t, s),
		result:  result.New(t, s),
		history: historypanel.New(t, s),

		statusBar:      components.NewStatusBar(t, s),
		commandPalette: components.NewCommandPalette(t),
		help:           components.NewHelp(t),
		toast:          components.NewToast(t),
		modal:          components.NewModal(t),

		store:     store,
		lookup:    deps.Lookup,
		histRepo:  deps.History,
		prefsRepo: deps.Prefs,
		providers: deps.Providers,
		cfg:       cfg,
		lg:        lg,
		ctx:       ctx,
		copyText:  clipboard.WriteAll,

		mode:           msgs.ModeInsert,
		focus:          msgs.FocusSearch,
		sidebarVisible: true,
		keys:           DefaultKeyMap(),

		theme:  t,
		styles: s,
	}
	a.statusBar.SetMode(a.mode)
	a.updateFocus()
	return a
}

// Init loads preferences and history.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.loadPrefs(), a.loadHistory(), a.search.SetFocused(true))
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout = layout.HandleResize(msg, a.sidebarVisible)
		a.resizePanels()
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case msgs.LookupMsg:
		return a.startLookup(msg.Query)

	case msgs.LookupDoneMsg:
		return a.handleLookupDone(msg)

	case msgs.HistoryLoadedMsg:
		return a.handleHistoryLoaded(msg)

	case msgs.HistorySelectedMsg:
		return a.handleHistorySelected(msg)

	case msgs.ClearHistoryMsg:
		return a.confirmClearHistory()

	case clearHistoryConfirmedMsg:
		return a, a.clearHistory()

	case msgs.HistoryClearedMsg:
		return a.handleHistoryCleared(msg)

	case msgs.ToggleThemeMsg:
		return a, a.togglePrefs(prefs.KeyTheme)

	case msgs.ToggleColorBlindMsg:
		return a, a.togglePrefs(prefs.KeyColorBlind)

	case msgs.PrefsChangedMsg:
		return a.handlePrefsChanged(msg)

	case msgs.ToggleRawMsg:
		if a.result.Product() == nil {
			return a, nil
		}
		a.result.ToggleRaw()
		return a, nil

	case msgs.CopyProductMsg:
		return a.copyProduct()

	case msgs.CopyBarcodeMsg:
		return a.copyBarcode()

	case msgs.ToggleSidebarMsg:
		a.toggleSidebar()
		return a, nil

	case msgs.OpenCommandPaletteMsg:
		a.setMode(msgs.ModeCommandPalette)
		a.commandPalette.Open()
		return a, nil

	case msgs.OpenHistoryPickerMsg:
		if len(a.store.History) == 0 {
			return a, a.toast.Show("No lookups yet", false, 2*time.Second)
		}
		a.setMode(msgs.ModeCommandPalette)
		a.commandPalette.OpenHistoryPicker(a.store.History)
		return a, nil

	case msgs.ShowHelpMsg:
		a.setMode(msgs.ModeModal)
		a.help.SetSize(a.width, a.height)
		a.help.Toggle()
		return a, nil

	case msgs.SetModeMsg:
		mode := msg.Mode
		if mode == msgs.ModeNormal && a.focus == msgs.FocusSearch {
			mode = msgs.ModeInsert
		}
		a.setMode(mode)
		return a, nil

	case msgs.FocusPanelMsg:
		return a, a.setFocus(msg.Panel)

	case msgs.CycleFocusMsg:
		return a, a.cycleFocus(msg.Reverse)

	case msgs.StatusMsg:
		a.statusBar.SetMessage(msg.Text)
		if msg.Duration > 0 {
			cmds = append(cmds, tea.Tick(msg.Duration, func(time.Time) tea.Msg {
				return msgs.StatusMsg{Text: ""}
			}))
		}
		return a, tea.Batch(cmds...)

	case msgs.ToastMsg:
		return a, a.toast.Show(msg.Text, msg.IsError, msg.Duration)
	}

	var cmd tea.Cmd
	a.toast, cmd = a.toast.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.statusBar, cmd = a.statusBar.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.result, cmd = a.result.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.search, cmd = a.search.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) setMode(mode msgs.AppMode) {
	a.mode = mode
	a.statusBar.SetMode(mode)
}

func (a *App) toggleSidebar() {
	a.sidebarVisible = !a.sidebarVisible
	a.layout = layout.Calculate(a.width, a.height, a.sidebarVisible)
	if !a.layout.SidebarVisible && a.focus == msgs.FocusHistory && !a.layout.Compact {
		a.focus = msgs.FocusResult
	}
	a.resizePanels()
}

func (a *App) resizePanels() {
	l := a.layout
	a.search.SetWidth(l.Width)
	if l.Compact {
		a.history.SetSize(l.Width, l.ContentHeight)
	} else {
		a.history.SetSize(l.SidebarWidth, l.ContentHeight)
	}
	a.result.SetSize(l.ResultWidth, l.ContentHeight)
	a.statusBar.SetWidth(a.width)
	a.help.SetSize(a.width, a.height)
	a.updateFocus()
}

// applyTheme rebuilds every style from t.
func (a *App) applyTheme(t theme.Theme) {
	s := theme.NewStyles(t)
	a.theme = t
	a.styles = s

	a.search.SetTheme(t, s)
	a.result.SetTheme(t, s)
	a.history.SetTheme(t, s)
	a.statusBar.SetTheme(t, s)
	a.commandPalette.SetTheme(t)
	a.help.SetTheme(t)
	a.toast.SetTheme(t)
	a.modal.SetTheme(t)
}

func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var content string
	switch {
	case a.layout.Compact && a.focus == msgs.FocusHistory:
		content = a.history.View()
	case a.layout.SidebarVisible:
		content = lipgloss.JoinHorizontal(lipgloss.Top, a.history.View(), a.result.View())
	default:
		content = a.result.View()
	}

	main := lipgloss.JoinVertical(lipgloss.Left, a.search.View(), content, a.statusBar.View())

	if a.commandPalette.Visible {
		main = a.overlayCenter(a.commandPalette.View())
	}
	if a.help.Visible {
		main = a.overlayCenter(a.help.View())
	}
	if a.modal.Visible {
		main = a.overlayCenter(a.modal.View())
	}
	if a.toast.Visible {
		main = overlayTopRight(main, a.toast.View(), a.width)
	}

	return main
}
