package msgs

import (
	"time"

	"github.com/sadopc/consulteja/internal/core/history"
	"github.com/sadopc/consulteja/internal/core/prefs"
	"github.com/sadopc/consulteja/internal/product"
	"github.com/sadopc/consulteja/internal/provider"
)

// Panel focus targets
type PanelFocus int

const (
	FocusSearch PanelFocus = iota
	FocusResult
	FocusHistory
)

// AppMode represents the current input mode.
type AppMode int

const (
	ModeNormal AppMode = iota
	ModeInsert
	ModeCommandPalette
	ModeModal
	ModeFilter
)

func (m AppMode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommandPalette:
		return "COMMAND"
	case ModeModal:
		return "MODAL"
	case ModeFilter:
		return "FILTER"
	default:
		return "UNKNOWN"
	}
}

// FocusPanelMsg requests focus change to a specific panel.
type FocusPanelMsg struct {
	Panel PanelFocus
}

// CycleFocusMsg cycles focus to the next/previous panel.
type CycleFocusMsg struct {
	Reverse bool
}

// ToggleSidebarMsg toggles history sidebar visibility.
type ToggleSidebarMsg struct{}

// LookupMsg asks the app to look up a barcode.
type LookupMsg struct {
	Query string
}

// LookupDoneMsg is emitted when a lookup finishes.
type LookupDoneMsg struct {
	Query    string
	Product  *product.Product
	Info     product.Info
	Attempts []provider.Attempt
	Entry    *history.Entry
	Duration time.Duration
	Err      error
}

// HistoryLoadedMsg carries the persisted history.
type HistoryLoadedMsg struct {
	Entries []history.Entry
	Err     error
}

// HistorySelectedMsg is emitted when a history entry is selected.
type HistorySelectedMsg struct {
	ID int64
}

// ClearHistoryMsg asks for confirmation before clearing history.
type ClearHistoryMsg struct{}

// HistoryClearedMsg is emitted once history is cleared.
type HistoryClearedMsg struct {
	Err error
}

// ToggleThemeMsg flips between light and dark.
type ToggleThemeMsg struct{}

// ToggleColorBlindMsg flips color-blind mode.
type ToggleColorBlindMsg struct{}

// PrefsChangedMsg carries preferences after a load or toggle.
type PrefsChangedMsg struct {
	Prefs prefs.Preferences
	Err   error
}

// CopyProductMsg copies the shown product as JSON.
type CopyProductMsg struct{}

// CopyBarcodeMsg copies the shown barcode.
type CopyBarcodeMsg struct{}

// ToggleRawMsg switches the result between details and raw JSON.
type ToggleRawMsg struct{}

// OpenCommandPaletteMsg opens the command palette.
type OpenCommandPaletteMsg struct{}

// OpenHistoryPickerMsg opens the palette over the saved lookups.
type OpenHistoryPickerMsg struct{}

// ShowHelpMsg toggles the help overlay.
type ShowHelpMsg struct{}

// SetModeMsg changes the app mode.
type SetModeMsg struct {
	Mode AppMode
}

// StatusMsg sets a temporary status bar message.
type StatusMsg struct {
	Text     string
	Duration time.Duration
}

// ToastMsg shows a toast notification.
type ToastMsg struct {
	Text     string
	Duration time.Duration
	IsError  bool
}
