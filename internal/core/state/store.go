package state

import (
	"time"

	"github.com/sadopc/consulteja/internal/core/history"
	"github.com/sadopc/consulteja/internal/core/prefs"
	"github.com/sadopc/consulteja/internal/product"
	"github.com/sadopc/consulteja/internal/provider"
)

// Store holds the central application state.
type Store struct {
	Query    string
	Product  *product.Product
	Attempts []provider.Attempt
	Loading  bool
	Error    string

	Prefs prefs.Preferences

	History  []history.Entry
	Selected int // index into History, -1 when none

	lastID int64
}

// NewStore creates a new state store.
func NewStore() *Store {
	return &Store{
		Prefs:    prefs.Default(),
		Selected: -1,
	}
}

// StartLookup marks a lookup for query as in flight and clears the previous outcome.
func (s *Store) StartLookup(query string) {
	s.Query = query
	s.Loading = true
	s.Error = ""
	s.Attempts = nil
	s.Selected = -1
}

// FinishLookup records a successful lookup.
func (s *Store) FinishLookup(p *product.Product, attempts []provider.Attempt) {
	s.Loading = false
	s.Error = ""
	s.Product = p
	s.Attempts = attempts
}

// FailLookup records a failed lookup. The previous product is cleared.
func (s *Store) FailLookup(msg string, attempts []provider.Attempt) {
	s.Loading = false
	s.Error = msg
	s.Product = nil
	s.Attempts = attempts
}

// SetHistory replaces the in-memory history mirror.
func (s *Store) SetHistory(entries []history.Entry) {
	s.History = entries
	if s.Selected >= len(entries) {
		s.Selected = len(entries) - 1
	}
}

// SelectedEntry returns the selected history entry, or nil.
func (s *Store) SelectedEntry() *history.Entry {
	if s.Selected >= 0 && s.Selected < len(s.History) {
		return &s.History[s.Selected]
	}
	return nil
}

// SelectHistory shows the entry at index i without a new lookup.
func (s *Store) SelectHistory(i int) bool {
	if i < 0 || i >= len(s.History) {
		return false
	}
	s.Selected = i
	e := s.History[i]
	p := e.Product
	s.Product = &p
	s.Query = p.Barcode
	s.Attempts = nil
	s.Error = ""
	return true
}

// SelectHistoryID selects the entry with the given id.
func (s *Store) SelectHistoryID(id int64) bool {
	for i, e := range s.History {
		if e.ID == id {
			return s.SelectHistory(i)
		}
	}
	return false
}

// Remember prepends p to the in-memory history, keeping at most limit
// entries. Used when no repository backs the history.
func (s *Store) Remember(p product.Product, at time.Time, limit int) history.Entry {
	if limit <= 0 {
		limit = history.DefaultLimit
	}
	s.lastID++
	e := history.Entry{ID: s.lastID, Product: p, SearchedAt: at}
	s.History = append([]history.Entry{e}, s.History...)
	if len(s.History) > limit {
		s.History = s.History[:limit]
	}
	if s.Selected >= 0 {
		s.Selected++
		if s.Selected >= len(s.History) {
			s.Selected = -1
		}
	}
	return e
}

// ClearHistory empties the mirror.
func (s *Store) ClearHistory() {
	s.History = nil
	s.Selected = -1
}
