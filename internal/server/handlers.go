package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/sadopc/consulteja/internal/core/history"
	"github.com/sadopc/consulteja/internal/core/prefs"
	"github.com/sadopc/consulteja/internal/product"
	"github.com/sadopc/consulteja/internal/provider"
	"github.com/sadopc/consulteja/internal/search"
)

// Error codes returned in ErrorResponse.Error.
const (
	CodeInvalidBarcode = "invalid_barcode"
	CodeNotFound       = "not_found"
	CodeUnavailable    = "unavailable"
	CodeCanceled       = "canceled"
	CodeDisabled       = "disabled"
	CodeBadRequest     = "bad_request"
	CodeInternal       = "internal"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error    string             `json:"error"`
	Message  string             `json:"message"`
	Attempts []provider.Attempt `json:"attempts,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

func (s *Server) handleLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if !s.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleProviders(w http.ResponseWriter, _ *http.Request) {
	names := s.deps.Providers
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"providers": names})
}

// lookupStatus maps a lookup error to an HTTP status and error code.
func lookupStatus(err error) (int, string) {
	switch {
	case errors.Is(err, product.ErrEmptyBarcode), errors.Is(err, product.ErrInvalidBarcode):
		return http.StatusBadRequest, CodeInvalidBarcode
	case errors.Is(err, provider.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, context.Canceled):
		// nginx convention for a client that went away.
		return 499, CodeCanceled
	default:
		return http.StatusBadGateway, CodeUnavailable
	}
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw := mux.Vars(r)["barcode"]

	res, attempts, err := s.deps.Lookup.Lookup(ctx, raw)
	if err != nil {
		status, code := lookupStatus(err)
		if status == http.StatusBadGateway {
			zctx.From(ctx).Warn("Lookup unavailable", zap.Error(err))
		}
		writeJSON(w, status, ErrorResponse{
			Error:    code,
			Message:  search.Message(err),
			Attempts: attempts,
		})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) historyRepo(w http.ResponseWriter) (history.Repository, bool) {
	if s.deps.History == nil {
		writeError(w, http.StatusNotImplemented, CodeDisabled, "history is disabled")
		return nil, false
	}
	return s.deps.History, true
}

// handleHistoryList returns entries most-recent-first. ?format=yaml
// switches the encoding.
func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	repo, ok := s.historyRepo(w)
	if !ok {
		return
	}
	ctx := r.Context()
	entries, err := repo.List(ctx)
	if err != nil {
		s.internalError(ctx, w, err, "list history")
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", history.FormatJSON:
		if entries == nil {
			entries = []history.Entry{}
		}
		writeJSON(w, http.StatusOK, entries)
	case history.FormatYAML, "yml":
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if err := history.Export(w, entries, history.FormatYAML); err != nil {
			zctx.From(ctx).Warn("Failed to encode history", zap.Error(err))
		}
	default:
		writeError(w, http.StatusBadRequest, CodeBadRequest, "unsupported format "+strconv.Quote(format))
	}
}

func (s *Server) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	repo, ok := s.historyRepo(w)
	if !ok {
		return
	}
	ctx := r.Context()
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid id")
		return
	}
	e, err := repo.Get(ctx, id)
	switch {
	case errors.Is(err, history.ErrNotFound):
		writeError(w, http.StatusNotFound, CodeNotFound, "history entry not found")
	case err != nil:
		s.internalError(ctx, w, err, "get history entry")
	default:
		writeJSON(w, http.StatusOK, e)
	}
}

func (s *Server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	repo, ok := s.historyRepo(w)
	if !ok {
		return
	}
	if err := repo.Clear(r.Context()); err != nil {
		s.internalError(r.Context(), w, err, "clear history")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) prefsRepo(w http.ResponseWriter) (prefs.Repository, bool) {
	if s.deps.Prefs == nil {
		writeError(w, http.StatusNotImplemented, CodeDisabled, "preferences are disabled")
		return nil, false
	}
	return s.deps.Prefs, true
}

func (s *Server) handlePrefsGet(w http.ResponseWriter, r *http.Request) {
	repo, ok := s.prefsRepo(w)
	if !ok {
		return
	}
	p, err := repo.Load(r.Context())
	if err != nil {
		s.internalError(r.Context(), w, err, "load preferences")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePrefsPut(w http.ResponseWriter, r *http.Request) {
	repo, ok := s.prefsRepo(w)
	if !ok {
		return
	}
	var p prefs.Preferences
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid JSON body")
		return
	}
	if err := p.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	if err := repo.Save(r.Context(), p); err != nil {
		s.internalError(r.Context(), w, err, "save preferences")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	s.toggle(w, r, prefs.Repository.ToggleTheme)
}

func (s *Server) handleToggleColorBlind(w http.ResponseWriter, r *http.Request) {
	s.toggle(w, r, prefs.Repository.ToggleColorBlind)
}

func (s *Server) toggle(w http.ResponseWriter, r *http.Request, fn func(prefs.Repository, context.Context) (prefs.Preferences, error)) {
	repo, ok := s.prefsRepo(w)
	if !ok {
		return
	}
	p, err := fn(repo, r.Context())
	if err != nil {
		s.internalError(r.Context(), w, err, "toggle preference")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) internalError(ctx context.Context, w http.ResponseWriter, err error, op string) {
	zctx.From(ctx).Error("Request failed", zap.String("op", op), zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternal, op+" failed")
}
