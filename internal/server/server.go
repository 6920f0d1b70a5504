// Package server exposes lookups, history and preferences over HTTP.
package server

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sadopc/consulteja/internal/config"
	"github.com/sadopc/consulteja/internal/core/history"
	"github.com/sadopc/consulteja/internal/core/prefs"
	"github.com/sadopc/consulteja/internal/provider"
	"github.com/sadopc/consulteja/internal/search"
)

// Looker runs a lookup. *search.Service implements it.
type Looker interface {
	Lookup(ctx context.Context, raw string) (*search.Result, []provider.Attempt, error)
}

// Deps are the services behind the API. History and Prefs may be nil.
type Deps struct {
	Lookup    Looker
	History   history.Repository
	Prefs     prefs.Repository
	Providers []string
}

// Server serves the HTTP API.
type Server struct {
	deps  Deps
	lg    *zap.Logger
	ready atomic.Bool
	otel  []otelhttp.Option
}

// Option configures a Server.
type Option func(*Server)

// WithOTel passes options to the otelhttp handler, typically tracer and
// meter providers.
func WithOTel(opts ...otelhttp.Option) Option {
	return func(s *Server) { s.otel = append(s.otel, opts...) }
}

// New creates a Server.
func New(deps Deps, lg *zap.Logger, opts ...Option) *Server {
	if lg == nil {
		lg = zap.NewNop()
	}
	s := &Server{deps: deps, lg: lg}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SetReady flips the readiness probe.
func (s *Server) SetReady(v bool) { s.ready.Store(v) }

// Ready reports the readiness probe state.
func (s *Server) Ready() bool { return s.ready.Load() }

// Router returns the bare route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(captureRoute)
	r.HandleFunc("/livez", s.handleLive).Methods(http.MethodGet)
	r.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/products/{barcode}", s.handleLookup).Methods(http.MethodGet)
	api.HandleFunc("/providers", s.handleProviders).Methods(http.MethodGet)

	api.HandleFunc("/history", s.handleHistoryList).Methods(http.MethodGet)
	api.HandleFunc("/history", s.handleHistoryClear).Methods(http.MethodDelete)
	api.HandleFunc("/history/{id:[0-9]+}", s.handleHistoryGet).Methods(http.MethodGet)

	api.HandleFunc("/preferences", s.handlePrefsGet).Methods(http.MethodGet)
	api.HandleFunc("/preferences", s.handlePrefsPut).Methods(http.MethodPut)
	api.HandleFunc("/preferences/theme/toggle", s.handleToggleTheme).Methods(http.MethodPost)
	api.HandleFunc("/preferences/color-blind/toggle", s.handleToggleColorBlind).Methods(http.MethodPost)

	// Subrouters keep their own fallbacks; a method mismatch under /api
	// never reaches the root handlers.
	for _, rt := range []*mux.Router{r, api} {
		rt.NotFoundHandler = http.HandlerFunc(notFound)
		rt.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	}
	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not_found", "route not found")
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
}

// Handler returns the router wrapped in middleware and instrumentation.
func (s *Server) Handler() http.Handler {
	h := Wrap(s.Router(),
		RequestID(),
		InjectLogger(s.lg),
		Recovery(),
		LogRequests(),
	)
	return otelhttp.NewHandler(h, "consulteja", s.otel...)
}

// Run serves on ln until ctx is done, then drains connections.
func (s *Server) Run(ctx context.Context, ln net.Listener, cfg config.ServerConfig) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Lookups may walk every provider.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
		// In-flight requests survive ctx so Shutdown can drain them.
		BaseContext: func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.lg.Info("Server listening", zap.String("addr", ln.Addr().String()))
		s.SetReady(true)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.SetReady(false)
		s.lg.Info("Shutting down server")

		if cfg.ReadinessDelay > 0 && ctx.Err() != nil {
			// Let load balancers observe the failing probe first.
			t := time.NewTimer(cfg.ReadinessDelay)
			<-t.C
		}

		timeout := cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown")
		}
		return nil
	})
	return g.Wait()
}

// ListenAndRun listens on cfg.Addr and calls Run.
func (s *Server) ListenAndRun(ctx context.Context, cfg config.ServerConfig) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", cfg.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", cfg.Addr)
	}
	return s.Run(ctx, ln, cfg)
}
