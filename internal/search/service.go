// Package search runs a barcode through the provider chain and records
// successful lookups in history.
package search

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/sadopc/consulteja/internal/core/history"
	"github.com/sadopc/consulteja/internal/product"
	"github.com/sadopc/consulteja/internal/provider"
)

// User-facing messages.
const (
	MsgNotFound       = "Produto não encontrado. Verifique se o código de barras está correto e tente novamente."
	MsgUnavailable    = "Erro ao consultar o produto. Verifique sua conexão com a internet e tente novamente."
	MsgInvalidBarcode = "Código de barras inválido. Use apenas letras e números."
	MsgEmptyBarcode   = "Digite ou cole um código de barras."
	MsgCanceled       = "Consulta cancelada."
)

// Looker is satisfied by *provider.Chain.
type Looker interface {
	Lookup(ctx context.Context, barcode string) (*product.Product, []provider.Attempt, error)
}

// Result of a successful lookup.
type Result struct {
	Product  product.Product    `json:"product" yaml:"product"`
	Barcode  product.Info       `json:"barcode" yaml:"barcode"`
	Attempts []provider.Attempt `json:"attempts" yaml:"attempts"`
	Entry    *history.Entry     `json:"history_entry,omitempty" yaml:"history_entry,omitempty"`
}

// Service orchestrates lookups.
type Service struct {
	chain   Looker
	history history.Repository // nil disables recording
	timeout time.Duration
	lg      *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithHistory records successful lookups in repo.
func WithHistory(repo history.Repository) Option {
	return func(s *Service) { s.history = repo }
}

// WithTimeout bounds a whole lookup, across all providers.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithLogger sets the service logger.
func WithLogger(lg *zap.Logger) Option {
	return func(s *Service) { s.lg = lg }
}

// NewService creates a lookup service over chain.
func NewService(chain Looker, opts ...Option) *Service {
	s := &Service{chain: chain, lg: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Lookup normalizes raw, queries the chain and records the product in
// history. Attempts are returned even on failure.
func (s *Service) Lookup(ctx context.Context, raw string) (*Result, []provider.Attempt, error) {
	code, err := product.Normalize(raw)
	if err != nil {
		return nil, nil, err
	}
	info := product.Detect(code)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	lg := s.lg.With(
		zap.String("barcode", code),
		zap.String("kind", string(info.Kind)),
	)
	if !info.ChecksumOK && isGS1(info.Kind) {
		lg.Info("Check digit mismatch, looking up anyway")
	}

	start := time.Now()
	p, attempts, err := s.chain.Lookup(ctx, code)
	if err != nil {
		lg.Info("Lookup failed",
			zap.Error(err),
			zap.Int("attempts", len(attempts)),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, attempts, err
	}
	lg.Info("Lookup succeeded",
		zap.String("source", p.Source),
		zap.Int("attempts", len(attempts)),
		zap.Duration("duration", time.Since(start)),
	)

	res := &Result{Product: *p, Barcode: info, Attempts: attempts}
	if s.history != nil {
		// Best effort: the product is still returned.
		e, err := s.history.Add(context.WithoutCancel(ctx), *p)
		if err != nil {
			lg.Warn("Failed to record history", zap.Error(err))
		} else {
			res.Entry = &e
		}
	}
	return res, attempts, nil
}

// Message maps a Lookup error to the text shown to the user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, product.ErrEmptyBarcode):
		return MsgEmptyBarcode
	case errors.Is(err, product.ErrInvalidBarcode):
		return MsgInvalidBarcode
	case errors.Is(err, context.Canceled):
		return MsgCanceled
	case errors.Is(err, provider.ErrNotFound):
		return MsgNotFound
	default:
		return MsgUnavailable
	}
}

func isGS1(k product.Kind) bool {
	switch k {
	case product.KindEAN13, product.KindEAN8, product.KindUPCA, product.KindUPCE, product.KindGTIN14:
		return true
	}
	return false
}
