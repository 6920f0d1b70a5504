package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/sadopc/consulteja/internal/product"
)

// Outcome of a single provider call.
type Outcome string

const (
	OutcomeFound    Outcome = "found"
	OutcomeNotFound Outcome = "not_found"
	OutcomeError    Outcome = "error"
)

// Attempt records one provider call made by the chain.
type Attempt struct {
	Provider string        `json:"provider"`
	Outcome  Outcome       `json:"outcome"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

func (a Attempt) String() string {
	s := fmt.Sprintf("%s: %s (%s)", a.Provider, a.Outcome, a.Duration.Round(time.Millisecond))
	if a.Error != "" {
		s += ": " + a.Error
	}
	return s
}

// Chain queries providers one after another in registration order.
type Chain struct {
	providers []Provider
	timeout   time.Duration
	lg        *zap.Logger
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithTimeout bounds each provider call. Zero disables the per-call bound.
func WithTimeout(d time.Duration) ChainOption {
	return func(c *Chain) { c.timeout = d }
}

// WithLogger sets the logger used to report fallbacks.
func WithLogger(lg *zap.Logger) ChainOption {
	return func(c *Chain) { c.lg = lg }
}

// NewChain creates a chain over providers, tried in the given order.
func NewChain(providers []Provider, opts ...ChainOption) *Chain {
	c := &Chain{
		providers: providers,
		lg:        zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Names returns provider names in fallback order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return names
}

// Len returns the number of providers.
func (c *Chain) Len() int { return len(c.providers) }

// Lookup returns the first product found. Providers after the first hit are
// not called. The returned attempts are valid even when err is non-nil.
//
// When every provider fails, the error is ErrNotFound if at least one of them
// answered "not found", and ErrUnavailable otherwise.
func (c *Chain) Lookup(ctx context.Context, barcode string) (*product.Product, []Attempt, error) {
	if len(c.providers) == 0 {
		return nil, nil, errors.Wrap(ErrUnavailable, "no providers configured")
	}

	attempts := make([]Attempt, 0, len(c.providers))
	answered := false
	var lastErr error

	for _, p := range c.providers {
		if err := ctx.Err(); err != nil {
			return nil, attempts, err
		}

		start := time.Now()
		prod, err := c.call(ctx, p, barcode)
		a := Attempt{Provider: p.Name(), Duration: time.Since(start)}

		switch {
		case err == nil && prod != nil:
			a.Outcome = OutcomeFound
			attempts = append(attempts, a)
			if prod.Source == "" {
				prod.Source = p.Name()
			}
			if prod.Barcode == "" {
				prod.Barcode = barcode
			}
			prod.FillPlaceholders()
			return prod, attempts, nil
		case err == nil, IsNotFound(err):
			a.Outcome = OutcomeNotFound
			answered = true
		default:
			if ctxErr := ctx.Err(); ctxErr != nil {
				a.Outcome = OutcomeError
				a.Error = ctxErr.Error()
				attempts = append(attempts, a)
				return nil, attempts, ctxErr
			}
			a.Outcome = OutcomeError
			a.Error = err.Error()
			lastErr = err
		}
		attempts = append(attempts, a)

		c.lg.Debug("Provider fell through",
			zap.String("provider", a.Provider),
			zap.String("barcode", barcode),
			zap.String("outcome", string(a.Outcome)),
			zap.Duration("duration", a.Duration),
			zap.String("error", a.Error),
		)
	}

	if answered {
		return nil, attempts, ErrNotFound
	}
	return nil, attempts, errors.Wrap(ErrUnavailable, lastErr.Error())
}

func (c *Chain) call(ctx context.Context, p Provider, barcode string) (*product.Product, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return p.Lookup(ctx, barcode)
}
