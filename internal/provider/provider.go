// Package provider defines product databases and the ordered fallback chain
// that queries them.
package provider

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/sadopc/consulteja/internal/product"
)

var (
	// ErrNotFound means the provider answered but has no product for the code.
	ErrNotFound = errors.New("product not found")
	// ErrUnavailable means no provider produced an answer at all.
	ErrUnavailable = errors.New("product databases unavailable")
)

// Provider looks up one barcode in one external database.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, barcode string) (*product.Product, error)
}

// IsNotFound reports whether err marks an empty result.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// JSONGetter fetches a URL and decodes its JSON body. A 404 or empty body
// must be reported as ErrNotFound.
type JSONGetter interface {
	GetJSON(ctx context.Context, url string, headers map[string]string, out any) error
}
