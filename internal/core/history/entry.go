package history

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/sadopc/consulteja/internal/product"
)

// DefaultLimit is how many lookups are kept.
const DefaultLimit = 5

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("history entry not found")

// Entry represents a single successful lookup.
type Entry struct {
	ID         int64           `json:"id" yaml:"id"`
	Product    product.Product `json:"product" yaml:"product"`
	SearchedAt time.Time       `json:"searched_at" yaml:"searched_at"`
}

// Repository persists the bounded lookup history.
type Repository interface {
	// Add records p as the most recent lookup and drops entries beyond the limit.
	Add(ctx context.Context, p product.Product) (Entry, error)
	// List returns entries most-recent-first.
	List(ctx context.Context) ([]Entry, error)
	Get(ctx context.Context, id int64) (Entry, error)
	Clear(ctx context.Context) error
	Close() error
}
