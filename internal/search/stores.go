package search

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/sadopc/consulteja/internal/config"
	"github.com/sadopc/consulteja/internal/core/history"
	"github.com/sadopc/consulteja/internal/core/prefs"
	"github.com/sadopc/consulteja/internal/core/storage"
)

// Stores bundles the repositories sharing one database.
type Stores struct {
	History history.Repository
	Prefs   prefs.Repository
	close   func() error
}

// Close releases the shared database.
func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStores opens the configured storage backend.
func OpenStores(ctx context.Context, cfg config.Config) (*Stores, error) {
	switch cfg.Storage.Driver {
	case "", "sqlite":
		db, err := storage.OpenSQLite(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		return &Stores{
			History: history.NewStore(db, cfg.History.Limit),
			Prefs:   prefs.NewSQLite(db),
			close:   db.Close,
		}, nil
	case "postgres":
		pool, err := storage.OpenPostgres(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &Stores{
			History: history.NewPostgresStore(pool, cfg.History.Limit),
			Prefs:   prefs.NewPostgres(pool),
			close: func() error {
				pool.Close()
				return nil
			},
		}, nil
	default:
		return nil, errors.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
