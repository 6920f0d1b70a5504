package history

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sadopc/consulteja/internal/product"
)

// PostgresStore is the PostgreSQL-backed history, used when several
// processes (e.g. the API server) share one history.
type PostgresStore struct {
	pool  *pgxpool.Pool
	limit int
}

var _ Repository = (*PostgresStore)(nil)

// NewPostgresStore wraps a pool whose schema is already applied.
func NewPostgresStore(pool *pgxpool.Pool, limit int) *PostgresStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &PostgresStore{pool: pool, limit: limit}
}

func (s *PostgresStore) Add(ctx context.Context, p product.Product) (Entry, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return Entry{}, errors.Wrap(err, "encode product")
	}

	var e Entry
	err = pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO history (barcode, name, source, product)
			VALUES ($1, $2, $3, $4)
			RETURNING id, searched_at`,
			p.Barcode, p.Name, p.Source, data,
		)
		if err := row.Scan(&e.ID, &e.SearchedAt); err != nil {
			return errors.Wrap(err, "insert history")
		}
		if _, err := tx.Exec(ctx, `
			DELETE FROM history
			WHERE id NOT IN (SELECT id FROM history ORDER BY id DESC LIMIT $1)`, s.limit); err != nil {
			return errors.Wrap(err, "trim history")
		}
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	e.Product = p
	return e, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, product, searched_at
		FROM history
		ORDER BY id DESC
		LIMIT $1`, s.limit)
	if err != nil {
		return nil, errors.Wrap(err, "list history")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanPostgres(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate history")
	}
	return entries, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (Entry, error) {
	row := s.pool.QueryRow(ctx, `SELECT id, product, searched_at FROM history WHERE id = $1`, id)
	e, err := scanPostgres(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, "DELETE FROM history"); err != nil {
		return errors.Wrap(err, "clear history")
	}
	return nil
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanPostgres(row pgx.Row) (Entry, error) {
	var e Entry
	var data []byte
	if err := row.Scan(&e.ID, &data, &e.SearchedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, errors.Wrap(err, "scan history row")
	}
	if err := json.Unmarshal(data, &e.Product); err != nil {
		return Entry{}, errors.Wrapf(err, "decode history entry %d", e.ID)
	}
	return e, nil
}
