package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"

	"github.com/sadopc/consulteja/internal/product"
)

// Store is the SQLite-backed history.
type Store struct {
	db    *sql.DB
	limit int
	now   func() time.Time
}

var _ Repository = (*Store)(nil)

// NewStore wraps an open database whose schema is already applied.
// limit <= 0 selects DefaultLimit.
func NewStore(db *sql.DB, limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{db: db, limit: limit, now: time.Now}
}

// Add inserts a new history entry and trims the oldest ones past the limit.
func (s *Store) Add(ctx context.Context, p product.Product) (Entry, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return Entry{}, errors.Wrap(err, "encode product")
	}
	e := Entry{Product: p, SearchedAt: s.now().UTC()}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, errors.Wrap(err, "begin")
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO history (barcode, name, source, product, searched_at)
		VALUES (?, ?, ?, ?, ?)`,
		p.Barcode, p.Name, p.Source, string(data),
		e.SearchedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, errors.Wrap(err, "insert history")
	}
	if e.ID, err = result.LastInsertId(); err != nil {
		return Entry{}, errors.Wrap(err, "last insert id")
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM history
		WHERE id NOT IN (SELECT id FROM history ORDER BY id DESC LIMIT ?)`, s.limit); err != nil {
		return Entry{}, errors.Wrap(err, "trim history")
	}
	if err := tx.Commit(); err != nil {
		return Entry{}, errors.Wrap(err, "commit")
	}
	return e, nil
}

// List returns the retained entries, most recent first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product, searched_at
		FROM history
		ORDER BY id DESC
		LIMIT ?`, s.limit)
	if err != nil {
		return nil, errors.Wrap(err, "list history")
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Get returns a single entry.
func (s *Store) Get(ctx context.Context, id int64) (Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product, searched_at
		FROM history
		WHERE id = ?`, id)
	if err != nil {
		return Entry{}, errors.Wrap(err, "get history")
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, ErrNotFound
	}
	return entries[0], nil
}

// Clear removes all history entries.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM history"); err != nil {
		return errors.Wrap(err, "clear history")
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var data, ts string
		if err := rows.Scan(&e.ID, &data, &ts); err != nil {
			return nil, errors.Wrap(err, "scan history row")
		}
		if err := json.Unmarshal([]byte(data), &e.Product); err != nil {
			return nil, errors.Wrapf(err, "decode history entry %d", e.ID)
		}
		e.SearchedAt, _ = time.Parse(time.RFC3339Nano, ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
