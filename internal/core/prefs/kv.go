package prefs

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SQLiteKV stores preferences in the SQLite preferences table.
type SQLiteKV struct {
	db *sql.DB
}

// NewSQLite wraps an open database whose schema is already applied.
func NewSQLite(db *sql.DB) *Store {
	return New(&SQLiteKV{db: db})
}

func (kv *SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := kv.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (kv *SQLiteKV) Set(ctx context.Context, key, value string) error {
	_, err := kv.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (kv *SQLiteKV) Close() error { return kv.db.Close() }

// PostgresKV stores preferences in the PostgreSQL preferences table.
type PostgresKV struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps a pool whose schema is already applied.
func NewPostgres(pool *pgxpool.Pool) *Store {
	return New(&PostgresKV{pool: pool})
}

func (kv *PostgresKV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := kv.pool.QueryRow(ctx, `SELECT value FROM preferences WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (kv *PostgresKV) Set(ctx context.Context, key, value string) error {
	_, err := kv.pool.Exec(ctx, `
		INSERT INTO preferences (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value,
	)
	return err
}

func (kv *PostgresKV) Close() error {
	kv.pool.Close()
	return nil
}
