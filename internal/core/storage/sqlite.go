// Package storage opens the databases behind history and preferences and
// keeps their schema current.
package storage

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS history (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	barcode     TEXT NOT NULL,
	name        TEXT NOT NULL,
	source      TEXT NOT NULL,
	product     TEXT NOT NULL,
	searched_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_barcode ON history(barcode);

CREATE TABLE IF NOT EXISTS preferences (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// OpenSQLite opens (creating if needed) the SQLite database at path and
// applies the schema. ":memory:" is accepted for tests.
func OpenSQLite(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrap(err, "create data dir")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "apply sqlite schema")
	}
	return db, nil
}
