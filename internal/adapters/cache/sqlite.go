package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// schema is applied on every open; IF NOT EXISTS keeps it idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS entries (
	namespace TEXT NOT NULL,
	key       TEXT NOT NULL,
	value     BLOB NOT NULL,
	PRIMARY KEY (namespace, key)
);`

// SQLiteStore persists cache entries in a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// compile-time interface check.
var _ Store = (*SQLiteStore)(nil)

// Open opens (or creates) the cache artifact at path. A missing file is
// an empty cache, not an error; deleting it forces a full refresh on
// the next request.
func Open(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: storage path is required", ErrCacheIO)
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("%w: create cache directory: %v", ErrCacheIO, err)
		}
	}

	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite db: %v", ErrCacheIO, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping sqlite db: %v", ErrCacheIO, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: apply schema: %v", ErrCacheIO, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the value stored under (namespace, key).
func (s *SQLiteStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheIO, err)
	}

	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM entries WHERE namespace = ? AND key = ?`,
		namespace, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s/%s: %v", ErrCacheIO, namespace, key, err)
	}
	return value, nil
}

// Put upserts one entry. The single-statement upsert makes the replace
// atomic: a concurrent reader sees the old value or the new one.
func (s *SQLiteStore) Put(ctx context.Context, namespace, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheIO, err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (namespace, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value`,
		namespace, key, value,
	)
	if err != nil {
		return fmt.Errorf("%w: put %s/%s: %v", ErrCacheIO, namespace, key, err)
	}
	return nil
}

// PutMany upserts a batch of entries in one transaction.
func (s *SQLiteStore) PutMany(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheIO, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin batch: %v", ErrCacheIO, err)
	}
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO entries (namespace, key, value) VALUES (?, ?, ?)
			 ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value`,
			e.Namespace, e.Key, e.Value,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: put %s/%s: %v", ErrCacheIO, e.Namespace, e.Key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit batch: %v", ErrCacheIO, err)
	}
	return nil
}
