// Package storage persists application state as JSON documents in a
// SQLite key/value table.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	appErrors "notekeeper/internal/errors"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// KV is the durable key/value contract State builds on.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// SQLiteStore is a KV backed by a single-table SQLite database.
type SQLiteStore struct {
	path string
	db   *sql.DB
	now  func() time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// OpenSQLite opens (creating if needed) the database at path and ensures the
// kv table exists.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, appErrors.New(appErrors.CodeConfigurationError, "storage path is required", nil)
	}
	//nolint:gosec // G301: data directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(trimmed), 0755); err != nil {
		return nil, appErrors.New(appErrors.CodeStorageFailed, "create storage directory", err)
	}

	db, err := sql.Open("sqlite", buildDSN(trimmed))
	if err != nil {
		return nil, appErrors.New(appErrors.CodeStorageFailed, "open sqlite db", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, appErrors.New(appErrors.CodeStorageFailed, "ping sqlite db", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, appErrors.New(appErrors.CodeStorageFailed, "create kv table", err)
	}
	return &SQLiteStore{path: trimmed, db: db, now: time.Now}, nil
}

// buildDSN creates a read-write WAL DSN for the given path.
func buildDSN(dbPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(3000)")
	q.Add("_pragma", "synchronous(NORMAL)")
	u.RawQuery = q.Encode()
	return u.String()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Get returns the stored value for key. The bool is false when the key is absent.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, appErrors.New(appErrors.CodeStorageFailed, fmt.Sprintf("read %s", key), err)
	}
	return value, true, nil
}

// Set upserts the value for key.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, s.now().UnixMilli())
	if err != nil {
		return appErrors.New(appErrors.CodeStorageFailed, fmt.Sprintf("write %s", key), err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return appErrors.New(appErrors.CodeStorageFailed, fmt.Sprintf("delete %s", key), err)
	}
	return nil
}

// Keys lists stored keys in lexical order.
func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeStorageFailed, "list keys", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, appErrors.New(appErrors.CodeStorageFailed, "scan key", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
