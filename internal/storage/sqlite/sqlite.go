// Package sqlite implements the storage interface using SQLite.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	// Import SQLite driver
	_ "modernc.org/sqlite"
)

// SQLiteStorage implements storage.Storage on a local SQLite file.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
	closed atomic.Bool
}

// New opens (creating if needed) the database at path and ensures the schema
// is current. Safe to call repeatedly; schema creation and the additive
// problem_category migration are both idempotent.
func New(path string) (*SQLiteStorage, error) {
	// ":memory:" gives every connection its own private database, which
	// breaks under database/sql's pooling; use a shared in-memory database
	// instead.
	dbPath := path
	if path == ":memory:" {
		dbPath = "file::memory:?cache=shared"
	}

	if !strings.Contains(dbPath, ":memory:") {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	// WAL keeps readers unblocked while a sync transaction is writing, and
	// the busy timeout makes overlapping writers wait instead of failing.
	connStr := dbPath
	if strings.Contains(dbPath, "?") {
		connStr += "&_pragma=journal_mode(WAL)&_pragma=busy_timeout(30000)&_time_format=sqlite"
	} else {
		connStr += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(30000)&_time_format=sqlite"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := migrateProblemCategoryColumn(db); err != nil {
		return nil, fmt.Errorf("failed to migrate problem_category column: %w", err)
	}

	absPath := path
	if !strings.Contains(dbPath, ":memory:") {
		absPath, err = filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %w", err)
		}
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: absPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// IsClosed reports whether Close has been called.
func (s *SQLiteStorage) IsClosed() bool {
	return s.closed.Load()
}

// UnderlyingDB returns the underlying *sql.DB connection.
func (s *SQLiteStorage) UnderlyingDB() *sql.DB {
	return s.db
}
