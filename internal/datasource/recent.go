// Package datasource persists reel's small local state: the bounded list of
// recent search queries. State lives in a SQLite database in the user's
// state directory, overridable via REEL_STATE_DB.
package datasource

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS recent_searches (
	position INTEGER PRIMARY KEY,
	query    TEXT NOT NULL,
	seen_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// RecentStore is the SQLite-backed recent-search store handed to the
// navigator. It keeps exactly what it is given; ordering, de-duplication
// and the length cap are the caller's concern.
type RecentStore struct {
	db   *sql.DB
	path string
}

// OpenRecentStore opens the state database at path, creating the file and
// its directory on first use.
func OpenRecentStore(path string) (*RecentStore, error) {
	if path == "" {
		return nil, fmt.Errorf("datasource: empty state database path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("datasource: create state directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("datasource: open state database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("datasource: create schema: %w", err)
	}
	return &RecentStore{db: db, path: path}, nil
}

// Path returns the database location.
func (s *RecentStore) Path() string { return s.path }

// Close releases the database handle.
func (s *RecentStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the persisted queries, most recent first.
func (s *RecentStore) Get() ([]string, error) {
	rows, err := s.db.Query(`SELECT query FROM recent_searches ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("datasource: load recent searches: %w", err)
	}
	defer rows.Close()

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("datasource: scan recent search: %w", err)
		}
		queries = append(queries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("datasource: iterate recent searches: %w", err)
	}
	return queries, nil
}

// Put replaces the persisted list wholesale.
func (s *RecentStore) Put(queries []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("datasource: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM recent_searches`); err != nil {
		return fmt.Errorf("datasource: clear recent searches: %w", err)
	}
	for i, q := range queries {
		if _, err := tx.Exec(`INSERT INTO recent_searches (position, query) VALUES (?, ?)`, i, q); err != nil {
			return fmt.Errorf("datasource: insert recent search: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("datasource: commit: %w", err)
	}
	return nil
}
