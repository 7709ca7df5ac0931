// Package store persists feedback records and model version metadata in
// sqlite, and model blobs in a pluggable blob store.
package store

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// Store handles database operations for feedback and model versions.
type Store struct {
	db *sql.DB
}

// Open creates a Store backed by the sqlite database at the given path,
// initializing the schema if needed.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies database connectivity, for health checks.
func (s *Store) Ping() error {
	return s.db.Ping()
}
