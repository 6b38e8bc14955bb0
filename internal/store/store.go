package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ademuri/streaming-stats/internal/migration"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNoData is returned by Open when the database has no events yet.
var ErrNoData = errors.New("database doesn't exist - run import first")

type Store struct {
	db *sql.DB
}

// New opens the database at dbPath, creating the schema if needed.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(migration.Create); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Open is New for read-only commands: it fails with ErrNoData when nothing
// has been imported.
func Open(dbPath string) (*Store, error) {
	s, err := New(dbPath)
	if err != nil {
		return nil, err
	}

	count, err := s.CountEvents()
	if err != nil {
		s.Close()
		return nil, err
	}
	if count == 0 {
		s.Close()
		return nil, ErrNoData
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
