// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk, with no separate
// server process, which suits a small cache that can be thrown away
// at any time.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/boraler/boraler-web/internal/types"

	// Registers the "sqlite3" driver with database/sql.
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at path, creates the addresses table if
// it does not already exist, and returns a ready-to-use *SQLite.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent, so it runs on every start.
	//
	// Schema:
	//   cep: the 8-digit postal code, no hyphen
	//   street: logradouro
	//   neighborhood: bairro
	//   city: localidade
	//   state: two-letter UF
	//   fetched_at: unix seconds of the upstream lookup
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS addresses (
			cep          TEXT    PRIMARY KEY,
			street       TEXT    NOT NULL,
			neighborhood TEXT    NOT NULL,
			city         TEXT    NOT NULL,
			state        TEXT    NOT NULL,
			fetched_at   INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// GetAddress fetches a cached address by postal code.
func (s *SQLite) GetAddress(code string) (types.AddressLookupResult, bool, error) {
	stmt, err := s.Db.Prepare(
		"SELECT street, neighborhood, city, state FROM addresses WHERE cep = ? LIMIT 1")
	if err != nil {
		return types.AddressLookupResult{}, false, fmt.Errorf("sqlite.GetAddress: prepare: %w", err)
	}
	defer stmt.Close()

	var addr types.AddressLookupResult
	err = stmt.QueryRow(code).Scan(&addr.Street, &addr.Neighborhood, &addr.City, &addr.State)
	if errors.Is(err, sql.ErrNoRows) {
		return types.AddressLookupResult{}, false, nil
	}
	if err != nil {
		return types.AddressLookupResult{}, false, fmt.Errorf("sqlite.GetAddress: scan: %w", err)
	}

	return addr, true, nil
}

// SaveAddress inserts or replaces the row for code.
func (s *SQLite) SaveAddress(code string, addr types.AddressLookupResult) error {
	stmt, err := s.Db.Prepare(`
		INSERT INTO addresses (cep, street, neighborhood, city, state, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(cep) DO UPDATE SET
			street       = excluded.street,
			neighborhood = excluded.neighborhood,
			city         = excluded.city,
			state        = excluded.state,
			fetched_at   = excluded.fetched_at
	`)
	if err != nil {
		return fmt.Errorf("sqlite.SaveAddress: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(code, addr.Street, addr.Neighborhood, addr.City, addr.State, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("sqlite.SaveAddress: exec: %w", err)
	}

	return nil
}

// Close closes the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
