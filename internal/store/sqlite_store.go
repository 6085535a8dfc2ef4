package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/kharidoapp/checkout-engine/internal/utils"
	_ "github.com/mattn/go-sqlite3"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the client-local slot database. This is
// the default backend: one file per browser profile, one row per slot.
func NewSQLiteStore(path string) (Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open slot database: %w", err)
	}

	// Single logical writer per process.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS slots (
			name       TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		db.Close()

		return nil, fmt.Errorf("failed to prepare slot table: %w", err)
	}

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Read(ctx context.Context, slot string, dest any) (bool, error) {
	dbCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	var raw []byte

	err := s.db.QueryRowContext(dbCtx, `SELECT value FROM slots WHERE name = ?`, slot).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}

		return false, fmt.Errorf("failed to read slot %s: %w", slot, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		slog.Warn("Discarding malformed slot data", slog.String("slot", slot), slog.String("error", err.Error()))
		return false, nil
	}

	return true, nil
}

func (s *sqliteStore) Write(ctx context.Context, slot string, value any) error {
	dbCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for slot %s: %w", slot, err)
	}

	_, err = s.db.ExecContext(dbCtx, `
		INSERT INTO slots (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, slot, data)
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", slot, err)
	}

	return nil
}

func (s *sqliteStore) Delete(ctx context.Context, slot string) error {
	dbCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	_, err := s.db.ExecContext(dbCtx, `DELETE FROM slots WHERE name = ?`, slot)
	if err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", slot, err)
	}

	return nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
