package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/XSAM/otelsql"
	"github.com/kharidoapp/checkout-engine/internal/config"
	"github.com/kharidoapp/checkout-engine/internal/utils"
	_ "github.com/lib/pq"
)

type postgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects the engine to a server-backed slot store. The
// slot contract is unchanged, so cart and order logic never notices which
// medium it runs against.
func NewPostgresStore(cfg *config.Database) (Store, error) {
	db, err := otelsql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()

		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS slots (
			name       TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`); err != nil {
		db.Close()

		return nil, fmt.Errorf("failed to prepare slot table: %w", err)
	}

	return &postgresStore{db: db}, nil
}

// NewPostgresSlotStore wraps an existing database handle. Tests use it with
// a mocked connection.
func NewPostgresSlotStore(db *sql.DB) Store {
	return &postgresStore{db: db}
}

func (p *postgresStore) Read(ctx context.Context, slot string, dest any) (bool, error) {
	dbCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	var raw []byte

	err := p.db.QueryRowContext(dbCtx, `SELECT value FROM slots WHERE name = $1`, slot).Scan(&raw)
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

func (p *postgresStore) Write(ctx context.Context, slot string, value any) error {
	dbCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for slot %s: %w", slot, err)
	}

	_, err = p.db.ExecContext(dbCtx, `
		INSERT INTO slots (name, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, slot, data)
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", slot, err)
	}

	return nil
}

func (p *postgresStore) Delete(ctx context.Context, slot string) error {
	dbCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	_, err := p.db.ExecContext(dbCtx, `DELETE FROM slots WHERE name = $1`, slot)
	if err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", slot, err)
	}

	return nil
}

func (p *postgresStore) Close() error {
	return p.db.Close()
}
