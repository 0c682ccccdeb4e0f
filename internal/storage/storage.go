// Package storage loads the furniture catalog once at startup.
package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"homelytics/internal/catalog"
)

// CatalogSource yields catalog rows. Sources are read once at startup; the
// resulting catalog is never reloaded.
type CatalogSource interface {
	Load(ctx context.Context) ([]catalog.Entry, error)
	Name() string
	Close()
}

// NewCatalogSource returns the built-in table when databaseURL is empty and a
// PostgreSQL source otherwise. An empty furniture_catalog table is seeded
// with the built-in rows.
func NewCatalogSource(ctx context.Context, databaseURL string) (CatalogSource, error) {
	if databaseURL == "" {
		return BuiltinSource{}, nil
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := ensureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresSource{pool: pool}, nil
}

// LoadCatalog reads src and validates the rows into an immutable catalog.
func LoadCatalog(ctx context.Context, src CatalogSource) (*catalog.Catalog, error) {
	entries, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", src.Name(), err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("load catalog from %s: no entries", src.Name())
	}
	return catalog.New(entries)
}

func ensureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS furniture_catalog (
        key TEXT PRIMARY KEY,
        display_name TEXT NOT NULL,
        price INTEGER NOT NULL CHECK (price > 0)
    )`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
