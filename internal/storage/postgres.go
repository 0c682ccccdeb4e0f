package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"homelytics/internal/catalog"
)

// PostgresSource reads catalog rows from the furniture_catalog table.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// Name identifies the source in logs.
func (s *PostgresSource) Name() string { return "postgres" }

// Load returns every catalog row ordered by key, seeding the table first
// when it is empty.
func (s *PostgresSource) Load(ctx context.Context) ([]catalog.Entry, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM furniture_catalog`).Scan(&count); err != nil {
		return nil, fmt.Errorf("count catalog: %w", err)
	}
	if count == 0 {
		if err := s.seed(ctx, catalog.Default().Entries()); err != nil {
			return nil, err
		}
	}

	rows, err := s.pool.Query(ctx, `SELECT key, display_name, price FROM furniture_catalog ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (catalog.Entry, error) {
		var e catalog.Entry
		err := row.Scan(&e.Key, &e.Name, &e.Price)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan catalog: %w", err)
	}
	return entries, nil
}

func (s *PostgresSource) seed(ctx context.Context, entries []catalog.Entry) error {
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`INSERT INTO furniture_catalog (key, display_name, price) VALUES ($1, $2, $3) ON CONFLICT (key) DO NOTHING`,
			e.Key, e.Name, e.Price)
	}
	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}

// Close releases database resources.
func (s *PostgresSource) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
