package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/001_initial.up.sql
var initialMigrationSQL string

// EnsureSchema applies the initial schema. The SQL is idempotent
// (IF NOT EXISTS / ON CONFLICT DO NOTHING) so re-running is safe.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, initialMigrationSQL); err != nil {
		return fmt.Errorf("apply initial migration: %w", err)
	}
	return nil
}
