package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS domains (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		length INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS snapshots (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		row_count BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS snapshot_data (
		snapshot_id BIGINT NOT NULL,
		domain_id BIGINT NOT NULL,
		domain TEXT NOT NULL,
		price_usd NUMERIC(12,2),
		length INT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sd_snapshot ON snapshot_data (snapshot_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sd_domain_id ON snapshot_data (domain_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sd_snap_domain ON snapshot_data (snapshot_id, domain)`,
	`CREATE INDEX IF NOT EXISTS idx_sd_domain ON snapshot_data (domain)`,
}

// InitSchema creates the tables and indexes if they are missing.
func InitSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
