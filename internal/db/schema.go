package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Readings for a station go away with the station itself; the application
// never deletes them on its own.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS stations (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS transmitters (
		id BIGSERIAL PRIMARY KEY,
		station_id BIGINT NOT NULL REFERENCES stations(id) ON DELETE CASCADE,
		circuit TEXT NOT NULL DEFAULT '',
		code TEXT NOT NULL DEFAULT '',
		vout DOUBLE PRECISION,
		pout DOUBLE PRECISION,
		tap TEXT NOT NULL DEFAULT '',
		tx_type TEXT NOT NULL DEFAULT '',
		maintenance_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		collection_time TEXT,
		temp_celsius DOUBLE PRECISION,
		maintenance_type TEXT NOT NULL DEFAULT 'preventiva'
	)`,
	`CREATE TABLE IF NOT EXISTS receivers (
		id BIGSERIAL PRIMARY KEY,
		station_id BIGINT NOT NULL REFERENCES stations(id) ON DELETE CASCADE,
		circuit TEXT NOT NULL DEFAULT '',
		code TEXT NOT NULL DEFAULT '',
		iav DOUBLE PRECISION,
		ith DOUBLE PRECISION,
		ratio TEXT,
		maintenance_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		collection_time TEXT,
		temp_celsius DOUBLE PRECISION,
		maintenance_type TEXT NOT NULL DEFAULT 'preventiva'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transmitters_lookup
		ON transmitters (station_id, circuit, code)`,
	`CREATE INDEX IF NOT EXISTS idx_receivers_lookup
		ON receivers (station_id, circuit, code)`,
	`CREATE INDEX IF NOT EXISTS idx_transmitters_maintenance_at
		ON transmitters (maintenance_at)`,
	`CREATE INDEX IF NOT EXISTS idx_receivers_maintenance_at
		ON receivers (maintenance_at)`,
}

// Migrate applies the schema idempotently.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("db: migrate: %w", err)
		}
	}
	return nil
}
