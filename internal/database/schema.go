package database

import (
	"context"
	"fmt"
)

// schemaStatements bootstrap the archive tables. The archive is a mirror of
// the in-memory engine, so the schema is created idempotently at startup
// rather than through a migration history.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS archived_orders (
		number INTEGER PRIMARY KEY,
		dish TEXT NOT NULL,
		table_number INTEGER NOT NULL,
		seat INTEGER NOT NULL,
		server TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL,
		status TEXT NOT NULL,
		changed_by TEXT,
		reason TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS order_status_log (
		id SERIAL PRIMARY KEY,
		order_number INTEGER NOT NULL,
		old_status TEXT,
		new_status TEXT NOT NULL,
		changed_by TEXT,
		reason TEXT,
		changed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS archived_payments (
		id SERIAL PRIMARY KEY,
		paid_on DATE NOT NULL,
		server TEXT NOT NULL,
		table_number INTEGER NOT NULL,
		payment NUMERIC(10,2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_status_log_number ON order_status_log (order_number)`,
	`CREATE INDEX IF NOT EXISTS idx_archived_payments_date ON archived_payments (paid_on)`,
}

// EnsureSchema creates the archive tables if they do not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	db.logger.Info("schema_ready", "Archive schema is up to date", "startup", nil)
	return nil
}
