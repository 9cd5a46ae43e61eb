package database

import (
	"context"
	"fmt"
)

// schema contains the full table layout. Statements are idempotent so the
// migration can run on every boot.
//
// properties.size is TEXT on purpose: values are stored exactly as entered.
// payments.property_id references properties.property_id, the external
// business key, not the numeric row id.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS properties (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		property_id TEXT UNIQUE NOT NULL,
		address TEXT NOT NULL,
		size TEXT NOT NULL,
		type TEXT NOT NULL,
		ownership_details TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id BIGSERIAL PRIMARY KEY,
		property_id TEXT NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		payment_date TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_user_id ON properties(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_property_id ON payments(property_id)`,
}

// Migrate applies the schema to the connected database.
// It is called once at startup; a failure here is fatal for the process.
func (db *Database) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
