package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema statements for the two tables the service owns. Referral rows
// are insert-then-update-once; nothing is ever deleted, so there are no
// soft-delete columns.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS patients (
		id BIGSERIAL PRIMARY KEY,
		national_id TEXT NOT NULL,
		last_name TEXT NOT NULL,
		first_name TEXT NOT NULL,
		gender TEXT,
		birth_date DATE,
		current_age INTEGER,
		city TEXT,
		address TEXT,
		phone TEXT,
		email TEXT,
		protocol_flag BOOLEAN NOT NULL DEFAULT false,
		protocol_name TEXT,
		referral_date DATE,
		referring_professional TEXT,
		clinical_notes TEXT,
		assigned_professional TEXT,
		specialty TEXT,
		visit_type TEXT,
		appointment_date DATE,
		appointment_time TIME,
		appointment_confirmed BOOLEAN,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_patients_national_id ON patients (national_id)`,
}

// Migrate applies the schema. Statements are idempotent so it is safe
// to run on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
