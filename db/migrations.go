package db

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate runs all table creation statements. Safe to call multiple times
// due to IF NOT EXISTS clauses.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	log.Println("[INFO] running database migrations")
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w\nstatement: %s", err, stmt)
		}
	}
	log.Println("[INFO] database migrations complete")
	return nil
}

var migrations = []string{
	// Staff accounts for the auth service
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		employee_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	// Account-opening records
	`CREATE TABLE IF NOT EXISTS zvit_table (
		id BIGSERIAL PRIMARY KEY,
		fio TEXT NOT NULL,
		ipn TEXT NOT NULL,
		organization TEXT NOT NULL,
		date_opened DATE NOT NULL,
		date_first_deposit DATE,
		account_status TEXT NOT NULL DEFAULT 'Очікує активацію',
		card_status TEXT NOT NULL DEFAULT 'На випуску',
		documents JSONB NOT NULL DEFAULT '{"contract": false, "passport": false, "questionnaire": false}',
		comment TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_zvit_date_opened ON zvit_table (date_opened)`,
	`CREATE INDEX IF NOT EXISTS idx_zvit_organization ON zvit_table (organization)`,
}
