package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
)

func connString() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=%s",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslMode(),
	)
}

func sslMode() string {
	if v := os.Getenv("DB_SSLMODE"); v != "" {
		return v
	}
	return "disable"
}

// OpenPool opens the pgx pool used by the record service and jobs.
func OpenPool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString())
	if err != nil {
		return nil, fmt.Errorf("opening pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return pool, nil
}

// OpenAuthDB opens the database/sql connection used by the auth service.
func OpenAuthDB() (*sql.DB, error) {
	return sql.Open("postgres", connString())
}
