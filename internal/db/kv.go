// Package db provides a PostgreSQL key-value backend for the record store.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// PostgresBackend stores each key as one row of the kv table.
type PostgresBackend struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresBackend wraps an opened database. db must already hold the kv
// table, see InitPostgres.
func NewPostgresBackend(db *sql.DB) *PostgresBackend {
	return &PostgresBackend{DB: db}
}

// Get returns the value stored under key, or ok=false when there is no row.
func (b *PostgresBackend) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := b.DB.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, describe(err))
	}
	return value, true, nil
}

// Set upserts the row for key.
func (b *PostgresBackend) Set(ctx context.Context, key, value string) error {
	_, err := b.DB.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, describe(err))
	}
	return nil
}

// Remove deletes the row for key, if any.
func (b *PostgresBackend) Remove(ctx context.Context, key string) error {
	if _, err := b.DB.ExecContext(ctx, `DELETE FROM kv WHERE key = $1`, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, describe(err))
	}
	return nil
}

// describe adds the SQLSTATE name to server-side errors.
func describe(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s (%s): %w", pqErr.Code.Name(), pqErr.Code, err)
	}
	return err
}
