/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package postgres

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suparena/rifcsharvest/datastore"
	"github.com/suparena/rifcsharvest/errors"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// NewPool parses dsn, connects and pings.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// DataStore implements datastore.DataStore[T] as JSONB documents in one table.
type DataStore[T any] struct {
	pool    *pgxpool.Pool
	table   string
	keyFunc datastore.KeyFunc[T]
}

// New creates the table if it does not exist and returns a store bound to it.
func New[T any](ctx context.Context, pool *pgxpool.Pool, table string, keyFunc datastore.KeyFunc[T]) (*DataStore[T], error) {
	if !tableNamePattern.MatchString(table) {
		return nil, errors.NewValidationError("table", fmt.Sprintf("invalid table name %q", table))
	}
	if keyFunc == nil {
		return nil, errors.NewValidationError("keyFunc", "key function is required")
	}

	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    key TEXT PRIMARY KEY,
    body JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, table)
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("failed to create table %s: %w", table, err)
	}

	return &DataStore[T]{pool: pool, table: table, keyFunc: keyFunc}, nil
}

// GetOne loads the record stored under key.
func (s *DataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	var body []byte
	err := s.pool.QueryRow(ctx, fmt.Sprintf(`SELECT body FROM %s WHERE key = $1`, s.table), key).Scan(&body)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errors.NewNotFoundError(s.table, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	result := new(T)
	if err := json.Unmarshal(body, result); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return result, nil
}

// Put inserts or replaces the record.
func (s *DataStore[T]) Put(ctx context.Context, entity T) error {
	key := s.keyFunc(entity)
	if key == "" {
		return errors.NewValidationError("key", "unable to extract key from entity")
	}
	body, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	_, err = s.pool.Exec(ctx, fmt.Sprintf(`INSERT INTO %s (key, body) VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`, s.table), key, string(body))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes the record stored under key.
func (s *DataStore[T]) Delete(ctx context.Context, key string) error {
	tag, err := s.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, s.table), key)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return errors.NewNotFoundError(s.table, key)
	}
	return nil
}
