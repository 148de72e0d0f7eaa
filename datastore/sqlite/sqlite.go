/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	_ "modernc.org/sqlite"

	"github.com/suparena/rifcsharvest/datastore"
	"github.com/suparena/rifcsharvest/errors"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Open opens (creating if needed) the SQLite database at path with WAL journaling.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer at a time
	conn.SetMaxOpenConns(1)
	return conn, nil
}

// DataStore implements datastore.DataStore[T] as JSON documents in one SQLite table.
type DataStore[T any] struct {
	db      *sql.DB
	table   string
	keyFunc datastore.KeyFunc[T]
}

// New creates the table if it does not exist and returns a store bound to it.
func New[T any](ctx context.Context, db *sql.DB, table string, keyFunc datastore.KeyFunc[T]) (*DataStore[T], error) {
	if !tableNamePattern.MatchString(table) {
		return nil, errors.NewValidationError("table", fmt.Sprintf("invalid table name %q", table))
	}
	if keyFunc == nil {
		return nil, errors.NewValidationError("keyFunc", "key function is required")
	}

	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    key TEXT PRIMARY KEY,
    body TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`, table)
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("failed to create table %s: %w", table, err)
	}

	return &DataStore[T]{db: db, table: table, keyFunc: keyFunc}, nil
}

// GetOne loads the record stored under key.
func (s *DataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	var body string
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT body FROM %s WHERE key = ?`, s.table), key).Scan(&body)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError(s.table, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	result := new(T)
	if err := json.Unmarshal([]byte(body), result); err != nil {
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

	_, err = s.db.ExecContext(ctx, fmt.Sprintf(`INSERT INTO %s (key, body, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`, s.table),
		key, string(body), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes the record stored under key.
func (s *DataStore[T]) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE key = ?`, s.table), key)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NewNotFoundError(s.table, key)
	}
	return nil
}
