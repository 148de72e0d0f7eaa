/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package objectstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/suparena/rifcsharvest/datastore"
	"github.com/suparena/rifcsharvest/datastore/ddb"
	"github.com/suparena/rifcsharvest/datastore/mock"
	"github.com/suparena/rifcsharvest/datastore/postgres"
	"github.com/suparena/rifcsharvest/datastore/redis"
	"github.com/suparena/rifcsharvest/datastore/sqlite"
	"github.com/suparena/rifcsharvest/errors"
	"github.com/suparena/rifcsharvest/storagemodels"
)

// Backend names.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendDynamoDB = "dynamodb"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config selects and configures the storage backend.
type Config struct {
	Backend  string         `yaml:"backend"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	DynamoDB DynamoDBConfig `yaml:"dynamodb"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type SQLiteConfig struct {
	Path  string `yaml:"path"`
	Table string `yaml:"table"`
}

// DynamoDBConfig credentials default to AWS_ACCESS_KEY and AWS_SECRET_KEY, then to the AWS
// default credential chain.
type DynamoDBConfig struct {
	Region    string `yaml:"region"`
	Table     string `yaml:"table"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
}

type RedisConfig struct {
	URL       string `yaml:"url"`
	KeyPrefix string `yaml:"keyPrefix"`
}

type PostgresConfig struct {
	DSN   string `yaml:"dsn"`
	Table string `yaml:"table"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendSQLite
	}
	if c.SQLite.Path == "" {
		c.SQLite.Path = "rifcs-harvest.db"
	}
	if c.SQLite.Table == "" {
		c.SQLite.Table = "digital_objects"
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "rifcs:object:"
	}
	if c.Postgres.Table == "" {
		c.Postgres.Table = "digital_objects"
	}
}

// Validate checks the settings of the selected backend.
func (c *Config) Validate() error {
	if !HasBackend(c.Backend) {
		return errors.NewValidationError("storage.backend", fmt.Sprintf("unknown backend %q (available: %v)", c.Backend, Backends()))
	}
	switch c.Backend {
	case BackendDynamoDB:
		if c.DynamoDB.Table == "" && os.Getenv("AWS_DDB_TABLE") == "" {
			return errors.NewValidationError("storage.dynamodb.table", "required")
		}
	case BackendRedis:
		if c.Redis.URL == "" {
			return errors.NewValidationError("storage.redis.url", "required")
		}
	case BackendPostgres:
		if c.Postgres.DSN == "" {
			return errors.NewValidationError("storage.postgres.dsn", "required")
		}
	}
	return nil
}

// Opener opens a backend. The returned closer may be nil.
type Opener func(ctx context.Context, cfg Config) (datastore.DataStore[storagemodels.DigitalObject], io.Closer, error)

var (
	backendsMu sync.RWMutex
	backends   = make(map[string]Opener)
)

// RegisterBackend adds a named backend.
func RegisterBackend(name string, open Opener) error {
	backendsMu.Lock()
	defer backendsMu.Unlock()

	if _, exists := backends[name]; exists {
		return errors.NewAlreadyExistsError("backend", name)
	}
	backends[name] = open
	return nil
}

// HasBackend reports whether name is registered.
func HasBackend(name string) bool {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Backends returns all registered backend names, sorted.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	names := make([]string, 0, len(backends))
	for k := range backends {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Open opens the backend selected by cfg and wraps it in a Storage.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Storage, error) {
	backendsMu.RLock()
	open, ok := backends[cfg.Backend]
	backendsMu.RUnlock()
	if !ok {
		return nil, errors.NewNotFoundError("backend", cfg.Backend)
	}

	ds, closer, err := open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}
	if closer != nil {
		opts = append(opts, WithCloser(closer))
	}
	return New(ds, opts...), nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func openMemory(_ context.Context, _ Config) (datastore.DataStore[storagemodels.DigitalObject], io.Closer, error) {
	return mock.New[storagemodels.DigitalObject]().WithGetKeyFunc(storagemodels.ObjectKey), nil, nil
}

func openSQLite(ctx context.Context, cfg Config) (datastore.DataStore[storagemodels.DigitalObject], io.Closer, error) {
	db, err := sqlite.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, nil, err
	}
	ds, err := sqlite.New[storagemodels.DigitalObject](ctx, db, cfg.SQLite.Table, storagemodels.ObjectKey)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return ds, db, nil
}

func openDynamoDB(ctx context.Context, cfg Config) (datastore.DataStore[storagemodels.DigitalObject], io.Closer, error) {
	c := cfg.DynamoDB
	ds, err := ddb.NewDynamodbDataStore[storagemodels.DigitalObject](ctx, ddb.Config{
		AccessKey: firstNonEmpty(c.AccessKey, os.Getenv("AWS_ACCESS_KEY")),
		SecretKey: firstNonEmpty(c.SecretKey, os.Getenv("AWS_SECRET_KEY")),
		Region:    firstNonEmpty(c.Region, os.Getenv("AWS_REGION")),
		Table:     firstNonEmpty(c.Table, os.Getenv("AWS_DDB_TABLE")),
		Endpoint:  firstNonEmpty(c.Endpoint, os.Getenv("AWS_DDB_ENDPOINT")),
	})
	if err != nil {
		return nil, nil, err
	}
	return ds, nil, nil
}

func openRedis(ctx context.Context, cfg Config) (datastore.DataStore[storagemodels.DigitalObject], io.Closer, error) {
	client, err := redis.NewClient(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, nil, err
	}
	ds, err := redis.New[storagemodels.DigitalObject](client, cfg.Redis.KeyPrefix, storagemodels.ObjectKey)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return ds, client, nil
}

func openPostgres(ctx context.Context, cfg Config) (datastore.DataStore[storagemodels.DigitalObject], io.Closer, error) {
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, nil, err
	}
	ds, err := postgres.New[storagemodels.DigitalObject](ctx, pool, cfg.Postgres.Table, storagemodels.ObjectKey)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return ds, closerFunc(func() error { pool.Close(); return nil }), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	for name, open := range map[string]Opener{
		BackendMemory:   openMemory,
		BackendSQLite:   openSQLite,
		BackendDynamoDB: openDynamoDB,
		BackendRedis:    openRedis,
		BackendPostgres: openPostgres,
	} {
		if err := RegisterBackend(name, open); err != nil {
			panic(err)
		}
	}
}
