/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package datastore defines the persistence interface behind the object store.

The main interface is DataStore[T], which provides keyed operations for any record type T:

	type DataStore[T any] interface {
	    GetOne(ctx context.Context, key string) (*T, error)
	    Put(ctx context.Context, entity T) error
	    Delete(ctx context.Context, key string) error
	}

Implementations:
  - ddb: DynamoDB, keys laid out by the index map registry
  - sqlite: a local SQLite file (modernc.org/sqlite, no cgo)
  - redis: one JSON string per key
  - postgres: a JSONB table through pgxpool
  - mock: in-memory implementation for tests

Every implementation reports a missing key with errors.NewNotFoundError, so callers branch with
errors.IsNotFound regardless of backend.
*/
package datastore
