/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
)

// DataStore is keyed persistence for records of type T. GetOne and Delete report a missing
// key with an error matching errors.ErrNotFound.
type DataStore[T any] interface {
	GetOne(ctx context.Context, key string) (*T, error)

	Put(ctx context.Context, entity T) error

	Delete(ctx context.Context, key string) error
}

// KeyFunc derives the storage key of a record. Backends without index maps use it on Put.
type KeyFunc[T any] func(entity T) string
