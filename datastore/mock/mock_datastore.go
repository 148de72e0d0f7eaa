/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of the DataStore interface for testing
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/suparena/rifcsharvest/datastore"
	"github.com/suparena/rifcsharvest/errors"
)

// DataStore is a mock implementation of datastore.DataStore[T] for testing
type DataStore[T any] struct {
	mu          sync.RWMutex
	data        map[string]T
	getKeyFunc  datastore.KeyFunc[T]
	putHook     func(entity T) error
	getError    error
	putError    error
	deleteError error
	puts        int
}

var _ datastore.DataStore[struct{}] = (*DataStore[struct{}])(nil)

// New creates a new mock DataStore
func New[T any]() *DataStore[T] {
	return &DataStore[T]{
		data: make(map[string]T),
	}
}

// WithGetKeyFunc sets the function used to extract keys from entities
func (m *DataStore[T]) WithGetKeyFunc(f datastore.KeyFunc[T]) *DataStore[T] {
	m.getKeyFunc = f
	return m
}

// WithGetError makes GetOne operations return an error
func (m *DataStore[T]) WithGetError(err error) *DataStore[T] {
	m.getError = err
	return m
}

// WithPutError makes Put operations return an error
func (m *DataStore[T]) WithPutError(err error) *DataStore[T] {
	m.putError = err
	return m
}

// WithPutHook runs f before every Put; a non-nil result fails the Put without storing
func (m *DataStore[T]) WithPutHook(f func(entity T) error) *DataStore[T] {
	m.putHook = f
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore[T]) WithDeleteError(err error) *DataStore[T] {
	m.deleteError = err
	return m
}

// GetOne retrieves an entity by key
func (m *DataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	if m.getError != nil {
		return nil, m.getError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if entity, exists := m.data[key]; exists {
		return &entity, nil
	}

	var zero T
	return nil, errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
}

// Put stores an entity
func (m *DataStore[T]) Put(ctx context.Context, entity T) error {
	if m.putError != nil {
		return m.putError
	}
	if m.putHook != nil {
		if err := m.putHook(entity); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.extractKey(entity)
	if key == "" {
		return errors.NewValidationError("key", "unable to extract key from entity")
	}

	m.data[key] = entity
	m.puts++
	return nil
}

// Delete removes an entity by key
func (m *DataStore[T]) Delete(ctx context.Context, key string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		var zero T
		return errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
	}

	delete(m.data, key)
	return nil
}

// Helper methods for testing

// SetData directly sets the internal data map (for testing)
func (m *DataStore[T]) SetData(data map[string]T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
}

// GetData returns a copy of the internal data map (for testing)
func (m *DataStore[T]) GetData() map[string]T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]T, len(m.data))
	for k, v := range m.data {
		result[k] = v
	}
	return result
}

// Count returns the number of stored entities
func (m *DataStore[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Puts returns the number of successful Put calls
func (m *DataStore[T]) Puts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.puts
}

// Clear removes all data
func (m *DataStore[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]T)
	m.puts = 0
}

// extractKey extracts a key from an entity
func (m *DataStore[T]) extractKey(entity T) string {
	if m.getKeyFunc != nil {
		return m.getKeyFunc(entity)
	}

	return fmt.Sprintf("key_%v", entity)
}
