/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package redis

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/suparena/rifcsharvest/datastore"
	"github.com/suparena/rifcsharvest/errors"
)

// NewClient connects to the Redis server at url (redis://host:port/db) and pings it.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// DataStore implements datastore.DataStore[T] with one JSON string per key.
type DataStore[T any] struct {
	client    redis.UniversalClient
	keyPrefix string
	keyFunc   datastore.KeyFunc[T]
}

// New returns a store writing keys as keyPrefix + record key.
func New[T any](client redis.UniversalClient, keyPrefix string, keyFunc datastore.KeyFunc[T]) (*DataStore[T], error) {
	if keyFunc == nil {
		return nil, errors.NewValidationError("keyFunc", "key function is required")
	}
	return &DataStore[T]{client: client, keyPrefix: keyPrefix, keyFunc: keyFunc}, nil
}

func (s *DataStore[T]) redisKey(key string) string {
	return s.keyPrefix + key
}

// GetOne loads the record stored under key.
func (s *DataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	body, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, errors.NewNotFoundError(s.keyPrefix, key)
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

// Put writes the record without expiry.
func (s *DataStore[T]) Put(ctx context.Context, entity T) error {
	key := s.keyFunc(entity)
	if key == "" {
		return errors.NewValidationError("key", "unable to extract key from entity")
	}
	body, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, s.redisKey(key), body, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes the record stored under key.
func (s *DataStore[T]) Delete(ctx context.Context, key string) error {
	n, err := s.client.Del(ctx, s.redisKey(key)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	if n == 0 {
		return errors.NewNotFoundError(s.keyPrefix, key)
	}
	return nil
}
