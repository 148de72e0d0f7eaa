/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package objectstore

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/suparena/rifcsharvest/datastore"
	"github.com/suparena/rifcsharvest/errors"
	"github.com/suparena/rifcsharvest/storagemodels"
)

// Storage hands out digital object handles backed by a DataStore.
type Storage struct {
	ds     datastore.DataStore[storagemodels.DigitalObject]
	closer io.Closer
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Storage.
type Option func(*Storage)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) {
		s.now = now
	}
}

// WithCloser registers the connection released by Storage.Close.
func WithCloser(c io.Closer) Option {
	return func(s *Storage) {
		s.closer = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Storage) {
		if l != nil {
			s.logger = l
		}
	}
}

// New wraps ds.
func New(ds datastore.DataStore[storagemodels.DigitalObject], opts ...Option) *Storage {
	s := &Storage{
		ds:     ds,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetObject returns a handle to the stored object oid. A missing object yields an error
// matching errors.ErrNotFound.
func (s *Storage) GetObject(ctx context.Context, oid string) (*Object, error) {
	rec, err := s.ds.GetOne(ctx, oid)
	if err != nil {
		return nil, err
	}
	return newObject(s, rec.Clone()), nil
}

// CreateObject stores a new empty object oid and returns a handle to it.
func (s *Storage) CreateObject(ctx context.Context, oid string) (*Object, error) {
	if oid == "" {
		return nil, errors.NewValidationError("oid", "object id is required")
	}
	_, err := s.ds.GetOne(ctx, oid)
	switch {
	case err == nil:
		return nil, errors.NewAlreadyExistsError(TypeObject, oid)
	case !errors.IsNotFound(err):
		return nil, err
	}

	rec := storagemodels.NewDigitalObject(oid, s.now())
	if err := s.ds.Put(ctx, rec); err != nil {
		return nil, err
	}
	s.logger.Debug("created digital object", "object_id", oid)
	return newObject(s, rec.Clone()), nil
}

// RemoveObject deletes object oid.
func (s *Storage) RemoveObject(ctx context.Context, oid string) error {
	return s.ds.Delete(ctx, oid)
}

// Close releases the backend connection, if any.
func (s *Storage) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
