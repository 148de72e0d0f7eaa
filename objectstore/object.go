/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package objectstore

import (
	"context"
	"fmt"
	"io"

	"github.com/suparena/rifcsharvest/errors"
	"github.com/suparena/rifcsharvest/storagemodels"
)

const (
	TypeObject  = "digital object"
	TypePayload = "payload"
)

// Object is a handle to one stored digital object. Payload writes are persisted immediately;
// property and content-type changes are persisted by Close. A handle is not safe for
// concurrent use.
type Object struct {
	storage *Storage
	rec     storagemodels.DigitalObject
	dirty   bool
	closed  bool
}

func newObject(s *Storage, rec storagemodels.DigitalObject) *Object {
	return &Object{storage: s, rec: rec}
}

// ID returns the object identifier.
func (o *Object) ID() string {
	return o.rec.ID
}

// SourceID returns the identifier of the first payload stored on the object.
func (o *Object) SourceID() string {
	return o.rec.SourceID
}

// PayloadIDs lists the payloads, sorted.
func (o *Object) PayloadIDs() []string {
	return o.rec.PayloadIDs()
}

// Property returns an object property.
func (o *Object) Property(key string) (string, bool) {
	v, ok := o.rec.Metadata[key]
	return v, ok
}

// Properties returns a copy of all object properties.
func (o *Object) Properties() map[string]string {
	out := make(map[string]string, len(o.rec.Metadata))
	for k, v := range o.rec.Metadata {
		out[k] = v
	}
	return out
}

// SetProperty sets an object property. The change is persisted by Close.
func (o *Object) SetProperty(key, value string) error {
	if o.closed {
		return errors.ErrClosed
	}
	o.rec.Metadata[key] = value
	o.dirty = true
	return nil
}

// Payload returns a handle to payload pid. A missing payload yields an error matching
// errors.ErrNotFound.
func (o *Object) Payload(pid string) (*Payload, error) {
	if o.closed {
		return nil, errors.ErrClosed
	}
	if _, ok := o.rec.Payloads[pid]; !ok {
		return nil, errors.NewNotFoundError(TypePayload, o.rec.ID+"/"+pid)
	}
	return &Payload{obj: o, id: pid}, nil
}

// CreateStoredPayload stores r as the new payload pid.
func (o *Object) CreateStoredPayload(ctx context.Context, pid string, r io.Reader) (*Payload, error) {
	if o.closed {
		return nil, errors.ErrClosed
	}
	if _, ok := o.rec.Payloads[pid]; ok {
		return nil, errors.NewAlreadyExistsError(TypePayload, o.rec.ID+"/"+pid)
	}
	return o.writePayload(ctx, pid, r, "")
}

// UpdatePayload replaces the content of the existing payload pid, keeping its content type.
func (o *Object) UpdatePayload(ctx context.Context, pid string, r io.Reader) (*Payload, error) {
	if o.closed {
		return nil, errors.ErrClosed
	}
	existing, ok := o.rec.Payloads[pid]
	if !ok {
		return nil, errors.NewNotFoundError(TypePayload, o.rec.ID+"/"+pid)
	}
	return o.writePayload(ctx, pid, r, existing.ContentType)
}

func (o *Object) writePayload(ctx context.Context, pid string, r io.Reader, contentType string) (*Payload, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload %s: %w", pid, err)
	}

	next := o.rec.Clone()
	next.Payloads[pid] = storagemodels.Payload{
		ID:          pid,
		ContentType: contentType,
		Content:     string(content),
		UpdatedAt:   storagemodels.FormatTime(o.storage.now()),
	}
	if next.SourceID == "" {
		next.SourceID = pid
	}
	next.UpdatedAt = storagemodels.FormatTime(o.storage.now())

	if err := o.storage.ds.Put(ctx, next.Clone()); err != nil {
		return nil, err
	}
	o.rec = next
	o.dirty = false
	return &Payload{obj: o, id: pid}, nil
}

// Close persists pending property changes and invalidates the handle. Closing twice is a no-op.
func (o *Object) Close(ctx context.Context) error {
	if o.closed {
		return nil
	}
	o.closed = true
	if !o.dirty {
		return nil
	}

	next := o.rec.Clone()
	next.UpdatedAt = storagemodels.FormatTime(o.storage.now())
	if err := o.storage.ds.Put(ctx, next.Clone()); err != nil {
		return fmt.Errorf("failed to save object %s: %w", o.rec.ID, err)
	}
	o.rec = next
	o.dirty = false
	return nil
}
