/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package objectstore

import (
	"io"
	"strings"

	"github.com/suparena/rifcsharvest/errors"
)

// Payload is a handle to one payload of an open Object.
type Payload struct {
	obj    *Object
	id     string
	closed bool
}

// ID returns the payload identifier.
func (p *Payload) ID() string {
	return p.id
}

// ContentType returns the stored content type.
func (p *Payload) ContentType() string {
	return p.obj.rec.Payloads[p.id].ContentType
}

// Open returns a reader over the payload content.
func (p *Payload) Open() (io.ReadCloser, error) {
	if p.closed || p.obj.closed {
		return nil, errors.ErrClosed
	}
	return io.NopCloser(strings.NewReader(p.obj.rec.Payloads[p.id].Content)), nil
}

// SetContentType sets the content type. The change is persisted when the object is closed.
func (p *Payload) SetContentType(contentType string) error {
	if p.closed || p.obj.closed {
		return errors.ErrClosed
	}
	rec := p.obj.rec.Payloads[p.id]
	rec.ContentType = contentType
	p.obj.rec.Payloads[p.id] = rec
	p.obj.dirty = true
	return nil
}

// Close invalidates the handle.
func (p *Payload) Close() error {
	p.closed = true
	return nil
}
