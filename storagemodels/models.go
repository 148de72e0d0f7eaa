/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"sort"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/rifcsharvest/registry"
)

// DigitalObjectIndexMap is the DynamoDB key layout for digital objects.
var DigitalObjectIndexMap = map[string]string{
	"PK": "OBJECT#{ID}",
	"SK": "OBJECT#{ID}",
}

func init() {
	registry.RegisterIndexMap[DigitalObject](DigitalObjectIndexMap)
}

// DigitalObject is a stored object: a set of named payloads plus string properties.
type DigitalObject struct {
	// Object identifier.
	// Required: true
	ID string `json:"id" dynamodbav:"ID"`

	// Identifier of the first payload stored on the object.
	SourceID string `json:"sourceId,omitempty" dynamodbav:"SourceID,omitempty"`

	// Payloads keyed by payload identifier.
	Payloads map[string]Payload `json:"payloads" dynamodbav:"Payloads"`

	// Object properties, e.g. render-pending.
	Metadata map[string]string `json:"metadata" dynamodbav:"Metadata"`

	// Format: date-time
	CreatedAt string `json:"createdAt" dynamodbav:"CreatedAt"`

	// Format: date-time
	UpdatedAt string `json:"updatedAt" dynamodbav:"UpdatedAt"`
}

// Payload is one named content stream of a digital object.
type Payload struct {
	ID          string `json:"id" dynamodbav:"ID"`
	ContentType string `json:"contentType,omitempty" dynamodbav:"ContentType,omitempty"`
	Content     string `json:"content" dynamodbav:"Content"`

	// Format: date-time
	UpdatedAt string `json:"updatedAt" dynamodbav:"UpdatedAt"`
}

// NewDigitalObject returns an empty object stamped with now.
func NewDigitalObject(id string, now time.Time) DigitalObject {
	ts := FormatTime(now)
	return DigitalObject{
		ID:        id,
		Payloads:  make(map[string]Payload),
		Metadata:  make(map[string]string),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

// Clone returns a deep copy.
func (o DigitalObject) Clone() DigitalObject {
	c := o
	c.Payloads = make(map[string]Payload, len(o.Payloads))
	for k, v := range o.Payloads {
		c.Payloads[k] = v
	}
	c.Metadata = make(map[string]string, len(o.Metadata))
	for k, v := range o.Metadata {
		c.Metadata[k] = v
	}
	return c
}

// PayloadIDs returns the payload identifiers in sorted order.
func (o DigitalObject) PayloadIDs() []string {
	ids := make([]string, 0, len(o.Payloads))
	for id := range o.Payloads {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ObjectKey returns the datastore key of a digital object.
func ObjectKey(o DigitalObject) string {
	return o.ID
}

// FormatTime renders t as a strfmt date-time.
func FormatTime(t time.Time) string {
	return strfmt.DateTime(t.UTC()).String()
}

// ParseTime parses a timestamp written by FormatTime.
func ParseTime(s string) (time.Time, error) {
	dt, err := strfmt.ParseDateTime(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Time(dt), nil
}
