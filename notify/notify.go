/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package notify

import (
	"context"
)

// Event announces that a harvested object is waiting to be rendered.
type Event struct {
	ObjectID  string `json:"objectId"`
	PayloadID string `json:"payloadId"`
	RecordID  string `json:"recordId"`
	Source    string `json:"source"`
	Seq       int    `json:"seq"`
	RunID     string `json:"runId"`
	Timestamp string `json:"timestamp"`
}

// Publisher delivers render-pending events.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// NopPublisher discards events.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
