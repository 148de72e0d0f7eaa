/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/suparena/rifcsharvest/errors"
)

// KafkaConfig configures the Kafka publisher.
type KafkaConfig struct {
	Brokers  []string `yaml:"brokers"`
	Topic    string   `yaml:"topic"`
	ClientID string   `yaml:"clientId"`
}

// KafkaPublisher writes events as JSON records keyed by object id.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

// NewKafkaPublisher creates a producer client. Extra options are appended to the defaults.
func NewKafkaPublisher(cfg KafkaConfig, opts ...kgo.Opt) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.NewValidationError("notify.kafka.brokers", "at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, errors.NewValidationError("notify.kafka.topic", "required")
	}

	base := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
	}
	if cfg.ClientID != "" {
		base = append(base, kgo.ClientID(cfg.ClientID))
	}

	client, err := kgo.NewClient(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaPublisher{client: client, topic: cfg.Topic}, nil
}

// Publish produces ev synchronously.
func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	rec := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(ev.ObjectID),
		Value: value,
	}
	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", p.topic, err)
	}
	return nil
}

// Close flushes and closes the client.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}
