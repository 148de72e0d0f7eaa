/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package notify publishes render-pending events for harvested objects. The harvester sets the
// render-pending property on every object it writes; a Publisher additionally tells downstream
// renderers about it. KafkaPublisher writes to a Kafka topic with franz-go.
package notify

//go:generate mockgen -source=notify.go -destination=mocks/mocks.go -package=mocks Publisher
