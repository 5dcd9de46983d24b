package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/andre1397/calculadora-TOTVS/internal/domain/event"
	pkgkafka "github.com/andre1397/calculadora-TOTVS/pkg/kafka"
)

// MessageProducer is the subset of pkg/kafka.Producer the publisher needs.
type MessageProducer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// EventPublisher implements port.EventPublisher by writing events to Kafka,
// keyed by aggregate ID.
type EventPublisher struct {
	producer MessageProducer
	topic    string
	logger   *slog.Logger
}

// NewEventPublisher creates a publisher targeting the given producer and topic.
func NewEventPublisher(producer MessageProducer, topic string, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish serialises and sends domain events to Kafka.
func (p *EventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.DebugContext(ctx, "publishing domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"topic", p.topic,
			"payload_size", len(payload),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type":     evt.EventType(),
				"event_id":       evt.EventID(),
				"aggregate_type": evt.AggregateType(),
				"content_type":   "application/json",
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}
	return nil
}
