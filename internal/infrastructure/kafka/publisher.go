package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bibbank/scamguard/pkg/events"
	pkgkafka "github.com/bibbank/scamguard/pkg/kafka"
)

// MessageProducer sends messages to a topic. *pkgkafka.Producer satisfies it.
type MessageProducer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// Publisher implements port.EventPublisher using Kafka. Each event is sent as
// a JSON envelope keyed by its aggregate ID.
type Publisher struct {
	producer MessageProducer
	logger   *slog.Logger
	topic    string
}

// NewPublisher creates a new Kafka event publisher.
func NewPublisher(producer MessageProducer, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends domain events to Kafka.
func (p *Publisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		envelope, err := events.NewEnvelope(evt)
		if err != nil {
			return err
		}
		payload, err := envelope.Marshal()
		if err != nil {
			return fmt.Errorf("failed to marshal envelope %s: %w", envelope.EventType, err)
		}

		p.logger.DebugContext(ctx, "publishing event",
			slog.String("event_type", envelope.EventType),
			slog.String("topic", p.topic),
			slog.Int("payload_size", len(payload)),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(envelope.AggregateID.String()),
			Value: payload,
			Headers: map[string]string{
				"event_type":   envelope.EventType,
				"content-type": "application/json",
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
