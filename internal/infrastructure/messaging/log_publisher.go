package messaging

import (
	"context"
	"log/slog"

	"github.com/bibbank/scamguard/pkg/events"
)

// LogPublisher implements port.EventPublisher by writing each event envelope
// to the logger. Used when no Kafka brokers are configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a new logging event publisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs domain events.
func (p *LogPublisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	for _, evt := range domainEvents {
		envelope, err := events.NewEnvelope(evt)
		if err != nil {
			return err
		}

		p.logger.InfoContext(ctx, "publishing event",
			slog.String("event_type", envelope.EventType),
			slog.String("event_id", envelope.EventID.String()),
			slog.String("aggregate_id", envelope.AggregateID.String()),
			slog.Int("payload_size", len(envelope.Data)),
		)
		p.logger.DebugContext(ctx, "event payload",
			slog.String("event_type", envelope.EventType),
			slog.String("payload", string(envelope.Data)),
		)
	}

	return nil
}
