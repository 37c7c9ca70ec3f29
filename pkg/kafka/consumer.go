package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	kafkago "github.com/segmentio/kafka-go"
)

const (
	defaultHandlerAttempts   = 5
	defaultHandlerRetryDelay = time.Second
)

// Handler processes a consumed Kafka message.
type Handler func(ctx context.Context, msg Message) error

// Consumer wraps kafka-go reader for consuming messages.
type Consumer struct {
	reader   *kafkago.Reader
	handler  Handler
	logger   *slog.Logger
	retryCfg retry.Config
}

// NewConsumer creates a new Consumer for the given topic with the provided handler.
func NewConsumer(cfg Config, topic string, handler Handler, logger *slog.Logger) (*Consumer, error) {
	dialer, err := cfg.dialer()
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}

	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    topic,
		GroupID:  cfg.ConsumerGroup,
		Dialer:   dialer,
		MinBytes: 1,
		MaxBytes: 10 * 1024 * 1024, // 10 MB
	})

	return &Consumer{
		reader:   r,
		handler:  handler,
		logger:   logger,
		retryCfg: cfg.handlerRetry(),
	}, nil
}

// Start begins consuming messages. Blocks until the context is canceled.
//
// A failing handler is retried in place with exponential backoff. Offsets are
// committed cumulatively per partition, so a message is never skipped: when
// the attempts run out Start returns an error without committing, and the
// message is redelivered to the next consumer of the group.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("consumer starting", "topic", c.reader.Config().Topic, "group", c.reader.Config().GroupID)

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.logger.Info("consumer stopping due to context cancellation")
				return nil
			}
			return fmt.Errorf("fetching message: %w", err)
		}

		if err := c.handle(ctx, m); err != nil {
			if ctx.Err() != nil {
				c.logger.Info("consumer stopping due to context cancellation")
				return nil
			}
			return fmt.Errorf("handling message %s/%d@%d: %w", m.Topic, m.Partition, m.Offset, err)
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.logger.Error("commit error",
				"topic", m.Topic,
				"partition", m.Partition,
				"offset", m.Offset,
				"error", err,
			)
		}
	}
}

// handle runs the handler for m until it succeeds, the attempts run out or
// ctx is canceled.
func (c *Consumer) handle(ctx context.Context, m kafkago.Message) error {
	msg := toMessage(m)
	attempt := 0

	r := retry.New[struct{}](c.retryCfg)
	_, err := r.Do(ctx, func(ctx context.Context) (struct{}, error) {
		attempt++
		err := c.handler(ctx, msg)
		if err != nil {
			c.logger.Warn("handler error",
				"topic", m.Topic,
				"partition", m.Partition,
				"offset", m.Offset,
				"attempt", attempt,
				"error", err,
			)
		}
		return struct{}{}, err
	})
	return err
}

// Close closes the reader.
func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("closing kafka reader: %w", err)
	}
	return nil
}

func toMessage(m kafkago.Message) Message {
	msg := Message{
		Key:     m.Key,
		Value:   m.Value,
		Headers: make(map[string]string, len(m.Headers)),
	}
	for _, h := range m.Headers {
		msg.Headers[h.Key] = string(h.Value)
	}
	return msg
}
