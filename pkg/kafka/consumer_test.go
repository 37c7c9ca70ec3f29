package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	kafkago "github.com/segmentio/kafka-go"
)

func testConsumer(handler Handler, attempts int) *Consumer {
	return &Consumer{
		handler: handler,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		retryCfg: retry.Config{
			MaxAttempts:   attempts,
			InitialDelay:  time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

func TestConsumerHandle_RetriesFailedMessage(t *testing.T) {
	var keys []string
	c := testConsumer(func(_ context.Context, msg Message) error {
		keys = append(keys, string(msg.Key))
		if len(keys) == 1 {
			return errors.New("database unavailable")
		}
		return nil
	}, 3)

	err := c.handle(context.Background(), kafkago.Message{Key: []byte("pitch-1"), Value: []byte(`{}`)})
	if err != nil {
		t.Fatalf("expected message to succeed on retry, got %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 handler calls, got %d", len(keys))
	}
	for _, k := range keys {
		if k != "pitch-1" {
			t.Fatalf("expected the same message to be retried, got key %q", k)
		}
	}
}

func TestConsumerHandle_GivesUpAfterAttempts(t *testing.T) {
	calls := 0
	c := testConsumer(func(context.Context, Message) error {
		calls++
		return errors.New("model unavailable")
	}, 3)

	if err := c.handle(context.Background(), kafkago.Message{Key: []byte("k")}); err == nil {
		t.Fatal("expected error once attempts are exhausted")
	}
	if calls != 3 {
		t.Fatalf("expected 3 handler calls, got %d", calls)
	}
}

func TestConsumerHandle_CanceledContext(t *testing.T) {
	calls := 0
	c := testConsumer(func(context.Context, Message) error {
		calls++
		return errors.New("still failing")
	}, 100)
	c.retryCfg.InitialDelay = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.handle(ctx, kafkago.Message{}) }()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected error after cancellation")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("handle did not return after context cancellation")
	}
	if calls > 1 {
		t.Fatalf("expected at most one attempt before the long backoff, got %d", calls)
	}
}

func TestConfigHandlerRetry(t *testing.T) {
	def := Config{}.handlerRetry()
	if def.MaxAttempts != defaultHandlerAttempts || def.InitialDelay != defaultHandlerRetryDelay {
		t.Fatalf("unexpected defaults: %+v", def)
	}

	custom := Config{HandlerAttempts: 2, HandlerRetryDelay: 10 * time.Millisecond}.handlerRetry()
	if custom.MaxAttempts != 2 || custom.InitialDelay != 10*time.Millisecond {
		t.Fatalf("unexpected config: %+v", custom)
	}
}
