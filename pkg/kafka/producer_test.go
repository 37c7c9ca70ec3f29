package kafka

import (
	"testing"

	kafkago "github.com/segmentio/kafka-go"
)

func TestNewProducer(t *testing.T) {
	cfg := Config{
		Brokers:       []string{"localhost:9092", "localhost:9093"},
		ConsumerGroup: "scamguard",
		ClientID:      "scamguard-test",
	}

	p, err := NewProducer(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(p.brokers))
	}
	if p.brokers[0] != "localhost:9092" {
		t.Errorf("expected broker localhost:9092, got %s", p.brokers[0])
	}
	if p.transport.ClientID != "scamguard-test" {
		t.Errorf("expected client id on transport, got %q", p.transport.ClientID)
	}
	if p.transport.TLS != nil || p.transport.SASL != nil {
		t.Error("expected plaintext transport without TLS or SASL")
	}
	if len(p.writers) != 0 {
		t.Errorf("expected empty writers map, got %d entries", len(p.writers))
	}
}

func TestNewProducerUnsupportedSASL(t *testing.T) {
	_, err := NewProducer(Config{
		Brokers:       []string{"kafka:9092"},
		SASLEnabled:   true,
		SASLMechanism: "GSSAPI",
	})
	if err == nil {
		t.Fatal("expected error for unsupported SASL mechanism")
	}
}

func TestSASLMechanism(t *testing.T) {
	tests := []struct {
		name      string
		mechanism string
		wantName  string
	}{
		{name: "default plain", mechanism: "", wantName: "PLAIN"},
		{name: "plain", mechanism: "PLAIN", wantName: "PLAIN"},
		{name: "scram 256", mechanism: "SCRAM-SHA-256", wantName: "SCRAM-SHA-256"},
		{name: "scram 512", mechanism: "SCRAM-SHA-512", wantName: "SCRAM-SHA-512"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{SASLEnabled: true, SASLMechanism: tt.mechanism, SASLUsername: "u", SASLPassword: "p"}
			m, err := cfg.saslMechanism()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.Name() != tt.wantName {
				t.Errorf("mechanism name = %q, want %q", m.Name(), tt.wantName)
			}
		})
	}
}

func TestTLSConfig(t *testing.T) {
	if (Config{}).tlsConfig() != nil {
		t.Error("expected nil TLS config when TLS is disabled")
	}

	dialer, err := Config{TLS: true}.dialer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dialer.TLS == nil {
		t.Fatal("expected TLS config on dialer")
	}
}

func TestMessageConstruction(t *testing.T) {
	msg := toMessage(kafkago.Message{
		Key:   []byte("analysis-123"),
		Value: []byte(`{"text":"hello"}`),
		Headers: []kafkago.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "event_type", Value: []byte("scamguard.analysis.completed")},
		},
	})

	if string(msg.Key) != "analysis-123" {
		t.Errorf("expected key analysis-123, got %s", string(msg.Key))
	}
	if string(msg.Value) != `{"text":"hello"}` {
		t.Errorf("unexpected value: %s", string(msg.Value))
	}
	if len(msg.Headers) != 2 {
		t.Fatalf("expected 2 headers, got %d", len(msg.Headers))
	}
	if msg.Headers["event_type"] != "scamguard.analysis.completed" {
		t.Errorf("unexpected event_type header: %s", msg.Headers["event_type"])
	}
}

func TestGetOrCreateWriter(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w1 := p.getOrCreateWriter("topic-a")
	if w1 == nil {
		t.Fatal("expected non-nil writer")
	}

	// Same topic should return the same writer instance.
	w2 := p.getOrCreateWriter("topic-a")
	if w1 != w2 {
		t.Error("expected same writer instance for same topic")
	}

	w3 := p.getOrCreateWriter("topic-b")
	if w1 == w3 {
		t.Error("expected different writer instance for different topic")
	}

	if len(p.writers) != 2 {
		t.Errorf("expected 2 writers, got %d", len(p.writers))
	}
}

func TestProducerClose(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_ = p.getOrCreateWriter("topic-a")
	_ = p.getOrCreateWriter("topic-b")

	if err := p.Close(); err != nil {
		t.Fatalf("unexpected error on close: %v", err)
	}

	if len(p.writers) != 0 {
		t.Errorf("expected 0 writers after close, got %d", len(p.writers))
	}
}
