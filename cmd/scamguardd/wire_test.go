package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/scamguard/internal/infrastructure/config"
	"github.com/bibbank/scamguard/internal/infrastructure/kafka"
	"github.com/bibbank/scamguard/internal/infrastructure/memory"
	"github.com/bibbank/scamguard/internal/infrastructure/messaging"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenRepository_InMemory(t *testing.T) {
	repo, check, closeFn, err := openRepository(context.Background(), config.DatabaseConfig{}, discardLogger())
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &memory.AnalysisRepository{}, repo)
	assert.Nil(t, check)
}

func TestBuildPublisher(t *testing.T) {
	t.Run("no brokers logs events", func(t *testing.T) {
		pub, closeFn, err := buildPublisher(config.KafkaConfig{}, discardLogger())
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &messaging.LogPublisher{}, pub)
	})

	t.Run("brokers select kafka", func(t *testing.T) {
		pub, closeFn, err := buildPublisher(config.KafkaConfig{
			Brokers:     []string{"localhost:9092"},
			EventsTopic: "scamguard.events",
		}, discardLogger())
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &kafka.Publisher{}, pub)
	})

	t.Run("bad SASL mechanism fails", func(t *testing.T) {
		_, _, err := buildPublisher(config.KafkaConfig{
			Brokers:       []string{"localhost:9092"},
			SASLUsername:  "user",
			SASLMechanism: "KERBEROS",
		}, discardLogger())
		assert.Error(t, err)
	})
}

func TestBuildScorer(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		wantName string
	}{
		{
			name:     "rules",
			cfg:      config.Config{Scorer: config.ScorerConfig{Backend: config.ScorerRules}},
			wantName: "rules",
		},
		{
			name: "openai",
			cfg: config.Config{Scorer: config.ScorerConfig{
				Backend:      config.ScorerOpenAI,
				OpenAIAPIKey: "sk-test",
				Timeout:      time.Second,
			}},
			wantName: "openai",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer, check, closeFn, err := buildScorer(context.Background(), tt.cfg, discardLogger())
			require.NoError(t, err)
			defer closeFn()

			assert.Equal(t, tt.wantName, scorer.Name())
			assert.Nil(t, check)
		})
	}
}

func TestBuildScorer_UnreachableRedis(t *testing.T) {
	cfg := config.Config{
		Scorer: config.ScorerConfig{Backend: config.ScorerRules},
		Redis:  config.RedisConfig{Addr: "127.0.0.1:1"},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, _, _, err := buildScorer(ctx, cfg, discardLogger())
	assert.Error(t, err)
}

func TestKafkaConfig(t *testing.T) {
	plain := kafkaConfig(config.KafkaConfig{Brokers: []string{"b1:9092"}, ConsumerGroup: "g"})
	assert.False(t, plain.SASLEnabled)
	assert.Equal(t, []string{"b1:9092"}, plain.Brokers)
	assert.Equal(t, "g", plain.ConsumerGroup)

	secured := kafkaConfig(config.KafkaConfig{
		TLS:           true,
		SASLMechanism: "SCRAM-SHA-512",
		SASLUsername:  "svc",
		SASLPassword:  "secret",
	})
	assert.True(t, secured.TLS)
	assert.True(t, secured.SASLEnabled)
	assert.Equal(t, "SCRAM-SHA-512", secured.SASLMechanism)
}
