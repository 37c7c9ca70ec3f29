package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bibbank/scamguard/internal/domain/port"
	"github.com/bibbank/scamguard/internal/domain/service"
	"github.com/bibbank/scamguard/internal/infrastructure/config"
	"github.com/bibbank/scamguard/internal/infrastructure/kafka"
	"github.com/bibbank/scamguard/internal/infrastructure/memory"
	"github.com/bibbank/scamguard/internal/infrastructure/messaging"
	"github.com/bibbank/scamguard/internal/infrastructure/ml"
	"github.com/bibbank/scamguard/internal/infrastructure/postgres"
	"github.com/bibbank/scamguard/internal/infrastructure/redis"
	"github.com/bibbank/scamguard/internal/presentation/rest"
	pkgkafka "github.com/bibbank/scamguard/pkg/kafka"
	pgpkg "github.com/bibbank/scamguard/pkg/postgres"
)

// openRepository returns the PostgreSQL repository when a database URL is
// configured, after applying migrations, and the in-memory one otherwise.
func openRepository(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (port.AnalysisRepository, rest.ReadinessCheck, func(), error) {
	if cfg.URL == "" {
		logger.Warn("DATABASE_URL not set, analyses are kept in memory only")
		return memory.NewAnalysisRepository(), nil, func() {}, nil
	}

	if err := pgpkg.RunMigrations(cfg.URL, cfg.MigrationsDir); err != nil {
		return nil, nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	pool, err := pgpkg.NewPool(ctx, pgpkg.Config{URL: cfg.URL})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("connected to database")

	check := func(ctx context.Context) error { return pgpkg.HealthCheck(ctx, pool) }
	return postgres.NewAnalysisRepository(pool), check, pool.Close, nil
}

// buildPublisher returns a Kafka publisher when brokers are configured and a
// logging publisher otherwise.
func buildPublisher(cfg config.KafkaConfig, logger *slog.Logger) (port.EventPublisher, func(), error) {
	if len(cfg.Brokers) == 0 {
		logger.Info("KAFKA_BROKERS not set, domain events are logged only")
		return messaging.NewLogPublisher(logger), func() {}, nil
	}

	producer, err := pkgkafka.NewProducer(kafkaConfig(cfg))
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := producer.Close(); err != nil {
			logger.Error("kafka producer close error", "error", err)
		}
	}
	return kafka.NewPublisher(producer, cfg.EventsTopic, logger), closeFn, nil
}

// buildScorer picks the scoring backend and wraps it with the Redis cache
// when one is configured.
func buildScorer(ctx context.Context, cfg config.Config, logger *slog.Logger) (service.Scorer, rest.ReadinessCheck, func(), error) {
	var scorer service.Scorer
	switch cfg.Scorer.Backend {
	case config.ScorerOpenAI:
		scorer = ml.NewOpenAIScorer(ml.Config{
			APIKey:     cfg.Scorer.OpenAIAPIKey,
			Model:      cfg.Scorer.OpenAIModel,
			BaseURL:    cfg.Scorer.OpenAIBaseURL,
			Timeout:    cfg.Scorer.Timeout,
			MaxRetries: cfg.Scorer.MaxRetries,
		})
	default:
		scorer = service.NewRiskScorer()
	}

	if cfg.Redis.Addr == "" {
		return scorer, nil, func() {}, nil
	}

	client, err := redis.NewClient(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Info("assessment cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)

	cached := service.NewCachedScorer(scorer, redis.NewAssessmentCache(client, cfg.Redis.TTL), logger)
	check := func(ctx context.Context) error { return client.Ping(ctx).Err() }
	closeFn := func() { _ = client.Close() }
	return cached, check, closeFn, nil
}

func kafkaConfig(cfg config.KafkaConfig) pkgkafka.Config {
	return pkgkafka.Config{
		ClientID:        "scamguard",
		Brokers:         cfg.Brokers,
		ConsumerGroup:   cfg.ConsumerGroup,
		HandlerAttempts: cfg.HandlerAttempts,
		TLS:             cfg.TLS,
		SASLEnabled:     cfg.SASLUsername != "",
		SASLMechanism:   cfg.SASLMechanism,
		SASLUsername:    cfg.SASLUsername,
		SASLPassword:    cfg.SASLPassword,
	}
}
