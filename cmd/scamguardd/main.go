package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bibbank/scamguard/internal/application/usecase"
	"github.com/bibbank/scamguard/internal/infrastructure/config"
	"github.com/bibbank/scamguard/internal/infrastructure/kafka"
	"github.com/bibbank/scamguard/internal/infrastructure/metrics"
	grpcpresentation "github.com/bibbank/scamguard/internal/presentation/grpc"
	"github.com/bibbank/scamguard/internal/presentation/rest"
	pkgkafka "github.com/bibbank/scamguard/pkg/kafka"
	"github.com/bibbank/scamguard/pkg/observability"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("scamguardd stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	logger.Info("starting scamguardd",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"scorer", cfg.Scorer.Backend,
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				logger.Warn("tracer shutdown error", "error", err)
			}
		}()
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	recorder, err := metrics.NewRecorder(meterProvider.Meter(cfg.ServiceName))
	if err != nil {
		return err
	}

	checks := make(map[string]rest.ReadinessCheck)

	// Wire infrastructure adapters.
	repo, dbCheck, closeRepo, err := openRepository(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer closeRepo()
	if dbCheck != nil {
		checks["database"] = dbCheck
	}

	publisher, closePublisher, err := buildPublisher(cfg.Kafka, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	scorer, cacheCheck, closeScorer, err := buildScorer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeScorer()
	if cacheCheck != nil {
		checks["redis"] = cacheCheck
	}

	// Wire use cases.
	analyzeTextUC := usecase.NewAnalyzeText(repo, publisher, scorer, recorder, logger)
	getAnalysisUC := usecase.NewGetAnalysis(repo)
	listAnalysesUC := usecase.NewListRecentAnalyses(repo)
	getStatisticsUC := usecase.NewGetStatistics(repo)

	// gRPC server.
	grpcHandler := grpcpresentation.NewScamDetectorHandler(analyzeTextUC, getAnalysisUC, listAnalysesUC, getStatisticsUC, logger)
	grpcServer, err := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		Address:     cfg.GRPCAddress(),
		TLSCertFile: cfg.GRPC.TLSCertFile,
		TLSKeyFile:  cfg.GRPC.TLSKeyFile,
		Reflection:  cfg.GRPC.Reflection,
	}, logger)
	if err != nil {
		return err
	}

	// HTTP server.
	router := rest.NewRouter(rest.RouterConfig{
		Analysis:  rest.NewAnalysisHandler(analyzeTextUC, getAnalysisUC, listAnalysesUC, getStatisticsUC, logger),
		Health:    rest.NewHealthHandler(cfg.ServiceName, checks, logger),
		Metrics:   metricsHandler,
		Logger:    logger,
		RateLimit: cfg.RateLimit,
	})
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Model-backed scoring may take up to the scorer timeout.
		WriteTimeout: cfg.Scorer.Timeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 3)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Optional intake consumer.
	if cfg.Kafka.IntakeTopic != "" {
		consumer, err := pkgkafka.NewConsumer(kafkaConfig(cfg.Kafka), cfg.Kafka.IntakeTopic,
			kafka.NewIntakeHandler(analyzeTextUC, logger), logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := consumer.Close(); err != nil {
				logger.Error("intake consumer close error", "error", err)
			}
		}()

		go func() {
			if err := consumer.Start(ctx); err != nil {
				errCh <- fmt.Errorf("intake consumer error: %w", err)
			}
		}()
	}

	logger.Info("scamguardd started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
	)

	// Wait for shutdown signal.
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
		logger.Error("server error", "error", runErr)
	}

	// Graceful shutdown.
	logger.Info("shutting down scamguardd")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("scamguardd stopped")
	return runErr
}
