package rest_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/bibbank/scamguard/internal/application/usecase"
	"github.com/bibbank/scamguard/internal/domain/model"
	"github.com/bibbank/scamguard/internal/domain/port"
	"github.com/bibbank/scamguard/internal/domain/service"
	"github.com/bibbank/scamguard/internal/domain/valueobject"
	"github.com/bibbank/scamguard/internal/infrastructure/memory"
	"github.com/bibbank/scamguard/internal/infrastructure/messaging"
	"github.com/bibbank/scamguard/internal/infrastructure/metrics"
	"github.com/bibbank/scamguard/internal/presentation/rest"
)

var errBackend = errors.New("backend unavailable")

type failingScorer struct{}

func (failingScorer) Score(context.Context, string) (valueobject.RiskAssessment, error) {
	return valueobject.RiskAssessment{}, errBackend
}

func (failingScorer) Name() string { return "failing" }

type failingRepository struct{}

func (failingRepository) Save(context.Context, *model.Analysis) error { return errBackend }

func (failingRepository) FindByID(context.Context, uuid.UUID) (*model.Analysis, error) {
	return nil, errBackend
}

func (failingRepository) ListRecent(context.Context, int) ([]*model.Analysis, error) {
	return nil, errBackend
}

func (failingRepository) Statistics(context.Context) (model.Statistics, error) {
	return model.Statistics{}, errBackend
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAnalysisHandler(t *testing.T, repo port.AnalysisRepository, scorer service.Scorer) *rest.AnalysisHandler {
	t.Helper()
	logger := testLogger()

	recorder, err := metrics.NewRecorder(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	return rest.NewAnalysisHandler(
		usecase.NewAnalyzeText(repo, messaging.NewLogPublisher(logger), scorer, recorder, logger),
		usecase.NewGetAnalysis(repo),
		usecase.NewListRecentAnalyses(repo),
		usecase.NewGetStatistics(repo),
		logger,
	)
}

func newRouterConfig(t *testing.T, repo port.AnalysisRepository, scorer service.Scorer, rateLimit int) *rest.RouterConfig {
	t.Helper()
	return &rest.RouterConfig{
		Analysis:  newAnalysisHandler(t, repo, scorer),
		Health:    rest.NewHealthHandler("scamguard", nil, testLogger()),
		Logger:    testLogger(),
		RateLimit: rateLimit,
	}
}

func defaultRouterConfig(t *testing.T) *rest.RouterConfig {
	return newRouterConfig(t, memory.NewAnalysisRepository(), service.NewRiskScorer(), 0)
}
