package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/scamguard/internal/domain/model"
	"github.com/bibbank/scamguard/internal/domain/valueobject"
	"github.com/bibbank/scamguard/pkg/events"
)

// --- Mock implementations ---

type mockAnalysisRepository struct {
	saved          []*model.Analysis
	saveFunc       func(ctx context.Context, analysis *model.Analysis) error
	findByIDFunc   func(ctx context.Context, id uuid.UUID) (*model.Analysis, error)
	listRecentFunc func(ctx context.Context, limit int) ([]*model.Analysis, error)
	statisticsFunc func(ctx context.Context) (model.Statistics, error)
}

func (m *mockAnalysisRepository) Save(ctx context.Context, analysis *model.Analysis) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, analysis)
	}
	m.saved = append(m.saved, analysis)
	return nil
}

func (m *mockAnalysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Analysis, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAnalysisRepository) ListRecent(ctx context.Context, limit int) ([]*model.Analysis, error) {
	if m.listRecentFunc != nil {
		return m.listRecentFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockAnalysisRepository) Statistics(ctx context.Context) (model.Statistics, error) {
	if m.statisticsFunc != nil {
		return m.statisticsFunc(ctx)
	}
	return model.Statistics{}, nil
}

type mockEventPublisher struct {
	publishedEvents []events.DomainEvent
	publishFunc     func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockScorer struct {
	assessment valueobject.RiskAssessment
	err        error
}

func (m *mockScorer) Score(_ context.Context, _ string) (valueobject.RiskAssessment, error) {
	return m.assessment, m.err
}

func (m *mockScorer) Name() string { return "mock" }

type mockMetrics struct {
	mu        sync.Mutex
	analyses  int
	failures  int
	lastLevel string
}

func (m *mockMetrics) RecordAnalysis(_ context.Context, _ string, a valueobject.RiskAssessment, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyses++
	m.lastLevel = a.Level().String()
}

func (m *mockMetrics) RecordScoringFailure(_ context.Context, _ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures++
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleAnalysis(score int) *model.Analysis {
	a, _ := valueobject.NewRiskAssessment(score, []valueobject.RedFlag{
		{Type: "Guaranteed Returns", Description: "Found suspicious language indicating guaranteed returns", Severity: valueobject.SeverityHigh, Excerpt: "guaranteed"},
	}, "explanation", "recommendation")
	return model.Reconstruct(uuid.New(), "guaranteed returns for everyone", a, time.Now().UTC())
}
