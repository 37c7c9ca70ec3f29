package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/bibbank/scamguard/internal/application/dto"
	"github.com/bibbank/scamguard/internal/domain/model"
	"github.com/bibbank/scamguard/internal/domain/port"
	"github.com/bibbank/scamguard/internal/domain/service"
)

// AnalyzeText is the use case for scoring, storing, and announcing a piece of text.
type AnalyzeText struct {
	repo      port.AnalysisRepository
	publisher port.EventPublisher
	scorer    service.Scorer
	metrics   port.MetricsRecorder
	logger    *slog.Logger
}

// NewAnalyzeText creates a new AnalyzeText use case.
func NewAnalyzeText(
	repo port.AnalysisRepository,
	publisher port.EventPublisher,
	scorer service.Scorer,
	metrics port.MetricsRecorder,
	logger *slog.Logger,
) *AnalyzeText {
	return &AnalyzeText{
		repo:      repo,
		publisher: publisher,
		scorer:    scorer,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute validates the text, scores it, persists the analysis, and publishes events.
func (uc *AnalyzeText) Execute(ctx context.Context, req dto.AnalyzeTextRequest) (dto.AnalysisResponse, error) {
	ctx, span := tracer.Start(ctx, "AnalyzeText")
	defer span.End()

	// 1. Validate before scoring; the scorer itself accepts any string.
	if err := model.ValidateText(req.Text); err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidInput, err)
		recordSpanError(span, err)
		return dto.AnalysisResponse{}, err
	}

	// 2. Score.
	start := time.Now()
	assessment, err := uc.scorer.Score(ctx, req.Text)
	if err != nil {
		uc.metrics.RecordScoringFailure(ctx, uc.scorer.Name())
		uc.logger.ErrorContext(ctx, "scoring failed", "scorer", uc.scorer.Name(), "error", err)
		err = fmt.Errorf("%w: %w", ErrScoringFailed, err)
		recordSpanError(span, err)
		return dto.AnalysisResponse{}, err
	}
	uc.metrics.RecordAnalysis(ctx, uc.scorer.Name(), assessment, time.Since(start))

	// 3. Build the aggregate.
	analysis, err := model.NewAnalysis(req.Text, assessment)
	if err != nil {
		recordSpanError(span, err)
		return dto.AnalysisResponse{}, fmt.Errorf("failed to create analysis: %w", err)
	}
	span.SetAttributes(
		attribute.String("analysis.id", analysis.ID().String()),
		attribute.Int("analysis.risk_score", assessment.Score()),
		attribute.String("analysis.risk_level", assessment.Level().String()),
	)

	// 4. Persist.
	if err := uc.repo.Save(ctx, analysis); err != nil {
		recordSpanError(span, err)
		return dto.AnalysisResponse{}, fmt.Errorf("failed to save analysis: %w", err)
	}

	// 5. Publish domain events. The analysis is already stored, so a broker
	// failure is logged and not returned.
	events := analysis.DomainEvents()
	if len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			uc.logger.ErrorContext(ctx, "failed to publish domain events",
				"error", err,
				"analysis_id", analysis.ID(),
				"event_count", len(events),
			)
		}
	}

	uc.logger.InfoContext(ctx, "text analyzed",
		"analysis_id", analysis.ID(),
		"risk_score", assessment.Score(),
		"risk_level", assessment.Level().String(),
		"red_flags", len(assessment.RedFlags()),
	)

	return dto.FromModel(analysis), nil
}
