package usecase

import (
	"context"
	"fmt"

	"github.com/bibbank/scamguard/internal/application/dto"
	"github.com/bibbank/scamguard/internal/domain/port"
)

// GetStatistics is the use case for summarising stored analyses.
type GetStatistics struct {
	repo port.AnalysisRepository
}

// NewGetStatistics creates a new GetStatistics use case.
func NewGetStatistics(repo port.AnalysisRepository) *GetStatistics {
	return &GetStatistics{repo: repo}
}

// Execute returns totals and the rounded average risk score.
func (uc *GetStatistics) Execute(ctx context.Context) (dto.StatisticsResponse, error) {
	ctx, span := tracer.Start(ctx, "GetStatistics")
	defer span.End()

	stats, err := uc.repo.Statistics(ctx)
	if err != nil {
		recordSpanError(span, err)
		return dto.StatisticsResponse{}, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return dto.FromStatistics(stats), nil
}
