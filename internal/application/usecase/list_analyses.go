package usecase

import (
	"context"
	"fmt"

	"github.com/bibbank/scamguard/internal/application/dto"
	"github.com/bibbank/scamguard/internal/domain/port"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// ListRecentAnalyses is the use case for listing the most recent analyses.
type ListRecentAnalyses struct {
	repo port.AnalysisRepository
}

// NewListRecentAnalyses creates a new ListRecentAnalyses use case.
func NewListRecentAnalyses(repo port.AnalysisRepository) *ListRecentAnalyses {
	return &ListRecentAnalyses{repo: repo}
}

// Execute lists analyses, most recent first.
func (uc *ListRecentAnalyses) Execute(ctx context.Context, req dto.ListAnalysesRequest) ([]dto.AnalysisResponse, error) {
	ctx, span := tracer.Start(ctx, "ListRecentAnalyses")
	defer span.End()

	// Apply defaults.
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	analyses, err := uc.repo.ListRecent(ctx, limit)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	responses := make([]dto.AnalysisResponse, 0, len(analyses))
	for _, a := range analyses {
		responses = append(responses, dto.FromModel(a))
	}
	return responses, nil
}
