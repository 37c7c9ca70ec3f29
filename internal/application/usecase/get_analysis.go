package usecase

import (
	"context"
	"fmt"

	"github.com/bibbank/scamguard/internal/application/dto"
	"github.com/bibbank/scamguard/internal/domain/port"
)

// GetAnalysis is the use case for retrieving an existing analysis.
type GetAnalysis struct {
	repo port.AnalysisRepository
}

// NewGetAnalysis creates a new GetAnalysis use case.
func NewGetAnalysis(repo port.AnalysisRepository) *GetAnalysis {
	return &GetAnalysis{repo: repo}
}

// Execute retrieves an analysis by ID.
func (uc *GetAnalysis) Execute(ctx context.Context, req dto.GetAnalysisRequest) (dto.AnalysisResponse, error) {
	ctx, span := tracer.Start(ctx, "GetAnalysis")
	defer span.End()

	analysis, err := uc.repo.FindByID(ctx, req.AnalysisID)
	if err != nil {
		recordSpanError(span, err)
		return dto.AnalysisResponse{}, fmt.Errorf("failed to find analysis: %w", err)
	}
	if analysis == nil {
		return dto.AnalysisResponse{}, fmt.Errorf("%w: %s", ErrNotFound, req.AnalysisID)
	}

	return dto.FromModel(analysis), nil
}
