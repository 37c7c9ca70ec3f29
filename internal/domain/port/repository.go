package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/bibbank/scamguard/internal/domain/model"
)

// AnalysisRepository defines the persistence port for analyses.
type AnalysisRepository interface {
	// Save persists a new analysis.
	Save(ctx context.Context, analysis *model.Analysis) error

	// FindByID retrieves an analysis by its unique identifier. It returns
	// nil, nil when no analysis exists.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Analysis, error)

	// ListRecent returns up to limit analyses, most recent first.
	ListRecent(ctx context.Context, limit int) ([]*model.Analysis, error)

	// Statistics summarises every stored analysis.
	Statistics(ctx context.Context) (model.Statistics, error)
}
