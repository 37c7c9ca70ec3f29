package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/bibbank/scamguard/internal/domain/model"
)

// AnalysisRepository implements port.AnalysisRepository in process memory.
// Data does not survive a restart.
type AnalysisRepository struct {
	byID  map[uuid.UUID]*model.Analysis
	order []*model.Analysis
	mu    sync.RWMutex
}

// NewAnalysisRepository creates an empty repository.
func NewAnalysisRepository() *AnalysisRepository {
	return &AnalysisRepository{byID: make(map[uuid.UUID]*model.Analysis)}
}

// Save stores an analysis. Saving an existing ID replaces it in place.
func (r *AnalysisRepository) Save(_ context.Context, analysis *model.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[analysis.ID()]; exists {
		for i, a := range r.order {
			if a.ID() == analysis.ID() {
				r.order[i] = analysis
				break
			}
		}
	} else {
		r.order = append(r.order, analysis)
	}
	r.byID[analysis.ID()] = analysis
	return nil
}

// FindByID returns nil, nil when the analysis does not exist.
func (r *AnalysisRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id], nil
}

// ListRecent returns up to limit analyses in reverse insertion order.
func (r *AnalysisRepository) ListRecent(_ context.Context, limit int) ([]*model.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.order)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]*model.Analysis, 0, n)
	for i := len(r.order) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.order[i])
	}
	return out, nil
}

// Statistics summarises every stored analysis.
func (r *AnalysisRepository) Statistics(_ context.Context) (model.Statistics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return model.ComputeStatistics(r.order), nil
}
