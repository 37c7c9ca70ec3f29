package service

import (
	"context"

	"github.com/bibbank/scamguard/internal/domain/valueobject"
)

// Scorer defines the interface for risk scoring strategies.
// RiskScorer (rule-based) never returns an error; model-backed scorers may, and
// callers must surface that error rather than treat it as a low-risk result.
type Scorer interface {
	Score(ctx context.Context, text string) (valueobject.RiskAssessment, error)
	Name() string
}
