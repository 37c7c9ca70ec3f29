package port

import (
	"context"

	"github.com/bibbank/scamguard/internal/domain/valueobject"
)

// AssessmentCache stores assessments keyed by a digest of the scored text.
type AssessmentCache interface {
	// Get returns the cached assessment and whether it was present.
	Get(ctx context.Context, key string) (valueobject.RiskAssessment, bool, error)

	// Set stores an assessment.
	Set(ctx context.Context, key string, assessment valueobject.RiskAssessment) error
}
