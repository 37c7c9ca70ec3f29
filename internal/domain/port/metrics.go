package port

import (
	"context"
	"time"

	"github.com/bibbank/scamguard/internal/domain/valueobject"
)

// MetricsRecorder records operational metrics for analyses.
type MetricsRecorder interface {
	RecordAnalysis(ctx context.Context, scorer string, assessment valueobject.RiskAssessment, duration time.Duration)
	RecordScoringFailure(ctx context.Context, scorer string)
}
