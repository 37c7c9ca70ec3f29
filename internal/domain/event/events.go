package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/scamguard/pkg/events"
)

const (
	// EventTypeAnalysisCompleted is emitted for every stored analysis.
	EventTypeAnalysisCompleted = "scamguard.analysis.completed"

	// EventTypeScamDetected is emitted when an analysis lands in the high tier.
	EventTypeScamDetected = "scamguard.scam.detected"

	// AggregateTypeAnalysis names the aggregate both events belong to.
	AggregateTypeAnalysis = "Analysis"
)

// AnalysisCompleted is published when a piece of text has been scored and stored.
type AnalysisCompleted struct {
	events.BaseEvent `json:"-"`
	AnalyzedAt       time.Time `json:"analyzed_at"`
	RiskLevel        string    `json:"risk_level"`
	Categories       []string  `json:"categories"`
	RiskScore        int       `json:"risk_score"`
	AnalysisID       uuid.UUID `json:"analysis_id"`
}

// NewAnalysisCompleted builds an AnalysisCompleted event.
func NewAnalysisCompleted(analysisID uuid.UUID, riskScore int, riskLevel string, categories []string, analyzedAt time.Time) AnalysisCompleted {
	return AnalysisCompleted{
		BaseEvent:  events.NewBaseEvent(EventTypeAnalysisCompleted, analysisID, AggregateTypeAnalysis),
		AnalysisID: analysisID,
		RiskScore:  riskScore,
		RiskLevel:  riskLevel,
		Categories: categories,
		AnalyzedAt: analyzedAt,
	}
}

// ScamDetected is published when text is classified as high risk, so that
// downstream consumers can alert on it.
type ScamDetected struct {
	events.BaseEvent `json:"-"`
	DetectedAt       time.Time `json:"detected_at"`
	Categories       []string  `json:"categories"`
	RiskScore        int       `json:"risk_score"`
	AnalysisID       uuid.UUID `json:"analysis_id"`
}

// NewScamDetected builds a ScamDetected event.
func NewScamDetected(analysisID uuid.UUID, riskScore int, categories []string, detectedAt time.Time) ScamDetected {
	return ScamDetected{
		BaseEvent:  events.NewBaseEvent(EventTypeScamDetected, analysisID, AggregateTypeAnalysis),
		AnalysisID: analysisID,
		RiskScore:  riskScore,
		Categories: categories,
		DetectedAt: detectedAt,
	}
}
