package model

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/bibbank/scamguard/internal/domain/event"
	"github.com/bibbank/scamguard/internal/domain/valueobject"
	"github.com/bibbank/scamguard/pkg/events"
)

// MinTextLength is the minimum number of characters (runes) accepted for analysis.
const MinTextLength = 10

// ErrTextTooShort is returned when submitted text is below MinTextLength.
var ErrTextTooShort = errors.New("Text must be at least 10 characters long") //nolint:staticcheck // client-facing message

// ValidateText checks the caller-side precondition for scoring.
func ValidateText(text string) error {
	if utf8.RuneCountInString(text) < MinTextLength {
		return ErrTextTooShort
	}
	return nil
}

// Analysis is the aggregate root for a scored piece of text.
type Analysis struct {
	createdAt  time.Time
	collector  events.EventCollector
	text       string
	assessment valueobject.RiskAssessment
	id         uuid.UUID
}

// NewAnalysis creates an analysis for text that has already been scored.
// It records AnalysisCompleted, plus ScamDetected for high-risk results.
func NewAnalysis(text string, assessment valueobject.RiskAssessment) (*Analysis, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}
	if assessment.IsZero() {
		return nil, fmt.Errorf("assessment is required")
	}

	a := &Analysis{
		id:         uuid.New(),
		text:       text,
		assessment: assessment,
		createdAt:  time.Now().UTC(),
	}

	categories := a.Categories()
	a.collector.Record(event.NewAnalysisCompleted(
		a.id, assessment.Score(), assessment.Level().String(), categories, a.createdAt,
	))
	if assessment.Level().IsHigh() {
		a.collector.Record(event.NewScamDetected(a.id, assessment.Score(), categories, a.createdAt))
	}

	return a, nil
}

// Reconstruct rebuilds an Analysis from persisted data (no validation, no events).
func Reconstruct(id uuid.UUID, text string, assessment valueobject.RiskAssessment, createdAt time.Time) *Analysis {
	return &Analysis{
		id:         id,
		text:       text,
		assessment: assessment,
		createdAt:  createdAt,
	}
}

func (a *Analysis) ID() uuid.UUID                          { return a.id }
func (a *Analysis) Text() string                           { return a.text }
func (a *Analysis) Assessment() valueobject.RiskAssessment { return a.assessment }
func (a *Analysis) CreatedAt() time.Time                   { return a.createdAt }

// Categories returns the categories of the matched red flags in rule order.
func (a *Analysis) Categories() []string {
	flags := a.assessment.RedFlags()
	categories := make([]string, 0, len(flags))
	for _, flag := range flags {
		categories = append(categories, flag.Type)
	}
	return categories
}

// DomainEvents returns all accumulated domain events and clears them.
func (a *Analysis) DomainEvents() []events.DomainEvent {
	return a.collector.Pull()
}
