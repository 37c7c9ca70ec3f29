package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bibbank/scamguard/internal/domain/valueobject"
)

// Recorder implements port.MetricsRecorder with OpenTelemetry instruments.
type Recorder struct {
	analyses metric.Int64Counter
	redFlags metric.Int64Counter
	failures metric.Int64Counter
	scores   metric.Int64Histogram
	duration metric.Float64Histogram
}

// NewRecorder registers the scamguard instruments on meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	analyses, err := meter.Int64Counter("scamguard_analyses_total",
		metric.WithDescription("Texts scored, by risk level and scorer."))
	if err != nil {
		return nil, fmt.Errorf("create analyses counter: %w", err)
	}
	redFlags, err := meter.Int64Counter("scamguard_red_flags_total",
		metric.WithDescription("Red flags raised, by category and severity."))
	if err != nil {
		return nil, fmt.Errorf("create red flags counter: %w", err)
	}
	failures, err := meter.Int64Counter("scamguard_scoring_failures_total",
		metric.WithDescription("Scorer calls that returned an error."))
	if err != nil {
		return nil, fmt.Errorf("create failures counter: %w", err)
	}
	scores, err := meter.Int64Histogram("scamguard_risk_score",
		metric.WithDescription("Distribution of risk scores."),
		metric.WithExplicitBucketBoundaries(0, 15, 30, 45, 60, 70, 85, 100))
	if err != nil {
		return nil, fmt.Errorf("create score histogram: %w", err)
	}
	duration, err := meter.Float64Histogram("scamguard_scoring_duration_seconds",
		metric.WithDescription("Time spent scoring a text."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	return &Recorder{
		analyses: analyses,
		redFlags: redFlags,
		failures: failures,
		scores:   scores,
		duration: duration,
	}, nil
}

// RecordAnalysis implements port.MetricsRecorder.
func (r *Recorder) RecordAnalysis(ctx context.Context, scorer string, a valueobject.RiskAssessment, d time.Duration) {
	scorerAttr := attribute.String("scorer", scorer)

	r.analyses.Add(ctx, 1, metric.WithAttributes(scorerAttr, attribute.String("risk_level", a.Level().String())))
	r.scores.Record(ctx, int64(a.Score()), metric.WithAttributes(scorerAttr))
	r.duration.Record(ctx, d.Seconds(), metric.WithAttributes(scorerAttr))

	for _, flag := range a.RedFlags() {
		r.redFlags.Add(ctx, 1, metric.WithAttributes(
			attribute.String("category", flag.Type),
			attribute.String("severity", flag.Severity.String()),
		))
	}
}

// RecordScoringFailure implements port.MetricsRecorder.
func (r *Recorder) RecordScoringFailure(ctx context.Context, scorer string) {
	r.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("scorer", scorer)))
}
