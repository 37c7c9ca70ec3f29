package valueobject

import (
	"encoding/json"
	"fmt"
)

const (
	MinRiskScore = 0
	MaxRiskScore = 100
)

// RiskAssessment is the immutable result of scoring a piece of text.
// The level is always derived from the score.
type RiskAssessment struct {
	level          RiskLevel
	explanation    string
	recommendation string
	redFlags       []RedFlag
	score          int
}

// NewRiskAssessment validates the score and builds an assessment. Red flags are
// copied so later changes to the caller's slice are not observed.
func NewRiskAssessment(score int, redFlags []RedFlag, explanation, recommendation string) (RiskAssessment, error) {
	if score < MinRiskScore || score > MaxRiskScore {
		return RiskAssessment{}, fmt.Errorf("risk score must be between %d and %d, got %d", MinRiskScore, MaxRiskScore, score)
	}
	for i, flag := range redFlags {
		if flag.Severity.IsZero() {
			return RiskAssessment{}, fmt.Errorf("red flag %d (%q) has no severity", i, flag.Type)
		}
	}

	flags := make([]RedFlag, len(redFlags))
	copy(flags, redFlags)

	return RiskAssessment{
		score:          score,
		level:          RiskLevelFromScore(score),
		redFlags:       flags,
		explanation:    explanation,
		recommendation: recommendation,
	}, nil
}

func (a RiskAssessment) Score() int             { return a.score }
func (a RiskAssessment) Level() RiskLevel       { return a.level }
func (a RiskAssessment) Explanation() string    { return a.explanation }
func (a RiskAssessment) Recommendation() string { return a.recommendation }

// RedFlags returns a copy of the matched indicators in rule order.
func (a RiskAssessment) RedFlags() []RedFlag {
	flags := make([]RedFlag, len(a.redFlags))
	copy(flags, a.redFlags)
	return flags
}

// CountBySeverity returns how many red flags carry the given severity.
func (a RiskAssessment) CountBySeverity(severity Severity) int {
	n := 0
	for _, flag := range a.redFlags {
		if flag.Severity.Equal(severity) {
			n++
		}
	}
	return n
}

// IsZero returns true for an assessment that was never built.
func (a RiskAssessment) IsZero() bool {
	return a.level.IsZero()
}

type redFlagJSON struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Excerpt     string `json:"excerpt"`
}

type riskAssessmentJSON struct {
	RiskLevel      string        `json:"riskLevel"`
	Explanation    string        `json:"explanation"`
	Recommendation string        `json:"recommendation"`
	RedFlags       []redFlagJSON `json:"redFlags"`
	RiskScore      int           `json:"riskScore"`
}

// MarshalJSON encodes the assessment using the public API field names.
func (a RiskAssessment) MarshalJSON() ([]byte, error) {
	flags := make([]redFlagJSON, 0, len(a.redFlags))
	for _, f := range a.redFlags {
		flags = append(flags, redFlagJSON{
			Type:        f.Type,
			Description: f.Description,
			Severity:    f.Severity.String(),
			Excerpt:     f.Excerpt,
		})
	}
	return json.Marshal(riskAssessmentJSON{
		RiskScore:      a.score,
		RiskLevel:      a.level.String(),
		RedFlags:       flags,
		Explanation:    a.explanation,
		Recommendation: a.recommendation,
	})
}

// UnmarshalJSON decodes and re-validates an assessment. The encoded risk level
// is ignored in favour of the one derived from the score.
func (a *RiskAssessment) UnmarshalJSON(data []byte) error {
	var raw riskAssessmentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	flags := make([]RedFlag, 0, len(raw.RedFlags))
	for _, f := range raw.RedFlags {
		severity, err := SeverityFromString(f.Severity)
		if err != nil {
			return fmt.Errorf("decode red flag %q: %w", f.Type, err)
		}
		flags = append(flags, RedFlag{
			Type:        f.Type,
			Description: f.Description,
			Severity:    severity,
			Excerpt:     f.Excerpt,
		})
	}

	built, err := NewRiskAssessment(raw.RiskScore, flags, raw.Explanation, raw.Recommendation)
	if err != nil {
		return fmt.Errorf("decode risk assessment: %w", err)
	}
	*a = built
	return nil
}
