package service

import (
	"context"
	"strings"

	"github.com/bibbank/scamguard/internal/domain/valueobject"
)

// Scoring weights.
const (
	highSeverityPoints   = 30
	mediumSeverityPoints = 15
	maxRiskScore         = valueobject.MaxRiskScore

	// Floor applied when text promises guaranteed returns of 500% or 1000%.
	blatantScamScore = 90
)

// RiskScorer is a stateless domain service that scores text against an ordered
// table of indicator rules. It is safe for concurrent use.
type RiskScorer struct {
	rules []IndicatorRule
}

// NewRiskScorer creates a RiskScorer over the built-in rule table.
func NewRiskScorer() *RiskScorer {
	return &RiskScorer{rules: defaultIndicatorRules}
}

// NewRiskScorerWithRules creates a RiskScorer over a custom rule table.
func NewRiskScorerWithRules(rules []IndicatorRule) *RiskScorer {
	r := make([]IndicatorRule, len(rules))
	copy(r, rules)
	return &RiskScorer{rules: r}
}

// Rules returns a copy of the scorer's rule table.
func (s *RiskScorer) Rules() []IndicatorRule {
	rules := make([]IndicatorRule, len(s.rules))
	copy(rules, s.rules)
	return rules
}

// Assess scores text. It never fails: empty or benign text yields a low-risk
// assessment with no red flags.
func (s *RiskScorer) Assess(text string) valueobject.RiskAssessment {
	redFlags := s.match(text)

	highCount, mediumCount := 0, 0
	for _, flag := range redFlags {
		switch {
		case flag.Severity.Equal(valueobject.SeverityHigh):
			highCount++
		case flag.Severity.Equal(valueobject.SeverityMedium):
			mediumCount++
		}
	}

	score := min(maxRiskScore, highCount*highSeverityPoints+mediumCount*mediumSeverityPoints)

	// Only the literal figures count here, not whatever the Unrealistic Returns
	// rule happened to match.
	lower := strings.ToLower(text)
	if strings.Contains(lower, "guaranteed") &&
		(strings.Contains(lower, "500%") || strings.Contains(lower, "1000%")) {
		score = max(score, blatantScamScore)
	}

	level := valueobject.RiskLevelFromScore(score)

	assessment, err := valueobject.NewRiskAssessment(score, redFlags, Explanation(level), Recommendation(level))
	if err != nil {
		// Unreachable: score is clamped to [0,100] and every rule has a severity.
		panic("service: built invalid risk assessment: " + err.Error())
	}
	return assessment
}

// Score implements Scorer. The rule-based scorer has no failure mode.
func (s *RiskScorer) Score(_ context.Context, text string) (valueobject.RiskAssessment, error) {
	return s.Assess(text), nil
}

// Name implements Scorer.
func (s *RiskScorer) Name() string {
	return "rules"
}

// match evaluates every rule independently and keeps the first match of each.
func (s *RiskScorer) match(text string) []valueobject.RedFlag {
	redFlags := make([]valueobject.RedFlag, 0)
	for _, rule := range s.rules {
		excerpt, ok := rule.FirstMatch(text)
		if !ok {
			continue
		}
		redFlags = append(redFlags, valueobject.RedFlag{
			Type:        rule.Category(),
			Description: FlagDescription(rule.Category()),
			Severity:    rule.Severity(),
			Excerpt:     excerpt,
		})
	}
	return redFlags
}
