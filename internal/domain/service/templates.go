package service

import (
	"strings"

	"github.com/bibbank/scamguard/internal/domain/valueobject"
)

const (
	highRiskExplanation    = "This text contains multiple red flags commonly associated with investment scams, including unrealistic return promises and high-pressure tactics."
	highRiskRecommendation = "DO NOT INVEST. This appears to be a scam. Legitimate investments never guarantee high returns and don't use pressure tactics."

	mediumRiskExplanation    = "This text has some concerning elements that warrant caution, though it may not be an outright scam."
	mediumRiskRecommendation = "Exercise caution. Research the company thoroughly, verify credentials, and consult with a financial advisor before investing."

	lowRiskExplanation    = "This appears to be a legitimate investment opportunity with proper disclosures and realistic expectations."
	lowRiskRecommendation = "This appears legitimate, but always do your own research and never invest more than you can afford to lose."
)

// Explanation returns the fixed explanation text for a tier.
func Explanation(level valueobject.RiskLevel) string {
	switch {
	case level.Equal(valueobject.RiskLevelHigh):
		return highRiskExplanation
	case level.Equal(valueobject.RiskLevelMedium):
		return mediumRiskExplanation
	default:
		return lowRiskExplanation
	}
}

// Recommendation returns the fixed recommendation text for a tier.
func Recommendation(level valueobject.RiskLevel) string {
	switch {
	case level.Equal(valueobject.RiskLevelHigh):
		return highRiskRecommendation
	case level.Equal(valueobject.RiskLevelMedium):
		return mediumRiskRecommendation
	default:
		return lowRiskRecommendation
	}
}

// FlagDescription renders the per-flag description for a category.
func FlagDescription(category string) string {
	return "Found suspicious language indicating " + strings.ToLower(category)
}
