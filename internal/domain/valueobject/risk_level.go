package valueobject

import "fmt"

// RiskLevel is an immutable value object representing the risk tier of an analysis.
type RiskLevel struct {
	value string
}

var (
	RiskLevelLow    = RiskLevel{value: "low"}
	RiskLevelMedium = RiskLevel{value: "medium"}
	RiskLevelHigh   = RiskLevel{value: "high"}
)

// Tier boundaries are inclusive lower bounds.
const (
	mediumRiskThreshold = 31
	highRiskThreshold   = 71
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "low":
		return RiskLevelLow, nil
	case "medium":
		return RiskLevelMedium, nil
	case "high":
		return RiskLevelHigh, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromScore derives the tier from a numeric score (0-100).
func RiskLevelFromScore(score int) RiskLevel {
	switch {
	case score >= highRiskThreshold:
		return RiskLevelHigh
	case score >= mediumRiskThreshold:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}

// IsHigh reports whether the level is the top tier.
func (r RiskLevel) IsHigh() bool {
	return r.value == "high"
}
