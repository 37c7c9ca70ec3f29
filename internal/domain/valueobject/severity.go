package valueobject

import "fmt"

// Severity is an immutable value object describing how strongly an indicator
// suggests a scam.
type Severity struct {
	value string
}

var (
	SeverityHigh   = Severity{value: "high"}
	SeverityMedium = Severity{value: "medium"}
	SeverityLow    = Severity{value: "low"}
)

// SeverityFromString reconstructs a severity from its string representation.
func SeverityFromString(s string) (Severity, error) {
	switch s {
	case "high":
		return SeverityHigh, nil
	case "medium":
		return SeverityMedium, nil
	case "low":
		return SeverityLow, nil
	default:
		return Severity{}, fmt.Errorf("invalid severity: %s", s)
	}
}

// String returns the string representation.
func (s Severity) String() string {
	return s.value
}

// IsZero returns true if the severity has not been set.
func (s Severity) IsZero() bool {
	return s.value == ""
}

// Equal checks equality with another Severity.
func (s Severity) Equal(other Severity) bool {
	return s.value == other.value
}
