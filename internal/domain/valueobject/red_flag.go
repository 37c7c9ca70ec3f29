package valueobject

// RedFlag is a single matched scam indicator.
type RedFlag struct {
	// Type is the indicator category label, e.g. "Guaranteed Returns".
	Type        string
	Description string
	Severity    Severity
	// Excerpt is the literal substring of the input that triggered the match.
	Excerpt string
}
