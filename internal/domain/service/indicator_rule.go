package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/bibbank/scamguard/internal/domain/valueobject"
)

const (
	// lineRest replaces `.*` so a wildcard never crosses a line terminator.
	lineRest = `[^\n\r\x{2028}\x{2029}]*`

	// lookaroundTimeout bounds a single look-around match.
	lookaroundTimeout = 100 * time.Millisecond
)

// IndicatorRule is an immutable (pattern, category, severity) triple.
// Patterns are matched case-insensitively.
type IndicatorRule struct {
	matcher  matcher
	pattern  string
	category string
	severity valueobject.Severity
}

type matcher interface {
	firstMatch(text string) (string, bool)
}

// linearMatcher runs on RE2 and is linear in the length of the text.
type linearMatcher struct {
	re *regexp.Regexp
}

func (m linearMatcher) firstMatch(text string) (string, bool) {
	loc := m.re.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	return text[loc[0]:loc[1]], true
}

// lookaroundMatcher serves the patterns RE2 cannot express.
type lookaroundMatcher struct {
	re *regexp2.Regexp
}

func (m lookaroundMatcher) firstMatch(text string) (string, bool) {
	match, err := m.re.FindStringMatch(text)
	if err != nil || match == nil {
		// err is only ever a match timeout.
		return "", false
	}
	return match.String(), true
}

// NewIndicatorRule compiles pattern case-insensitively. Patterns are compiled
// with RE2 when possible and fall back to regexp2 for look-around.
func NewIndicatorRule(pattern, category string, severity valueobject.Severity) (IndicatorRule, error) {
	m, err := compileMatcher(pattern)
	if err != nil {
		return IndicatorRule{}, err
	}
	return IndicatorRule{matcher: m, pattern: pattern, category: category, severity: severity}, nil
}

func compileMatcher(pattern string) (matcher, error) {
	re, err := regexp.Compile("(?i)" + strings.ReplaceAll(pattern, ".*", lineRest))
	if err == nil {
		return linearMatcher{re: re}, nil
	}

	re2, err := regexp2.Compile(pattern, regexp2.IgnoreCase)
	if err != nil {
		return nil, err
	}
	re2.MatchTimeout = lookaroundTimeout
	return lookaroundMatcher{re: re2}, nil
}

func mustIndicatorRule(pattern, category string, severity valueobject.Severity) IndicatorRule {
	rule, err := NewIndicatorRule(pattern, category, severity)
	if err != nil {
		panic("service: invalid indicator pattern for " + category + ": " + err.Error())
	}
	return rule
}

func (r IndicatorRule) Category() string               { return r.category }
func (r IndicatorRule) Severity() valueobject.Severity { return r.severity }
func (r IndicatorRule) Pattern() string                { return r.pattern }

// FirstMatch returns the leftmost substring of text matched by the rule.
func (r IndicatorRule) FirstMatch(text string) (string, bool) {
	return r.matcher.firstMatch(text)
}

// defaultIndicatorRules is the fixed rule table. Order determines the order of
// the resulting red flags.
var defaultIndicatorRules = []IndicatorRule{
	mustIndicatorRule(`(?<!no\s)guaranteed?(?!\s+but)`, "Guaranteed Returns", valueobject.SeverityHigh),
	mustIndicatorRule(`urgent|act now|24 hours|only.*left|must act|don't miss`, "Pressure Tactics", valueobject.SeverityHigh),
	// 500% and up. 51-499% intentionally matches neither this nor High Returns Claims.
	mustIndicatorRule(`[5-9][0-9]{2,}%|1[0-9]{3,}%`, "Unrealistic Returns", valueobject.SeverityHigh),
	mustIndicatorRule(`whatsapp.*\+|send money now|wire.*immediately`, "Suspicious Contact Methods", valueobject.SeverityHigh),
	mustIndicatorRule(`no experience needed|easy money|get rich quick`, "Get-Rich-Quick Claims", valueobject.SeverityMedium),
	mustIndicatorRule(`send \$[0-9]+|wire transfer \$|bitcoin payment|crypto payment`, "Payment Red Flags", valueobject.SeverityMedium),
	mustIndicatorRule(`limited.*spots?|exclusive.*opportunity|vip.*group|insider.*tips`, "Pressure/Exclusivity", valueobject.SeverityMedium),
	mustIndicatorRule(`telegram|discord.*trading|private.*group`, "Unregulated Platforms", valueobject.SeverityMedium),
	mustIndicatorRule(`\b[1-4][0-9]%|\b50%`, "High Returns Claims", valueobject.SeverityMedium),
}

// DefaultIndicatorRules returns a copy of the built-in rule table in evaluation order.
func DefaultIndicatorRules() []IndicatorRule {
	rules := make([]IndicatorRule, len(defaultIndicatorRules))
	copy(rules, defaultIndicatorRules)
	return rules
}
