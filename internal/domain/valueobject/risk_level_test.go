package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/scamguard/internal/domain/valueobject"
)

func TestRiskLevel_String(t *testing.T) {
	assert.Equal(t, "low", valueobject.RiskLevelLow.String())
	assert.Equal(t, "medium", valueobject.RiskLevelMedium.String())
	assert.Equal(t, "high", valueobject.RiskLevelHigh.String())
}

func TestRiskLevel_FromString(t *testing.T) {
	tests := []struct {
		input    string
		expected valueobject.RiskLevel
		wantErr  bool
	}{
		{"low", valueobject.RiskLevelLow, false},
		{"medium", valueobject.RiskLevelMedium, false},
		{"high", valueobject.RiskLevelHigh, false},
		{"HIGH", valueobject.RiskLevel{}, true},
		{"critical", valueobject.RiskLevel{}, true},
		{"", valueobject.RiskLevel{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := valueobject.RiskLevelFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.True(t, tt.expected.Equal(result))
			}
		})
	}
}

func TestRiskLevel_FromScore(t *testing.T) {
	tests := []struct {
		name     string
		expected valueobject.RiskLevel
		score    int
	}{
		{name: "score 0 is low", expected: valueobject.RiskLevelLow, score: 0},
		{name: "score 15 is low", expected: valueobject.RiskLevelLow, score: 15},
		{name: "score 30 is low", expected: valueobject.RiskLevelLow, score: 30},
		{name: "score 31 is medium", expected: valueobject.RiskLevelMedium, score: 31},
		{name: "score 45 is medium", expected: valueobject.RiskLevelMedium, score: 45},
		{name: "score 70 is medium", expected: valueobject.RiskLevelMedium, score: 70},
		{name: "score 71 is high", expected: valueobject.RiskLevelHigh, score: 71},
		{name: "score 90 is high", expected: valueobject.RiskLevelHigh, score: 90},
		{name: "score 100 is high", expected: valueobject.RiskLevelHigh, score: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := valueobject.RiskLevelFromScore(tt.score)
			assert.True(t, tt.expected.Equal(result),
				"expected %s for score %d, got %s", tt.expected.String(), tt.score, result.String())
		})
	}
}

func TestRiskLevel_FromScoreIsMonotonic(t *testing.T) {
	rank := map[string]int{"low": 0, "medium": 1, "high": 2}

	prev := rank[valueobject.RiskLevelFromScore(0).String()]
	for score := 1; score <= 100; score++ {
		cur := rank[valueobject.RiskLevelFromScore(score).String()]
		assert.GreaterOrEqual(t, cur, prev, "tier decreased at score %d", score)
		prev = cur
	}
}

func TestRiskLevel_IsZero(t *testing.T) {
	var zero valueobject.RiskLevel
	assert.True(t, zero.IsZero())
	assert.False(t, valueobject.RiskLevelLow.IsZero())
}

func TestRiskLevel_IsHigh(t *testing.T) {
	assert.True(t, valueobject.RiskLevelHigh.IsHigh())
	assert.False(t, valueobject.RiskLevelMedium.IsHigh())
	assert.False(t, valueobject.RiskLevelLow.IsHigh())
}

func TestSeverity_FromString(t *testing.T) {
	for _, s := range []string{"high", "medium", "low"} {
		sev, err := valueobject.SeverityFromString(s)
		require.NoError(t, err)
		assert.Equal(t, s, sev.String())
	}

	_, err := valueobject.SeverityFromString("critical")
	assert.Error(t, err)
}
