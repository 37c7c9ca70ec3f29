package model

import "github.com/shopspring/decimal"

// Statistics summarises all stored analyses.
type Statistics struct {
	TotalAnalyses    int
	ScamsDetected    int
	AverageRiskScore int
}

// NewStatistics derives the average from a score sum. The average is rounded
// half-up to a whole number and is 0 when there are no analyses.
func NewStatistics(total, scamsDetected int, scoreSum int64) Statistics {
	stats := Statistics{TotalAnalyses: total, ScamsDetected: scamsDetected}
	if total > 0 {
		stats.AverageRiskScore = int(decimal.NewFromInt(scoreSum).
			Div(decimal.NewFromInt(int64(total))).
			Round(0).
			IntPart())
	}
	return stats
}

// ComputeStatistics aggregates over an in-memory set of analyses.
func ComputeStatistics(analyses []*Analysis) Statistics {
	var sum int64
	scams := 0
	for _, a := range analyses {
		sum += int64(a.Assessment().Score())
		if a.Assessment().Level().IsHigh() {
			scams++
		}
	}
	return NewStatistics(len(analyses), scams, sum)
}
