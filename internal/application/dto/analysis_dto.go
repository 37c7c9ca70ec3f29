package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/scamguard/internal/domain/model"
)

// AnalyzeTextRequest is the input DTO for the AnalyzeText use case.
type AnalyzeTextRequest struct {
	Text string `json:"text"`
}

// GetAnalysisRequest is the input DTO for retrieving an analysis.
type GetAnalysisRequest struct {
	AnalysisID uuid.UUID `json:"id"`
}

// ListAnalysesRequest is the input DTO for listing recent analyses.
type ListAnalysesRequest struct {
	Limit int `json:"limit"`
}

// RedFlagResponse is a single matched indicator.
type RedFlagResponse struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Excerpt     string `json:"excerpt"`
}

// AnalysisResponse is the output DTO for a stored analysis.
type AnalysisResponse struct {
	CreatedAt      time.Time         `json:"createdAt"`
	Text           string            `json:"text"`
	RiskLevel      string            `json:"riskLevel"`
	Explanation    string            `json:"explanation"`
	Recommendation string            `json:"recommendation"`
	RedFlags       []RedFlagResponse `json:"redFlags"`
	RiskScore      int               `json:"riskScore"`
	ID             uuid.UUID         `json:"id"`
}

// StatisticsResponse summarises all stored analyses.
type StatisticsResponse struct {
	TotalAnalyses    int `json:"totalAnalyses"`
	ScamsDetected    int `json:"scamsDetected"`
	AverageRiskScore int `json:"averageRiskScore"`
}

// FromModel maps a domain model to the response DTO.
func FromModel(a *model.Analysis) AnalysisResponse {
	assessment := a.Assessment()
	flags := assessment.RedFlags()

	redFlags := make([]RedFlagResponse, 0, len(flags))
	for _, f := range flags {
		redFlags = append(redFlags, RedFlagResponse{
			Type:        f.Type,
			Description: f.Description,
			Severity:    f.Severity.String(),
			Excerpt:     f.Excerpt,
		})
	}

	return AnalysisResponse{
		ID:             a.ID(),
		Text:           a.Text(),
		RiskScore:      assessment.Score(),
		RiskLevel:      assessment.Level().String(),
		RedFlags:       redFlags,
		Explanation:    assessment.Explanation(),
		Recommendation: assessment.Recommendation(),
		CreatedAt:      a.CreatedAt(),
	}
}

// FromStatistics maps domain statistics to the response DTO.
func FromStatistics(s model.Statistics) StatisticsResponse {
	return StatisticsResponse{
		TotalAnalyses:    s.TotalAnalyses,
		ScamsDetected:    s.ScamsDetected,
		AverageRiskScore: s.AverageRiskScore,
	}
}
