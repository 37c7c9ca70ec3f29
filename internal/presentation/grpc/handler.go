package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/scamguard/internal/application/dto"
	"github.com/bibbank/scamguard/internal/application/usecase"
	"github.com/bibbank/scamguard/internal/domain/model"
)

// Compile-time assertion that ScamDetectorHandler implements ScamDetectorServiceServer.
var _ ScamDetectorServiceServer = (*ScamDetectorHandler)(nil)

// ScamDetectorHandler implements the gRPC ScamDetectorServiceServer interface.
type ScamDetectorHandler struct {
	UnimplementedScamDetectorServiceServer
	analyzeText   *usecase.AnalyzeText
	getAnalysis   *usecase.GetAnalysis
	listAnalyses  *usecase.ListRecentAnalyses
	getStatistics *usecase.GetStatistics
	logger        *slog.Logger
}

// NewScamDetectorHandler creates a new gRPC handler.
func NewScamDetectorHandler(
	analyzeText *usecase.AnalyzeText,
	getAnalysis *usecase.GetAnalysis,
	listAnalyses *usecase.ListRecentAnalyses,
	getStatistics *usecase.GetStatistics,
	logger *slog.Logger,
) *ScamDetectorHandler {
	return &ScamDetectorHandler{
		analyzeText:   analyzeText,
		getAnalysis:   getAnalysis,
		listAnalyses:  listAnalyses,
		getStatistics: getStatistics,
		logger:        logger,
	}
}

// Proto-aligned request/response message types.

// AnalyzeTextRequest represents the proto AnalyzeTextRequest message.
type AnalyzeTextRequest struct {
	Text string `json:"text"`
}

// RedFlagMsg represents the proto RedFlag message.
type RedFlagMsg struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Excerpt     string `json:"excerpt"`
}

// AnalysisMsg represents the proto Analysis message.
type AnalysisMsg struct {
	ID             string        `json:"id"`
	Text           string        `json:"text"`
	RiskLevel      string        `json:"risk_level"`
	Explanation    string        `json:"explanation"`
	Recommendation string        `json:"recommendation"`
	CreatedAt      string        `json:"created_at"`
	RedFlags       []*RedFlagMsg `json:"red_flags"`
	RiskScore      int32         `json:"risk_score"`
}

// AnalyzeTextResponse represents the proto AnalyzeTextResponse message.
type AnalyzeTextResponse struct {
	Analysis *AnalysisMsg `json:"analysis"`
}

// GetAnalysisRequest represents the proto GetAnalysisRequest message.
type GetAnalysisRequest struct {
	ID string `json:"id"`
}

// GetAnalysisResponse represents the proto GetAnalysisResponse message.
type GetAnalysisResponse struct {
	Analysis *AnalysisMsg `json:"analysis"`
}

// ListAnalysesRequest represents the proto ListAnalysesRequest message.
type ListAnalysesRequest struct {
	Limit int32 `json:"limit"`
}

// ListAnalysesResponse represents the proto ListAnalysesResponse message.
type ListAnalysesResponse struct {
	Analyses []*AnalysisMsg `json:"analyses"`
}

// GetStatisticsRequest represents the proto GetStatisticsRequest message.
type GetStatisticsRequest struct{}

// GetStatisticsResponse represents the proto GetStatisticsResponse message.
type GetStatisticsResponse struct {
	TotalAnalyses    int32 `json:"total_analyses"`
	ScamsDetected    int32 `json:"scams_detected"`
	AverageRiskScore int32 `json:"average_risk_score"`
}

// AnalyzeText handles a text analysis request.
func (h *ScamDetectorHandler) AnalyzeText(ctx context.Context, req *AnalyzeTextRequest) (*AnalyzeTextResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.analyzeText.Execute(ctx, dto.AnalyzeTextRequest{Text: req.Text})
	if err != nil {
		return nil, h.toStatus(ctx, "AnalyzeText", err)
	}

	return &AnalyzeTextResponse{Analysis: toAnalysisMsg(result)}, nil
}

// GetAnalysis handles a get analysis request.
func (h *ScamDetectorHandler) GetAnalysis(ctx context.Context, req *GetAnalysisRequest) (*GetAnalysisResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	// A malformed id cannot name a stored analysis.
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Error(codes.NotFound, "analysis not found")
	}

	result, err := h.getAnalysis.Execute(ctx, dto.GetAnalysisRequest{AnalysisID: id})
	if err != nil {
		return nil, h.toStatus(ctx, "GetAnalysis", err)
	}

	return &GetAnalysisResponse{Analysis: toAnalysisMsg(result)}, nil
}

// ListAnalyses handles a list analyses request.
func (h *ScamDetectorHandler) ListAnalyses(ctx context.Context, req *ListAnalysesRequest) (*ListAnalysesResponse, error) {
	if req == nil {
		req = &ListAnalysesRequest{}
	}
	if req.Limit < 0 {
		return nil, status.Error(codes.InvalidArgument, "limit must not be negative")
	}

	results, err := h.listAnalyses.Execute(ctx, dto.ListAnalysesRequest{Limit: int(req.Limit)})
	if err != nil {
		return nil, h.toStatus(ctx, "ListAnalyses", err)
	}

	msgs := make([]*AnalysisMsg, 0, len(results))
	for _, r := range results {
		msgs = append(msgs, toAnalysisMsg(r))
	}
	return &ListAnalysesResponse{Analyses: msgs}, nil
}

// GetStatistics handles a statistics request.
func (h *ScamDetectorHandler) GetStatistics(ctx context.Context, _ *GetStatisticsRequest) (*GetStatisticsResponse, error) {
	result, err := h.getStatistics.Execute(ctx)
	if err != nil {
		return nil, h.toStatus(ctx, "GetStatistics", err)
	}

	return &GetStatisticsResponse{
		TotalAnalyses:    int32(result.TotalAnalyses),
		ScamsDetected:    int32(result.ScamsDetected),
		AverageRiskScore: int32(result.AverageRiskScore),
	}, nil
}

// toStatus maps use case errors onto gRPC codes.
func (h *ScamDetectorHandler) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, model.ErrTextTooShort):
		return status.Error(codes.InvalidArgument, model.ErrTextTooShort.Error())
	case errors.Is(err, usecase.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, usecase.ErrNotFound):
		return status.Error(codes.NotFound, "analysis not found")
	case errors.Is(err, usecase.ErrScoringFailed):
		h.logger.ErrorContext(ctx, "scoring backend failed",
			slog.String("method", method),
			slog.String("error", err.Error()),
		)
		return status.Error(codes.Unavailable, "risk scoring is temporarily unavailable")
	default:
		h.logger.ErrorContext(ctx, "request failed",
			slog.String("method", method),
			slog.String("error", err.Error()),
		)
		return status.Error(codes.Internal, "internal error")
	}
}

func toAnalysisMsg(r dto.AnalysisResponse) *AnalysisMsg {
	flags := make([]*RedFlagMsg, 0, len(r.RedFlags))
	for _, f := range r.RedFlags {
		flags = append(flags, &RedFlagMsg{
			Type:        f.Type,
			Description: f.Description,
			Severity:    f.Severity,
			Excerpt:     f.Excerpt,
		})
	}

	return &AnalysisMsg{
		ID:             r.ID.String(),
		Text:           r.Text,
		RiskScore:      int32(r.RiskScore),
		RiskLevel:      r.RiskLevel,
		RedFlags:       flags,
		Explanation:    r.Explanation,
		Recommendation: r.Recommendation,
		CreatedAt:      r.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
