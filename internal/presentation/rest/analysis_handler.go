package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/bibbank/scamguard/internal/application/dto"
	"github.com/bibbank/scamguard/internal/application/usecase"
	"github.com/bibbank/scamguard/internal/domain/model"
)

const maxBodyBytes = 1 << 20 // 1 MB

// AnalysisHandler serves the analysis HTTP API.
type AnalysisHandler struct {
	analyzeText   *usecase.AnalyzeText
	getAnalysis   *usecase.GetAnalysis
	listAnalyses  *usecase.ListRecentAnalyses
	getStatistics *usecase.GetStatistics
	logger        *slog.Logger
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(
	analyzeText *usecase.AnalyzeText,
	getAnalysis *usecase.GetAnalysis,
	listAnalyses *usecase.ListRecentAnalyses,
	getStatistics *usecase.GetStatistics,
	logger *slog.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		analyzeText:   analyzeText,
		getAnalysis:   getAnalysis,
		listAnalyses:  listAnalyses,
		getStatistics: getStatistics,
		logger:        logger,
	}
}

// RegisterRoutes registers the API endpoints on the provided ServeMux.
func (h *AnalysisHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/analyze", h.Analyze)
	mux.HandleFunc("GET /api/analyses/{id}", h.GetAnalysis)
	mux.HandleFunc("GET /api/analyses", h.ListAnalyses)
	mux.HandleFunc("GET /api/statistics", h.Statistics)
}

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Analyze handles POST /api/analyze.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeTextRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.analyzeText.Execute(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err, "Failed to analyze text")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetAnalysis handles GET /api/analyses/{id}.
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		// Unknown and malformed IDs look the same to clients.
		writeError(w, http.StatusNotFound, "Analysis not found")
		return
	}

	resp, err := h.getAnalysis.Execute(r.Context(), dto.GetAnalysisRequest{AnalysisID: id})
	if err != nil {
		h.handleError(w, r, err, "Failed to get analysis")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListAnalyses handles GET /api/analyses?limit=N.
func (h *AnalysisHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", raw))
			return
		}
		limit = n
	}

	resp, err := h.listAnalyses.Execute(r.Context(), dto.ListAnalysesRequest{Limit: limit})
	if err != nil {
		h.handleError(w, r, err, "Failed to get analyses")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Statistics handles GET /api/statistics.
func (h *AnalysisHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	resp, err := h.getStatistics.Execute(r.Context())
	if err != nil {
		h.handleError(w, r, err, "Failed to get statistics")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleError maps use case errors onto HTTP statuses. Internal details are
// logged, never returned.
func (h *AnalysisHandler) handleError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, model.ErrTextTooShort):
		writeError(w, http.StatusBadRequest, model.ErrTextTooShort.Error())
	case errors.Is(err, usecase.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrNotFound):
		writeError(w, http.StatusNotFound, "Analysis not found")
	case errors.Is(err, usecase.ErrScoringFailed):
		h.logger.ErrorContext(r.Context(), "scoring backend failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadGateway, "Risk scoring is temporarily unavailable")
	default:
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// readJSON reads and unmarshals a JSON request body into the provided value.
func readJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("request body is empty")
	}
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return errors.New("request body is empty")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// writeJSON marshals the value as JSON and writes it to the response.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, msg string) {
	writeJSON(w, statusCode, ErrorResponse{Message: msg})
}
