package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bibbank/scamguard/internal/application/dto"
	"github.com/bibbank/scamguard/internal/application/usecase"
	pkgkafka "github.com/bibbank/scamguard/pkg/kafka"
)

// TextAnalyzer runs an analysis. *usecase.AnalyzeText satisfies it.
type TextAnalyzer interface {
	Execute(ctx context.Context, req dto.AnalyzeTextRequest) (dto.AnalysisResponse, error)
}

// intakeMessage is the payload accepted on the intake topic.
type intakeMessage struct {
	Text string `json:"text"`
}

// NewIntakeHandler returns a consumer handler that analyzes submitted text.
// Malformed payloads and rejected text are logged and acknowledged; only
// failures worth retrying are returned to the consumer.
func NewIntakeHandler(analyzer TextAnalyzer, logger *slog.Logger) pkgkafka.Handler {
	return func(ctx context.Context, msg pkgkafka.Message) error {
		var in intakeMessage
		if err := json.Unmarshal(msg.Value, &in); err != nil {
			logger.WarnContext(ctx, "discarding malformed intake message",
				"key", string(msg.Key),
				"error", err,
			)
			return nil
		}

		resp, err := analyzer.Execute(ctx, dto.AnalyzeTextRequest{Text: in.Text})
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			logger.WarnContext(ctx, "discarding invalid intake text",
				"key", string(msg.Key),
				"error", err,
			)
			return nil
		case err != nil:
			return fmt.Errorf("analyze intake message: %w", err)
		}

		logger.InfoContext(ctx, "intake message analyzed",
			"key", string(msg.Key),
			"analysis_id", resp.ID,
			"risk_level", resp.RiskLevel,
		)
		return nil
	}
}
