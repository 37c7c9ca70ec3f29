package kafka_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/scamguard/internal/application/dto"
	"github.com/bibbank/scamguard/internal/application/usecase"
	"github.com/bibbank/scamguard/internal/infrastructure/kafka"
	pkgkafka "github.com/bibbank/scamguard/pkg/kafka"
	"github.com/bibbank/scamguard/pkg/testutil"
)

type mockAnalyzer struct {
	err      error
	requests []dto.AnalyzeTextRequest
}

func (m *mockAnalyzer) Execute(_ context.Context, req dto.AnalyzeTextRequest) (dto.AnalysisResponse, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return dto.AnalysisResponse{}, m.err
	}
	return dto.AnalysisResponse{ID: testutil.TestAnalysisID1, RiskLevel: "high", RiskScore: 90}, nil
}

func TestIntakeHandler(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		analyzerErr  error
		wantErr      bool
		wantAnalyzed bool
	}{
		{
			name:         "valid message",
			value:        fmt.Sprintf(`{"text":%q}`, testutil.ScamPitch),
			wantAnalyzed: true,
		},
		{
			name:  "malformed json is acknowledged",
			value: `{"text":`,
		},
		{
			name:         "invalid text is acknowledged",
			value:        `{"text":"short"}`,
			analyzerErr:  fmt.Errorf("%w: too short", usecase.ErrInvalidInput),
			wantAnalyzed: true,
		},
		{
			name:         "scoring failure is returned",
			value:        fmt.Sprintf(`{"text":%q}`, testutil.ScamPitch),
			analyzerErr:  fmt.Errorf("%w: timeout", usecase.ErrScoringFailed),
			wantErr:      true,
			wantAnalyzed: true,
		},
		{
			name:         "storage failure is returned",
			value:        fmt.Sprintf(`{"text":%q}`, testutil.ScamPitch),
			analyzerErr:  errors.New("db down"),
			wantErr:      true,
			wantAnalyzed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &mockAnalyzer{err: tt.analyzerErr}
			handler := kafka.NewIntakeHandler(analyzer, discardLogger())

			err := handler(context.Background(), pkgkafka.Message{
				Key:   []byte("k1"),
				Value: []byte(tt.value),
			})

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			if tt.wantAnalyzed {
				require.Len(t, analyzer.requests, 1)
			} else {
				assert.Empty(t, analyzer.requests)
			}
		})
	}
}

func TestIntakeHandler_PassesText(t *testing.T) {
	analyzer := &mockAnalyzer{}
	handler := kafka.NewIntakeHandler(analyzer, discardLogger())

	err := handler(context.Background(), pkgkafka.Message{Value: []byte(`{"text":"Act now, your returns are guaranteed"}`)})
	require.NoError(t, err)
	require.Len(t, analyzer.requests, 1)
	assert.Equal(t, testutil.UrgentGuaranteePitch, analyzer.requests[0].Text)
}
