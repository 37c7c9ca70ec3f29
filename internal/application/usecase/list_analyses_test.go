package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/scamguard/internal/application/dto"
	"github.com/bibbank/scamguard/internal/application/usecase"
	"github.com/bibbank/scamguard/internal/domain/model"
)

func TestListRecentAnalyses_Execute(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		wantLimit int
	}{
		{name: "default limit", requested: 0, wantLimit: 10},
		{name: "negative limit uses default", requested: -5, wantLimit: 10},
		{name: "explicit limit", requested: 3, wantLimit: 3},
		{name: "limit capped", requested: 500, wantLimit: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit int
			repo := &mockAnalysisRepository{
				listRecentFunc: func(_ context.Context, limit int) ([]*model.Analysis, error) {
					gotLimit = limit
					return []*model.Analysis{sampleAnalysis(90), sampleAnalysis(15)}, nil
				},
			}

			resp, err := usecase.NewListRecentAnalyses(repo).Execute(context.Background(), dto.ListAnalysesRequest{Limit: tt.requested})

			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, gotLimit)
			require.Len(t, resp, 2)
			assert.Equal(t, 90, resp[0].RiskScore)
			assert.Equal(t, 15, resp[1].RiskScore)
		})
	}
}

func TestListRecentAnalyses_Empty(t *testing.T) {
	resp, err := usecase.NewListRecentAnalyses(&mockAnalysisRepository{}).Execute(context.Background(), dto.ListAnalysesRequest{})

	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Empty(t, resp)
}

func TestListRecentAnalyses_RepositoryError(t *testing.T) {
	repo := &mockAnalysisRepository{
		listRecentFunc: func(_ context.Context, _ int) ([]*model.Analysis, error) {
			return nil, errors.New("timeout")
		},
	}

	_, err := usecase.NewListRecentAnalyses(repo).Execute(context.Background(), dto.ListAnalysesRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list analyses")
}
