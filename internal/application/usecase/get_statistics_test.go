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

func TestGetStatistics_Execute(t *testing.T) {
	repo := &mockAnalysisRepository{
		statisticsFunc: func(_ context.Context) (model.Statistics, error) {
			return model.NewStatistics(4, 1, 135), nil
		},
	}

	resp, err := usecase.NewGetStatistics(repo).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, dto.StatisticsResponse{TotalAnalyses: 4, ScamsDetected: 1, AverageRiskScore: 34}, resp)
}

func TestGetStatistics_RepositoryError(t *testing.T) {
	repo := &mockAnalysisRepository{
		statisticsFunc: func(_ context.Context) (model.Statistics, error) {
			return model.Statistics{}, errors.New("db down")
		},
	}

	_, err := usecase.NewGetStatistics(repo).Execute(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compute statistics")
}
