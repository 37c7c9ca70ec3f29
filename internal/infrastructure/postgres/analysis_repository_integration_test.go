//go:build integration

package postgres_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/scamguard/internal/domain/model"
	"github.com/bibbank/scamguard/internal/domain/service"
	"github.com/bibbank/scamguard/internal/infrastructure/postgres"
	"github.com/bibbank/scamguard/pkg/testutil"
)

func setupRepository(t *testing.T) (*postgres.AnalysisRepository, *testutil.PostgresContainer) {
	t.Helper()

	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	t.Cleanup(func() { pc.Cleanup(t) })

	dir, err := filepath.Abs(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	pc.RunMigrations(t, dir)

	return postgres.NewAnalysisRepository(pc.Pool), pc
}

func analyze(t *testing.T, text string) *model.Analysis {
	t.Helper()
	a, err := model.NewAnalysis(text, service.NewRiskScorer().Assess(text))
	require.NoError(t, err)
	return a
}

func TestAnalysisRepository_Integration(t *testing.T) {
	repo, pc := setupRepository(t)
	ctx := context.Background()

	t.Run("save and find round trip", func(t *testing.T) {
		pc.Truncate(t, "analyses")
		a := analyze(t, testutil.ScamPitch)

		require.NoError(t, repo.Save(ctx, a))

		found, err := repo.FindByID(ctx, a.ID())
		require.NoError(t, err)
		require.NotNil(t, found)

		assert.Equal(t, a.ID(), found.ID())
		assert.Equal(t, testutil.ScamPitch, found.Text())
		testutil.AssertScore(t, 90, "high", found.Assessment().Score(), found.Assessment().Level().String())
		assert.Equal(t, a.Assessment().RedFlags(), found.Assessment().RedFlags())
		assert.Equal(t, a.Assessment().Explanation(), found.Assessment().Explanation())
		assert.WithinDuration(t, a.CreatedAt(), found.CreatedAt(), time.Millisecond)
	})

	t.Run("missing id returns nil", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("saving twice is a no-op", func(t *testing.T) {
		pc.Truncate(t, "analyses")
		a := analyze(t, testutil.LegitimatePitch)

		require.NoError(t, repo.Save(ctx, a))
		require.NoError(t, repo.Save(ctx, a))

		stats, err := repo.Statistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalAnalyses)
	})

	t.Run("list recent orders newest first", func(t *testing.T) {
		pc.Truncate(t, "analyses")

		var ids []uuid.UUID
		for _, text := range []string{testutil.ScamPitch, testutil.LegitimatePitch, testutil.ExclusiveGroupPitch} {
			a := analyze(t, text)
			require.NoError(t, repo.Save(ctx, a))
			ids = append(ids, a.ID())
			time.Sleep(5 * time.Millisecond)
		}

		list, err := repo.ListRecent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, ids[2], list[0].ID())
		assert.Equal(t, ids[1], list[1].ID())
	})

	t.Run("statistics", func(t *testing.T) {
		pc.Truncate(t, "analyses")

		stats, err := repo.Statistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.Statistics{}, stats)

		for _, text := range []string{testutil.ScamPitch, testutil.LegitimatePitch, testutil.UrgentGuaranteePitch} {
			require.NoError(t, repo.Save(ctx, analyze(t, text)))
		}

		stats, err = repo.Statistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.Statistics{TotalAnalyses: 3, ScamsDetected: 1, AverageRiskScore: 50}, stats)
	})
}
