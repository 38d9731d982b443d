package service_test

import (
	"context"
	"testing"

	"github.com/pracor/pracor/internal/database/dbtest"
	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreServiceRecompute(t *testing.T) {
	t.Parallel()

	t.Run("sums counted reviews", func(t *testing.T) {
		t.Parallel()
		client := dbtest.New(t)
		scores := client.Service().Score()
		company := createCompany(t, client, "Acme", "acme.pl")

		addReview(t, client, company.ID, types.Ratings{
			OverallScore: 5, Advancement: 4, WorkLife: 3, Compensation: 2, Environment: 1,
		}, enum.ApprovalStatusApproved)
		addReview(t, client, company.ID, types.Ratings{
			OverallScore: 4, Advancement: 4, WorkLife: 4, Compensation: 4, Environment: 4,
		}, enum.ApprovalStatusPending)
		addReview(t, client, company.ID, types.Ratings{
			OverallScore: 1, Advancement: 1, WorkLife: 1, Compensation: 1, Environment: 1,
		}, enum.ApprovalStatusRejected)

		totals, err := scores.Recompute(t.Context(), company.ID)
		require.NoError(t, err)

		want := types.ScoreTotals{
			OverallScore: 9, Advancement: 8, WorkLife: 7, Compensation: 6, Environment: 5, ReviewCount: 2,
		}
		assert.Equal(t, want, totals)

		stored, err := client.Model().Company().GetByID(t.Context(), company.ID)
		require.NoError(t, err)
		assert.Equal(t, want, stored.ScoreTotals)

		display, err := scores.DisplayScores(t.Context(), company.ID)
		require.NoError(t, err)
		require.NotNil(t, display)
		assert.InDelta(t, 4.5, display.OverallScore, 1e-9)
		assert.InDelta(t, 2.5, display.Environment, 1e-9)
	})

	t.Run("company without reviews", func(t *testing.T) {
		t.Parallel()
		client := dbtest.New(t)
		scores := client.Service().Score()
		company := createCompany(t, client, "Empty", "empty.pl")

		totals, err := scores.Recompute(t.Context(), company.ID)
		require.NoError(t, err)
		assert.Equal(t, types.ScoreTotals{}, totals)

		display, err := scores.DisplayScores(t.Context(), company.ID)
		require.NoError(t, err)
		assert.Nil(t, display)
	})

	t.Run("running twice gives the same totals", func(t *testing.T) {
		t.Parallel()
		client := dbtest.New(t)
		scores := client.Service().Score()
		company := createCompany(t, client, "Twice", "twice.pl")

		addReview(t, client, company.ID, types.Ratings{
			OverallScore: 3, Advancement: 3, WorkLife: 3, Compensation: 3, Environment: 3,
		}, enum.ApprovalStatusApproved)

		first, err := scores.Recompute(t.Context(), company.ID)
		require.NoError(t, err)
		second, err := scores.Recompute(t.Context(), company.ID)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, int64(1), second.ReviewCount)
	})

	t.Run("canceled caller does not abort the shared run", func(t *testing.T) {
		t.Parallel()
		client := dbtest.New(t)
		company := createCompany(t, client, "Detached", "detached.pl")

		addReview(t, client, company.ID, types.Ratings{
			OverallScore: 2, Advancement: 2, WorkLife: 2, Compensation: 2, Environment: 2,
		}, enum.ApprovalStatusApproved)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		totals, err := client.Service().Score().Recompute(ctx, company.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), totals.ReviewCount)

		stored, err := client.Model().Company().GetByID(t.Context(), company.ID)
		require.NoError(t, err)
		assert.Equal(t, totals, stored.ScoreTotals)
	})

	t.Run("unknown company", func(t *testing.T) {
		t.Parallel()
		client := dbtest.New(t)

		_, err := client.Service().Score().Recompute(t.Context(), 404)
		require.ErrorIs(t, err, types.ErrCompanyNotFound)

		_, err = client.Service().Score().DisplayScores(t.Context(), 404)
		require.ErrorIs(t, err, types.ErrCompanyNotFound)
	})
}

func TestScoreServiceRecomputeAll(t *testing.T) {
	t.Parallel()

	client := dbtest.New(t)
	first := createCompany(t, client, "First", "first.pl")
	second := createCompany(t, client, "Second", "second.pl")

	addReview(t, client, first.ID, types.Ratings{
		OverallScore: 2, Advancement: 2, WorkLife: 2, Compensation: 2, Environment: 2,
	}, enum.ApprovalStatusApproved)
	addReview(t, client, second.ID, types.Ratings{
		OverallScore: 5, Advancement: 5, WorkLife: 5, Compensation: 5, Environment: 5,
	}, enum.ApprovalStatusApproved)

	processed, err := client.Service().Score().RecomputeAll(t.Context(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, processed)

	for _, tc := range []struct {
		id      int64
		overall int64
	}{{first.ID, 2}, {second.ID, 5}} {
		company, err := client.Model().Company().GetByID(t.Context(), tc.id)
		require.NoError(t, err)
		assert.Equal(t, tc.overall, company.OverallScore)
		assert.Equal(t, int64(1), company.ReviewCount)
	}
}
