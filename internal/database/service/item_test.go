package service_test

import (
	"testing"

	"github.com/pracor/pracor/internal/database/dbtest"
	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemServiceList(t *testing.T) {
	t.Parallel()

	client := dbtest.New(t)
	items := client.Service().Item()
	company := createCompany(t, client, "Acme", "acme.pl")
	first := addReview(t, client, company.ID, types.Ratings{
		OverallScore: 3, Advancement: 3, WorkLife: 3, Compensation: 3, Environment: 3,
	}, enum.ApprovalStatusApproved)
	second := addReview(t, client, company.ID, types.Ratings{
		OverallScore: 4, Advancement: 4, WorkLife: 4, Compensation: 4, Environment: 4,
	}, enum.ApprovalStatusPending)

	contributor := &types.User{ID: 1, Contributed: true}
	visitor := &types.User{ID: 2}

	_, err := items.List(t.Context(), visitor, enum.ItemKindReview, company.ID, 10, 0)
	require.ErrorIs(t, err, types.ErrNotContributor)

	_, err = items.List(t.Context(), nil, enum.ItemKindReview, company.ID, 10, 0)
	require.ErrorIs(t, err, types.ErrNotContributor)

	_, err = items.List(t.Context(), contributor, enum.ItemKind(42), company.ID, 10, 0)
	require.ErrorIs(t, err, types.ErrUnknownItemKind)

	_, err = items.List(t.Context(), contributor, enum.ItemKindReview, 404, 10, 0)
	require.ErrorIs(t, err, types.ErrCompanyNotFound)

	listed, err := items.List(t.Context(), contributor, enum.ItemKindReview, company.ID, 10, 0)
	require.NoError(t, err)
	reviews, ok := listed.([]*types.Review)
	require.True(t, ok)
	require.Len(t, reviews, 2)
	assert.Equal(t, second.ID, reviews[0].ID)
	assert.Equal(t, first.ID, reviews[1].ID)

	staff := &types.User{ID: 3, Staff: true}
	listed, err = items.List(t.Context(), staff, enum.ItemKindSalary, company.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestItemServiceModerate(t *testing.T) {
	t.Parallel()

	client := dbtest.New(t)
	items := client.Service().Item()
	company := createCompany(t, client, "Acme", "acme.pl")
	kept := addReview(t, client, company.ID, types.Ratings{
		OverallScore: 5, Advancement: 5, WorkLife: 5, Compensation: 5, Environment: 5,
	}, enum.ApprovalStatusPending)
	spam := addReview(t, client, company.ID, types.Ratings{
		OverallScore: 1, Advancement: 1, WorkLife: 1, Compensation: 1, Environment: 1,
	}, enum.ApprovalStatusPending)
	_, err := client.Service().Score().Recompute(t.Context(), company.ID)
	require.NoError(t, err)

	require.NoError(t, items.Moderate(t.Context(), 99, enum.ItemKindReview, spam.ID, enum.ApprovalStatusRejected))
	require.NoError(t, items.Moderate(t.Context(), 99, enum.ItemKindReview, kept.ID, enum.ApprovalStatusApproved))

	stored, err := client.Model().Company().GetByID(t.Context(), company.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.ReviewCount)
	assert.Equal(t, int64(5), stored.OverallScore)

	rejected, err := client.Model().Review().GetByID(t.Context(), spam.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.ApprovalStatusRejected, rejected.ApprovalStatus)
	require.NotNil(t, rejected.ReviewerID)
	assert.Equal(t, int64(99), *rejected.ReviewerID)
	assert.False(t, rejected.ReviewedAt.IsZero())

	detail, err := client.Service().Company().Detail(t.Context(), company.ID)
	require.NoError(t, err)
	reviews := detail.Items[0]
	assert.Equal(t, 1, reviews.Count)
	require.IsType(t, &types.Review{}, reviews.Latest)
	assert.Equal(t, kept.ID, reviews.Latest.(*types.Review).ID)

	contributor := &types.User{ID: 1, Contributed: true}
	listed, err := items.List(t.Context(), contributor, enum.ItemKindReview, company.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, kept.ID, listed.([]*types.Review)[0].ID)

	require.NoError(t, items.Moderate(t.Context(), 99, enum.ItemKindReview, kept.ID, enum.ApprovalStatusRejected))

	detail, err = client.Service().Company().Detail(t.Context(), company.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Scores)
	assert.Zero(t, detail.Items[0].Count)
	assert.Nil(t, detail.Items[0].Latest)
	assert.Nil(t, detail.Items[0].LatestStars)

	err = items.Moderate(t.Context(), 99, enum.ItemKindReview, spam.ID, enum.ApprovalStatusPending)
	var validation *types.ValidationError
	require.ErrorAs(t, err, &validation)

	err = items.Moderate(t.Context(), 99, enum.ItemKindInterview, 404, enum.ApprovalStatusApproved)
	require.ErrorIs(t, err, types.ErrRecordNotFound)
}
