package service_test

import (
	"testing"

	"github.com/pracor/pracor/internal/database/dbtest"
	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/database/types/enum"
	"github.com/pracor/pracor/internal/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyServiceCreate(t *testing.T) {
	t.Parallel()

	t.Run("normalizes fields", func(t *testing.T) {
		t.Parallel()
		client := dbtest.New(t)

		company, linked, err := client.Service().Company().Create(t.Context(), &types.CompanyInput{
			Name:             "  Acme   Corp ",
			HeadquartersCity: "bielsko-biała",
			Website:          "https://Acme.pl/",
		})
		require.NoError(t, err)
		assert.Zero(t, linked)
		assert.Equal(t, "Acme Corp", company.Name)
		assert.Equal(t, "acme corp", company.SearchName)
		assert.Equal(t, "http://www.acme.pl", company.Website)
		assert.Equal(t, "Bielsko-Biała", company.HeadquartersCity)
		assert.Equal(t, types.DefaultCountry, company.Country)
	})

	t.Run("invalid input", func(t *testing.T) {
		t.Parallel()
		client := dbtest.New(t)

		_, _, err := client.Service().Company().Create(t.Context(), &types.CompanyInput{
			Name:    "",
			Website: "not a website",
		})
		var validation *types.ValidationError
		require.ErrorAs(t, err, &validation)
		fields := validation.Forms[types.FormCompany]
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "headquartersCity")
		assert.Contains(t, fields, "website")
	})

	t.Run("website spelled differently conflicts", func(t *testing.T) {
		t.Parallel()
		client := dbtest.New(t)
		existing := createCompany(t, client, "Acme", "http://www.acme.pl")

		_, _, err := client.Service().Company().Create(t.Context(), &types.CompanyInput{
			Name:             "Acme Two",
			HeadquartersCity: "Łódź",
			Website:          "https://acme.pl",
		})
		require.ErrorIs(t, err, types.ErrCompanyExists)

		var conflict *types.ConflictError
		require.ErrorAs(t, err, &conflict)
		require.Len(t, conflict.Existing, 1)
		assert.Equal(t, existing.ID, conflict.Existing[0].ID)
	})
}

func TestCompanyServiceUpdate(t *testing.T) {
	t.Parallel()

	client := dbtest.New(t)
	companies := client.Service().Company()
	acme := createCompany(t, client, "Acme", "acme.pl")
	createCompany(t, client, "Globex", "globex.pl")

	updated, err := companies.Update(t.Context(), acme.ID, &types.CompanyInput{
		Name:             "Acme Polska",
		HeadquartersCity: "poznań",
		Website:          "acme.pl",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Polska", updated.Name)
	assert.Equal(t, "Poznań", updated.HeadquartersCity)

	_, err = companies.Update(t.Context(), acme.ID, &types.CompanyInput{
		Name:             "Globex",
		HeadquartersCity: "Poznań",
		Website:          "acme.pl",
	})
	require.ErrorIs(t, err, types.ErrCompanyExists)

	_, err = companies.Update(t.Context(), 404, &types.CompanyInput{
		Name:             "Missing",
		HeadquartersCity: "Poznań",
		Website:          "missing.pl",
	})
	require.ErrorIs(t, err, types.ErrCompanyNotFound)
}

func TestCompanyServiceSearchAndList(t *testing.T) {
	t.Parallel()

	client := dbtest.New(t)
	companies := client.Service().Company()
	createCompany(t, client, "Łódzkie Zakłady", "lz.pl")
	createCompany(t, client, "Globex", "globex.pl")
	createCompany(t, client, "100% Software", "sto.pl")

	found, err := companies.Search(t.Context(), "LODZ", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Łódzkie Zakłady", found[0].Name)

	found, err = companies.Search(t.Context(), "%", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "100% Software", found[0].Name)

	found, err = companies.Search(t.Context(), "  ", 0)
	require.NoError(t, err)
	assert.Empty(t, found)

	page, err := companies.List(t.Context(), 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "100% Software", page[0].Name)
	assert.Equal(t, "Globex", page[1].Name)
}

func TestCompanyServiceDelete(t *testing.T) {
	t.Parallel()

	client := dbtest.New(t)
	company := createCompany(t, client, "Acme", "acme.pl")
	position := addPosition(t, client, 7, company.ID, company.CreatedAt)
	review := addReview(t, client, company.ID, types.Ratings{
		OverallScore: 4, Advancement: 4, WorkLife: 4, Compensation: 4, Environment: 4,
	}, enum.ApprovalStatusApproved)

	require.NoError(t, client.Service().Company().Delete(t.Context(), company.ID))

	_, err := client.Service().Company().Get(t.Context(), company.ID)
	require.ErrorIs(t, err, types.ErrCompanyNotFound)

	_, err = client.Model().Review().GetByID(t.Context(), review.ID)
	require.ErrorIs(t, err, types.ErrRecordNotFound)

	positions, err := client.Service().Position().ListUnlinked(t.Context(), 7)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, position.ID, positions[0].ID)

	require.ErrorIs(t, client.Service().Company().Delete(t.Context(), company.ID), types.ErrCompanyNotFound)
}

func TestCompanyServiceDetail(t *testing.T) {
	t.Parallel()

	client := dbtest.New(t)
	company := createCompany(t, client, "Acme", "acme.pl")

	detail, err := client.Service().Company().Detail(t.Context(), company.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Scores)
	assert.Nil(t, detail.Stars)
	require.Len(t, detail.Items, len(enum.ItemKinds))
	for _, summary := range detail.Items {
		assert.Zero(t, summary.Count)
		assert.Nil(t, summary.Latest)
	}

	addReview(t, client, company.ID, types.Ratings{
		OverallScore: 5, Advancement: 4, WorkLife: 5, Compensation: 4, Environment: 5,
	}, enum.ApprovalStatusApproved)
	latest := addReview(t, client, company.ID, types.Ratings{
		OverallScore: 4, Advancement: 4, WorkLife: 4, Compensation: 4, Environment: 4,
	}, enum.ApprovalStatusApproved)
	_, err = client.Service().Score().Recompute(t.Context(), company.ID)
	require.NoError(t, err)

	detail, err = client.Service().Company().Detail(t.Context(), company.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Scores)
	assert.InDelta(t, 4.5, detail.Scores.OverallScore, 1e-9)
	assert.Equal(t, rating.Stars{Full: 4, Half: 1}, detail.Stars["overallScore"])
	assert.Equal(t, rating.Stars{Full: 4, Blank: 1}, detail.Stars["advancement"])

	reviews := detail.Items[0]
	assert.Equal(t, enum.ItemKindReview, reviews.Kind)
	assert.Equal(t, 2, reviews.Count)
	require.IsType(t, &types.Review{}, reviews.Latest)
	assert.Equal(t, latest.ID, reviews.Latest.(*types.Review).ID)
	assert.Equal(t, rating.Stars{Full: 4, Blank: 1}, reviews.LatestStars["overallScore"])

	assert.Nil(t, detail.Items[1].LatestStars)
}
