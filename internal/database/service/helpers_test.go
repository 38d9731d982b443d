package service_test

import (
	"testing"
	"time"

	"github.com/pracor/pracor/internal/database"
	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/database/types/enum"
	"github.com/stretchr/testify/require"
)

func createCompany(t *testing.T, client database.Client, name, website string) *types.Company {
	t.Helper()

	company, _, err := client.Service().Company().Create(t.Context(), &types.CompanyInput{
		Name:             name,
		HeadquartersCity: "warszawa",
		Website:          website,
	})
	require.NoError(t, err)

	return company
}

func addReview(
	t *testing.T, client database.Client, companyID int64, ratings types.Ratings, status enum.ApprovalStatus,
) *types.Review {
	t.Helper()

	review := &types.Review{
		CompanyID: companyID,
		UserID:    1,
		Title:     "Solid employer",
		Pros:      "People",
		Cons:      "Parking",
		Comment:   "Would work there again",
		Ratings:   ratings,
		Approval:  types.Approval{ApprovalStatus: status},
	}
	require.NoError(t, client.Model().Review().CreateWithTx(t.Context(), client.DB(), review))

	return review
}

func addPosition(t *testing.T, client database.Client, userID, companyID int64, createdAt time.Time) *types.Position {
	t.Helper()

	position := &types.Position{
		UserID:    userID,
		CompanyID: &companyID,
		Title:     "Engineer",
		Location:  "Kraków",
		CreatedAt: createdAt,
	}
	require.NoError(t, client.Model().Position().CreateWithTx(t.Context(), client.DB(), position))

	return position
}
