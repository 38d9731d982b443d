package commands_test

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/pracor/pracor/cmd/db/commands"
	"github.com/pracor/pracor/internal/database"
	"github.com/pracor/pracor/internal/database/dbtest"
	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func newApp(db database.Client, out *bytes.Buffer) *cli.Command {
	deps := &commands.CLIDependencies{DB: db, Logger: zap.NewNop(), Out: out}

	var cmds []*cli.Command
	cmds = append(cmds, commands.ScoreCommands(deps)...)
	cmds = append(cmds, commands.CompanyCommands(deps)...)

	return &cli.Command{Name: "db", Commands: cmds}
}

func seedCompany(t *testing.T, db database.Client) *types.Company {
	t.Helper()

	company, _, err := db.Service().Company().Create(t.Context(), &types.CompanyInput{
		Name:             "Acme",
		HeadquartersCity: "poznań",
		Website:          "acme.pl",
	})
	require.NoError(t, err)

	review := &types.Review{
		CompanyID: company.ID,
		UserID:    3,
		Title:     "Good",
		Pros:      "Pay",
		Cons:      "Hours",
		Comment:   "Ok",
		Ratings:   types.Ratings{OverallScore: 4, Advancement: 4, WorkLife: 4, Compensation: 4, Environment: 4},
		Approval:  types.Approval{ApprovalStatus: enum.ApprovalStatusApproved},
	}
	require.NoError(t, db.Model().Review().CreateWithTx(t.Context(), db.DB(), review))

	return company
}

func TestScoresRecompute(t *testing.T) {
	t.Parallel()

	t.Run("single company", func(t *testing.T) {
		t.Parallel()
		db := dbtest.New(t)
		company := seedCompany(t, db)

		var out bytes.Buffer
		id := strconv.FormatInt(company.ID, 10)
		require.NoError(t, newApp(db, &out).Run(t.Context(), []string{"db", "scores", "recompute", id}))
		assert.Contains(t, out.String(), "1 counted reviews")

		stored, err := db.Model().Company().GetByID(t.Context(), company.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stored.ReviewCount)
		assert.Equal(t, int64(4), stored.OverallScore)
	})

	t.Run("every company", func(t *testing.T) {
		t.Parallel()
		db := dbtest.New(t)
		seedCompany(t, db)

		var out bytes.Buffer
		err := newApp(db, &out).Run(t.Context(), []string{"db", "scores", "recompute", "--workers", "2"})
		require.NoError(t, err)
		assert.Equal(t, "Recomputed 1 companies\n", out.String())
	})

	t.Run("invalid id", func(t *testing.T) {
		t.Parallel()
		db := dbtest.New(t)

		var out bytes.Buffer
		err := newApp(db, &out).Run(t.Context(), []string{"db", "scores", "recompute", "abc"})
		require.ErrorIs(t, err, commands.ErrInvalidID)
	})
}

func TestCompaniesQueue(t *testing.T) {
	t.Parallel()

	db := dbtest.New(t)

	var out bytes.Buffer
	require.NoError(t, newApp(db, &out).Run(t.Context(), []string{"db", "companies", "queue"}))
	assert.Equal(t, "No pending company requests\n", out.String())

	require.NoError(t, db.Model().CompanyRequest().Upsert(t.Context(), "Initech", 9))

	out.Reset()
	require.NoError(t, newApp(db, &out).Run(t.Context(), []string{"db", "companies", "queue"}))
	assert.Contains(t, out.String(), "NAME")
	assert.Contains(t, out.String(), "Initech")
}
