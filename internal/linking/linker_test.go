package linking_test

import (
	"testing"
	"time"

	"github.com/pracor/pracor/internal/database"
	"github.com/pracor/pracor/internal/database/dbtest"
	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/linking"
	"github.com/pracor/pracor/internal/redis/redistest"
	"github.com/pracor/pracor/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLinker(t *testing.T) (*linking.Linker, database.Client) {
	t.Helper()
	linker, db, _ := newLinkerWithStore(t)
	return linker, db
}

func newLinkerWithStore(t *testing.T) (*linking.Linker, database.Client, *session.WorkflowStore) {
	t.Helper()

	db := dbtest.New(t)
	manager, _ := redistest.New(t)
	store, err := session.NewWorkflowStore(manager, time.Hour, zap.NewNop())
	require.NoError(t, err)

	return linking.New(db, store, zap.NewNop()), db, store
}

func TestLinkerWorkflow(t *testing.T) {
	t.Parallel()

	linker, db := newLinker(t)
	acme, _, err := db.Service().Company().Create(t.Context(), &types.CompanyInput{
		Name: "Acme Polska", HeadquartersCity: "Kraków", Website: "acme.pl",
	})
	require.NoError(t, err)

	step, err := linker.Import(t.Context(), 7, []types.ImportedPosition{
		{CompanyName: "ACME", Title: "Engineer"},
		{CompanyName: "Initech", Title: "Analyst"},
	})
	require.NoError(t, err)
	require.False(t, step.Done)
	require.NotNil(t, step.Position)
	assert.Equal(t, "ACME", step.Position.CompanyName)
	require.Len(t, step.Reconciliation.Candidates, 1)
	assert.Equal(t, acme.ID, step.Reconciliation.Candidates[0].ID)
	token := step.Workflow.Token

	current, err := linker.Current(t.Context(), 7, token)
	require.NoError(t, err)
	assert.Equal(t, step.Position.ID, current.Position.ID)

	_, err = linker.Current(t.Context(), 8, token)
	require.ErrorIs(t, err, session.ErrWorkflowNotFound)

	step, err = linker.Choose(t.Context(), 7, token, acme.ID)
	require.NoError(t, err)
	require.False(t, step.Done)
	assert.Equal(t, "Initech", step.Position.CompanyName)
	assert.Empty(t, step.Reconciliation.Candidates)
	assert.False(t, step.Reconciliation.Queued)

	_, err = linker.Current(t.Context(), 7, token)
	require.NoError(t, err)
	requests, err := db.Model().CompanyRequest().List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, requests)

	step, err = linker.Skip(t.Context(), 7, token)
	require.NoError(t, err)
	assert.True(t, step.Done)
	assert.Len(t, step.Workflow.Linked, 1)
	assert.Len(t, step.Workflow.Skipped, 1)

	_, err = linker.Current(t.Context(), 7, token)
	require.ErrorIs(t, err, session.ErrWorkflowNotFound)

	position, err := db.Service().Position().FindExisting(t.Context(), 7, acme.ID)
	require.NoError(t, err)
	require.NotNil(t, position)
	assert.Equal(t, "Engineer", position.Title)

	requests, err = db.Model().CompanyRequest().List(t.Context())
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "Initech", requests[0].Name)
}

func TestLinkerChooseUnknownCompany(t *testing.T) {
	t.Parallel()

	linker, _ := newLinker(t)

	step, err := linker.Import(t.Context(), 7, []types.ImportedPosition{
		{CompanyName: "Globex", Title: "Engineer"},
	})
	require.NoError(t, err)

	_, err = linker.Choose(t.Context(), 7, step.Workflow.Token, 404)
	require.ErrorIs(t, err, types.ErrCompanyNotFound)

	current, err := linker.Current(t.Context(), 7, step.Workflow.Token)
	require.NoError(t, err)
	assert.Zero(t, current.Workflow.Step)
}

func TestLinkerSkipsVanishedPositions(t *testing.T) {
	t.Parallel()

	linker, db, store := newLinkerWithStore(t)

	step, err := linker.Import(t.Context(), 7, []types.ImportedPosition{
		{CompanyName: "Globex", Title: "Engineer"},
		{CompanyName: "Initech", Title: "Analyst"},
	})
	require.NoError(t, err)
	token := step.Workflow.Token
	first := step.Position.ID

	require.NoError(t, db.Service().Position().Delete(t.Context(), 7, first))

	current, err := linker.Current(t.Context(), 7, token)
	require.NoError(t, err)
	require.False(t, current.Done)
	assert.Equal(t, "Initech", current.Position.CompanyName)

	stored, err := store.Load(t.Context(), token, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Step)
	assert.Equal(t, []int64{first}, stored.Skipped)

	require.NoError(t, db.Service().Position().Delete(t.Context(), 7, current.Position.ID))

	current, err = linker.Current(t.Context(), 7, token)
	require.NoError(t, err)
	assert.True(t, current.Done)

	_, err = store.Load(t.Context(), token, 7)
	require.ErrorIs(t, err, session.ErrWorkflowNotFound)

	requests, err := db.Model().CompanyRequest().List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, requests)
}
