package export_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/pracor/pracor/internal/database"
	"github.com/pracor/pracor/internal/database/dbtest"
	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/database/types/enum"
	"github.com/pracor/pracor/internal/export"
	exportSQLite "github.com/pracor/pracor/internal/export/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

func seed(t *testing.T, client database.Client) *types.Company {
	t.Helper()
	ctx := t.Context()

	company, _, err := client.Service().Company().Create(ctx, &types.CompanyInput{
		Name:             "Acme",
		HeadquartersCity: "kraków",
		Website:          "acme.pl",
	})
	require.NoError(t, err)

	_, _, err = client.Service().Company().Create(ctx, &types.CompanyInput{
		Name:             "Globex",
		HeadquartersCity: "gdańsk",
		Website:          "globex.pl",
	})
	require.NoError(t, err)

	for i, status := range []enum.ApprovalStatus{
		enum.ApprovalStatusApproved, enum.ApprovalStatusApproved, enum.ApprovalStatusPending,
	} {
		review := &types.Review{
			CompanyID: company.ID,
			UserID:    int64(100 + i%2),
			Title:     "Review",
			Pros:      "Team",
			Cons:      "Commute",
			Comment:   "Fine",
			Ratings:   types.Ratings{OverallScore: 4, Advancement: 3, WorkLife: 5, Compensation: 2, Environment: 4},
			Approval:  types.Approval{ApprovalStatus: status},
		}
		require.NoError(t, client.Model().Review().CreateWithTx(ctx, client.DB(), review))
	}

	_, err = client.Service().Score().Recompute(ctx, company.ID)
	require.NoError(t, err)

	return company
}

func TestExporter_ExportAll(t *testing.T) {
	t.Parallel()

	client := dbtest.New(t)
	company := seed(t, client)
	dir := filepath.Join(t.TempDir(), "out")

	cfg := &export.Config{
		ExportVersion: "2024.1",
		Salt:          "secret",
		HashType:      export.HashTypeSHA256,
		Iterations:    2,
		Concurrency:   2,
	}
	require.NoError(t, export.New(client, dir, cfg, zap.NewNop()).ExportAll(t.Context()))

	for _, name := range []string{
		exportSQLite.FileName, "companies.csv", "reviews.csv", "companies.jsonl", "reviews.jsonl",
	} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	t.Run("config omits salt", func(t *testing.T) {
		t.Parallel()

		data, err := os.ReadFile(filepath.Join(dir, export.ConfigFileName))
		require.NoError(t, err)

		var written map[string]any
		require.NoError(t, sonic.Unmarshal(data, &written))
		assert.Equal(t, export.EngineVersion, written["engineVersion"])
		assert.Equal(t, "sha256", written["hashType"])
		assert.NotContains(t, written, "salt")
		assert.NotContains(t, string(data), "secret")
	})

	t.Run("sqlite contents", func(t *testing.T) {
		t.Parallel()

		conn, err := sqlite.OpenConn(filepath.Join(dir, exportSQLite.FileName), sqlite.OpenReadOnly)
		require.NoError(t, err)
		defer conn.Close()

		var names []string
		var overall []float64
		err = sqlitex.ExecuteTransient(conn, "SELECT name, overall_score FROM companies ORDER BY id",
			&sqlitex.ExecOptions{
				ResultFunc: func(stmt *sqlite.Stmt) error {
					names = append(names, stmt.ColumnText(0))
					overall = append(overall, stmt.ColumnFloat(1))
					return nil
				},
			})
		require.NoError(t, err)
		assert.Equal(t, []string{"Acme", "Globex"}, names)
		assert.InDelta(t, 4.0, overall[0], 1e-9)
		assert.Zero(t, overall[1])

		var hashes []string
		err = sqlitex.ExecuteTransient(conn, "SELECT author_hash FROM reviews WHERE company_id = ? ORDER BY rowid",
			&sqlitex.ExecOptions{
				Args: []any{company.ID},
				ResultFunc: func(stmt *sqlite.Stmt) error {
					hashes = append(hashes, stmt.ColumnText(0))
					return nil
				},
			})
		require.NoError(t, err)

		// Only approved reviews are exported and authors never appear in clear text.
		assert.Equal(t, []string{
			export.HashID(100, "secret", export.HashTypeSHA256, 2, 0),
			export.HashID(101, "secret", export.HashTypeSHA256, 2, 0),
		}, hashes)
	})
}

func TestExporter_RejectsBadOptions(t *testing.T) {
	t.Parallel()

	client := dbtest.New(t)
	dir := t.TempDir()

	err := export.New(client, dir, &export.Config{HashType: "md5"}, zap.NewNop()).ExportAll(t.Context())
	require.ErrorIs(t, err, export.ErrUnsupportedHash)

	cfg := &export.Config{HashType: export.HashTypeSHA256, Iterations: 1}
	err = export.New(client, dir, cfg, zap.NewNop(), "binary").ExportAll(t.Context())
	require.ErrorIs(t, err, export.ErrUnsupportedFormat)
}
