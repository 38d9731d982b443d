package sqlite_test

import (
	"path/filepath"
	"testing"
	"time"

	exportSQLite "github.com/pracor/pracor/internal/export/sqlite"
	"github.com/pracor/pracor/internal/export/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

func sampleRecords() ([]*types.CompanyRecord, []*types.ReviewRecord) {
	companies := []*types.CompanyRecord{
		{
			ID: 1, Name: "Acme", Website: "http://www.acme.pl", City: "Kraków", Country: "Polska",
			ReviewCount: 2, OverallScore: 4.5, Advancement: 3, WorkLife: 4, Compensation: 2.5, Environment: 5,
		},
		{ID: 2, Name: "Globex", Website: "http://www.globex.pl", City: "Gdańsk", Country: "Polska"},
	}
	reviews := []*types.ReviewRecord{
		{
			AuthorHash: "0123456789abcdef", CompanyID: 1, Title: "Solid",
			OverallScore: 5, Advancement: 3, WorkLife: 4, Compensation: 2, Environment: 5,
			CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		{
			AuthorHash: "fedcba9876543210", CompanyID: 1, Title: "Fine",
			OverallScore: 4, Advancement: 3, WorkLife: 4, Compensation: 3, Environment: 5,
			CreatedAt: time.Date(2024, 2, 2, 3, 4, 5, 0, time.UTC),
		},
	}
	return companies, reviews
}

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	companies, reviews := sampleRecords()

	require.NoError(t, exportSQLite.New(dir).Export(companies, reviews))

	conn, err := sqlite.OpenConn(filepath.Join(dir, exportSQLite.FileName), sqlite.OpenReadOnly)
	require.NoError(t, err)
	defer conn.Close()

	var got []*types.CompanyRecord
	err = sqlitex.ExecuteTransient(conn, `SELECT id, name, website, city, country, review_count,
		overall_score, advancement, work_life, compensation, environment FROM companies ORDER BY id`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				got = append(got, &types.CompanyRecord{
					ID:           stmt.ColumnInt64(0),
					Name:         stmt.ColumnText(1),
					Website:      stmt.ColumnText(2),
					City:         stmt.ColumnText(3),
					Country:      stmt.ColumnText(4),
					ReviewCount:  stmt.ColumnInt64(5),
					OverallScore: stmt.ColumnFloat(6),
					Advancement:  stmt.ColumnFloat(7),
					WorkLife:     stmt.ColumnFloat(8),
					Compensation: stmt.ColumnFloat(9),
					Environment:  stmt.ColumnFloat(10),
				})
				return nil
			},
		})
	require.NoError(t, err)
	assert.Equal(t, companies, got)

	var hashes []string
	var createdAt []string
	err = sqlitex.ExecuteTransient(conn, "SELECT author_hash, created_at FROM reviews WHERE company_id = ? ORDER BY created_at",
		&sqlitex.ExecOptions{
			Args: []any{int64(1)},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				hashes = append(hashes, stmt.ColumnText(0))
				createdAt = append(createdAt, stmt.ColumnText(1))
				return nil
			},
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"0123456789abcdef", "fedcba9876543210"}, hashes)
	assert.Equal(t, "2024-01-02T03:04:05Z", createdAt[0])
}

func TestExporter_ReplacesExistingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	companies, reviews := sampleRecords()
	exporter := exportSQLite.New(dir)

	require.NoError(t, exporter.Export(companies, reviews))
	require.NoError(t, exporter.Export(companies[:1], nil))

	conn, err := sqlite.OpenConn(filepath.Join(dir, exportSQLite.FileName), sqlite.OpenReadOnly)
	require.NoError(t, err)
	defer conn.Close()

	count, err := sqlitex.ResultInt(conn.Prep("SELECT COUNT(*) FROM companies"))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = sqlitex.ResultInt(conn.Prep("SELECT COUNT(*) FROM reviews"))
	require.NoError(t, err)
	assert.Zero(t, count)
}
