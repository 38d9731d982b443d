package csv_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	exportCSV "github.com/pracor/pracor/internal/export/csv"
	"github.com/pracor/pracor/internal/export/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	return rows
}

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	companies := []*types.CompanyRecord{
		{
			ID: 7, Name: "Acme, Inc.", Website: "http://www.acme.pl", City: "Łódź", Country: "Polska",
			ReviewCount: 3, OverallScore: 4.7, Advancement: 3.3, WorkLife: 1.7, Compensation: 1, Environment: 5,
		},
	}
	reviews := []*types.ReviewRecord{
		{
			AuthorHash: "beef", CompanyID: 7, Title: `Quote "test"`,
			OverallScore: 5, Advancement: 4, WorkLife: 3, Compensation: 2, Environment: 1,
			CreatedAt: time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
		},
	}

	require.NoError(t, exportCSV.New(dir).Export(companies, reviews))

	rows := readCSV(t, filepath.Join(dir, "companies.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, exportCSV.CompanyHeader, rows[0])
	assert.Equal(t, []string{
		"7", "Acme, Inc.", "http://www.acme.pl", "Łódź", "Polska", "3",
		"4.7", "3.3", "1.7", "1.0", "5.0",
	}, rows[1])

	rows = readCSV(t, filepath.Join(dir, "reviews.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, exportCSV.ReviewHeader, rows[0])
	assert.Equal(t, []string{
		"beef", "7", `Quote "test"`, "5", "4", "3", "2", "1", "2024-05-06T07:08:09Z",
	}, rows[1])
}

func TestExporter_HeaderOnlyWhenEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, exportCSV.New(dir).Export(nil, nil))

	assert.Equal(t, [][]string{exportCSV.CompanyHeader}, readCSV(t, filepath.Join(dir, "companies.csv")))
	assert.Equal(t, [][]string{exportCSV.ReviewHeader}, readCSV(t, filepath.Join(dir, "reviews.csv")))
}
