package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pracor/pracor/internal/export/types"
)

var (
	// CompanyHeader is the first row of companies.csv.
	CompanyHeader = []string{
		"id", "name", "website", "city", "country", "review_count",
		"overall_score", "advancement", "work_life", "compensation", "environment",
	}
	// ReviewHeader is the first row of reviews.csv.
	ReviewHeader = []string{
		"author_hash", "company_id", "title",
		"overall_score", "advancement", "work_life", "compensation", "environment", "created_at",
	}
)

// Exporter writes export records to csv files.
type Exporter struct {
	outDir string
}

// New creates a new csv exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes companies.csv and reviews.csv, replacing earlier files.
func (e *Exporter) Export(companies []*types.CompanyRecord, reviews []*types.ReviewRecord) error {
	rows := make([][]string, 0, len(companies))
	for _, c := range companies {
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10), c.Name, c.Website, c.City, c.Country,
			strconv.FormatInt(c.ReviewCount, 10),
			score(c.OverallScore), score(c.Advancement), score(c.WorkLife),
			score(c.Compensation), score(c.Environment),
		})
	}

	if err := e.writeFile("companies.csv", CompanyHeader, rows); err != nil {
		return fmt.Errorf("failed to export companies: %w", err)
	}

	rows = make([][]string, 0, len(reviews))
	for _, r := range reviews {
		rows = append(rows, []string{
			r.AuthorHash, strconv.FormatInt(r.CompanyID, 10), r.Title,
			strconv.Itoa(r.OverallScore), strconv.Itoa(r.Advancement), strconv.Itoa(r.WorkLife),
			strconv.Itoa(r.Compensation), strconv.Itoa(r.Environment),
			r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	if err := e.writeFile("reviews.csv", ReviewHeader, rows); err != nil {
		return fmt.Errorf("failed to export reviews: %w", err)
	}

	return nil
}

func (e *Exporter) writeFile(filename string, header []string, rows [][]string) error {
	file, err := os.Create(filepath.Join(e.outDir, filename))
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}

	return file.Sync()
}

func score(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
