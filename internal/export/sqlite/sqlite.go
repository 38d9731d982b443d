package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pracor/pracor/internal/export/types"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// FileName is the database file written to the output directory.
const FileName = "pracor.db"

const batchSize = 1000

const schema = `
CREATE TABLE companies (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	website TEXT NOT NULL,
	city TEXT NOT NULL,
	country TEXT NOT NULL,
	review_count INTEGER NOT NULL,
	overall_score REAL NOT NULL,
	advancement REAL NOT NULL,
	work_life REAL NOT NULL,
	compensation REAL NOT NULL,
	environment REAL NOT NULL
);
CREATE TABLE reviews (
	author_hash TEXT NOT NULL,
	company_id INTEGER NOT NULL REFERENCES companies(id),
	title TEXT NOT NULL,
	overall_score INTEGER NOT NULL,
	advancement INTEGER NOT NULL,
	work_life INTEGER NOT NULL,
	compensation INTEGER NOT NULL,
	environment INTEGER NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX reviews_company_id ON reviews(company_id);
`

// Exporter writes export records to a single SQLite database.
type Exporter struct {
	outDir string
}

// New creates a new SQLite exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export replaces the database file with the given records.
func (e *Exporter) Export(companies []*types.CompanyRecord, reviews []*types.ReviewRecord) error {
	path := filepath.Join(e.outDir, FileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing file %s: %w", FileName, err)
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenCreate|sqlite.OpenReadWrite)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	defer conn.Close()

	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	err = insertBatches(conn, companies, `INSERT INTO companies
		(id, name, website, city, country, review_count, overall_score, advancement, work_life, compensation, environment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		func(c *types.CompanyRecord) []any {
			return []any{
				c.ID, c.Name, c.Website, c.City, c.Country, c.ReviewCount,
				c.OverallScore, c.Advancement, c.WorkLife, c.Compensation, c.Environment,
			}
		})
	if err != nil {
		return fmt.Errorf("failed to export companies: %w", err)
	}

	err = insertBatches(conn, reviews, `INSERT INTO reviews
		(author_hash, company_id, title, overall_score, advancement, work_life, compensation, environment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		func(r *types.ReviewRecord) []any {
			return []any{
				r.AuthorHash, r.CompanyID, r.Title,
				r.OverallScore, r.Advancement, r.WorkLife, r.Compensation, r.Environment,
				r.CreatedAt.UTC().Format(time.RFC3339),
			}
		})
	if err != nil {
		return fmt.Errorf("failed to export reviews: %w", err)
	}

	return nil
}

// insertBatches inserts records in transactions of batchSize rows.
func insertBatches[T any](conn *sqlite.Conn, records []T, query string, args func(T) []any) error {
	for i := 0; i < len(records); i += batchSize {
		end := min(i+batchSize, len(records))

		if err := insertBatch(conn, records[i:end], query, args); err != nil {
			return err
		}
	}

	return nil
}

func insertBatch[T any](conn *sqlite.Conn, batch []T, query string, args func(T) []any) (err error) {
	endFn, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer endFn(&err)

	for _, record := range batch {
		if err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{Args: args(record)}); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	return nil
}
