// Package jsonl writes export records as newline delimited JSON.
package jsonl

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/pracor/pracor/internal/export/types"
)

// Exporter writes companies.jsonl and reviews.jsonl.
type Exporter struct {
	outDir string
}

// New creates a new JSON lines exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes one JSON object per line, replacing earlier files.
func (e *Exporter) Export(companies []*types.CompanyRecord, reviews []*types.ReviewRecord) error {
	if err := writeFile(filepath.Join(e.outDir, "companies.jsonl"), companies); err != nil {
		return fmt.Errorf("failed to export companies: %w", err)
	}

	if err := writeFile(filepath.Join(e.outDir, "reviews.jsonl"), reviews); err != nil {
		return fmt.Errorf("failed to export reviews: %w", err)
	}

	return nil
}

func writeFile[T any](path string, records []T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	enc := sonic.ConfigStd.NewEncoder(w)

	for _, record := range records {
		// Encode appends the newline.
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush file: %w", err)
	}

	return file.Sync()
}
