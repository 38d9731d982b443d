package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/pracor/pracor/internal/database"
	dbTypes "github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/export/csv"
	"github.com/pracor/pracor/internal/export/jsonl"
	"github.com/pracor/pracor/internal/export/sqlite"
	"github.com/pracor/pracor/internal/export/types"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrUnsupportedHash   = errors.New("unsupported hash type")
)

// Format represents a supported export format.
type Format string

const (
	FormatSQLite Format = "sqlite"
	FormatCSV    Format = "csv"
	FormatJSONL  Format = "jsonl"
)

// AllFormats lists every format in the order they are written.
var AllFormats = []Format{FormatSQLite, FormatCSV, FormatJSONL}

// EngineVersion changes whenever the layout of the exported files changes.
const EngineVersion = "1.0.0"

// ConfigFileName is written next to the exported data.
const ConfigFileName = "export_config.json"

// Config holds the configuration for exports.
type Config struct {
	ExportVersion string   `json:"exportVersion"`
	Salt          string   `json:"-"`
	Description   string   `json:"description"`
	HashType      HashType `json:"hashType"`
	Iterations    uint32   `json:"iterations"`
	Memory        uint32   `json:"memory,omitempty"`
	Concurrency   int      `json:"-"`
}

// writer is implemented by every format package.
type writer interface {
	Export(companies []*types.CompanyRecord, reviews []*types.ReviewRecord) error
}

// Exporter writes company scores and anonymized approved reviews to disk.
type Exporter struct {
	db      database.Client
	outDir  string
	config  *Config
	formats []Format
	logger  *zap.Logger
}

// New creates a new exporter. Without formats every supported format is written.
func New(db database.Client, outDir string, config *Config, logger *zap.Logger, formats ...Format) *Exporter {
	if len(formats) == 0 {
		formats = AllFormats
	}

	return &Exporter{
		db:      db,
		outDir:  outDir,
		config:  config,
		formats: formats,
		logger:  logger.Named("export"),
	}
}

// ExportAll exports all data in every configured format.
func (e *Exporter) ExportAll(ctx context.Context) error {
	if !e.config.HashType.Valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedHash, e.config.HashType)
	}

	writers := make(map[Format]writer, len(e.formats))
	for _, format := range e.formats {
		w, err := e.writerFor(format)
		if err != nil {
			return err
		}
		writers[format] = w
	}

	if err := os.MkdirAll(e.outDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	e.logger.Info("Starting export",
		zap.String("hashType", string(e.config.HashType)),
		zap.Uint32("iterations", e.config.Iterations),
		zap.Int("concurrency", e.config.Concurrency),
		zap.String("outDir", e.outDir),
		zap.String("exportVersion", e.config.ExportVersion))

	companies, err := e.db.Model().Company().GetAll(ctx)
	if err != nil {
		return err
	}

	reviews, err := e.db.Model().Review().GetApproved(ctx)
	if err != nil {
		return err
	}

	e.logger.Info("Fetched export data",
		zap.Int("companies", len(companies)),
		zap.Int("reviews", len(reviews)))

	companyRecords := toCompanyRecords(companies)
	reviewRecords := e.toReviewRecords(reviews)

	if err := e.writeConfig(); err != nil {
		return err
	}

	for _, format := range e.formats {
		if err := writers[format].Export(companyRecords, reviewRecords); err != nil {
			return fmt.Errorf("failed to export %s format: %w", format, err)
		}
		e.logger.Info("Wrote export format", zap.String("format", string(format)))
	}

	return nil
}

func (e *Exporter) writerFor(format Format) (writer, error) {
	switch format {
	case FormatSQLite:
		return sqlite.New(e.outDir), nil
	case FormatCSV:
		return csv.New(e.outDir), nil
	case FormatJSONL:
		return jsonl.New(e.outDir), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func (e *Exporter) writeConfig() error {
	data, err := sonic.ConfigStd.MarshalIndent(struct {
		*Config

		EngineVersion string `json:"engineVersion"`
	}{
		Config:        e.config,
		EngineVersion: EngineVersion,
	}, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal export config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(e.outDir, ConfigFileName), data, 0o600); err != nil {
		return fmt.Errorf("failed to write export config: %w", err)
	}

	return nil
}

func toCompanyRecords(companies []*dbTypes.Company) []*types.CompanyRecord {
	records := make([]*types.CompanyRecord, len(companies))
	for i, c := range companies {
		record := &types.CompanyRecord{
			ID:          c.ID,
			Name:        c.Name,
			Website:     c.Website,
			City:        c.HeadquartersCity,
			Country:     c.Country,
			ReviewCount: c.ReviewCount,
		}

		if scores := c.Display(); scores != nil {
			record.OverallScore = scores.OverallScore
			record.Advancement = scores.Advancement
			record.WorkLife = scores.WorkLife
			record.Compensation = scores.Compensation
			record.Environment = scores.Environment
		}

		records[i] = record
	}

	return records
}

// toReviewRecords replaces review authors by their salted hashes.
func (e *Exporter) toReviewRecords(reviews []*dbTypes.Review) []*types.ReviewRecord {
	authors := make([]int64, len(reviews))
	for i, r := range reviews {
		authors[i] = r.UserID
	}

	hashes := hashIDs(authors, e.config.Salt, e.config.HashType,
		e.config.Concurrency, e.config.Iterations, e.config.Memory)

	records := make([]*types.ReviewRecord, len(reviews))
	for i, r := range reviews {
		records[i] = &types.ReviewRecord{
			AuthorHash:   hashes[i],
			CompanyID:    r.CompanyID,
			Title:        r.Title,
			OverallScore: r.OverallScore,
			Advancement:  r.Advancement,
			WorkLife:     r.WorkLife,
			Compensation: r.Compensation,
			Environment:  r.Environment,
			CreatedAt:    r.CreatedAt,
		}
	}

	return records
}
