package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pracor/pracor/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// likeEscaper escapes LIKE wildcards in user supplied search terms.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// CompanyModel handles database operations for companies.
type CompanyModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewCompany creates a new company model.
func NewCompany(db *bun.DB, logger *zap.Logger) *CompanyModel {
	return &CompanyModel{
		db:     db,
		logger: logger.Named("db_company"),
	}
}

// CreateWithTx inserts a company and fills its ID.
func (r *CompanyModel) CreateWithTx(ctx context.Context, tx bun.IDB, company *types.Company) error {
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	if _, err := tx.NewInsert().Model(company).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	r.logger.Debug("Created company",
		zap.Int64("companyID", company.ID),
		zap.String("name", company.Name))

	return nil
}

// GetByID retrieves a company by its ID.
func (r *CompanyModel) GetByID(ctx context.Context, id int64) (*types.Company, error) {
	return r.GetByIDWithTx(ctx, r.db, id)
}

// GetByIDWithTx retrieves a company by its ID using the given transaction.
func (r *CompanyModel) GetByIDWithTx(ctx context.Context, tx bun.IDB, id int64) (*types.Company, error) {
	company := new(types.Company)

	err := tx.NewSelect().
		Model(company).
		Where("c.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return company, nil
}

// GetConflictingWithTx returns the companies that already use the given name or website.
// The company with excludeID is ignored so an update does not conflict with itself.
func (r *CompanyModel) GetConflictingWithTx(
	ctx context.Context, tx bun.IDB, name, website string, excludeID int64,
) ([]*types.Company, error) {
	var companies []*types.Company

	err := tx.NewSelect().
		Model(&companies).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("c.name = ?", name).WhereOr("c.website = ?", website)
		}).
		Where("c.id != ?", excludeID).
		Order("c.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get conflicting companies: %w", err)
	}

	return companies, nil
}

// Search returns companies whose folded name contains the folded term.
func (r *CompanyModel) Search(ctx context.Context, foldedTerm string, limit int) ([]*types.Company, error) {
	var companies []*types.Company

	err := r.db.NewSelect().
		Model(&companies).
		Where(`c.search_name LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(foldedTerm)+"%").
		Order("c.name ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search companies: %w", err)
	}

	return companies, nil
}

// List returns a page of companies ordered by name.
func (r *CompanyModel) List(ctx context.Context, limit, offset int) ([]*types.Company, error) {
	var companies []*types.Company

	err := r.db.NewSelect().
		Model(&companies).
		Order("c.name ASC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	return companies, nil
}

// GetAllIDs returns the IDs of every company.
func (r *CompanyModel) GetAllIDs(ctx context.Context) ([]int64, error) {
	var ids []int64

	err := r.db.NewSelect().
		Model((*types.Company)(nil)).
		Column("id").
		Order("c.id ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get company IDs: %w", err)
	}

	return ids, nil
}

// GetAll returns every company ordered by ID.
func (r *CompanyModel) GetAll(ctx context.Context) ([]*types.Company, error) {
	var companies []*types.Company

	err := r.db.NewSelect().
		Model(&companies).
		Order("c.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get companies: %w", err)
	}

	return companies, nil
}

// UpdateDetailsWithTx saves the user editable fields of a company.
func (r *CompanyModel) UpdateDetailsWithTx(ctx context.Context, tx bun.IDB, company *types.Company) error {
	company.UpdatedAt = time.Now().UTC()

	res, err := tx.NewUpdate().
		Model((*types.Company)(nil)).
		Set("name = ?", company.Name).
		Set("search_name = ?", company.SearchName).
		Set("website = ?", company.Website).
		Set("headquarters_city = ?", company.HeadquartersCity).
		Set("updated_at = ?", company.UpdatedAt).
		Where("id = ?", company.ID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}

	return expectRows(res, types.ErrCompanyNotFound)
}

// SaveScoreTotalsWithTx overwrites the accumulated rating sums of a company.
func (r *CompanyModel) SaveScoreTotalsWithTx(
	ctx context.Context, tx bun.IDB, companyID int64, totals types.ScoreTotals,
) error {
	res, err := tx.NewUpdate().
		Model((*types.Company)(nil)).
		Set("overallscore = ?", totals.OverallScore).
		Set("advancement = ?", totals.Advancement).
		Set("worklife = ?", totals.WorkLife).
		Set("compensation = ?", totals.Compensation).
		Set("environment = ?", totals.Environment).
		Set("number_of_reviews = ?", totals.ReviewCount).
		Where("id = ?", companyID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save score totals: %w", err)
	}

	return expectRows(res, types.ErrCompanyNotFound)
}

// DeleteWithTx removes a company row.
func (r *CompanyModel) DeleteWithTx(ctx context.Context, tx bun.IDB, id int64) error {
	res, err := tx.NewDelete().
		Model((*types.Company)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	return expectRows(res, types.ErrCompanyNotFound)
}

// expectRows returns notFound when the statement touched no row.
func expectRows(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
