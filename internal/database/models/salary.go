package models

import (
	"context"
	"fmt"
	"time"

	"github.com/pracor/pracor/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// SalaryModel handles database operations for salaries.
type SalaryModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewSalary creates a new salary model.
func NewSalary(db *bun.DB, logger *zap.Logger) *SalaryModel {
	return &SalaryModel{
		db:     db,
		logger: logger.Named("db_salary"),
	}
}

// CreateWithTx inserts a salary and fills its ID.
func (r *SalaryModel) CreateWithTx(ctx context.Context, tx bun.IDB, salary *types.Salary) error {
	if salary.CreatedAt.IsZero() {
		salary.CreatedAt = time.Now().UTC()
	}
	salary.Annualize()

	if _, err := tx.NewInsert().Model(salary).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create salary: %w", err)
	}

	return nil
}

// GetByID retrieves a salary by its ID.
func (r *SalaryModel) GetByID(ctx context.Context, id int64) (*types.Salary, error) {
	record, err := getItemByID[types.Salary](ctx, r.db, id)
	return record, wrapItemErr("get salary", err)
}

// Count returns how many salaries a company has.
func (r *SalaryModel) Count(ctx context.Context, companyID int64) (int, error) {
	count, err := countItems[types.Salary](ctx, r.db, companyID)
	return count, wrapItemErr("count salaries", err)
}

// Latest returns the newest salary of a company or nil.
func (r *SalaryModel) Latest(ctx context.Context, companyID int64) (any, error) {
	record, err := latestItem[types.Salary](ctx, r.db, companyID)
	if err != nil || record == nil {
		return nil, wrapItemErr("get latest salary", err)
	}
	return record, nil
}

// List returns a page of a company's salaries, newest first.
func (r *SalaryModel) List(ctx context.Context, companyID int64, limit, offset int) (any, error) {
	records, err := listItems[types.Salary](ctx, r.db, companyID, limit, offset)
	if err != nil {
		return nil, wrapItemErr("list salaries", err)
	}
	return records, nil
}

// SetApprovalWithTx stores a moderation decision and returns the owning company ID.
func (r *SalaryModel) SetApprovalWithTx(
	ctx context.Context, tx bun.IDB, id int64, approval types.Approval,
) (int64, error) {
	companyID, err := setItemApproval[types.Salary](ctx, tx, id, approval)
	return companyID, wrapItemErr("moderate salary", err)
}

// DeleteByCompanyWithTx removes every salary of a company.
func (r *SalaryModel) DeleteByCompanyWithTx(ctx context.Context, tx bun.IDB, companyID int64) error {
	return wrapItemErr("delete salaries", deleteItemsByCompany[types.Salary](ctx, tx, companyID))
}
