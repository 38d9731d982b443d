package models

import (
	"context"
	"fmt"
	"time"

	"github.com/pracor/pracor/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// InterviewModel handles database operations for interviews.
type InterviewModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewInterview creates a new interview model.
func NewInterview(db *bun.DB, logger *zap.Logger) *InterviewModel {
	return &InterviewModel{
		db:     db,
		logger: logger.Named("db_interview"),
	}
}

// CreateWithTx inserts an interview and fills its ID.
func (r *InterviewModel) CreateWithTx(ctx context.Context, tx bun.IDB, interview *types.Interview) error {
	if interview.CreatedAt.IsZero() {
		interview.CreatedAt = time.Now().UTC()
	}

	if _, err := tx.NewInsert().Model(interview).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}

	return nil
}

// GetByID retrieves an interview by its ID.
func (r *InterviewModel) GetByID(ctx context.Context, id int64) (*types.Interview, error) {
	record, err := getItemByID[types.Interview](ctx, r.db, id)
	return record, wrapItemErr("get interview", err)
}

// Count returns how many interviews a company has.
func (r *InterviewModel) Count(ctx context.Context, companyID int64) (int, error) {
	count, err := countItems[types.Interview](ctx, r.db, companyID)
	return count, wrapItemErr("count interviews", err)
}

// Latest returns the newest interview of a company or nil.
func (r *InterviewModel) Latest(ctx context.Context, companyID int64) (any, error) {
	record, err := latestItem[types.Interview](ctx, r.db, companyID)
	if err != nil || record == nil {
		return nil, wrapItemErr("get latest interview", err)
	}
	return record, nil
}

// List returns a page of a company's interviews, newest first.
func (r *InterviewModel) List(ctx context.Context, companyID int64, limit, offset int) (any, error) {
	records, err := listItems[types.Interview](ctx, r.db, companyID, limit, offset)
	if err != nil {
		return nil, wrapItemErr("list interviews", err)
	}
	return records, nil
}

// SetApprovalWithTx stores a moderation decision and returns the owning company ID.
func (r *InterviewModel) SetApprovalWithTx(
	ctx context.Context, tx bun.IDB, id int64, approval types.Approval,
) (int64, error) {
	companyID, err := setItemApproval[types.Interview](ctx, tx, id, approval)
	return companyID, wrapItemErr("moderate interview", err)
}

// DeleteByCompanyWithTx removes every interview of a company.
func (r *InterviewModel) DeleteByCompanyWithTx(ctx context.Context, tx bun.IDB, companyID int64) error {
	return wrapItemErr("delete interviews", deleteItemsByCompany[types.Interview](ctx, tx, companyID))
}
