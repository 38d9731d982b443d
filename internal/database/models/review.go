package models

import (
	"context"
	"fmt"
	"time"

	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ReviewModel handles database operations for reviews.
type ReviewModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewReview creates a new review model.
func NewReview(db *bun.DB, logger *zap.Logger) *ReviewModel {
	return &ReviewModel{
		db:     db,
		logger: logger.Named("db_review"),
	}
}

// CreateWithTx inserts a review and fills its ID.
func (r *ReviewModel) CreateWithTx(ctx context.Context, tx bun.IDB, review *types.Review) error {
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}

	if _, err := tx.NewInsert().Model(review).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// GetByID retrieves a review by its ID.
func (r *ReviewModel) GetByID(ctx context.Context, id int64) (*types.Review, error) {
	review, err := getItemByID[types.Review](ctx, r.db, id)
	return review, wrapItemErr("get review", err)
}

// SumScoresWithTx totals the ratings of every counted review of a company.
// Rejected reviews are left out.
func (r *ReviewModel) SumScoresWithTx(ctx context.Context, tx bun.IDB, companyID int64) (types.ScoreTotals, error) {
	var totals types.ScoreTotals

	err := tx.NewSelect().
		Model((*types.Review)(nil)).
		ColumnExpr("CAST(COALESCE(SUM(r.overallscore), 0) AS BIGINT) AS overallscore").
		ColumnExpr("CAST(COALESCE(SUM(r.advancement), 0) AS BIGINT) AS advancement").
		ColumnExpr("CAST(COALESCE(SUM(r.worklife), 0) AS BIGINT) AS worklife").
		ColumnExpr("CAST(COALESCE(SUM(r.compensation), 0) AS BIGINT) AS compensation").
		ColumnExpr("CAST(COALESCE(SUM(r.environment), 0) AS BIGINT) AS environment").
		ColumnExpr("COUNT(*) AS number_of_reviews").
		Where("r.company_id = ?", companyID).
		Where("r.approval_status != ?", enum.ApprovalStatusRejected).
		Scan(ctx, &totals)
	if err != nil {
		return types.ScoreTotals{}, fmt.Errorf("failed to sum review scores: %w", err)
	}

	return totals, nil
}

// GetApproved returns every approved review ordered by ID.
func (r *ReviewModel) GetApproved(ctx context.Context) ([]*types.Review, error) {
	var reviews []*types.Review

	err := r.db.NewSelect().
		Model(&reviews).
		Where("r.approval_status = ?", enum.ApprovalStatusApproved).
		Order("r.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get approved reviews: %w", err)
	}

	return reviews, nil
}

// Count returns how many reviews a company has.
func (r *ReviewModel) Count(ctx context.Context, companyID int64) (int, error) {
	count, err := countItems[types.Review](ctx, r.db, companyID)
	return count, wrapItemErr("count reviews", err)
}

// Latest returns the newest review of a company or nil.
func (r *ReviewModel) Latest(ctx context.Context, companyID int64) (any, error) {
	review, err := latestItem[types.Review](ctx, r.db, companyID)
	if err != nil || review == nil {
		return nil, wrapItemErr("get latest review", err)
	}
	return review, nil
}

// List returns a page of a company's reviews, newest first.
func (r *ReviewModel) List(ctx context.Context, companyID int64, limit, offset int) (any, error) {
	reviews, err := listItems[types.Review](ctx, r.db, companyID, limit, offset)
	if err != nil {
		return nil, wrapItemErr("list reviews", err)
	}
	return reviews, nil
}

// SetApprovalWithTx stores a moderation decision and returns the owning company ID.
func (r *ReviewModel) SetApprovalWithTx(
	ctx context.Context, tx bun.IDB, id int64, approval types.Approval,
) (int64, error) {
	companyID, err := setItemApproval[types.Review](ctx, tx, id, approval)
	return companyID, wrapItemErr("moderate review", err)
}

// DeleteByCompanyWithTx removes every review of a company.
func (r *ReviewModel) DeleteByCompanyWithTx(ctx context.Context, tx bun.IDB, companyID int64) error {
	return wrapItemErr("delete reviews", deleteItemsByCompany[types.Review](ctx, tx, companyID))
}
