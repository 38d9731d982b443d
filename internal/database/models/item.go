package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/database/types/enum"
	"github.com/uptrace/bun"
)

// item constrains the generic helpers to the records users submit about a company.
type item interface {
	types.Review | types.Salary | types.Interview
}

func getItemByID[T item](ctx context.Context, db bun.IDB, id int64) (*T, error) {
	record := new(T)

	err := db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrRecordNotFound
		}
		return nil, err
	}

	return record, nil
}

// countItems counts the visible records of a company. Rejected records are
// hidden everywhere outside moderation.
func countItems[T item](ctx context.Context, db bun.IDB, companyID int64) (int, error) {
	return db.NewSelect().
		Model((*T)(nil)).
		Where("?TableAlias.company_id = ?", companyID).
		Where("?TableAlias.approval_status != ?", enum.ApprovalStatusRejected).
		Count(ctx)
}

// listItems returns a page of a company's visible records, newest first.
func listItems[T item](ctx context.Context, db bun.IDB, companyID int64, limit, offset int) ([]*T, error) {
	var records []*T

	err := db.NewSelect().
		Model(&records).
		Where("?TableAlias.company_id = ?", companyID).
		Where("?TableAlias.approval_status != ?", enum.ApprovalStatusRejected).
		OrderExpr("?TableAlias.created_at DESC, ?TableAlias.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return records, nil
}

// latestItem returns the newest visible record of a company or nil when it has none.
func latestItem[T item](ctx context.Context, db bun.IDB, companyID int64) (*T, error) {
	records, err := listItems[T](ctx, db, companyID, 1, 0)
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return records[0], nil
}

// setItemApproval stores a moderation decision and returns the owning company.
func setItemApproval[T item](ctx context.Context, tx bun.IDB, id int64, approval types.Approval) (int64, error) {
	var companyID int64

	err := tx.NewSelect().
		Model((*T)(nil)).
		Column("company_id").
		Where("?TableAlias.id = ?", id).
		Scan(ctx, &companyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, types.ErrRecordNotFound
		}
		return 0, err
	}

	_, err = tx.NewUpdate().
		Model((*T)(nil)).
		Set("approval_status = ?", approval.ApprovalStatus).
		Set("reviewer_id = ?", approval.ReviewerID).
		Set("reviewed_at = ?", approval.ReviewedAt).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return 0, err
	}

	return companyID, nil
}

func deleteItemsByCompany[T item](ctx context.Context, tx bun.IDB, companyID int64) error {
	_, err := tx.NewDelete().
		Model((*T)(nil)).
		Where("company_id = ?", companyID).
		Exec(ctx)
	return err
}

// ItemStore is the kind-independent view of a record model.
type ItemStore interface {
	// Count returns how many records a company has, ignoring rejected ones.
	Count(ctx context.Context, companyID int64) (int, error)
	// Latest returns the newest record of a company that was not rejected, or nil.
	Latest(ctx context.Context, companyID int64) (any, error)
	// List returns a page of a company's records that were not rejected, newest first.
	List(ctx context.Context, companyID int64, limit, offset int) (any, error)
	// SetApprovalWithTx stores a moderation decision and returns the owning company ID.
	SetApprovalWithTx(ctx context.Context, tx bun.IDB, id int64, approval types.Approval) (int64, error)
	// DeleteByCompanyWithTx removes every record of a company.
	DeleteByCompanyWithTx(ctx context.Context, tx bun.IDB, companyID int64) error
}

func wrapItemErr(action string, err error) error {
	if err == nil || errors.Is(err, types.ErrRecordNotFound) {
		return err
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
