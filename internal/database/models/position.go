package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pracor/pracor/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// PositionModel handles database operations for positions.
type PositionModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewPosition creates a new position model.
func NewPosition(db *bun.DB, logger *zap.Logger) *PositionModel {
	return &PositionModel{
		db:     db,
		logger: logger.Named("db_position"),
	}
}

// CreateWithTx inserts a position and fills its ID.
// A zero CreatedAt is set to the current time.
func (r *PositionModel) CreateWithTx(ctx context.Context, tx bun.IDB, position *types.Position) error {
	if position.CreatedAt.IsZero() {
		position.CreatedAt = time.Now().UTC()
	}

	if _, err := tx.NewInsert().Model(position).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create position: %w", err)
	}

	return nil
}

// CreateBatchWithTx inserts several positions in one statement.
func (r *PositionModel) CreateBatchWithTx(ctx context.Context, tx bun.IDB, positions []*types.Position) error {
	if len(positions) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, p := range positions {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
	}

	if _, err := tx.NewInsert().Model(&positions).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create positions: %w", err)
	}

	r.logger.Debug("Created positions", zap.Int("count", len(positions)))

	return nil
}

// GetByIDWithTx retrieves a position by its ID.
func (r *PositionModel) GetByIDWithTx(ctx context.Context, tx bun.IDB, id int64) (*types.Position, error) {
	position := new(types.Position)

	err := tx.NewSelect().
		Model(position).
		Where("p.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrPositionNotFound
		}
		return nil, fmt.Errorf("failed to get position: %w", err)
	}

	return position, nil
}

// GetLatestForCompanyWithTx returns the most recently created position of a user
// at a company. Ties on the creation time go to the highest ID. It returns nil
// without an error when the user has no position there.
func (r *PositionModel) GetLatestForCompanyWithTx(
	ctx context.Context, tx bun.IDB, userID, companyID int64,
) (*types.Position, error) {
	var positions []*types.Position

	err := tx.NewSelect().
		Model(&positions).
		Where("p.user_id = ?", userID).
		Where("p.company_id = ?", companyID).
		OrderExpr("p.created_at DESC, p.id DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest position: %w", err)
	}

	if len(positions) == 0 {
		return nil, nil
	}

	return positions[0], nil
}

// GetUnlinkedByUser returns the positions of a user that have no company yet.
func (r *PositionModel) GetUnlinkedByUser(ctx context.Context, userID int64) ([]*types.Position, error) {
	var positions []*types.Position

	err := r.db.NewSelect().
		Model(&positions).
		Where("p.user_id = ?", userID).
		Where("p.company_id IS NULL").
		Order("p.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get unlinked positions: %w", err)
	}

	return positions, nil
}

// CountUnlinkedByName counts positions still waiting for a company with exactly this name.
func (r *PositionModel) CountUnlinkedByName(ctx context.Context, name string) (int, error) {
	count, err := r.db.NewSelect().
		Model((*types.Position)(nil)).
		Where("p.company_id IS NULL").
		Where("p.company_name = ?", name).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count unlinked positions: %w", err)
	}

	return count, nil
}

// LinkWithTx attaches a single position to a company.
func (r *PositionModel) LinkWithTx(ctx context.Context, tx bun.IDB, positionID, companyID int64) error {
	res, err := tx.NewUpdate().
		Model((*types.Position)(nil)).
		Set("company_id = ?", companyID).
		Where("id = ?", positionID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to link position: %w", err)
	}

	return expectRows(res, types.ErrPositionNotFound)
}

// LinkByCompanyNameWithTx attaches every unlinked position whose free-text
// company name equals name exactly. Returns the number of linked positions.
func (r *PositionModel) LinkByCompanyNameWithTx(
	ctx context.Context, tx bun.IDB, name string, companyID int64,
) (int64, error) {
	res, err := tx.NewUpdate().
		Model((*types.Position)(nil)).
		Set("company_id = ?", companyID).
		Where("company_id IS NULL").
		Where("company_name = ?", name).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to link positions by name: %w", err)
	}

	linked, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return linked, nil
}

// UnlinkCompanyWithTx detaches every position from a company.
func (r *PositionModel) UnlinkCompanyWithTx(ctx context.Context, tx bun.IDB, companyID int64) error {
	_, err := tx.NewUpdate().
		Model((*types.Position)(nil)).
		Set("company_id = NULL").
		Where("company_id = ?", companyID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to unlink positions: %w", err)
	}

	return nil
}

// DeleteWithTx removes a position owned by the given user.
func (r *PositionModel) DeleteWithTx(ctx context.Context, tx bun.IDB, userID, positionID int64) error {
	res, err := tx.NewDelete().
		Model((*types.Position)(nil)).
		Where("id = ?", positionID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}

	return expectRows(res, types.ErrPositionNotFound)
}
