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

// UserModel handles database operations for user records.
type UserModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewUser creates a new user model.
func NewUser(db *bun.DB, logger *zap.Logger) *UserModel {
	return &UserModel{
		db:     db,
		logger: logger.Named("db_user"),
	}
}

// Register stores a user the first time it is seen. Existing records are left
// untouched. Staff accounts start as contributors.
func (r *UserModel) Register(ctx context.Context, user *types.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.Contributed = user.Contributed || user.Staff

	_, err := r.db.NewInsert().
		Model(user).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by its ID.
func (r *UserModel) GetByID(ctx context.Context, id int64) (*types.User, error) {
	user := new(types.User)

	err := r.db.NewSelect().
		Model(user).
		Where("u.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// MarkContributedWithTx flags a user as a contributor, creating the record when
// the user was never registered. The flag is never cleared.
func (r *UserModel) MarkContributedWithTx(ctx context.Context, tx bun.IDB, userID int64) error {
	user := &types.User{
		ID:          userID,
		Contributed: true,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := tx.NewInsert().
		Model(user).
		On("CONFLICT (id) DO UPDATE").
		Set("contributed = EXCLUDED.contributed").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark user as contributor: %w", err)
	}

	return nil
}
