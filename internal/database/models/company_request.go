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

// CompanyRequestModel handles database operations for queued company names.
type CompanyRequestModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewCompanyRequest creates a new company request model.
func NewCompanyRequest(db *bun.DB, logger *zap.Logger) *CompanyRequestModel {
	return &CompanyRequestModel{
		db:     db,
		logger: logger.Named("db_company_request"),
	}
}

// Upsert queues a company name. A name that is already queued keeps its
// original requester and only has its update time refreshed.
func (r *CompanyRequestModel) Upsert(ctx context.Context, name string, requestedBy int64) error {
	now := time.Now().UTC()
	request := &types.CompanyRequest{
		Name:        name,
		RequestedBy: requestedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := r.db.NewInsert().
		Model(request).
		On("CONFLICT (name) DO UPDATE").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to queue company request: %w", err)
	}

	r.logger.Debug("Queued company request",
		zap.String("name", name),
		zap.Int64("requestedBy", requestedBy))

	return nil
}

// Get returns a queued company name.
func (r *CompanyRequestModel) Get(ctx context.Context, name string) (*types.CompanyRequest, error) {
	request := new(types.CompanyRequest)

	err := r.db.NewSelect().
		Model(request).
		Where("cr.name = ?", name).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get company request: %w", err)
	}

	return request, nil
}

// List returns every queued company name, oldest first.
func (r *CompanyRequestModel) List(ctx context.Context) ([]*types.CompanyRequest, error) {
	var requests []*types.CompanyRequest

	err := r.db.NewSelect().
		Model(&requests).
		Order("cr.created_at ASC", "cr.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list company requests: %w", err)
	}

	return requests, nil
}

// DeleteWithTx removes a queued name. Removing a name that is not queued is not an error.
func (r *CompanyRequestModel) DeleteWithTx(ctx context.Context, tx bun.IDB, name string) error {
	_, err := tx.NewDelete().
		Model((*types.CompanyRequest)(nil)).
		Where("name = ?", name).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete company request: %w", err)
	}
	return nil
}
