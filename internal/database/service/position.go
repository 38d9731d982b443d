package service

import (
	"context"
	"fmt"

	"github.com/pracor/pracor/internal/database/dbretry"
	"github.com/pracor/pracor/internal/database/models"
	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/pkg/utils"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// MaxReconcileCandidates caps the companies offered for one free-text name.
const MaxReconcileCandidates = 20

// PositionService decides which position a submission is attached to and
// links imported positions to canonical companies.
type PositionService struct {
	db        *bun.DB
	positions *models.PositionModel
	companies *models.CompanyModel
	requests  *models.CompanyRequestModel
	logger    *zap.Logger
}

// NewPosition creates a new position service.
func NewPosition(
	db *bun.DB,
	positions *models.PositionModel,
	companies *models.CompanyModel,
	requests *models.CompanyRequestModel,
	logger *zap.Logger,
) *PositionService {
	return &PositionService{
		db:        db,
		positions: positions,
		companies: companies,
		requests:  requests,
		logger:    logger.Named("position_service"),
	}
}

// FindExisting returns the newest position of a user at a company, or nil when
// the user has none there.
func (s *PositionService) FindExisting(ctx context.Context, userID, companyID int64) (*types.Position, error) {
	return s.FindExistingWithTx(ctx, s.db, userID, companyID)
}

// FindExistingWithTx is FindExisting within a transaction.
func (s *PositionService) FindExistingWithTx(
	ctx context.Context, tx bun.IDB, userID, companyID int64,
) (*types.Position, error) {
	return s.positions.GetLatestForCompanyWithTx(ctx, tx, userID, companyID)
}

// NeedsNewPositionForm reports whether a submission by the user about the
// company must also collect a position.
func (s *PositionService) NeedsNewPositionForm(ctx context.Context, userID, companyID int64) (bool, error) {
	position, err := s.FindExisting(ctx, userID, companyID)
	if err != nil {
		return false, err
	}
	return position == nil, nil
}

// Import stores the entries of an external profile as unlinked positions.
// Nothing is stored when any entry is invalid.
func (s *PositionService) Import(
	ctx context.Context, userID int64, entries []types.ImportedPosition,
) ([]*types.Position, error) {
	validation := types.NewValidationError()
	positions := make([]*types.Position, 0, len(entries))

	for i, entry := range entries {
		validation.Add(fmt.Sprintf("%s.%d", types.FormPosition, i), entry.Validate())
		positions = append(positions, &types.Position{
			UserID:      userID,
			CompanyName: utils.CompressAllWhitespace(entry.CompanyName),
			Title:       utils.CompressAllWhitespace(entry.Title),
			Location:    utils.CompressAllWhitespace(entry.Location),
			StartMonth:  entry.StartMonth,
			StartYear:   entry.StartYear,
			ExternalID:  entry.ExternalID,
		})
	}
	if err := validation.OrNil(); err != nil {
		return nil, err
	}

	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		return s.positions.CreateBatchWithTx(ctx, tx, positions)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Imported positions",
		zap.Int64("userID", userID),
		zap.Int("count", len(positions)))

	return positions, nil
}

// Candidates matches a free-text company name against existing companies,
// ignoring case and diacritics. It only reads.
func (s *PositionService) Candidates(ctx context.Context, name string) (*types.Reconciliation, error) {
	name = utils.CompressAllWhitespace(name)
	folded := utils.FoldName(name)
	if folded == "" {
		validation := types.NewValidationError()
		validation.Add(types.FormCompany, types.FieldErrors{"name": "this field is required"})
		return nil, validation
	}

	candidates, err := s.companies.Search(ctx, folded, MaxReconcileCandidates)
	if err != nil {
		return nil, err
	}

	return &types.Reconciliation{Name: name, Candidates: candidates}, nil
}

// Reconcile works like Candidates and additionally queues a name without
// matches for company creation.
func (s *PositionService) Reconcile(ctx context.Context, userID int64, name string) (*types.Reconciliation, error) {
	result, err := s.Candidates(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(result.Candidates) > 0 {
		return result, nil
	}

	if err := s.requests.Upsert(ctx, result.Name, userID); err != nil {
		return nil, err
	}
	result.Queued = true

	return result, nil
}

// LinkPosition attaches a position owned by the user to the chosen company.
func (s *PositionService) LinkPosition(ctx context.Context, userID, positionID, companyID int64) error {
	return dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		position, err := s.positions.GetByIDWithTx(ctx, tx, positionID)
		if err != nil {
			return err
		}
		if position.UserID != userID {
			return types.ErrPositionNotFound
		}

		if _, err := s.companies.GetByIDWithTx(ctx, tx, companyID); err != nil {
			return err
		}

		return s.positions.LinkWithTx(ctx, tx, positionID, companyID)
	})
}

// ListUnlinked returns the positions of a user still waiting for a company.
func (s *PositionService) ListUnlinked(ctx context.Context, userID int64) ([]*types.Position, error) {
	return s.positions.GetUnlinkedByUser(ctx, userID)
}

// Delete removes a position of the user. Records that referenced it keep
// existing without a position.
func (s *PositionService) Delete(ctx context.Context, userID, positionID int64) error {
	return dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		return s.positions.DeleteWithTx(ctx, tx, userID, positionID)
	})
}
