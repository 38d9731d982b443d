package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pracor/pracor/internal/database/dbretry"
	"github.com/pracor/pracor/internal/database/models"
	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/database/types/enum"
	"github.com/pracor/pracor/internal/rating"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// itemKind describes how one kind of submitted record is stored and shown.
type itemKind struct {
	store models.ItemStore
	// affectsScores marks kinds whose moderation changes the company scores.
	affectsScores bool
	// latestStars draws the newest record of the kind as stars, if it has ratings.
	latestStars func(latest any) map[string]rating.Stars
}

// ItemService serves the reviews, salaries and interviews of companies.
type ItemService struct {
	db        *bun.DB
	companies *models.CompanyModel
	kinds     map[enum.ItemKind]itemKind
	scores    *ScoreService
	logger    *zap.Logger
}

// NewItem creates a new item service.
func NewItem(
	db *bun.DB,
	companies *models.CompanyModel,
	reviews *models.ReviewModel,
	salaries *models.SalaryModel,
	interviews *models.InterviewModel,
	scores *ScoreService,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		db:        db,
		companies: companies,
		kinds: map[enum.ItemKind]itemKind{
			enum.ItemKindReview: {
				store:         reviews,
				affectsScores: true,
				latestStars: func(latest any) map[string]rating.Stars {
					review := latest.(*types.Review)
					return rating.SplitAll(review.Ratings.AsDisplay().ByDimension())
				},
			},
			enum.ItemKindSalary:    {store: salaries},
			enum.ItemKindInterview: {store: interviews},
		},
		scores: scores,
		logger: logger.Named("item_service"),
	}
}

func (s *ItemService) kind(kind enum.ItemKind) (itemKind, error) {
	k, ok := s.kinds[kind]
	if !ok {
		return itemKind{}, fmt.Errorf("%w: %s", types.ErrUnknownItemKind, kind)
	}
	return k, nil
}

// Summaries returns the count and newest record of every kind for a company.
func (s *ItemService) Summaries(ctx context.Context, companyID int64) ([]types.ItemSummary, error) {
	summaries := make([]types.ItemSummary, 0, len(enum.ItemKinds))

	for _, kind := range enum.ItemKinds {
		k, err := s.kind(kind)
		if err != nil {
			return nil, err
		}

		count, err := k.store.Count(ctx, companyID)
		if err != nil {
			return nil, err
		}

		summary := types.ItemSummary{Kind: kind, Count: count}
		if count > 0 {
			latest, err := k.store.Latest(ctx, companyID)
			if err != nil {
				return nil, err
			}
			summary.Latest = latest
			if latest != nil && k.latestStars != nil {
				summary.LatestStars = k.latestStars(latest)
			}
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// List returns a page of one kind of record for a company, newest first.
// Only contributors and staff may browse records.
func (s *ItemService) List(
	ctx context.Context, viewer *types.User, kind enum.ItemKind, companyID int64, limit, offset int,
) (any, error) {
	if viewer == nil || (!viewer.Contributed && !viewer.Staff) {
		return nil, types.ErrNotContributor
	}

	k, err := s.kind(kind)
	if err != nil {
		return nil, err
	}

	if _, err := s.companies.GetByID(ctx, companyID); err != nil {
		return nil, err
	}

	return k.store.List(ctx, companyID, limit, offset)
}

// Moderate approves or rejects a record. Moderating a review recomputes the
// scores of its company in the same transaction.
func (s *ItemService) Moderate(
	ctx context.Context, reviewerID int64, kind enum.ItemKind, id int64, status enum.ApprovalStatus,
) error {
	if status != enum.ApprovalStatusApproved && status != enum.ApprovalStatusRejected {
		validation := types.NewValidationError()
		validation.Add(types.FormPrimary, types.FieldErrors{"status": "must be approved or rejected"})
		return validation
	}

	k, err := s.kind(kind)
	if err != nil {
		return err
	}

	approval := types.Approval{
		ApprovalStatus: status,
		ReviewerID:     &reviewerID,
		ReviewedAt:     time.Now().UTC(),
	}

	err = dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		companyID, err := k.store.SetApprovalWithTx(ctx, tx, id, approval)
		if err != nil {
			return err
		}

		if k.affectsScores {
			if _, err := s.scores.RecomputeWithTx(ctx, tx, companyID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Moderated record",
		zap.Stringer("kind", kind),
		zap.Int64("id", id),
		zap.Stringer("status", status),
		zap.Int64("reviewerID", reviewerID))

	return nil
}

// DeleteByCompanyWithTx removes every record of every kind of a company.
func (s *ItemService) DeleteByCompanyWithTx(ctx context.Context, tx bun.IDB, companyID int64) error {
	for _, kind := range enum.ItemKinds {
		k, err := s.kind(kind)
		if err != nil {
			return err
		}
		if err := k.store.DeleteByCompanyWithTx(ctx, tx, companyID); err != nil {
			return err
		}
	}
	return nil
}
