package service

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/pracor/pracor/internal/database/dbretry"
	"github.com/pracor/pracor/internal/database/models"
	"github.com/pracor/pracor/internal/database/types"
	"github.com/sourcegraph/conc/pool"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultRecomputeWorkers bounds RecomputeAll when no worker count is given.
const DefaultRecomputeWorkers = 4

// ScoreService keeps the accumulated rating sums of companies in line with their reviews.
type ScoreService struct {
	db        *bun.DB
	companies *models.CompanyModel
	reviews   *models.ReviewModel
	flight    singleflight.Group
	tracer    trace.Tracer
	logger    *zap.Logger
}

// NewScore creates a new score service.
func NewScore(
	db *bun.DB, companies *models.CompanyModel, reviews *models.ReviewModel, logger *zap.Logger,
) *ScoreService {
	return &ScoreService{
		db:        db,
		companies: companies,
		reviews:   reviews,
		tracer:    otel.Tracer("pracor/scores"),
		logger:    logger.Named("score_service"),
	}
}

// RecomputeWithTx sums the counted reviews of a company and stores the totals.
// It always starts from the full review set, so running it twice is harmless.
func (s *ScoreService) RecomputeWithTx(ctx context.Context, tx bun.IDB, companyID int64) (types.ScoreTotals, error) {
	ctx, span := s.tracer.Start(ctx, "scores.recompute",
		trace.WithAttributes(attribute.Int64("company.id", companyID)))
	defer span.End()

	totals, err := s.reviews.SumScoresWithTx(ctx, tx, companyID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return types.ScoreTotals{}, err
	}

	if err := s.companies.SaveScoreTotalsWithTx(ctx, tx, companyID, totals); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return types.ScoreTotals{}, err
	}

	span.SetAttributes(attribute.Int64("reviews.count", totals.ReviewCount))

	s.logger.Debug("Recomputed company scores",
		zap.Int64("companyID", companyID),
		zap.Int64("reviewCount", totals.ReviewCount))

	return totals, nil
}

// Recompute runs RecomputeWithTx in its own transaction. Concurrent calls for
// the same company share one run, which is detached from the cancellation of
// the caller that started it.
func (s *ScoreService) Recompute(ctx context.Context, companyID int64) (types.ScoreTotals, error) {
	result, err, _ := s.flight.Do(strconv.FormatInt(companyID, 10), func() (any, error) {
		var totals types.ScoreTotals
		err := dbretry.Transaction(context.WithoutCancel(ctx), s.db, func(ctx context.Context, tx bun.Tx) error {
			var err error
			totals, err = s.RecomputeWithTx(ctx, tx, companyID)
			return err
		})
		return totals, err
	})
	if err != nil {
		return types.ScoreTotals{}, fmt.Errorf("failed to recompute company %d: %w", companyID, err)
	}

	return result.(types.ScoreTotals), nil
}

// DisplayScores returns the rounded averages stored for a company.
// The result is nil when the company has no counted review.
func (s *ScoreService) DisplayScores(ctx context.Context, companyID int64) (*types.DisplayScores, error) {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	return company.Display(), nil
}

// RecomputeAll recomputes every company using at most workers goroutines and
// returns how many companies were processed. The first failure stops the run.
func (s *ScoreService) RecomputeAll(ctx context.Context, workers int) (int, error) {
	if workers <= 0 {
		workers = DefaultRecomputeWorkers
	}

	ids, err := s.companies.GetAllIDs(ctx)
	if err != nil {
		return 0, err
	}

	var processed atomic.Int64
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError().WithMaxGoroutines(workers)

	for _, id := range ids {
		p.Go(func(ctx context.Context) error {
			if _, err := s.Recompute(ctx, id); err != nil {
				return err
			}
			processed.Add(1)
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return int(processed.Load()), err
	}

	s.logger.Info("Recomputed scores of every company", zap.Int("companies", len(ids)))

	return int(processed.Load()), nil
}
