package submission

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/pracor/pracor/internal/database"
	"github.com/pracor/pracor/internal/database/dbretry"
	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/database/types/enum"
	"github.com/pracor/pracor/internal/notify"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// Guard claims submission digests so a resent form is stored once.
type Guard interface {
	Claim(ctx context.Context, digest string) (bool, error)
	Release(ctx context.Context, digest string) error
}

// Notifier delivers notifications about accepted submissions.
type Notifier interface {
	Publish(ctx context.Context, msg *notify.Message) error
}

// Request is one submitted form together with the optional position sub-form.
type Request struct {
	Kind      enum.ItemKind
	CompanyID int64
	UserID    int64
	// Token is the anti-forgery token of the form. An empty token disables
	// duplicate detection.
	Token     string
	Review    *types.ReviewInput
	Salary    *types.SalaryInput
	Interview *types.InterviewInput
	Position  *types.PositionInput
}

// Result describes how a submission ended.
type Result struct {
	State      State                  `json:"state"`
	History    []State                `json:"history"`
	ItemID     int64                  `json:"itemId,omitempty"`
	PositionID *int64                 `json:"positionId,omitempty"`
	Errors     *types.ValidationError `json:"errors,omitempty"`
}

// Submitter runs submissions through the state graph.
type Submitter struct {
	db       database.Client
	guard    Guard
	notifier Notifier
	logger   *zap.Logger
}

// New creates a new submitter.
func New(db database.Client, guard Guard, notifier Notifier, logger *zap.Logger) *Submitter {
	return &Submitter{
		db:       db,
		guard:    guard,
		notifier: notifier,
		logger:   logger.Named("submission"),
	}
}

// Digest identifies a submission by its form token, kind and company.
func Digest(token string, kind enum.ItemKind, companyID int64) string {
	sum := blake2b.Sum256([]byte(token + "|" + kind.String() + "|" + strconv.FormatInt(companyID, 10)))
	return hex.EncodeToString(sum[:])
}

// NeedsPositionForm reports whether a submission of this kind by the user
// about the company must include the position sub-form.
func (s *Submitter) NeedsPositionForm(ctx context.Context, kind enum.ItemKind, userID, companyID int64) (bool, error) {
	handler, ok := kindHandlers[kind]
	if !ok {
		return false, fmt.Errorf("%w: %s", types.ErrUnknownItemKind, kind)
	}
	if !handler.resolvesPosition {
		return false, nil
	}
	return s.db.Service().Position().NeedsNewPositionForm(ctx, userID, companyID)
}

// Submit validates and stores a submission. Validation failures end in the
// Rejected state with the errors of every form and store nothing. A form sent
// again with the same token ends in the Duplicate state. Returned errors mean
// the company does not exist or storing failed.
func (s *Submitter) Submit(ctx context.Context, req *Request) (*Result, error) {
	handler, ok := kindHandlers[req.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownItemKind, req.Kind)
	}

	r := newRun()

	// Received
	var digest string
	if req.Token != "" {
		digest = Digest(req.Token, req.Kind, req.CompanyID)
		claimed, err := s.guard.Claim(ctx, digest)
		if err != nil {
			return nil, err
		}
		if !claimed {
			r.moveTo(StateDuplicate)
			s.logger.Info("Ignored duplicate submission",
				zap.Stringer("kind", req.Kind),
				zap.Int64("userID", req.UserID),
				zap.Int64("companyID", req.CompanyID))
			return &Result{State: r.current(), History: r.history}, nil
		}
	}

	result, err := s.process(ctx, r, handler, req)
	if digest != "" && (err != nil || result.State != StateSuccess) {
		if releaseErr := s.guard.Release(context.WithoutCancel(ctx), digest); releaseErr != nil {
			s.logger.Error("Failed to release submission digest", zap.Error(releaseErr))
		}
	}

	return result, err
}

func (s *Submitter) process(ctx context.Context, r *run, handler kindHandler, req *Request) (*Result, error) {
	r.moveTo(StateResolving)

	company, err := s.db.Model().Company().GetByID(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}

	var existing *types.Position
	if handler.resolvesPosition {
		existing, err = s.db.Service().Position().FindExisting(ctx, req.UserID, req.CompanyID)
		if err != nil {
			return nil, err
		}
	}

	needsPosition := handler.resolvesPosition && existing == nil
	validation := types.NewValidationError()

	if needsPosition {
		r.moveTo(StateValidatingDual)
		validation.Add(types.FormPrimary, handler.validate(req))
		if req.Position == nil {
			validation.Add(types.FormPosition, missingForm())
		} else {
			validation.Add(types.FormPosition, req.Position.Validate())
		}
	} else {
		r.moveTo(StateValidatingSingle)
		validation.Add(types.FormPrimary, handler.validate(req))
	}

	if validation.HasErrors() {
		r.moveTo(StateRejected)
		return &Result{State: r.current(), History: r.history, Errors: validation}, nil
	}

	r.moveTo(StateCommitting)

	var (
		itemID     int64
		positionID *int64
	)
	err = dbretry.Transaction(ctx, s.db.DB(), func(ctx context.Context, tx bun.Tx) error {
		positionID = nil
		switch {
		case needsPosition:
			position := newPosition(req.Position, req.UserID, company)
			if err := s.db.Model().Position().CreateWithTx(ctx, tx, position); err != nil {
				return err
			}
			positionID = &position.ID
		case existing != nil:
			positionID = &existing.ID
		}

		var err error
		itemID, err = handler.store(ctx, tx, s.db.Model(), req, positionID)
		if err != nil {
			return err
		}

		if err := s.db.Model().User().MarkContributedWithTx(ctx, tx, req.UserID); err != nil {
			return err
		}

		if handler.affectsScores {
			if _, err := s.db.Service().Score().RecomputeWithTx(ctx, tx, req.CompanyID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", handler.noun, err)
	}

	r.moveTo(StateSuccess)

	s.logger.Info("Stored submission",
		zap.String("kind", handler.noun),
		zap.Int64("itemID", itemID),
		zap.Int64("userID", req.UserID),
		zap.Int64("companyID", req.CompanyID),
		zap.Bool("newPosition", needsPosition))

	s.notify(ctx, handler, req, company)

	return &Result{State: r.current(), History: r.history, ItemID: itemID, PositionID: positionID}, nil
}

// notify tells the author the submission was received. Failures are only logged.
func (s *Submitter) notify(ctx context.Context, handler kindHandler, req *Request, company *types.Company) {
	if s.notifier == nil {
		return
	}

	user, err := s.db.Model().User().GetByID(ctx, req.UserID)
	if err != nil {
		s.logger.Warn("Skipping notification for unknown user", zap.Int64("userID", req.UserID), zap.Error(err))
		return
	}

	msg := &notify.Message{
		Recipient: user.Email,
		Subject:   fmt.Sprintf("Thank you for your %s of %s", handler.noun, company.Name),
		Body:      fmt.Sprintf("Your %s of %s was saved and is waiting for moderation.", handler.noun, company.Name),
	}
	if err := s.notifier.Publish(ctx, msg); err != nil {
		s.logger.Warn("Failed to publish notification", zap.Error(err))
	}
}
