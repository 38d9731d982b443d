package submission

import (
	"context"

	"github.com/pracor/pracor/internal/database"
	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/database/types/enum"
	"github.com/pracor/pracor/pkg/utils"
	"github.com/uptrace/bun"
)

// kindHandler describes how one kind of record is validated and stored.
type kindHandler struct {
	// resolvesPosition attaches the record to the user's position at the company.
	resolvesPosition bool
	// affectsScores recomputes the company scores after the record is stored.
	affectsScores bool
	// noun names the record in notifications.
	noun     string
	validate func(req *Request) types.FieldErrors
	store    func(ctx context.Context, tx bun.IDB, repo *database.Repository, req *Request, positionID *int64) (int64, error)
}

var kindHandlers = map[enum.ItemKind]kindHandler{
	enum.ItemKindReview: {
		resolvesPosition: true,
		affectsScores:    true,
		noun:             "review",
		validate: func(req *Request) types.FieldErrors {
			if req.Review == nil {
				return missingForm()
			}
			return req.Review.Validate()
		},
		store: func(ctx context.Context, tx bun.IDB, repo *database.Repository, req *Request, positionID *int64) (int64, error) {
			in := req.Review
			review := &types.Review{
				CompanyID:  req.CompanyID,
				PositionID: positionID,
				UserID:     req.UserID,
				Title:      utils.CompressAllWhitespace(in.Title),
				Pros:       utils.CompressWhitespacePreserveNewlines(in.Pros),
				Cons:       utils.CompressWhitespacePreserveNewlines(in.Cons),
				Comment:    utils.CompressWhitespacePreserveNewlines(in.Comment),
				Ratings:    in.Ratings,
				Approval:   types.Approval{ApprovalStatus: enum.ApprovalStatusPending},
			}
			if err := repo.Review().CreateWithTx(ctx, tx, review); err != nil {
				return 0, err
			}
			return review.ID, nil
		},
	},
	enum.ItemKindSalary: {
		resolvesPosition: true,
		noun:             "salary",
		validate: func(req *Request) types.FieldErrors {
			if req.Salary == nil {
				return missingForm()
			}
			return req.Salary.Validate()
		},
		store: func(ctx context.Context, tx bun.IDB, repo *database.Repository, req *Request, positionID *int64) (int64, error) {
			in := req.Salary
			salary := &types.Salary{
				CompanyID:     req.CompanyID,
				PositionID:    positionID,
				UserID:        req.UserID,
				Currency:      in.Currency,
				Amount:        in.Amount,
				Period:        in.Period,
				GrossNet:      in.GrossNet,
				BonusAmount:   in.BonusAmount,
				BonusPeriod:   in.BonusPeriod,
				BonusGrossNet: in.BonusGrossNet,
				Approval:      types.Approval{ApprovalStatus: enum.ApprovalStatusPending},
			}
			if err := repo.Salary().CreateWithTx(ctx, tx, salary); err != nil {
				return 0, err
			}
			return salary.ID, nil
		},
	},
	enum.ItemKindInterview: {
		noun: "interview",
		validate: func(req *Request) types.FieldErrors {
			if req.Interview == nil {
				return missingForm()
			}
			return req.Interview.Validate()
		},
		store: func(ctx context.Context, tx bun.IDB, repo *database.Repository, req *Request, _ *int64) (int64, error) {
			in := req.Interview
			interview := &types.Interview{
				CompanyID:     req.CompanyID,
				UserID:        req.UserID,
				PositionTitle: utils.CompressAllWhitespace(in.PositionTitle),
				Department:    utils.CompressAllWhitespace(in.Department),
				HowObtained:   in.HowObtained,
				Difficulty:    in.Difficulty,
				Offer:         in.Offer,
				Questions:     utils.CompressWhitespacePreserveNewlines(in.Questions),
				Impressions:   utils.CompressWhitespacePreserveNewlines(in.Impressions),
				Approval:      types.Approval{ApprovalStatus: enum.ApprovalStatusPending},
			}
			if err := repo.Interview().CreateWithTx(ctx, tx, interview); err != nil {
				return 0, err
			}
			return interview.ID, nil
		},
	},
}

func missingForm() types.FieldErrors {
	return types.FieldErrors{"form": "this form is required"}
}

// newPosition builds the position collected by the position sub-form.
func newPosition(in *types.PositionInput, userID int64, company *types.Company) *types.Position {
	return &types.Position{
		UserID:           userID,
		CompanyID:        &company.ID,
		CompanyName:      company.Name,
		Title:            utils.CompressAllWhitespace(in.Title),
		Department:       utils.CompressAllWhitespace(in.Department),
		Location:         utils.CompressAllWhitespace(in.Location),
		StartMonth:       in.StartMonth,
		StartYear:        in.StartYear,
		EmploymentStatus: in.EmploymentStatus,
	}
}
