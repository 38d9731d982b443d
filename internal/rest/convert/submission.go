package convert

import (
	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/database/types/enum"
	restTypes "github.com/pracor/pracor/internal/rest/types"
	"github.com/pracor/pracor/internal/submission"
)

// SubmissionRequest builds a submission from a request body.
func SubmissionRequest(
	body *restTypes.SubmissionBody, kind enum.ItemKind, companyID, userID int64, token string,
) *submission.Request {
	req := &submission.Request{
		Kind:      kind,
		CompanyID: companyID,
		UserID:    userID,
		Token:     token,
	}

	if f := body.Review; f != nil {
		req.Review = &types.ReviewInput{
			Title:   f.Title,
			Pros:    f.Pros,
			Cons:    f.Cons,
			Comment: f.Comment,
			Ratings: types.Ratings{
				OverallScore: f.Ratings.OverallScore,
				Advancement:  f.Ratings.Advancement,
				WorkLife:     f.Ratings.WorkLife,
				Compensation: f.Ratings.Compensation,
				Environment:  f.Ratings.Environment,
			},
		}
	}

	if f := body.Salary; f != nil {
		req.Salary = &types.SalaryInput{
			Currency:      f.Currency,
			Amount:        f.Amount,
			Period:        parseEnum[enum.SalaryPeriod](f.Period),
			GrossNet:      parseEnum[enum.GrossNet](f.GrossNet),
			BonusAmount:   f.BonusAmount,
			BonusPeriod:   parseEnum[enum.SalaryPeriod](f.BonusPeriod),
			BonusGrossNet: parseEnum[enum.GrossNet](f.BonusGrossNet),
		}
	}

	if f := body.Interview; f != nil {
		req.Interview = &types.InterviewInput{
			PositionTitle: f.PositionTitle,
			Department:    f.Department,
			HowObtained:   parseEnum[enum.HowObtained](f.HowObtained),
			Difficulty:    f.Difficulty,
			Offer:         parseEnum[enum.OfferOutcome](f.Offer),
			Questions:     f.Questions,
			Impressions:   f.Impressions,
		}
	}

	if f := body.Position; f != nil {
		req.Position = &types.PositionInput{
			Title:            f.Title,
			Department:       f.Department,
			Location:         f.Location,
			StartMonth:       f.StartMonth,
			StartYear:        f.StartYear,
			EmploymentStatus: parseEnum[enum.EmploymentStatus](f.EmploymentStatus),
		}
	}

	return req
}

// SubmissionResult converts a successful or duplicate submission.
func SubmissionResult(result *submission.Result) *restTypes.SubmissionResult {
	history := make([]string, len(result.History))
	for i, state := range result.History {
		history[i] = string(state)
	}

	return &restTypes.SubmissionResult{
		State:      string(result.State),
		History:    history,
		ItemID:     result.ItemID,
		PositionID: result.PositionID,
	}
}
