package convert

import (
	"github.com/pracor/pracor/internal/database/types"
	restTypes "github.com/pracor/pracor/internal/rest/types"
)

// Approval converts the moderation fields of a record.
func Approval(approval types.Approval) restTypes.Approval {
	result := restTypes.Approval{
		Status:     approval.ApprovalStatus.String(),
		ReviewerID: approval.ReviewerID,
	}
	if !approval.ReviewedAt.IsZero() {
		reviewedAt := approval.ReviewedAt
		result.ReviewedAt = &reviewedAt
	}
	return result
}

// Review converts a database review.
func Review(review *types.Review) *restTypes.Review {
	return &restTypes.Review{
		ID:         review.ID,
		CompanyID:  review.CompanyID,
		PositionID: review.PositionID,
		Title:      review.Title,
		Pros:       review.Pros,
		Cons:       review.Cons,
		Comment:    review.Comment,
		Ratings: restTypes.Ratings{
			OverallScore: review.OverallScore,
			Advancement:  review.Advancement,
			WorkLife:     review.WorkLife,
			Compensation: review.Compensation,
			Environment:  review.Environment,
		},
		Approval:  Approval(review.Approval),
		CreatedAt: review.CreatedAt,
	}
}

// Salary converts a database salary report.
func Salary(salary *types.Salary) *restTypes.Salary {
	return &restTypes.Salary{
		ID:            salary.ID,
		CompanyID:     salary.CompanyID,
		PositionID:    salary.PositionID,
		Currency:      salary.Currency,
		Amount:        salary.Amount,
		Period:        salary.Period.String(),
		GrossNet:      salary.GrossNet.String(),
		BonusAmount:   salary.BonusAmount,
		BonusPeriod:   salary.BonusPeriod.String(),
		BonusGrossNet: salary.BonusGrossNet.String(),
		BaseAnnual:    salary.BaseAnnual,
		BonusAnnual:   salary.BonusAnnual,
		Approval:      Approval(salary.Approval),
		CreatedAt:     salary.CreatedAt,
	}
}

// Interview converts a database interview report.
func Interview(interview *types.Interview) *restTypes.Interview {
	return &restTypes.Interview{
		ID:            interview.ID,
		CompanyID:     interview.CompanyID,
		PositionTitle: interview.PositionTitle,
		Department:    interview.Department,
		HowObtained:   interview.HowObtained.String(),
		Difficulty:    interview.Difficulty,
		Offer:         interview.Offer.String(),
		Questions:     interview.Questions,
		Impressions:   interview.Impressions,
		Approval:      Approval(interview.Approval),
		CreatedAt:     interview.CreatedAt,
	}
}

// Item converts a single record of any kind. Unknown values convert to nil.
func Item(record any) any {
	switch v := record.(type) {
	case *types.Review:
		return Review(v)
	case *types.Salary:
		return Salary(v)
	case *types.Interview:
		return Interview(v)
	default:
		return nil
	}
}

// Items converts a page of records of any kind.
func Items(records any) []any {
	var result []any
	switch v := records.(type) {
	case []*types.Review:
		for _, r := range v {
			result = append(result, Review(r))
		}
	case []*types.Salary:
		for _, r := range v {
			result = append(result, Salary(r))
		}
	case []*types.Interview:
		for _, r := range v {
			result = append(result, Interview(r))
		}
	}
	if result == nil {
		result = []any{}
	}
	return result
}
