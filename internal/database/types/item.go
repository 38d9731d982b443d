package types

import (
	"time"

	"github.com/pracor/pracor/internal/database/types/enum"
	"github.com/uptrace/bun"
)

// Approval holds the moderation fields shared by every submitted item.
type Approval struct {
	ApprovalStatus enum.ApprovalStatus `bun:",notnull"     json:"approvalStatus"`
	ReviewerID     *int64              `bun:"reviewer_id"  json:"reviewerId,omitempty"`
	ReviewedAt     time.Time           `bun:",nullzero"    json:"reviewedAt,omitzero"`
}

// Ratings are the five 1-5 scores a review gives a company.
type Ratings struct {
	OverallScore int `bun:"overallscore,notnull" json:"overallScore"`
	Advancement  int `bun:"advancement,notnull"  json:"advancement"`
	WorkLife     int `bun:"worklife,notnull"     json:"workLife"`
	Compensation int `bun:"compensation,notnull" json:"compensation"`
	Environment  int `bun:"environment,notnull"  json:"environment"`
}

// Review is a written opinion about a company with ratings that feed the company scores.
type Review struct {
	bun.BaseModel `bun:"table:reviews,alias:r"`

	ID         int64  `bun:",pk,autoincrement" json:"id"`
	CompanyID  int64  `bun:",notnull"          json:"companyId"`
	PositionID *int64 `bun:"position_id"       json:"positionId,omitempty"`
	UserID     int64  `bun:",notnull"          json:"userId"`
	Title      string `bun:",notnull"          json:"title"`
	Pros       string `bun:",notnull"          json:"pros"`
	Cons       string `bun:",notnull"          json:"cons"`
	Comment    string `bun:",notnull"          json:"comment"`
	Ratings    `json:"ratings"`
	Approval   `json:"approval"`
	CreatedAt  time.Time `bun:",notnull" json:"createdAt"`
}

// Salary is a reported pay package at a company.
type Salary struct {
	bun.BaseModel `bun:"table:salaries,alias:s"`

	ID            int64             `bun:",pk,autoincrement" json:"id"`
	CompanyID     int64             `bun:",notnull"          json:"companyId"`
	PositionID    *int64            `bun:"position_id"       json:"positionId,omitempty"`
	UserID        int64             `bun:",notnull"          json:"userId"`
	Currency      string            `bun:",notnull"          json:"currency"`
	Amount        int64             `bun:",notnull"          json:"amount"`
	Period        enum.SalaryPeriod `bun:",notnull"          json:"period"`
	GrossNet      enum.GrossNet     `bun:",notnull"          json:"grossNet"`
	BonusAmount   int64             `bun:",notnull"          json:"bonusAmount"`
	BonusPeriod   enum.SalaryPeriod `bun:",notnull"          json:"bonusPeriod"`
	BonusGrossNet enum.GrossNet     `bun:",notnull"          json:"bonusGrossNet"`
	BaseAnnual    int64             `bun:",notnull"          json:"baseAnnual"`
	BonusAnnual   int64             `bun:",notnull"          json:"bonusAnnual"`
	Approval      `json:"approval"`
	CreatedAt     time.Time `bun:",notnull" json:"createdAt"`
}

// Annualize fills the derived yearly figures from the reported amounts.
// Each figure stays in the gross/net basis it was reported in.
func (s *Salary) Annualize() {
	s.BaseAnnual = s.Amount * s.Period.PerYear()
	s.BonusAnnual = s.BonusAmount * s.BonusPeriod.PerYear()
}

// Interview is a candidate's account of a recruitment process.
// It names the position in free text and never references a Position record.
type Interview struct {
	bun.BaseModel `bun:"table:interviews,alias:i"`

	ID            int64             `bun:",pk,autoincrement" json:"id"`
	CompanyID     int64             `bun:",notnull"          json:"companyId"`
	UserID        int64             `bun:",notnull"          json:"userId"`
	PositionTitle string            `bun:",notnull"          json:"positionTitle"`
	Department    string            `bun:",notnull"          json:"department"`
	HowObtained   enum.HowObtained  `bun:",notnull"          json:"howObtained"`
	Difficulty    int               `bun:",notnull"          json:"difficulty"`
	Offer         enum.OfferOutcome `bun:",notnull"          json:"offer"`
	Questions     string            `bun:",notnull"          json:"questions"`
	Impressions   string            `bun:",notnull"          json:"impressions"`
	Approval      `json:"approval"`
	CreatedAt     time.Time `bun:",notnull" json:"createdAt"`
}
