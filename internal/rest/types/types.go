package types

import (
	"time"

	"github.com/pracor/pracor/internal/rating"
)

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error    string                       `json:"error"`
	Forms    map[string]map[string]string `json:"forms,omitempty"`
	Existing []*Company                   `json:"existing,omitempty"`
}

// Scores are the rounded per-dimension averages of a company.
type Scores struct {
	OverallScore float64 `json:"overallScore"`
	Advancement  float64 `json:"advancement"`
	WorkLife     float64 `json:"workLife"`
	Compensation float64 `json:"compensation"`
	Environment  float64 `json:"environment"`
}

// Company represents a company in responses.
type Company struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Website          string    `json:"website"`
	HeadquartersCity string    `json:"headquartersCity"`
	Region           string    `json:"region,omitempty"`
	Country          string    `json:"country"`
	Employment       string    `json:"employment,omitempty"`
	Listing          string    `json:"listing"`
	Ownership        string    `json:"ownership,omitempty"`
	ReviewCount      int64     `json:"reviewCount"`
	Scores           *Scores   `json:"scores"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ItemSummary describes the records of one kind attached to a company.
type ItemSummary struct {
	Kind        string                  `json:"kind"`
	Count       int                     `json:"count"`
	Latest      any                     `json:"latest,omitempty"`
	LatestStars map[string]rating.Stars `json:"latestStars,omitempty"`
}

// CompanyDetail is the company page.
type CompanyDetail struct {
	Company *Company                `json:"company"`
	Stars   map[string]rating.Stars `json:"stars,omitempty"`
	Items   []ItemSummary           `json:"items"`
}

// CreateCompanyResponse is returned after a company was created.
type CreateCompanyResponse struct {
	Company         *Company `json:"company"`
	LinkedPositions int64    `json:"linkedPositions"`
}

// Approval is the moderation state of a record.
type Approval struct {
	Status     string     `json:"status"`
	ReviewerID *int64     `json:"reviewerId,omitempty"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`
}

// Ratings are the five scores of a review.
type Ratings struct {
	OverallScore int `json:"overallScore"`
	Advancement  int `json:"advancement"`
	WorkLife     int `json:"workLife"`
	Compensation int `json:"compensation"`
	Environment  int `json:"environment"`
}

// Review represents a review in responses.
type Review struct {
	ID         int64     `json:"id"`
	CompanyID  int64     `json:"companyId"`
	PositionID *int64    `json:"positionId,omitempty"`
	Title      string    `json:"title"`
	Pros       string    `json:"pros"`
	Cons       string    `json:"cons"`
	Comment    string    `json:"comment"`
	Ratings    Ratings   `json:"ratings"`
	Approval   Approval  `json:"approval"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Salary represents a salary report in responses.
type Salary struct {
	ID            int64     `json:"id"`
	CompanyID     int64     `json:"companyId"`
	PositionID    *int64    `json:"positionId,omitempty"`
	Currency      string    `json:"currency"`
	Amount        int64     `json:"amount"`
	Period        string    `json:"period"`
	GrossNet      string    `json:"grossNet"`
	BonusAmount   int64     `json:"bonusAmount"`
	BonusPeriod   string    `json:"bonusPeriod"`
	BonusGrossNet string    `json:"bonusGrossNet"`
	BaseAnnual    int64     `json:"baseAnnual"`
	BonusAnnual   int64     `json:"bonusAnnual"`
	Approval      Approval  `json:"approval"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Interview represents an interview report in responses.
type Interview struct {
	ID            int64     `json:"id"`
	CompanyID     int64     `json:"companyId"`
	PositionTitle string    `json:"positionTitle"`
	Department    string    `json:"department"`
	HowObtained   string    `json:"howObtained"`
	Difficulty    int       `json:"difficulty"`
	Offer         string    `json:"offer"`
	Questions     string    `json:"questions"`
	Impressions   string    `json:"impressions"`
	Approval      Approval  `json:"approval"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Position represents a position in responses.
type Position struct {
	ID               int64     `json:"id"`
	CompanyID        *int64    `json:"companyId,omitempty"`
	CompanyName      string    `json:"companyName,omitempty"`
	Title            string    `json:"title"`
	Department       string    `json:"department,omitempty"`
	Location         string    `json:"location,omitempty"`
	StartMonth       *int      `json:"startMonth,omitempty"`
	StartYear        *int      `json:"startYear,omitempty"`
	EmploymentStatus string    `json:"employmentStatus"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Reconciliation is the outcome of matching a free-text company name.
type Reconciliation struct {
	Name       string     `json:"name"`
	Candidates []*Company `json:"candidates"`
	Queued     bool       `json:"queued"`
}

// LinkStep is the current state of a link workflow.
type LinkStep struct {
	Token          string          `json:"token"`
	Done           bool            `json:"done"`
	Remaining      int             `json:"remaining"`
	Linked         []int64         `json:"linked"`
	Skipped        []int64         `json:"skipped"`
	Position       *Position       `json:"position,omitempty"`
	Reconciliation *Reconciliation `json:"reconciliation,omitempty"`
}

// SubmissionResult is returned after a stored submission.
type SubmissionResult struct {
	State      string   `json:"state"`
	History    []string `json:"history"`
	ItemID     int64    `json:"itemId,omitempty"`
	PositionID *int64   `json:"positionId,omitempty"`
}

// PositionFormResponse tells a client whether to show the position sub-form.
type PositionFormResponse struct {
	NeedsPositionForm bool `json:"needsPositionForm"`
}

// CompanyRequest is a queued company name.
type CompanyRequest struct {
	Name        string    `json:"name"`
	RequestedBy int64     `json:"requestedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
