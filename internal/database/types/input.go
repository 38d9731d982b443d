package types

import (
	"strings"
	"unicode/utf8"

	"github.com/pracor/pracor/internal/database/types/enum"
)

// Field length limits.
const (
	MaxCompanyNameLength = 100
	MaxCityLength        = 60
	MaxTitleLength       = 100
	MaxProsConsLength    = 500
	MaxPositionLength    = 100
	MaxDepartmentLength  = 100
	MaxLocationLength    = 30
	MaxImpressionsLength = 100
	MinStartYear         = 1970
	MaxStartYear         = 2100
)

const (
	msgRequired     = "this field is required"
	msgTooLong      = "value is too long"
	msgRatingRange  = "must be between 1 and 5"
	msgInvalidValue = "invalid value"
)

// CompanyInput is the user-supplied part of a company.
type CompanyInput struct {
	Name             string `json:"name"`
	HeadquartersCity string `json:"headquartersCity"`
	Website          string `json:"website"`
}

// Validate checks the required company fields.
func (in *CompanyInput) Validate() FieldErrors {
	errs := FieldErrors{}
	requireText(errs, "name", in.Name, MaxCompanyNameLength)
	requireText(errs, "headquartersCity", in.HeadquartersCity, MaxCityLength)
	if strings.TrimSpace(in.Website) == "" {
		errs["website"] = msgRequired
	}
	return errs
}

// PositionInput is the position sub-form collected alongside a first submission.
type PositionInput struct {
	Title            string                `json:"title"`
	Department       string                `json:"department"`
	Location         string                `json:"location"`
	StartMonth       *int                  `json:"startMonth,omitempty"`
	StartYear        *int                  `json:"startYear,omitempty"`
	EmploymentStatus enum.EmploymentStatus `json:"employmentStatus"`
}

// Validate checks the position sub-form.
func (in *PositionInput) Validate() FieldErrors {
	errs := FieldErrors{}
	requireText(errs, "title", in.Title, MaxPositionLength)
	optionalText(errs, "department", in.Department, MaxDepartmentLength)
	requireText(errs, "location", in.Location, MaxLocationLength)

	if in.StartMonth != nil && (*in.StartMonth < 1 || *in.StartMonth > 12) {
		errs["startMonth"] = msgInvalidValue
	}
	if in.StartYear != nil && (*in.StartYear < MinStartYear || *in.StartYear > MaxStartYear) {
		errs["startYear"] = msgInvalidValue
	}
	if !in.EmploymentStatus.IsValid() {
		errs["employmentStatus"] = msgInvalidValue
	}
	return errs
}

// ReviewInput is the review form.
type ReviewInput struct {
	Title   string  `json:"title"`
	Pros    string  `json:"pros"`
	Cons    string  `json:"cons"`
	Comment string  `json:"comment"`
	Ratings Ratings `json:"ratings"`
}

// Validate checks the review form.
func (in *ReviewInput) Validate() FieldErrors {
	errs := FieldErrors{}
	requireText(errs, "title", in.Title, MaxTitleLength)
	requireText(errs, "pros", in.Pros, MaxProsConsLength)
	requireText(errs, "cons", in.Cons, MaxProsConsLength)
	requireText(errs, "comment", in.Comment, 0)

	ratings := map[string]int{
		"overallScore": in.Ratings.OverallScore,
		"advancement":  in.Ratings.Advancement,
		"workLife":     in.Ratings.WorkLife,
		"compensation": in.Ratings.Compensation,
		"environment":  in.Ratings.Environment,
	}
	for field, value := range ratings {
		if value < 1 || value > 5 {
			errs[field] = msgRatingRange
		}
	}
	return errs
}

// SalaryInput is the salary form.
type SalaryInput struct {
	Currency      string            `json:"currency"`
	Amount        int64             `json:"amount"`
	Period        enum.SalaryPeriod `json:"period"`
	GrossNet      enum.GrossNet     `json:"grossNet"`
	BonusAmount   int64             `json:"bonusAmount"`
	BonusPeriod   enum.SalaryPeriod `json:"bonusPeriod"`
	BonusGrossNet enum.GrossNet     `json:"bonusGrossNet"`
}

// Validate checks the salary form. An empty currency defaults to PLN.
func (in *SalaryInput) Validate() FieldErrors {
	errs := FieldErrors{}

	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if in.Currency == "" {
		in.Currency = "PLN"
	}
	if len(in.Currency) != 3 || strings.IndexFunc(in.Currency, func(r rune) bool { return r < 'A' || r > 'Z' }) >= 0 {
		errs["currency"] = msgInvalidValue
	}

	if in.Amount <= 0 {
		errs["amount"] = "must be a positive amount"
	}
	if in.BonusAmount < 0 {
		errs["bonusAmount"] = "must not be negative"
	}
	if !in.Period.IsValid() {
		errs["period"] = msgInvalidValue
	}
	if !in.BonusPeriod.IsValid() {
		errs["bonusPeriod"] = msgInvalidValue
	}
	if !in.GrossNet.IsValid() {
		errs["grossNet"] = msgInvalidValue
	}
	if !in.BonusGrossNet.IsValid() {
		errs["bonusGrossNet"] = msgInvalidValue
	}
	return errs
}

// InterviewInput is the interview form.
type InterviewInput struct {
	PositionTitle string            `json:"positionTitle"`
	Department    string            `json:"department"`
	HowObtained   enum.HowObtained  `json:"howObtained"`
	Difficulty    int               `json:"difficulty"`
	Offer         enum.OfferOutcome `json:"offer"`
	Questions     string            `json:"questions"`
	Impressions   string            `json:"impressions"`
}

// Validate checks the interview form.
func (in *InterviewInput) Validate() FieldErrors {
	errs := FieldErrors{}
	optionalText(errs, "positionTitle", in.PositionTitle, MaxPositionLength)
	optionalText(errs, "department", in.Department, MaxDepartmentLength)
	requireText(errs, "questions", in.Questions, 0)
	optionalText(errs, "impressions", in.Impressions, MaxImpressionsLength)

	if !in.HowObtained.IsValid() {
		errs["howObtained"] = msgInvalidValue
	}
	if in.Difficulty < 1 || in.Difficulty > 5 {
		errs["difficulty"] = msgRatingRange
	}
	if !in.Offer.IsValid() {
		errs["offer"] = msgInvalidValue
	}
	return errs
}

// requireText rejects blank values and values longer than limit runes. A zero limit means unbounded.
func requireText(errs FieldErrors, field, value string, limit int) {
	if strings.TrimSpace(value) == "" {
		errs[field] = msgRequired
		return
	}
	optionalText(errs, field, value, limit)
}

func optionalText(errs FieldErrors, field, value string, limit int) {
	if limit > 0 && utf8.RuneCountInString(value) > limit {
		errs[field] = msgTooLong
	}
}

// ImportedPosition is one entry of an external professional profile.
type ImportedPosition struct {
	ExternalID  string `json:"externalId"`
	CompanyName string `json:"companyName"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	StartMonth  *int   `json:"startMonth,omitempty"`
	StartYear   *int   `json:"startYear,omitempty"`
}

// Validate checks an imported entry. Only the company name and title are required.
func (in *ImportedPosition) Validate() FieldErrors {
	errs := FieldErrors{}
	requireText(errs, "companyName", in.CompanyName, MaxCompanyNameLength)
	requireText(errs, "title", in.Title, MaxPositionLength)
	optionalText(errs, "location", in.Location, MaxLocationLength)
	if in.StartMonth != nil && (*in.StartMonth < 1 || *in.StartMonth > 12) {
		errs["startMonth"] = msgInvalidValue
	}
	if in.StartYear != nil && (*in.StartYear < MinStartYear || *in.StartYear > MaxStartYear) {
		errs["startYear"] = msgInvalidValue
	}
	return errs
}
