package types

// CompanyRequestBody creates or updates a company.
type CompanyRequestBody struct {
	Name             string `json:"name"`
	HeadquartersCity string `json:"headquartersCity"`
	Website          string `json:"website"`
}

// ReviewForm is the review form of a submission.
type ReviewForm struct {
	Title   string  `json:"title"`
	Pros    string  `json:"pros"`
	Cons    string  `json:"cons"`
	Comment string  `json:"comment"`
	Ratings Ratings `json:"ratings"`
}

// SalaryForm is the salary form of a submission. Enum fields take their
// lowercase names, e.g. "monthly" or "net".
type SalaryForm struct {
	Currency      string `json:"currency"`
	Amount        int64  `json:"amount"`
	Period        string `json:"period"`
	GrossNet      string `json:"grossNet"`
	BonusAmount   int64  `json:"bonusAmount"`
	BonusPeriod   string `json:"bonusPeriod"`
	BonusGrossNet string `json:"bonusGrossNet"`
}

// InterviewForm is the interview form of a submission.
type InterviewForm struct {
	PositionTitle string `json:"positionTitle"`
	Department    string `json:"department"`
	HowObtained   string `json:"howObtained"`
	Difficulty    int    `json:"difficulty"`
	Offer         string `json:"offer"`
	Questions     string `json:"questions"`
	Impressions   string `json:"impressions"`
}

// PositionForm is the position sub-form of a first submission.
type PositionForm struct {
	Title            string `json:"title"`
	Department       string `json:"department"`
	Location         string `json:"location"`
	StartMonth       *int   `json:"startMonth,omitempty"`
	StartYear        *int   `json:"startYear,omitempty"`
	EmploymentStatus string `json:"employmentStatus"`
}

// SubmissionBody carries the primary form matching the submitted kind and,
// for a first submission at a company, the position form.
type SubmissionBody struct {
	Review    *ReviewForm    `json:"review,omitempty"`
	Salary    *SalaryForm    `json:"salary,omitempty"`
	Interview *InterviewForm `json:"interview,omitempty"`
	Position  *PositionForm  `json:"position,omitempty"`
}

// ImportedPosition is one entry of an imported professional profile.
type ImportedPosition struct {
	ExternalID  string `json:"externalId"`
	CompanyName string `json:"companyName"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	StartMonth  *int   `json:"startMonth,omitempty"`
	StartYear   *int   `json:"startYear,omitempty"`
}

// ImportBody is a professional profile import.
type ImportBody struct {
	Positions []ImportedPosition `json:"positions"`
}

// ReconcileBody asks for companies matching a free-text name.
type ReconcileBody struct {
	Name string `json:"name"`
}

// LinkBody picks the company for the current position of a workflow.
type LinkBody struct {
	CompanyID int64 `json:"companyId"`
}

// ModerationBody is a moderation decision, "approved" or "rejected".
type ModerationBody struct {
	Status string `json:"status"`
}
