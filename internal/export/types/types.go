package types

import "time"

// CompanyRecord is one company row of an export with its average scores.
// Scores are zero when the company has no counted review.
type CompanyRecord struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Website      string  `json:"website"`
	City         string  `json:"city"`
	Country      string  `json:"country"`
	ReviewCount  int64   `json:"reviewCount"`
	OverallScore float64 `json:"overallScore"`
	Advancement  float64 `json:"advancement"`
	WorkLife     float64 `json:"workLife"`
	Compensation float64 `json:"compensation"`
	Environment  float64 `json:"environment"`
}

// ReviewRecord is an approved review whose author is replaced by a salted hash.
type ReviewRecord struct {
	AuthorHash   string    `json:"authorHash"`
	CompanyID    int64     `json:"companyId"`
	Title        string    `json:"title"`
	OverallScore int       `json:"overallScore"`
	Advancement  int       `json:"advancement"`
	WorkLife     int       `json:"workLife"`
	Compensation int       `json:"compensation"`
	Environment  int       `json:"environment"`
	CreatedAt    time.Time `json:"createdAt"`
}
