package types

import (
	"time"

	"github.com/pracor/pracor/internal/database/types/enum"
	"github.com/uptrace/bun"
)

// DefaultCountry is assigned to companies created without an explicit country.
const DefaultCountry = "Polska"

// Company represents an employer that reviews, salaries and interviews are attached to.
type Company struct {
	bun.BaseModel `bun:"table:companies,alias:c"`

	ID               int64               `bun:",pk,autoincrement"  json:"id"`
	Name             string              `bun:",notnull,unique"    json:"name"`
	SearchName       string              `bun:",notnull"           json:"-"`
	Website          string              `bun:",notnull,unique"    json:"website"`
	HeadquartersCity string              `bun:",notnull"           json:"headquartersCity"`
	Region           string              `bun:",nullzero"          json:"region,omitempty"`
	Country          string              `bun:",notnull"           json:"country"`
	Employment       enum.EmploymentSize `bun:",notnull"           json:"employment"`
	Listing          enum.Listing        `bun:",notnull"           json:"listing"`
	Ownership        string              `bun:",nullzero"          json:"ownership,omitempty"`
	ScoreTotals      `json:"scoreTotals"`
	CreatedAt        time.Time `bun:",notnull" json:"createdAt"`
	UpdatedAt        time.Time `bun:",notnull" json:"updatedAt"`
}

// ScoreTotals holds the accumulated rating sums of a company.
// Each sum equals the field total across the counted reviews of the company.
type ScoreTotals struct {
	OverallScore int64 `bun:"overallscore,notnull"      json:"overallScore"`
	Advancement  int64 `bun:"advancement,notnull"       json:"advancement"`
	WorkLife     int64 `bun:"worklife,notnull"          json:"workLife"`
	Compensation int64 `bun:"compensation,notnull"      json:"compensation"`
	Environment  int64 `bun:"environment,notnull"       json:"environment"`
	ReviewCount  int64 `bun:"number_of_reviews,notnull" json:"reviewCount"`
}

// CompanyRequest is a company name that reconciliation could not match and that
// is waiting for someone to create it.
type CompanyRequest struct {
	bun.BaseModel `bun:"table:company_requests,alias:cr"`

	Name        string    `bun:",pk"      json:"name"`
	RequestedBy int64     `bun:",notnull" json:"requestedBy"`
	CreatedAt   time.Time `bun:",notnull" json:"createdAt"`
	UpdatedAt   time.Time `bun:",notnull" json:"updatedAt"`
}
