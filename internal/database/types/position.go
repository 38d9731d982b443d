package types

import (
	"time"

	"github.com/pracor/pracor/internal/database/types/enum"
	"github.com/uptrace/bun"
)

// Position represents a user's employment at a company at a point in time.
// A position imported from an external profile only carries CompanyName until
// it is linked to a canonical Company.
type Position struct {
	bun.BaseModel `bun:"table:positions,alias:p"`

	ID               int64                 `bun:",pk,autoincrement" json:"id"`
	UserID           int64                 `bun:",notnull"          json:"userId"`
	CompanyID        *int64                `bun:"company_id"        json:"companyId,omitempty"`
	CompanyName      string                `bun:",nullzero"         json:"companyName,omitempty"`
	Title            string                `bun:",notnull"          json:"title"`
	Department       string                `bun:",notnull"          json:"department"`
	Location         string                `bun:",notnull"          json:"location"`
	StartMonth       *int                  `bun:"start_month"       json:"startMonth,omitempty"`
	StartYear        *int                  `bun:"start_year"        json:"startYear,omitempty"`
	EmploymentStatus enum.EmploymentStatus `bun:",notnull"          json:"employmentStatus"`
	ExternalID       string                `bun:",nullzero"         json:"externalId,omitempty"`
	CreatedAt        time.Time             `bun:",notnull"          json:"createdAt"`
}

// IsLinked reports whether the position references a canonical company.
func (p *Position) IsLinked() bool {
	return p.CompanyID != nil
}

// Reconciliation is the outcome of matching a free-text company name.
// Candidates is empty exactly when the name was queued for company creation.
type Reconciliation struct {
	Name       string     `json:"name"`
	Candidates []*Company `json:"candidates"`
	Queued     bool       `json:"queued"`
}
