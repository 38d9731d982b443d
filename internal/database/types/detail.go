package types

import (
	"github.com/pracor/pracor/internal/database/types/enum"
	"github.com/pracor/pracor/internal/rating"
)

// ItemSummary describes the records of one kind attached to a company.
type ItemSummary struct {
	Kind        enum.ItemKind           `json:"kind"`
	Count       int                     `json:"count"`
	Latest      any                     `json:"latest,omitempty"`
	LatestStars map[string]rating.Stars `json:"latestStars,omitempty"`
}

// CompanyDetail is everything shown on a company page.
// Scores and Stars are nil while the company has no counted review.
type CompanyDetail struct {
	Company *Company                `json:"company"`
	Scores  *DisplayScores          `json:"scores"`
	Stars   map[string]rating.Stars `json:"stars,omitempty"`
	Items   []ItemSummary           `json:"items"`
}
