package convert

import (
	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/database/types/enum"
	restTypes "github.com/pracor/pracor/internal/rest/types"
)

// Company converts a database company to a REST API company.
func Company(company *types.Company) *restTypes.Company {
	if company == nil {
		return nil
	}

	result := &restTypes.Company{
		ID:               company.ID,
		Name:             company.Name,
		Website:          company.Website,
		HeadquartersCity: company.HeadquartersCity,
		Region:           company.Region,
		Country:          company.Country,
		Listing:          company.Listing.String(),
		Ownership:        company.Ownership,
		ReviewCount:      company.ReviewCount,
		CreatedAt:        company.CreatedAt,
	}
	if company.Employment != enum.EmploymentSizeUnknown {
		result.Employment = company.Employment.String()
	}
	if scores := company.Display(); scores != nil {
		result.Scores = &restTypes.Scores{
			OverallScore: scores.OverallScore,
			Advancement:  scores.Advancement,
			WorkLife:     scores.WorkLife,
			Compensation: scores.Compensation,
			Environment:  scores.Environment,
		}
	}

	return result
}

// Companies converts a slice of database companies.
func Companies(companies []*types.Company) []*restTypes.Company {
	result := make([]*restTypes.Company, len(companies))
	for i, company := range companies {
		result[i] = Company(company)
	}
	return result
}

// CompanyDetail converts a company page.
func CompanyDetail(detail *types.CompanyDetail) *restTypes.CompanyDetail {
	items := make([]restTypes.ItemSummary, len(detail.Items))
	for i, summary := range detail.Items {
		items[i] = restTypes.ItemSummary{
			Kind:        summary.Kind.String(),
			Count:       summary.Count,
			Latest:      Item(summary.Latest),
			LatestStars: summary.LatestStars,
		}
	}

	return &restTypes.CompanyDetail{
		Company: Company(detail.Company),
		Stars:   detail.Stars,
		Items:   items,
	}
}

// CompanyInput converts a company request body.
func CompanyInput(body *restTypes.CompanyRequestBody) *types.CompanyInput {
	return &types.CompanyInput{
		Name:             body.Name,
		HeadquartersCity: body.HeadquartersCity,
		Website:          body.Website,
	}
}

// CompanyRequests converts queued company names.
func CompanyRequests(requests []*types.CompanyRequest) []restTypes.CompanyRequest {
	result := make([]restTypes.CompanyRequest, len(requests))
	for i, r := range requests {
		result[i] = restTypes.CompanyRequest{
			Name:        r.Name,
			RequestedBy: r.RequestedBy,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		}
	}
	return result
}
