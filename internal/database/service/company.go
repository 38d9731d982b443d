package service

import (
	"context"
	"strings"

	"github.com/pracor/pracor/internal/database/dbretry"
	"github.com/pracor/pracor/internal/database/models"
	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/rating"
	"github.com/pracor/pracor/pkg/utils"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// DefaultSearchLimit caps company search results.
const DefaultSearchLimit = 50

// CompanyService handles company-related business logic.
type CompanyService struct {
	db        *bun.DB
	companies *models.CompanyModel
	positions *models.PositionModel
	requests  *models.CompanyRequestModel
	items     *ItemService
	logger    *zap.Logger
}

// NewCompany creates a new company service.
func NewCompany(
	db *bun.DB,
	companies *models.CompanyModel,
	positions *models.PositionModel,
	requests *models.CompanyRequestModel,
	items *ItemService,
	logger *zap.Logger,
) *CompanyService {
	return &CompanyService{
		db:        db,
		companies: companies,
		positions: positions,
		requests:  requests,
		items:     items,
		logger:    logger.Named("company_service"),
	}
}

// prepare validates the input and fills the normalized company fields.
func prepare(company *types.Company, in *types.CompanyInput) error {
	fields := in.Validate()

	website, err := utils.NormalizeWebsite(in.Website)
	if err != nil {
		if _, ok := fields["website"]; !ok {
			fields["website"] = err.Error()
		}
	}

	if len(fields) > 0 {
		validation := types.NewValidationError()
		validation.Add(types.FormCompany, fields)
		return validation
	}

	company.Name = utils.CompressAllWhitespace(in.Name)
	company.SearchName = utils.FoldName(company.Name)
	company.Website = website
	company.HeadquartersCity = utils.TitleCase(in.HeadquartersCity)

	return nil
}

// Create adds a company. Unlinked positions naming it exactly are linked to it
// and its queued creation request is cleared. A taken name or website returns a
// *types.ConflictError listing the companies that hold them.
func (s *CompanyService) Create(ctx context.Context, in *types.CompanyInput) (*types.Company, int64, error) {
	company := &types.Company{Country: types.DefaultCountry}
	if err := prepare(company, in); err != nil {
		return nil, 0, err
	}

	var linked int64
	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		conflicts, err := s.companies.GetConflictingWithTx(ctx, tx, company.Name, company.Website, 0)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &types.ConflictError{Existing: conflicts}
		}

		if err := s.companies.CreateWithTx(ctx, tx, company); err != nil {
			if dbretry.IsUniqueViolation(err) {
				return &types.ConflictError{}
			}
			return err
		}

		linked, err = s.positions.LinkByCompanyNameWithTx(ctx, tx, company.Name, company.ID)
		if err != nil {
			return err
		}

		return s.requests.DeleteWithTx(ctx, tx, company.Name)
	})
	if err != nil {
		return nil, 0, err
	}

	s.logger.Info("Created company",
		zap.Int64("companyID", company.ID),
		zap.String("name", company.Name),
		zap.Int64("linkedPositions", linked))

	return company, linked, nil
}

// Update changes the name, website and headquarters of a company.
func (s *CompanyService) Update(ctx context.Context, id int64, in *types.CompanyInput) (*types.Company, error) {
	var company *types.Company

	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		var err error
		company, err = s.companies.GetByIDWithTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := prepare(company, in); err != nil {
			return err
		}

		conflicts, err := s.companies.GetConflictingWithTx(ctx, tx, company.Name, company.Website, id)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &types.ConflictError{Existing: conflicts}
		}

		return s.companies.UpdateDetailsWithTx(ctx, tx, company)
	})
	if err != nil {
		return nil, err
	}

	return company, nil
}

// Delete removes a company with every record about it. Positions at the
// company are kept without a company.
func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		if err := s.items.DeleteByCompanyWithTx(ctx, tx, id); err != nil {
			return err
		}
		if err := s.positions.UnlinkCompanyWithTx(ctx, tx, id); err != nil {
			return err
		}
		return s.companies.DeleteWithTx(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Deleted company", zap.Int64("companyID", id))
	return nil
}

// Get retrieves a company by its ID.
func (s *CompanyService) Get(ctx context.Context, id int64) (*types.Company, error) {
	return s.companies.GetByID(ctx, id)
}

// Search finds companies whose name contains term, ignoring case and diacritics.
func (s *CompanyService) Search(ctx context.Context, term string, limit int) ([]*types.Company, error) {
	if limit <= 0 || limit > DefaultSearchLimit {
		limit = DefaultSearchLimit
	}

	folded := utils.FoldName(term)
	if strings.TrimSpace(folded) == "" {
		return []*types.Company{}, nil
	}

	return s.companies.Search(ctx, folded, limit)
}

// List returns a page of companies ordered by name.
func (s *CompanyService) List(ctx context.Context, limit, offset int) ([]*types.Company, error) {
	return s.companies.List(ctx, limit, offset)
}

// Detail gathers the scores, stars and per-kind summaries of a company.
func (s *CompanyService) Detail(ctx context.Context, id int64) (*types.CompanyDetail, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.items.Summaries(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &types.CompanyDetail{
		Company: company,
		Scores:  company.Display(),
		Items:   items,
	}
	if detail.Scores != nil {
		detail.Stars = rating.SplitAll(detail.Scores.ByDimension())
	}

	return detail, nil
}

