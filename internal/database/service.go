package database

import (
	"github.com/pracor/pracor/internal/database/service"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Service provides access to all business logic services.
type Service struct {
	score    *service.ScoreService
	position *service.PositionService
	company  *service.CompanyService
	item     *service.ItemService
}

// NewService creates a new service instance with all services.
func NewService(db *bun.DB, repository *Repository, logger *zap.Logger) *Service {
	companyModel := repository.Company()
	positionModel := repository.Position()
	requestModel := repository.CompanyRequest()

	scoreService := service.NewScore(db, companyModel, repository.Review(), logger)
	itemService := service.NewItem(
		db, companyModel, repository.Review(), repository.Salary(), repository.Interview(), scoreService, logger,
	)

	return &Service{
		score:    scoreService,
		position: service.NewPosition(db, positionModel, companyModel, requestModel, logger),
		company:  service.NewCompany(db, companyModel, positionModel, requestModel, itemService, logger),
		item:     itemService,
	}
}

// Score returns the score service.
func (s *Service) Score() *service.ScoreService {
	return s.score
}

// Position returns the position service.
func (s *Service) Position() *service.PositionService {
	return s.position
}

// Company returns the company service.
func (s *Service) Company() *service.CompanyService {
	return s.company
}

// Item returns the item service.
func (s *Service) Item() *service.ItemService {
	return s.item
}
