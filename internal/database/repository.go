package database

import (
	"github.com/pracor/pracor/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	user           *models.UserModel
	company        *models.CompanyModel
	companyRequest *models.CompanyRequestModel
	position       *models.PositionModel
	review         *models.ReviewModel
	salary         *models.SalaryModel
	interview      *models.InterviewModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		user:           models.NewUser(db, logger),
		company:        models.NewCompany(db, logger),
		companyRequest: models.NewCompanyRequest(db, logger),
		position:       models.NewPosition(db, logger),
		review:         models.NewReview(db, logger),
		salary:         models.NewSalary(db, logger),
		interview:      models.NewInterview(db, logger),
	}
}

// User returns the user model repository.
func (r *Repository) User() *models.UserModel {
	return r.user
}

// Company returns the company model repository.
func (r *Repository) Company() *models.CompanyModel {
	return r.company
}

// CompanyRequest returns the company request model repository.
func (r *Repository) CompanyRequest() *models.CompanyRequestModel {
	return r.companyRequest
}

// Position returns the position model repository.
func (r *Repository) Position() *models.PositionModel {
	return r.position
}

// Review returns the review model repository.
func (r *Repository) Review() *models.ReviewModel {
	return r.review
}

// Salary returns the salary model repository.
func (r *Repository) Salary() *models.SalaryModel {
	return r.salary
}

// Interview returns the interview model repository.
func (r *Repository) Interview() *models.InterviewModel {
	return r.interview
}
