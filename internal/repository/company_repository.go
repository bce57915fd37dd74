package repository

import (
	"context"

	"github.com/fpemc/crm-api/internal/domain"
	"gorm.io/gorm"
)

// CompanyRepository reads the agencies of the network
type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uint) (*domain.Company, error) {
	var company domain.Company
	if err := r.db.WithContext(ctx).Take(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// List returns the agencies ordered by name. Closed agencies are left out
// unless includeInactive is set.
func (r *CompanyRepository) List(ctx context.Context, includeInactive bool) ([]domain.Company, error) {
	query := r.db.WithContext(ctx).Model(&domain.Company{})
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var companies []domain.Company
	if err := query.Order("name ASC").Order("id ASC").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}
