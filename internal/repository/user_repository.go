package repository

import (
	"context"

	"github.com/fpemc/crm-api/internal/domain"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListCommercials returns the enabled users holding a sales role, optionally
// limited to one agency
func (r *UserRepository) ListCommercials(ctx context.Context, companyID *uint) ([]domain.User, error) {
	var users []domain.User
	query := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Where("role IN ?", domain.CommercialRoles)
	err := ApplyCompanyFilter(query, companyID).
		Order("lastname ASC, firstname ASC, id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListIDsByCompany returns the ids of every user affiliated with the agency
func (r *UserRepository) ListIDsByCompany(ctx context.Context, companyID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("company_id = ?", companyID).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
