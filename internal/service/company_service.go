package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fpemc/crm-api/internal/domain"
	"github.com/fpemc/crm-api/internal/mapper"
	"github.com/fpemc/crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompanyService handles business logic for companies
type CompanyService struct {
	companyRepo *repository.CompanyRepository
	logger      *zap.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo *repository.CompanyRepository, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// List returns the companies with their reporting entity. Inactive agencies
// are included when includeInactive is set.
func (s *CompanyService) List(ctx context.Context, includeInactive bool) ([]domain.CompanyDTO, error) {
	companies, err := s.companyRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	dtos := make([]domain.CompanyDTO, len(companies))
	for i := range companies {
		dtos[i] = mapper.ToCompanyDTO(&companies[i])
	}
	return dtos, nil
}

// GetByID retrieves a company by its ID
func (s *CompanyService) GetByID(ctx context.Context, id uint) (*domain.CompanyDTO, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	dto := mapper.ToCompanyDTO(company)
	return &dto, nil
}
