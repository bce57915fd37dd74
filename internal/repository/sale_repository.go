package repository

import (
	"context"
	"errors"
	"time"

	"github.com/fpemc/crm-api/internal/domain"
	"gorm.io/gorm"
)

// SaleFilter narrows the sales returned by List. Zero values apply no filter.
type SaleFilter struct {
	CompanyID *uint
	// UserID matches the primary seller, the legacy additional seller and the
	// additional sellers list
	UserID *uint
	From   *time.Time
	To     *time.Time
}

// SaleRepository handles database operations for sales
type SaleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new SaleRepository
func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// Create inserts a sale together with its sellers and items
func (r *SaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	return r.db.WithContext(ctx).Omit("Company", "Customer").Create(sale).Error
}

// GetByID retrieves a sale with the associations used by the statistics
func (r *SaleRepository) GetByID(ctx context.Context, id uint) (*domain.Sale, error) {
	var sale domain.Sale
	err := r.withAssociations(r.db.WithContext(ctx)).First(&sale, "sales.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// List returns the sales matching the filter ordered by creation date.
// Sales without a creation date are included unless a date bound is set.
func (r *SaleRepository) List(ctx context.Context, filter SaleFilter) ([]domain.Sale, error) {
	var sales []domain.Sale

	query := r.withAssociations(r.db.WithContext(ctx).Model(&domain.Sale{}))
	query = ApplyCompanyFilterWithColumn(query, filter.CompanyID, "sales.company_id")
	query = ApplyDateRange(query, "sales.created_date", filter.From, filter.To)

	if filter.UserID != nil {
		credited := r.db.Model(&domain.SaleSeller{}).Select("sale_id").Where("user_id = ?", *filter.UserID)
		query = query.Where(
			r.db.Where("sales.primary_seller_id = ?", *filter.UserID).
				Or("sales.additional_seller_id = ?", *filter.UserID).
				Or("sales.id IN (?)", credited),
		)
	}

	err := query.Order("sales.created_date ASC, sales.id ASC").Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

// PromoteStaleFdr moves sales waiting for their FDR since before the cutoff to
// awaiting installation. Historical labels of the status are matched too.
func (r *SaleRepository) PromoteStaleFdr(ctx context.Context, createdBefore time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Sale{}).
		Where("LOWER(status) IN ?", []string{string(domain.SaleStatusAwaitingFdr), "en attente fdr"}).
		Where("created_date IS NOT NULL AND created_date <= ?", createdBefore.UTC()).
		Updates(map[string]interface{}{
			"status":     domain.SaleStatusAwaitingInstall,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// LatestCreatedDate returns the creation date of the most recent sale, or nil
// when no dated sale exists
func (r *SaleRepository) LatestCreatedDate(ctx context.Context, companyID *uint) (*time.Time, error) {
	var sale domain.Sale
	query := r.db.WithContext(ctx).
		Model(&domain.Sale{}).
		Select("id", "created_date").
		Where("created_date IS NOT NULL")
	err := ApplyCompanyFilter(query, companyID).
		Order("created_date DESC").
		Take(&sale).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sale.CreatedDate, nil
}

// CountUndated counts the sales that have no creation date
func (r *SaleRepository) CountUndated(ctx context.Context, companyID *uint) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Sale{}).Where("created_date IS NULL")
	err := ApplyCompanyFilter(query, companyID).Count(&count).Error
	return count, err
}

func (r *SaleRepository) withAssociations(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Company").
		Preload("AdditionalSellers", func(db *gorm.DB) *gorm.DB {
			return db.Order("added_at ASC, id ASC")
		}).
		Preload("Items.Service").
		Preload("Items.Package")
}
