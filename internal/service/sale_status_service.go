package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fpemc/crm-api/internal/domain"
	"github.com/fpemc/crm-api/internal/repository"
	"go.uber.org/zap"
)

// SaleStatusService handles automatic status transitions of sales
type SaleStatusService struct {
	saleRepo             *repository.SaleRepository
	defaultThresholdDays int
	now                  func() time.Time
	logger               *zap.Logger
}

// NewSaleStatusService creates a new SaleStatusService. Promotions called
// without a threshold use defaultThreshold.
func NewSaleStatusService(saleRepo *repository.SaleRepository, defaultThreshold time.Duration, logger *zap.Logger) *SaleStatusService {
	return &SaleStatusService{
		saleRepo:             saleRepo,
		defaultThresholdDays: int(defaultThreshold / (24 * time.Hour)),
		now:                  time.Now,
		logger:               logger,
	}
}

// PromoteStaleFdr moves sales that have waited for their FDR for at least
// thresholdDays to awaiting installation. Zero selects the default threshold.
func (s *SaleStatusService) PromoteStaleFdr(ctx context.Context, thresholdDays int) (*domain.FdrPromotionResultDTO, error) {
	if thresholdDays <= 0 {
		thresholdDays = s.defaultThresholdDays
	}
	cutoff := s.now().UTC().AddDate(0, 0, -thresholdDays)

	updated, err := s.saleRepo.PromoteStaleFdr(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to promote stale FDR sales: %w", err)
	}

	s.logger.Info("promoted stale FDR sales",
		zap.Int64("updated", updated),
		zap.Int("threshold_days", thresholdDays),
		zap.Time("created_before", cutoff),
	)

	return &domain.FdrPromotionResultDTO{
		Updated:       updated,
		ThresholdDays: thresholdDays,
		CreatedBefore: cutoff.Format(time.RFC3339),
		FromStatus:    string(domain.SaleStatusAwaitingFdr),
		ToStatus:      string(domain.SaleStatusAwaitingInstall),
	}, nil
}
