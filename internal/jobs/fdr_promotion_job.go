package jobs

import (
	"context"
	"time"

	"github.com/fpemc/crm-api/internal/domain"
	"go.uber.org/zap"
)

// FdrPromotionJobName identifies the FDR promotion job in the scheduler
const FdrPromotionJobName = "fdr_promotion"

// FdrPromoter is the part of the sale status service the job depends on.
type FdrPromoter interface {
	// PromoteStaleFdr moves sales that stayed in the FDR status longer than
	// thresholdDays to awaiting install. Zero uses the configured default.
	PromoteStaleFdr(ctx context.Context, thresholdDays int) (*domain.FdrPromotionResultDTO, error)
}

// FdrPromotionJob periodically validates the sales still waiting on their
// withdrawal period.
type FdrPromotionJob struct {
	promoter FdrPromoter
	logger   *zap.Logger
	timeout  time.Duration
}

func NewFdrPromotionJob(promoter FdrPromoter, logger *zap.Logger, timeout time.Duration) *FdrPromotionJob {
	return &FdrPromotionJob{
		promoter: promoter,
		logger:   logger,
		timeout:  timeout,
	}
}

// Run performs one promotion pass bounded by the job timeout.
func (j *FdrPromotionJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	result, err := j.promoter.PromoteStaleFdr(ctx, 0)
	if err != nil {
		j.logger.Error("fdr promotion job failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("fdr promotion job completed",
		zap.Int64("updated", result.Updated),
		zap.Int("threshold_days", result.ThresholdDays),
		zap.String("created_before", result.CreatedBefore),
		zap.Duration("duration", time.Since(start)))
}

// RegisterFdrPromotionJob adds the promotion job to the scheduler. With
// runOnStartup a first pass starts in the background so the API does not wait on it.
func RegisterFdrPromotionJob(scheduler *Scheduler, promoter FdrPromoter, logger *zap.Logger, cronExpr string, timeout time.Duration, runOnStartup bool) error {
	job := NewFdrPromotionJob(promoter, logger, timeout)

	if err := scheduler.AddJob(FdrPromotionJobName, cronExpr, job.Run); err != nil {
		return err
	}

	if runOnStartup {
		go job.Run()
	}
	return nil
}
