package jobs_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fpemc/crm-api/internal/domain"
	"github.com/fpemc/crm-api/internal/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubPromoter struct {
	mu       sync.Mutex
	calls    []int
	deadline bool
	err      error
}

func (p *stubPromoter) PromoteStaleFdr(ctx context.Context, thresholdDays int) (*domain.FdrPromotionResultDTO, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = append(p.calls, thresholdDays)
	_, p.deadline = ctx.Deadline()
	if p.err != nil {
		return nil, p.err
	}
	return &domain.FdrPromotionResultDTO{
		Updated:       3,
		ThresholdDays: 14,
		CreatedBefore: "2024-11-06T00:00:00Z",
		FromStatus:    string(domain.SaleStatusAwaitingFdr),
		ToStatus:      string(domain.SaleStatusAwaitingInstall),
	}, nil
}

func (p *stubPromoter) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func TestFdrPromotionJob_Run(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	promoter := &stubPromoter{}

	jobs.NewFdrPromotionJob(promoter, zap.New(core), time.Minute).Run()

	require.Equal(t, []int{0}, promoter.calls)
	assert.True(t, promoter.deadline)

	entries := logs.FilterMessage("fdr promotion job completed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].ContextMap()["updated"])
}

func TestFdrPromotionJob_Run_Error(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	promoter := &stubPromoter{err: errors.New("connection refused")}

	jobs.NewFdrPromotionJob(promoter, zap.New(core), time.Minute).Run()

	assert.Equal(t, 1, logs.FilterMessage("fdr promotion job failed").Len())
	assert.Zero(t, logs.FilterMessage("fdr promotion job completed").Len())
}

func TestRegisterFdrPromotionJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	promoter := &stubPromoter{}

	err := jobs.RegisterFdrPromotionJob(s, promoter, zap.NewNop(), "0 0 4 * * *", time.Minute, false)

	require.NoError(t, err)
	assert.Equal(t, []string{jobs.FdrPromotionJobName}, s.JobNames())
	assert.Zero(t, promoter.callCount())
}

func TestRegisterFdrPromotionJob_RunOnStartup(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	promoter := &stubPromoter{}

	err := jobs.RegisterFdrPromotionJob(s, promoter, zap.NewNop(), "@daily", time.Minute, true)

	require.NoError(t, err)
	assert.Eventually(t, func() bool { return promoter.callCount() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestRegisterFdrPromotionJob_InvalidCron(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	promoter := &stubPromoter{}

	err := jobs.RegisterFdrPromotionJob(s, promoter, zap.NewNop(), "every tuesday", time.Minute, true)

	require.Error(t, err)
	assert.Never(t, func() bool { return promoter.callCount() > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}
