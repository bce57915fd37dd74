// Package jobs runs the periodic maintenance tasks of the CRM API on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler wraps a cron runner and keeps track of the registered jobs by name.
type Scheduler struct {
	cron    *cron.Cron
	logger  *zap.Logger
	mu      sync.Mutex
	entries map[string]cron.EntryID
}

// NewScheduler builds a scheduler whose expressions accept an optional seconds field.
// A job still running when its next tick fires is skipped, and panics are recovered.
func NewScheduler(logger *zap.Logger) *Scheduler {
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	cronLogger := cron.VerbosePrintfLogger(zap.NewStdLog(logger.Named("cron")))

	return &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithChain(
				cron.Recover(cronLogger),
				cron.SkipIfStillRunning(cronLogger),
			),
		),
		logger:  logger,
		entries: make(map[string]cron.EntryID),
	}
}

func (s *Scheduler) Start() {
	s.logger.Info("starting job scheduler", zap.Int("jobs", len(s.JobNames())))
	s.cron.Start()
}

// Stop halts the scheduling of new runs. The returned context is done once
// the runs already in flight have returned.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("stopping job scheduler")
	return s.cron.Stop()
}

// AddJob schedules fn under name. Both "0 30 3 * * *" and "30 3 * * *" are
// accepted, as are descriptors such as "@daily" or "@every 6h".
func (s *Scheduler) AddJob(name, cronExpr string, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[name]; exists {
		return fmt.Errorf("job %s already registered", name)
	}

	id, err := s.cron.AddFunc(cronExpr, func() {
		s.logger.Debug("running scheduled job", zap.String("job", name))
		fn()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}

	s.entries[name] = id
	s.logger.Info("scheduled job",
		zap.String("job", name),
		zap.String("cron", cronExpr))

	return nil
}

func (s *Scheduler) RemoveJob(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, exists := s.entries[name]
	if !exists {
		return fmt.Errorf("job %s not registered", name)
	}

	s.cron.Remove(id)
	delete(s.entries, name)
	s.logger.Info("removed scheduled job", zap.String("job", name))

	return nil
}

// JobNames lists the registered jobs in alphabetical order.
func (s *Scheduler) JobNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
