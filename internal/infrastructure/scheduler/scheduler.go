// Package scheduler runs the rating sync in-process for deployments without an
// external cron caller.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/openaero/platform/internal/core/domain"
	"github.com/openaero/platform/internal/core/ports"
)

const defaultRunTimeout = 15 * time.Minute

// Scheduler triggers SyncService.Run on a cron schedule. Overlapping ticks
// are skipped; cross-process overlap is prevented by the service's run lock.
type Scheduler struct {
	cron    *cron.Cron
	sync    ports.SyncService
	timeout time.Duration
	log     zerolog.Logger
	base    context.Context
}

// New parses spec (standard five-field cron or descriptors such as
// "@every 1h") and returns a stopped Scheduler.
func New(spec string, sync ports.SyncService, log zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		sync:    sync,
		timeout: defaultRunTimeout,
		log:     log,
		base:    context.Background(),
	}
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("scheduler: invalid schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start launches the scheduler. Runs started by it are cancelled with ctx;
// call Stop to wait for them.
func (s *Scheduler) Start(ctx context.Context) {
	s.base = ctx
	s.cron.Start()
	s.log.Info().Msg("sync scheduler started")
}

// Stop halts the schedule and blocks until an in-flight run returns.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("sync scheduler stopped")
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(s.base, s.timeout)
	defer cancel()
	s.runOnce(ctx)
}

func (s *Scheduler) runOnce(ctx context.Context) {
	report, err := s.sync.Run(ctx)
	switch {
	case err == nil:
		s.log.Info().
			Int("solutions", report.Solutions).
			Int64("updated", report.Updated).
			Int64("failed", report.Failed).
			Msg("scheduled sync finished")
	case domain.KindOf(err) == domain.KindConflict:
		s.log.Info().Msg("scheduled sync skipped, another run holds the lock")
	default:
		s.log.Error().Err(err).Msg("scheduled sync failed")
	}
}
