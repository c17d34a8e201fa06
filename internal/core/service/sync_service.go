package service

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/openaero/platform/internal/core/domain"
	"github.com/openaero/platform/internal/core/ports"
)

const (
	syncLockName       = "rating-sync"
	defaultSyncWorkers = 8
	defaultSyncLockTTL = 10 * time.Minute
)

// SyncService recomputes each solution's rating from its reviews. Runs are
// serialised through a RunLock so overlapping scheduler calls do not race.
type SyncService struct {
	solutions ports.SolutionRepository
	reviews   ports.ReviewRepository
	lock      ports.RunLock
	workers   int
	lockTTL   time.Duration
	log       zerolog.Logger
}

// NewSyncService returns a SyncService. Non-positive workers or lockTTL fall
// back to defaults.
func NewSyncService(
	solutions ports.SolutionRepository,
	reviews ports.ReviewRepository,
	lock ports.RunLock,
	workers int,
	lockTTL time.Duration,
	log zerolog.Logger,
) *SyncService {
	if workers <= 0 {
		workers = defaultSyncWorkers
	}
	if lockTTL <= 0 {
		lockTTL = defaultSyncLockTTL
	}
	return &SyncService{
		solutions: solutions,
		reviews:   reviews,
		lock:      lock,
		workers:   workers,
		lockTTL:   lockTTL,
		log:       log,
	}
}

// Run performs one sync. Per-solution failures are counted in the report and
// do not abort the run.
func (s *SyncService) Run(ctx context.Context) (*ports.SyncReport, error) {
	token, ok, err := s.lock.Acquire(ctx, syncLockName, s.lockTTL)
	if err != nil {
		return nil, domain.Upstream("同步锁不可用", err)
	}
	if !ok {
		return nil, domain.ErrSyncInProgress
	}
	defer func() {
		// Release even if the request was cancelled mid-run.
		if err := s.lock.Release(context.WithoutCancel(ctx), syncLockName, token); err != nil {
			s.log.Warn().Err(err).Msg("failed to release sync lock")
		}
	}()

	started := time.Now()
	ids, err := s.solutions.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("sync: list solutions: %w", err)
	}

	var updated, failed, scanned atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			avg, count, err := s.reviews.AggregateRating(gctx, id)
			if err != nil {
				failed.Add(1)
				s.log.Warn().Err(err).Str("solution_id", id).Msg("rating aggregate failed")
				return nil
			}
			if err := s.solutions.UpdateRating(gctx, id, roundRating(avg), count); err != nil {
				failed.Add(1)
				s.log.Warn().Err(err).Str("solution_id", id).Msg("rating update failed")
				return nil
			}
			updated.Add(1)
			scanned.Add(int64(count))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sync: %w", err)
	}

	report := &ports.SyncReport{
		StartedAt:      started.UTC(),
		Solutions:      len(ids),
		Updated:        updated.Load(),
		Failed:         failed.Load(),
		ReviewsScanned: scanned.Load(),
		DurationMs:     time.Since(started).Milliseconds(),
	}

	s.log.Info().
		Int("solutions", report.Solutions).
		Int64("updated", report.Updated).
		Int64("failed", report.Failed).
		Int64("duration_ms", report.DurationMs).
		Msg("rating sync finished")
	return report, nil
}

// roundRating keeps two decimals.
func roundRating(avg float64) float64 {
	return math.Round(avg*100) / 100
}
