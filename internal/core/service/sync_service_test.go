package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/openaero/platform/internal/core/domain"
)

func TestSyncService_Run_UpdatesRatings(t *testing.T) {
	sols := newStubSolutionRepo(
		&domain.Solution{ID: "s1"},
		&domain.Solution{ID: "s2"},
		&domain.Solution{ID: "s3"},
	)
	reviews := &stubReviewRepo{ratings: map[string][]int{
		"s1": {5, 4, 4},
		"s2": {3},
	}}
	lock := &stubLock{}
	svc := NewSyncService(sols, reviews, lock, 2, 0, zerolog.Nop())

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Solutions != 3 || report.Updated != 3 || report.Failed != 0 {
		t.Errorf("unexpected report: %+v", report)
	}
	if report.ReviewsScanned != 4 {
		t.Errorf("expected 4 reviews scanned, got %d", report.ReviewsScanned)
	}
	if sols.ratings["s1"] != 4.33 || sols.counts["s1"] != 3 {
		t.Errorf("s1: got avg=%v count=%d", sols.ratings["s1"], sols.counts["s1"])
	}
	if sols.ratings["s3"] != 0 || sols.counts["s3"] != 0 {
		t.Errorf("s3 without reviews should be zeroed, got avg=%v count=%d", sols.ratings["s3"], sols.counts["s3"])
	}
	if len(lock.released) != 1 || lock.held {
		t.Errorf("expected lock released once")
	}
}

func TestSyncService_Run_PartialFailure(t *testing.T) {
	sols := newStubSolutionRepo(&domain.Solution{ID: "s1"}, &domain.Solution{ID: "s2"})
	sols.updateErr["s2"] = errors.New("write conflict")
	reviews := &stubReviewRepo{ratings: map[string][]int{"s1": {5}, "s2": {1}}}
	svc := NewSyncService(sols, reviews, &stubLock{}, 4, 0, zerolog.Nop())

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Updated != 1 || report.Failed != 1 {
		t.Errorf("expected 1 updated and 1 failed, got %+v", report)
	}
}

func TestSyncService_Run_LockHeld(t *testing.T) {
	svc := NewSyncService(newStubSolutionRepo(), &stubReviewRepo{}, &stubLock{held: true}, 1, 0, zerolog.Nop())

	_, err := svc.Run(context.Background())
	if !errors.Is(err, domain.ErrSyncInProgress) {
		t.Fatalf("expected ErrSyncInProgress, got %v", err)
	}
}

func TestSyncService_Run_LockUnavailable(t *testing.T) {
	lock := &stubLock{acquireErr: errors.New("connection refused")}
	svc := NewSyncService(newStubSolutionRepo(), &stubReviewRepo{}, lock, 1, 0, zerolog.Nop())

	_, err := svc.Run(context.Background())
	if domain.KindOf(err) != domain.KindUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestSyncService_Run_ListFailureReleasesLock(t *testing.T) {
	sols := newStubSolutionRepo()
	sols.listErr = errors.New("boom")
	lock := &stubLock{}
	svc := NewSyncService(sols, &stubReviewRepo{}, lock, 1, 0, zerolog.Nop())

	if _, err := svc.Run(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if lock.held {
		t.Errorf("lock must be released after a failed run")
	}
}
