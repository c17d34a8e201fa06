package ports

import (
	"context"
	"time"
)

// RunLock serialises a named job across processes.
type RunLock interface {
	// Acquire returns ok=false without error when the lock is held elsewhere.
	// The returned token must be passed to Release.
	Acquire(ctx context.Context, name string, ttl time.Duration) (token string, ok bool, err error)
	Release(ctx context.Context, name, token string) error
}
