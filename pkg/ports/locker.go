package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker coordinates access to a snapshot across processes, so two
// runs resuming the same id do not interleave their load-run-save cycles.
type DistributedLocker interface {
	// Lock blocks until the lock for key is held or ctx is done.
	// The returned UnlockFunc MUST be called to release it. ttl bounds how
	// long a crashed holder keeps the lock; implementations renew it while
	// the holder is alive.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
