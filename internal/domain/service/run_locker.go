package service

import (
	"context"

	"github.com/pkg/errors"
)

// ErrLockNotAcquired is returned when another process already holds the lock
var ErrLockNotAcquired = errors.New("lock is held by another run")

// ReleaseFunc releases a previously acquired lock
type ReleaseFunc func(ctx context.Context) error

// RunLocker prevents overlapping dispatch runs
type RunLocker interface {
	// TryAcquire takes the named lock without waiting, or returns ErrLockNotAcquired
	TryAcquire(ctx context.Context, name string) (ReleaseFunc, error)
}
