// Package lock keeps dispatch runs from overlapping.
package lock

import (
	"context"
	"sync"

	"fuelwatch/internal/domain/service"
)

// localLocker serializes runs inside one process
type localLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLocalLocker creates an in-process run locker
func NewLocalLocker() service.RunLocker {
	return &localLocker{held: make(map[string]struct{})}
}

// TryAcquire takes the named lock without waiting
func (l *localLocker) TryAcquire(_ context.Context, name string) (service.ReleaseFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.held[name]; busy {
		return nil, service.ErrLockNotAcquired
	}
	l.held[name] = struct{}{}

	var once sync.Once

	return func(context.Context) error {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, name)
			l.mu.Unlock()
		})

		return nil
	}, nil
}
