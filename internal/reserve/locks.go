package reserve

import (
	"context"
	"errors"
	"sync"
	"time"
)

var errLockWait = errors.New("lock wait timed out")

type partLock struct {
	ch   chan struct{} // cap 1, full while held
	refs int
}

// partLocks hands out one exclusive lock per part id. Reservations for
// different parts never touch each other's lock; reservations for the
// same part queue on it. Entries are dropped once nobody references
// them so the table stays proportional to live contention.
type partLocks struct {
	mu sync.Mutex
	m  map[int64]*partLock
}

func newPartLocks() *partLocks {
	return &partLocks{m: make(map[int64]*partLock)}
}

// acquire blocks until the part's lock is free, the context is done or
// wait elapses. The returned func releases the lock.
func (l *partLocks) acquire(ctx context.Context, partID int64, wait time.Duration) (func(), error) {
	l.mu.Lock()
	pl := l.m[partID]
	if pl == nil {
		pl = &partLock{ch: make(chan struct{}, 1)}
		l.m[partID] = pl
	}
	pl.refs++
	l.mu.Unlock()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case pl.ch <- struct{}{}:
		return func() {
			<-pl.ch
			l.unref(partID, pl)
		}, nil
	case <-ctx.Done():
		l.unref(partID, pl)
		return nil, ctx.Err()
	case <-timer.C:
		l.unref(partID, pl)
		return nil, errLockWait
	}
}

func (l *partLocks) unref(partID int64, pl *partLock) {
	l.mu.Lock()
	pl.refs--
	if pl.refs == 0 {
		delete(l.m, partID)
	}
	l.mu.Unlock()
}
