package lock

import (
	"context"
	"sync"
	"time"
)

type venueLock struct {
	sem  chan struct{}
	refs int
}

// LocalLocker is an in-process Locker. Entries are dropped once no caller
// holds or waits on them.
type LocalLocker struct {
	mu     sync.Mutex
	venues map[string]*venueLock
	wait   time.Duration
}

// NewLocalLocker returns an in-process locker. wait bounds how long Acquire
// blocks; with zero a busy venue fails at once with ErrLockTimeout.
func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{venues: make(map[string]*venueLock), wait: wait}
}

// Acquire blocks until venueID is free, the wait elapses (ErrLockTimeout) or
// ctx is done. The returned Release is safe to call more than once.
func (l *LocalLocker) Acquire(ctx context.Context, venueID string) (Release, error) {
	vl := l.ref(venueID)
	if err := l.take(ctx, vl); err != nil {
		l.unref(venueID)
		return nil, err
	}

	var once sync.Once
	return func() error {
		once.Do(func() {
			<-vl.sem
			l.unref(venueID)
		})
		return nil
	}, nil
}

func (l *LocalLocker) take(ctx context.Context, vl *venueLock) error {
	select {
	case vl.sem <- struct{}{}:
		return nil
	default:
	}
	if l.wait <= 0 {
		return ErrLockTimeout
	}
	timer := time.NewTimer(l.wait)
	defer timer.Stop()
	select {
	case vl.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrLockTimeout
	}
}

func (l *LocalLocker) ref(venueID string) *venueLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	vl, ok := l.venues[venueID]
	if !ok {
		vl = &venueLock{sem: make(chan struct{}, 1)}
		l.venues[venueID] = vl
	}
	vl.refs++
	return vl
}

func (l *LocalLocker) unref(venueID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	vl := l.venues[venueID]
	vl.refs--
	if vl.refs == 0 {
		delete(l.venues, venueID)
	}
}

func (l *LocalLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.venues)
}
