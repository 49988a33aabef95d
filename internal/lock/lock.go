// Package lock serializes admission decisions per auditorium. RedisLocker
// coordinates several server instances; LocalLocker covers a single process
// when Redis is unavailable.
package lock

import (
	"context"
	"errors"
)

// ErrLockTimeout is returned when a venue lock could not be taken within the
// configured wait.
var ErrLockTimeout = errors.New("timed out waiting for venue lock")

// Release gives up a held lock. It is safe to call more than once.
type Release func() error

// Locker hands out exclusive per-venue locks.
type Locker interface {
	Acquire(ctx context.Context, venueID string) (Release, error)
}
