package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-scheduler/internal/config"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock that was re-acquired elsewhere is left alone.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
    return redis.call('DEL', KEYS[1])
end
return 0
`)

// RedisLocker implements Locker with SET NX PX plus a token-checked delete.
type RedisLocker struct {
	rdb   redis.Cmdable
	cfg   config.LockConfig
	token func() string
}

// NewRedisLocker returns a locker storing one key per venue under cfg.Prefix.
// Keys expire after cfg.TTL so a crashed holder cannot block a venue forever.
func NewRedisLocker(rdb redis.Cmdable, cfg config.LockConfig) *RedisLocker {
	return &RedisLocker{rdb: rdb, cfg: cfg, token: uuid.NewString}
}

func (l *RedisLocker) key(venueID string) string {
	return l.cfg.Prefix + ":" + venueID
}

// Acquire polls every cfg.Poll until the key is set or cfg.Wait elapses.
func (l *RedisLocker) Acquire(ctx context.Context, venueID string) (Release, error) {
	key := l.key(venueID)
	token := l.token()
	deadline := time.Now().Add(l.cfg.Wait)

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.cfg.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("venue lock %s: %w", venueID, err)
		}
		if ok {
			return l.release(key, token), nil
		}
		if !time.Now().Before(deadline) {
			return nil, ErrLockTimeout
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.cfg.Poll):
		}
	}
}

func (l *RedisLocker) release(key, token string) Release {
	var once sync.Once
	var err error
	return func() error {
		once.Do(func() {
			// request context may already be cancelled here
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			err = releaseScript.Run(ctx, l.rdb, []string{key}, token).Err()
		})
		return err
	}
}
