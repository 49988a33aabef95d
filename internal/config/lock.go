package config

import "time"

// LockConfig tunes the per-auditorium admission lock and the retry loop that
// wraps check-then-insert.
type LockConfig struct {
	Prefix   string        // Redis key prefix, e.g. "lock:venue"
	TTL      time.Duration // how long a held lock survives a crashed holder
	Wait     time.Duration // how long Acquire polls before giving up
	Poll     time.Duration // delay between acquisition attempts
	Attempts int           // admission attempts on storage-level duplicates
}

// LoadLockConfig reads the VENUE_LOCK_* keys and ADMISSION_ATTEMPTS.
func LoadLockConfig() LockConfig {
	c := LockConfig{
		Prefix:   envStr("VENUE_LOCK_PREFIX", "lock:venue"),
		TTL:      envDur("VENUE_LOCK_TTL", 10*time.Second),
		Wait:     envDur("VENUE_LOCK_WAIT", 3*time.Second),
		Poll:     envDur("VENUE_LOCK_POLL", 50*time.Millisecond),
		Attempts: envInt("ADMISSION_ATTEMPTS", 3),
	}
	if c.Attempts < 1 {
		c.Attempts = 1
	}
	if c.Poll <= 0 {
		c.Poll = 50 * time.Millisecond
	}
	return c
}
