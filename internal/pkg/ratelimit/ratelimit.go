package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Store counts events inside an expiring window. Incr returns the count
// after incrementing; the key carries the window identity so counters reset
// naturally when the window label changes.
type Store interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Limiter enforces a fixed quota per clock hour per bucket.
type Limiter struct {
	store Store
	limit int64
}

func NewLimiter(store Store, limit int64) *Limiter {
	return &Limiter{store: store, limit: limit}
}

// Allow increments the bucket's counter for the current hour and reports
// whether the quota still holds. A limit of zero or less disables the check.
func (l *Limiter) Allow(ctx context.Context, bucket string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}

	key := HourKey(bucket, time.Now())
	// keep the counter around past the window edge for inspection
	n, err := l.store.Incr(ctx, key, 2*time.Hour)
	if err != nil {
		return false, err
	}
	return n <= l.limit, nil
}

// HourKey labels a bucket with its wall-clock hour, e.g.
// "assist:anthropic:2026083114".
func HourKey(bucket string, t time.Time) string {
	return fmt.Sprintf("%s:%s", bucket, t.UTC().Format("2006010215"))
}
