// Package ratelimiter throttles calls to rate-limited external APIs.
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Limiter blocks until another call is allowed.
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter allows at most limit calls per fixed interval window.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // calls allowed per window
	interval  time.Duration // window length
	count     int
	lastReset time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter creates a RateLimiter. A non-positive limit disables throttling.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
		sleep:     sleepContext,
	}
}

// Wait counts one call and sleeps until the next window when the limit is hit.
// It returns ctx.Err() if the context ends while sleeping.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limit <= 0 {
		return nil
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count <= rl.limit {
		return nil
	}

	if d := rl.interval - now.Sub(rl.lastReset); d > 0 {
		slog.Info("rate limit reached, waiting", "limit", rl.limit, "wait", d)
		if err := rl.sleep(ctx, d); err != nil {
			rl.count--
			return err
		}
	}
	rl.count = 1
	rl.lastReset = rl.now()
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
