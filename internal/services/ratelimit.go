package services

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter caps calls per key over a rolling window. Each key gets its
// own limiter with burst max, refilling evenly across the window.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{limiters: make(map[string]*rate.Limiter)}
}

// Allow reports whether one more call under key fits within max per window.
// The bucket refills evenly across the window rather than resetting at
// window boundaries, so after a full burst the next call is admitted after
// window/max instead of a whole window.
func (r *RateLimiter) Allow(key string, max int, window time.Duration) bool {
	if max <= 0 {
		return false
	}

	r.mu.Lock()
	lim, ok := r.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Every(window/time.Duration(max)), max)
		r.limiters[key] = lim
	}
	r.mu.Unlock()

	return lim.Allow()
}
