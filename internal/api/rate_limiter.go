package api

import (
	"sync"
	"time"
)

const (
	chatRateLimitWindow = time.Minute
	chatRateLimitMax    = 10
)

// rateLimiter is a per-key sliding window over recent request times.
type rateLimiter struct {
	mu       sync.Mutex
	requests map[uint][]time.Time
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{
		requests: make(map[uint][]time.Time),
	}
}

// allow records the request and reports whether it fits the window,
// returning the remaining budget.
func (limiter *rateLimiter) allow(key uint, now time.Time, limit int, window time.Duration) (bool, int) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	pruned := limiter.pruneLocked(key, now, window)
	if len(pruned) >= limit {
		return false, 0
	}

	pruned = append(pruned, now)
	limiter.requests[key] = pruned
	return true, limit - len(pruned)
}

func (limiter *rateLimiter) pruneLocked(key uint, now time.Time, window time.Duration) []time.Time {
	values := limiter.requests[key]
	if len(values) == 0 {
		return []time.Time{}
	}

	threshold := now.Add(-window)
	pruned := make([]time.Time, 0, len(values))
	for _, value := range values {
		if value.After(threshold) {
			pruned = append(pruned, value)
		}
	}

	if len(pruned) == 0 {
		delete(limiter.requests, key)
		return []time.Time{}
	}

	limiter.requests[key] = pruned
	return pruned
}
