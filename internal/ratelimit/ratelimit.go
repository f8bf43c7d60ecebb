package ratelimit

import (
	"context"
	"time"
)

type Result struct {
	Allowed   bool
	Count     int
	Remaining int
}

// Limiter keeps sliding-window request counters shared by every request
// handled by the process (or, for the Redis limiter, by every process).
type Limiter interface {
	// Allow records a hit under key unless limit hits already happened inside
	// window. A rejected hit is not recorded.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error)

	// Hit records an unconditional hit and returns the hits inside window.
	Hit(ctx context.Context, key string, window time.Duration) (int, error)
}

func result(allowed bool, count, limit int) Result {
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{Allowed: allowed, Count: count, Remaining: remaining}
}
