package ratelimit

import (
	"context"
	"time"
)

// Store is the counter backend for the fixed-window limiter. MemoryStore
// serves single-instance deployments; RedisStore shares the window across
// instances.
type Store interface {
	// Incr bumps the counter for key, starting a fresh window when the
	// previous one has expired, and returns the count within the window.
	Incr(ctx context.Context, key string, window time.Duration) (int, error)

	// Close releases resources.
	Close() error
}

// Limiter bounds generation requests per account to limit per window.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
}

func New(store Store, limit int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
	}
}

// Allow reports whether the account may make another request in the current
// window. The limiter is advisory: on a store error the request is allowed.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		return true, err
	}
	return count <= l.limit, nil
}

func (l *Limiter) Close() error {
	return l.store.Close()
}
