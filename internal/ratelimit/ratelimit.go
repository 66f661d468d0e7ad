package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for rate limiting
type Limiter interface {
	Allow(key string) bool
	Wait(ctx context.Context, key string) error
}

// InMemoryLimiter keeps one token bucket per key, e.g. per image host
type InMemoryLimiter struct {
	keys map[string]*rate.Limiter
	mu   sync.Mutex
	r    rate.Limit // Rate of adding tokens
	b    int        // Bucket size
}

// NewInMemoryLimiter creates a new rate limiter
// Example: NewInMemoryLimiter(4, time.Second, 2) -> 4 requests per second per key, burst of 2
func NewInMemoryLimiter(requests int, per time.Duration, burst int) *InMemoryLimiter {
	r := rate.Inf
	if requests > 0 {
		r = rate.Every(per / time.Duration(requests))
	}
	if burst < 1 {
		burst = 1
	}
	return &InMemoryLimiter{
		keys: make(map[string]*rate.Limiter),
		r:    r,
		b:    burst,
	}
}

var _ Limiter = (*InMemoryLimiter)(nil)

// Allow reports whether key may act now, consuming a token if so
func (l *InMemoryLimiter) Allow(key string) bool {
	return l.limiter(key).Allow()
}

// Wait blocks until key may act or ctx is done
func (l *InMemoryLimiter) Wait(ctx context.Context, key string) error {
	return l.limiter(key).Wait(ctx)
}

func (l *InMemoryLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.keys[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.keys[key] = limiter
	}
	return limiter
}
