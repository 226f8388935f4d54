// Package ratelimit throttles form submissions per client IP.
package ratelimit

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/apperror"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyLimiter manages one token bucket per key (usually a client IP)
type KeyLimiter struct {
	mu       sync.Mutex
	limiters map[string]*entry
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// New allows perMinute events per key with the given burst. Non-positive
// values fall back to 6 per minute and a burst of 3.
func New(perMinute, burst int) *KeyLimiter {
	if perMinute <= 0 {
		perMinute = 6
	}
	if burst <= 0 {
		burst = 3
	}
	return &KeyLimiter{
		limiters: make(map[string]*entry),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow reports whether key may proceed and consumes a token if so.
func (l *KeyLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.limiters[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// Sweep forgets keys idle for longer than maxIdle and returns how many were
// removed.
func (l *KeyLimiter) Sweep(maxIdle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-maxIdle)
	removed := 0
	for key, e := range l.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(l.limiters, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys
func (l *KeyLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// Middleware rejects requests over the limit with 429, keyed by client IP.
// onLimited is called for every rejected request and may be nil.
func (l *KeyLimiter) Middleware(onLimited func(c echo.Context)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.RealIP()) {
				if onLimited != nil {
					onLimited(c)
				}
				return apperror.ErrRateLimited
			}
			return next(c)
		}
	}
}

// Registry hands out one KeyLimiter per form so each form has its own
// buckets while sharing the configured rate.
type Registry struct {
	mu        sync.Mutex
	limiters  map[string]*KeyLimiter
	perMinute int
	burst     int
}

func NewRegistry(perMinute, burst int) *Registry {
	return &Registry{
		limiters:  make(map[string]*KeyLimiter),
		perMinute: perMinute,
		burst:     burst,
	}
}

// For returns the limiter registered under name, creating it on first use.
func (r *Registry) For(name string) *KeyLimiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.limiters[name]
	if !ok {
		l = New(r.perMinute, r.burst)
		r.limiters[name] = l
	}
	return l
}

// Sweep forgets idle keys in every limiter and returns the total removed.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	limiters := make([]*KeyLimiter, 0, len(r.limiters))
	for _, l := range r.limiters {
		limiters = append(limiters, l)
	}
	r.mu.Unlock()

	removed := 0
	for _, l := range limiters {
		removed += l.Sweep(maxIdle)
	}
	return removed
}
