// Package ratelimit enforces a per-API-key request budget using a
// token bucket per key, lazily created on first use.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// anonymousKey is used for unauthenticated requests so rate limiting
// still applies when no API key is presented.
const anonymousKey = "anonymous"

// Limiter tracks one token-bucket limiter per API key.
type Limiter struct {
	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	perSecond float64
	burst     int
}

// New builds a Limiter that allows perSecond requests per second per
// key, with bursts up to burst requests. perSecond <= 0 disables
// limiting entirely: Allow always reports ok.
func New(perSecond float64, burst int) *Limiter {
	return &Limiter{
		limiters:  make(map[string]*rate.Limiter),
		perSecond: perSecond,
		burst:     burst,
	}
}

// Allow reports whether a request for key is allowed right now. If
// key is empty, the anonymous bucket is used. When disallowed,
// retryAfter is the minimum duration until the next token is
// available.
func (l *Limiter) Allow(key string) (ok bool, retryAfter time.Duration) {
	if l.perSecond <= 0 {
		return true, 0
	}

	if key == "" {
		key = anonymousKey
	}

	limiter := l.getOrCreate(key)

	reservation := limiter.Reserve()
	if !reservation.OK() {
		return false, 0
	}

	delay := reservation.Delay()
	if delay > 0 {
		reservation.Cancel()

		return false, delay
	}

	return true, 0
}

// getOrCreate returns the limiter for key, creating one under lock if
// this is the first request seen for that key.
func (l *Limiter) getOrCreate(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.perSecond), l.burst)
		l.limiters[key] = limiter
	}

	return limiter
}

// TrackedKeys returns the number of distinct keys currently tracked,
// for tests and diagnostics.
func (l *Limiter) TrackedKeys() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.limiters)
}
