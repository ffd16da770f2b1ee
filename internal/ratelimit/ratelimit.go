// Package ratelimit implements a fixed-window request limiter keyed by
// client address. State is held in process; the limiter is an injected
// dependency with an explicit lifecycle, not a package-level singleton.
package ratelimit

import (
	"sync"
	"time"
)

// Result describes the outcome of one rate-limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetTime time.Time
}

type window struct {
	count     int
	resetTime time.Time
}

// Limiter counts requests per key inside fixed time windows.
type Limiter struct {
	mu          sync.Mutex
	windows     map[string]*window
	maxRequests int
	windowSize  time.Duration
	now         func() time.Time
}

// New creates a Limiter allowing maxRequests per windowSize per key.
func New(maxRequests int, windowSize time.Duration) *Limiter {
	return &Limiter{
		windows:     make(map[string]*window),
		maxRequests: maxRequests,
		windowSize:  windowSize,
		now:         time.Now,
	}
}

// NewWithClock creates a Limiter using the provided time source. Tests use
// this to roll windows over without real waits.
func NewWithClock(maxRequests int, windowSize time.Duration, now func() time.Time) *Limiter {
	l := New(maxRequests, windowSize)
	l.now = now
	return l
}

// Allow records one request for key and reports whether it fits in the
// current window.
func (l *Limiter) Allow(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.After(w.resetTime) {
		w = &window{resetTime: now.Add(l.windowSize)}
		l.windows[key] = w
	}
	w.count++

	remaining := l.maxRequests - w.count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   w.count <= l.maxRequests,
		Limit:     l.maxRequests,
		Remaining: remaining,
		ResetTime: w.resetTime,
	}
}

// Clear drops all window state. Tests call this between runs.
func (l *Limiter) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.windows = make(map[string]*window)
}
