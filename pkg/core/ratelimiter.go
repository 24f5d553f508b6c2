package core

import (
	"context"
	"errors"
	"sync"
	"time"
)

// RateLimiter throttles outbound model requests.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// paceLimiter spaces requests one interval apart by tracking the next
// admission time under a mutex. A burst lets the schedule lag behind
// the clock, so up to burst calls pass without waiting.
type paceLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	lag      time.Duration
	next     time.Time
}

// NewRateLimiter returns a limiter admitting rps requests per second
// with the given burst capacity.
func NewRateLimiter(rps float64, burst int) (RateLimiter, error) {
	if rps <= 0 {
		return nil, errors.New("rate limiter: rps must be > 0")
	}
	if burst <= 0 {
		burst = 1
	}

	interval := time.Duration(float64(time.Second) / rps)
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return &paceLimiter{
		interval: interval,
		lag:      time.Duration(burst-1) * interval,
	}, nil
}

func (l *paceLimiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	now := time.Now()
	if earliest := now.Add(-l.lag); l.next.Before(earliest) {
		l.next = earliest
	}
	wait := l.next.Sub(now)
	l.next = l.next.Add(l.interval)
	l.mu.Unlock()

	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
