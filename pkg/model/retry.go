package model

import (
	"context"
	"errors"
	"time"

	"qaeval/pkg/core"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 2
	defaultBackoff    = 500 * time.Millisecond
)

// RetryPolicy bounds provider requests: a per-attempt timeout and a
// linearly growing backoff between attempts. Zero fields take the
// package defaults, so a zero-value policy still retries; a negative
// MaxRetries disables retries. Context errors end the loop
// immediately.
type RetryPolicy struct {
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.Timeout <= 0 {
		p.Timeout = defaultTimeout
	}
	if p.MaxRetries == 0 {
		p.MaxRetries = defaultMaxRetries
	} else if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.Backoff <= 0 {
		p.Backoff = defaultBackoff
	}
	return p
}

func (p RetryPolicy) generate(ctx context.Context, call func(ctx context.Context) (core.Response, error)) (core.Response, error) {
	p = p.withDefaults()

	var lastErr error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, p.Timeout)
		resp, err := call(attemptCtx)
		cancel()
		if err == nil {
			return resp, nil
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return core.Response{}, err
		}
		lastErr = err

		if attempt < p.MaxRetries {
			select {
			case <-ctx.Done():
				return core.Response{}, ctx.Err()
			case <-time.After(p.Backoff * time.Duration(attempt+1)):
			}
		}
	}
	return core.Response{}, lastErr
}
