package model

import (
	"context"
	"errors"
	"testing"
	"time"

	"qaeval/pkg/core"

	"github.com/stretchr/testify/require"
)

func TestRetryPolicyZeroValueRetries(t *testing.T) {
	boom := errors.New("transient")
	attempts := 0

	policy := RetryPolicy{Backoff: time.Millisecond}
	_, err := policy.generate(context.Background(), func(ctx context.Context) (core.Response, error) {
		attempts++
		return core.Response{}, boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, defaultMaxRetries+1, attempts)
}

func TestRetryPolicyNegativeMaxRetriesDisablesRetries(t *testing.T) {
	boom := errors.New("transient")
	attempts := 0

	policy := RetryPolicy{MaxRetries: -1, Backoff: time.Millisecond}
	_, err := policy.generate(context.Background(), func(ctx context.Context) (core.Response, error) {
		attempts++
		return core.Response{}, boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, attempts)
}

func TestRetryPolicyRecoversAfterFailure(t *testing.T) {
	attempts := 0

	policy := RetryPolicy{Backoff: time.Millisecond}
	resp, err := policy.generate(context.Background(), func(ctx context.Context) (core.Response, error) {
		attempts++
		if attempts == 1 {
			return core.Response{}, errors.New("transient")
		}
		return core.Response{Content: "4"}, nil
	})
	require.NoError(t, err)
	require.Equal(t, "4", resp.Content)
	require.Equal(t, 2, attempts)
}

func TestRetryPolicyStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	policy := RetryPolicy{Backoff: time.Millisecond}
	_, err := policy.generate(ctx, func(ctx context.Context) (core.Response, error) {
		attempts++
		return core.Response{}, ctx.Err()
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, attempts)
}
