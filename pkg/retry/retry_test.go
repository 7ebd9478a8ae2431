package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelayFor(t *testing.T) {
	p := Policy{MaxAttempts: 3, InitialDelay: 1 * time.Second}

	assert.Equal(t, 1*time.Second, p.DelayFor(1))
	assert.Equal(t, 2*time.Second, p.DelayFor(2))
	assert.Equal(t, 4*time.Second, p.DelayFor(3))
}

func TestDoRetriesRateLimitUntilSuccess(t *testing.T) {
	p := Policy{MaxAttempts: 3, InitialDelay: time.Millisecond}

	calls := 0
	result, err := Do(context.Background(), p, func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("upstream returned 429 Too Many Requests")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestDoExhaustsAttemptsOnPersistentRateLimit(t *testing.T) {
	p := Policy{MaxAttempts: 3, InitialDelay: time.Millisecond}

	calls := 0
	_, err := Do(context.Background(), p, func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("rate limit exceeded")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoDoesNotRetryOtherErrors(t *testing.T) {
	p := Policy{MaxAttempts: 3, InitialDelay: time.Millisecond}

	calls := 0
	_, err := Do(context.Background(), p, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("connection refused")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoStopsOnContextCancel(t *testing.T) {
	p := Policy{MaxAttempts: 3, InitialDelay: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := Do(ctx, p, func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("429")
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestIsRateLimit(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "status code marker", err: errors.New("request failed with status 429"), want: true},
		{name: "rate limit phrase", err: errors.New("OpenAI: Rate limit reached for gpt-4o"), want: true},
		{name: "snake case code", err: errors.New("error code: rate_limit_exceeded"), want: true},
		{name: "too many requests", err: errors.New("Too Many Requests"), want: true},
		{name: "unrelated failure", err: errors.New("model not found"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRateLimit(tt.err))
		})
	}
}
