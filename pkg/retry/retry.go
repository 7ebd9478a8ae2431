package retry

import (
	"context"
	"strings"
	"time"
)

// Policy bounds retries around a single upstream call. Only rate-limit
// failures are retried; anything else propagates on the first attempt.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

// DefaultPolicy matches the observed working limits for the generation API:
// 3 attempts with 1s, 2s, 4s exponential backoff, no jitter.
var DefaultPolicy = Policy{
	MaxAttempts:  3,
	InitialDelay: 1 * time.Second,
}

// DelayFor returns the backoff before retry attempt n (1-based):
// InitialDelay * 2^(n-1).
func (p Policy) DelayFor(attempt int) time.Duration {
	return p.InitialDelay << (attempt - 1)
}

// Do runs op up to p.MaxAttempts times, sleeping between attempts when the
// failure is classified as a rate-limit condition. The last error is
// returned once the budget is exhausted.
func Do[T any](ctx context.Context, p Policy, op func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRateLimit(err) || attempt == p.MaxAttempts {
			return zero, err
		}

		select {
		case <-time.After(p.DelayFor(attempt)):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
	return zero, lastErr
}

// IsRateLimit reports whether the upstream rejected the call for rate
// limiting. Providers surface this as a 429 status or a message marker.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "rate_limit") ||
		strings.Contains(msg, "too many requests")
}
