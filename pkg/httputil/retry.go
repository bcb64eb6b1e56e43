package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (network timeouts, 5xx responses) with this type
// so that [Retry] knows to attempt the operation again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Backoff configures [Retry].
type Backoff struct {
	Attempts   int           // total attempts, at least 1
	Delay      time.Duration // wait before the first retry
	Multiplier int           // factor applied to Delay after each retry

	// OnRetry is called before each wait with the 1-based retry number.
	OnRetry func(retry, max int, delay time.Duration, err error)
}

// DefaultBackoff retries five times, starting at 500ms and tripling the delay.
var DefaultBackoff = Backoff{Attempts: 6, Delay: 500 * time.Millisecond, Multiplier: 3}

// Retry executes fn until it succeeds, returns a non-retryable error, or
// b.Attempts is exhausted. Only errors wrapped with [RetryableError] are
// retried. Returns the last error if all attempts fail, or ctx.Err() if
// cancelled while waiting.
func Retry(ctx context.Context, b Backoff, fn func() error) error {
	attempts := max(b.Attempts, 1)
	multiplier := time.Duration(max(b.Multiplier, 1))
	delay := b.Delay
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}

		if i < attempts-1 {
			if b.OnRetry != nil {
				b.OnRetry(i+1, attempts-1, delay, lastErr)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= multiplier
			}
		}
	}
	return lastErr
}

// RetryWithBackoff is [Retry] with [DefaultBackoff].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, DefaultBackoff, fn)
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
