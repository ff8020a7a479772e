package chat

import (
	"context"
	"errors"
	"time"

	"github.com/poiesic/homeqa/ai"
)

// retryWithBackoff runs op up to attempts times, doubling the delay from
// baseDelay after each failure. It stops early when op succeeds, when
// retryable rejects the error or when ctx ends, and returns the last error.
func retryWithBackoff(ctx context.Context, attempts int, baseDelay time.Duration, op func() error, retryable func(error) bool) error {
	attempts = max(attempts, 1)
	delay := baseDelay

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op()
		if lastErr == nil || !retryable(lastErr) || attempt == attempts {
			return lastErr
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
	return lastErr
}

// transient reports whether a remote error is worth another attempt.
// Empty responses and expired contexts are final.
func transient(err error) bool {
	return !errors.Is(err, ai.ErrEmptyResponse) &&
		!errors.Is(err, context.DeadlineExceeded) &&
		!errors.Is(err, context.Canceled)
}
