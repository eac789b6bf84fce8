package util

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type stopError struct{ err error }

func (s stopError) Error() string { return s.err.Error() }
func (s stopError) Unwrap() error { return s.err }

// StopRetry wraps err so RetryWithBackoff gives up immediately and returns it
// unwrapped. Use it for permanent failures like a 404.
func StopRetry(err error) error {
	return stopError{err: err}
}

// RetryWithBackoff calls fn up to maxRetries+1 times with exponential backoff.
// fn receives the current attempt number (0-indexed). It should return nil on
// success, or an error wrapped with StopRetry to abort retrying.
// If the context is cancelled, RetryWithBackoff returns the context error immediately.
func RetryWithBackoff(ctx context.Context, maxRetries int, fn func(attempt int) error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}

		var stop stopError
		if errors.As(lastErr, &stop) {
			return stop.err
		}

		// Don't wait after the last attempt
		if attempt == maxRetries {
			break
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		backoff := time.Duration(1<<attempt) * time.Second
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}
