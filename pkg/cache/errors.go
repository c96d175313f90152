package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for cache backends.
var (
	// ErrNotFound is returned when a requested entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNetwork is returned for backend failures such as timeouts and
	// connection errors. Network failures are transient by nature and
	// are the usual candidates for Retryable.
	ErrNetwork = errors.New("network error")
)

// RetryableError marks an error as transient. RetryWithBackoff retries
// only errors carrying this marker; everything else fails fast.
type RetryableError struct{ Err error }

// Retryable wraps an error as transient. A nil error passes through.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether the chain contains a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn up to three times, doubling the delay after
// each transient failure (1s, 2s). Non-retryable errors and context
// cancellation return immediately.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := time.Second
	var lastErr error

	for i := 0; i < attempts; i++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !IsRetryable(lastErr) {
			return lastErr
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}
