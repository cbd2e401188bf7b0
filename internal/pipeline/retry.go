package pipeline

import (
	"errors"
	"math/rand"
	"time"

	"github.com/scriptmentor/scriptparse/internal/feedback"
	"github.com/scriptmentor/scriptparse/internal/scriptstore"
)

// IsRetryable checks if an error from a downstream collaborator is worth
// retrying.
func IsRetryable(err error) bool {
	var storeErr *scriptstore.RetryableError
	if errors.As(err, &storeErr) {
		return true
	}
	var fbErr *feedback.RetryableError
	return errors.As(err, &fbErr)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int63n(int64(base) / 2))
	return base + jitter
}

const MaxRetries = 3
