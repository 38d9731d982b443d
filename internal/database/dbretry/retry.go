// Package dbretry replays database work that failed for transient reasons.
package dbretry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	maxElapsedTime  = 30 * time.Second
	initialInterval = 500 * time.Millisecond
	maxInterval     = 5 * time.Second
	maxRetries      = uint64(5)
)

// transientClasses are SQLSTATE classes where every code is worth retrying:
// connection exceptions, resource exhaustion and operator intervention.
var transientClasses = []string{"08", "53", "57"}

// transientCodes are individual SQLSTATE codes outside those classes.
var transientCodes = map[string]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"55006": {}, // object_in_use
	"55P03": {}, // lock_not_available
	"2D000": {}, // invalid_transaction_termination
}

// networkErrors are message fragments of dropped connections.
var networkErrors = []string{
	"connection reset by peer",
	"broken pipe",
	"connection refused",
	"no connection",
	"i/o timeout",
	"EOF",
}

// IsRetryableError checks if the given error is retryable.
func IsRetryableError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var pgerr *pgdriver.Error
	if errors.As(err, &pgerr) {
		code := pgerr.Field('C')
		if _, ok := transientCodes[code]; ok {
			return true
		}
		for _, class := range transientClasses {
			if strings.HasPrefix(code, class) {
				return true
			}
		}
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := err.Error()
	for _, fragment := range networkErrors {
		if strings.Contains(msg, fragment) {
			return true
		}
	}

	return false
}

// IsUniqueViolation reports whether err was caused by a unique constraint.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgerr *pgdriver.Error
	if errors.As(err, &pgerr) {
		return pgerr.Field('C') == "23505"
	}

	// SQLite drivers only expose the message
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(maxElapsedTime),
		backoff.WithInitialInterval(initialInterval),
		backoff.WithMaxInterval(maxInterval),
	)
	return backoff.WithContext(backoff.WithMaxRetries(b, maxRetries), ctx)
}

// Operation runs operation until it succeeds, fails permanently or the retry budget runs out.
func Operation[T any](ctx context.Context, operation func(context.Context) (T, error)) (T, error) {
	var (
		result  T
		lastErr error
	)

	err := backoff.Retry(func() error {
		var err error
		result, err = operation(ctx)
		switch {
		case err == nil:
			return nil
		case !IsRetryableError(err):
			return backoff.Permanent(err)
		default:
			lastErr = err
			return err
		}
	}, newBackOff(ctx))

	switch {
	case err == nil:
		return result, nil
	case lastErr != nil && errors.Is(err, lastErr):
		return result, fmt.Errorf("database operation failed after retries: %w", lastErr)
	default:
		return result, fmt.Errorf("database operation failed: %w", err)
	}
}

// NoResult wraps a database operation that doesn't return a result.
func NoResult(ctx context.Context, operation func(context.Context) error) error {
	_, err := Operation(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, operation(ctx)
	})
	return err
}

// Transaction runs fn in a transaction and replays the whole transaction on a
// transient failure. fn must not have side effects outside the transaction.
func Transaction(ctx context.Context, db *bun.DB, fn func(context.Context, bun.Tx) error) error {
	return NoResult(ctx, func(ctx context.Context) error {
		return db.RunInTx(ctx, nil, fn)
	})
}
