// Package retry provides a generic exponential-backoff executor for
// transient remote failures.
package retry

import (
	"context"
	"time"
)

// Defaults match the sync pipeline's policy: three attempts with delays of
// 2s then 4s between them.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 2 * time.Second
)

// Policy controls how Do retries a failing operation. The zero value uses
// the defaults above.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration

	// Logf, when set, receives a line per failed attempt and a final line
	// when all attempts are exhausted.
	Logf func(format string, args ...interface{})

	// sleep is replaced in tests to observe delays without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// Do executes op, retrying on error with exponential backoff: after attempt
// i (zero-based) it sleeps BaseDelay * 2^i before trying again. The final
// attempt's error is returned unwrapped so callers see the underlying fault.
// The sleep is interruptible: a cancelled context returns ctx.Err without
// further attempts.
func Do[T any](ctx context.Context, p Policy, desc string, op func() (T, error)) (T, error) {
	var zero T
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		result, err := op()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == p.MaxAttempts-1 {
			break
		}
		delay := p.BaseDelay << attempt
		if p.Logf != nil {
			p.Logf("%s attempt %d failed: %v. Retrying in %s...", desc, attempt+1, err, delay)
		}
		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	if p.Logf != nil {
		p.Logf("%s failed after %d attempts: %v", desc, p.MaxAttempts, lastErr)
	}
	return zero, lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
