// Package retry runs an operation a bounded number of times with backoff
// between attempts. The scraper uses it for page navigation, where transient
// network hiccups are common and a couple of spaced attempts usually recover.
package retry

import (
	"context"
	"time"
)

// Config bounds one retried operation.
type Config struct {
	// MaxAttempts counts the initial attempt too. Values below 1 mean a
	// single attempt.
	MaxAttempts int

	// InitialDelay is the wait before the second attempt.
	InitialDelay time.Duration

	// MaxDelay caps the wait between attempts.
	MaxDelay time.Duration

	// Multiplier scales the delay after each failed attempt.
	Multiplier float64
}

// Do runs fn until it succeeds, the attempt budget runs out, or ctx ends.
// The context is checked before every attempt, so a cancelled context never
// runs fn at all. The last error is returned when every attempt fails.
func Do(ctx context.Context, fn func() error, cfg Config) error {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	delay := cfg.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		wait := delay
		if cfg.MaxDelay > 0 && wait > cfg.MaxDelay {
			wait = cfg.MaxDelay
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		if cfg.Multiplier > 0 {
			delay = time.Duration(float64(delay) * cfg.Multiplier)
		}
	}

	return lastErr
}
