package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDo_FirstAttemptSucceeds(t *testing.T) {
	attempts := 0

	err := Do(context.Background(), func() error {
		attempts++
		return nil
	}, fastConfig(3))

	assert.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_RecoversWithinBudget(t *testing.T) {
	attempts := 0

	err := Do(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("page did not load")
		}
		return nil
	}, fastConfig(5))

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_BudgetExhaustedReturnsLastError(t *testing.T) {
	attempts := 0
	navErr := errors.New("net::ERR_CONNECTION_RESET")

	err := Do(context.Background(), func() error {
		attempts++
		return navErr
	}, fastConfig(3))

	assert.Equal(t, navErr, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_ZeroAttemptsMeansOne(t *testing.T) {
	attempts := 0

	err := Do(context.Background(), func() error {
		attempts++
		return nil
	}, Config{})

	assert.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_CancelledContextRunsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := Do(ctx, func() error {
		attempts++
		return nil
	}, fastConfig(3))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, attempts)
}

func TestDo_CancellationInterruptsWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	done := make(chan error, 1)
	go func() {
		done <- Do(ctx, func() error {
			attempts++
			return errors.New("still failing")
		}, Config{
			MaxAttempts:  10,
			InitialDelay: time.Minute,
			MaxDelay:     time.Minute,
			Multiplier:   1.0,
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	case <-time.After(time.Second):
		t.Fatal("retry did not stop on cancellation")
	}
}

func TestDo_MaxDelayCapsBackoff(t *testing.T) {
	start := time.Now()

	err := Do(context.Background(), func() error {
		return errors.New("failing")
	}, Config{
		MaxAttempts:  4,
		InitialDelay: 5 * time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   100.0,
	})

	assert.Error(t, err)
	// Three waits capped at 10ms each; an uncapped run would take seconds.
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}
