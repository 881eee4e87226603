// Package timeutil abstracts the wall clock so expiry logic can be tested
// deterministically. The result cache stamps entries through a Clock and the
// tests step a mock forward across the TTL boundary.
package timeutil

import (
	"time"
)

// Clock yields the current time. Production code uses RealClock; tests
// substitute MockClock.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

// NewRealClock returns the production clock.
func NewRealClock() *RealClock {
	return &RealClock{}
}

func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock is a manually stepped clock for tests. It only moves when
// Advance is called.
type MockClock struct {
	current time.Time
}

// NewMockClock creates a mock clock frozen at t.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

func (m *MockClock) Now() time.Time {
	return m.current
}

// Advance moves the clock by d. Negative durations move it backwards.
func (m *MockClock) Advance(d time.Duration) {
	m.current = m.current.Add(d)
}

var (
	_ Clock = (*RealClock)(nil)
	_ Clock = (*MockClock)(nil)
)
