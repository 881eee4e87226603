package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidQuery is returned when search parameters fail validation.
// Use errors.Is to detect it behind wrapped context.
var ErrInvalidQuery = errors.New("invalid search query")

// ErrNotInManualMode is returned when a manual extraction is requested
// without an active manual-mode browser session.
var ErrNotInManualMode = errors.New("no manual-mode session is active")

// ChannelAttempt records one failed browser-channel launch during session
// startup. BrowserInitError aggregates these into its diagnostic.
type ChannelAttempt struct {
	Channel string
	Reason  string
}

// BrowserInitError means no usable browser could be launched after
// exhausting every channel. It is fatal: the caller should surface
// installation instructions rather than retry.
type BrowserInitError struct {
	Attempts []ChannelAttempt
}

func (e *BrowserInitError) Error() string {
	if len(e.Attempts) == 0 {
		return "no usable browser found"
	}
	var b strings.Builder
	b.WriteString("no usable browser found; tried: ")
	for i, a := range e.Attempts {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s (%s)", a.Channel, a.Reason)
	}
	return b.String()
}

// NewBrowserInitError builds a BrowserInitError from the attempted channels.
func NewBrowserInitError(attempts []ChannelAttempt) *BrowserInitError {
	return &BrowserInitError{Attempts: attempts}
}

// NetworkError means navigation failed to reach the target URL. It triggers
// the manual-mode fallback rather than failing the search outright.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("navigation failed (url: %s): %v", e.URL, e.Err)
	}
	return fmt.Sprintf("navigation failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NewNetworkError wraps a navigation failure with its target URL.
func NewNetworkError(url string, err error) *NetworkError {
	return &NetworkError{URL: url, Err: err}
}

// DataExtractionError means automated scraping produced zero usable offers.
// Like NetworkError it escalates to the manual-mode fallback.
type DataExtractionError struct {
	Reason string
}

func (e *DataExtractionError) Error() string {
	if e.Reason == "" {
		return "automated extraction returned no offers"
	}
	return "automated extraction failed: " + e.Reason
}

// NewDataExtractionError builds a DataExtractionError with a reason.
func NewDataExtractionError(reason string) *DataExtractionError {
	return &DataExtractionError{Reason: reason}
}

// ManualModeActivationError means the fallback itself failed to establish a
// usable visible session. It is terminal and must propagate to the caller:
// there is no further recovery path.
type ManualModeActivationError struct {
	Reason string
	Err    error
}

func (e *ManualModeActivationError) Error() string {
	msg := "manual mode activation failed"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ManualModeActivationError) Unwrap() error { return e.Err }

// NewManualModeActivationError builds a ManualModeActivationError.
func NewManualModeActivationError(reason string, err error) *ManualModeActivationError {
	return &ManualModeActivationError{Reason: reason, Err: err}
}
