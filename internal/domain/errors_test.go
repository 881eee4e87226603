package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrInvalidQuery_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("%w: origin is required", ErrInvalidQuery)
	wrapped := fmt.Errorf("search failed: %w", err)

	assert.ErrorIs(t, wrapped, ErrInvalidQuery)
}

func TestBrowserInitError_Message(t *testing.T) {
	err := NewBrowserInitError([]ChannelAttempt{
		{Channel: "Chrome", Reason: "executable not found"},
		{Channel: "Edge", Reason: "launch timed out"},
	})

	msg := err.Error()
	assert.Contains(t, msg, "no usable browser found")
	assert.Contains(t, msg, "Chrome (executable not found)")
	assert.Contains(t, msg, "Edge (launch timed out)")
}

func TestBrowserInitError_NoAttempts(t *testing.T) {
	err := NewBrowserInitError(nil)
	assert.Equal(t, "no usable browser found", err.Error())
}

func TestBrowserInitError_As(t *testing.T) {
	var err error = NewBrowserInitError([]ChannelAttempt{{Channel: "Chromium", Reason: "missing"}})
	wrapped := fmt.Errorf("start session: %w", err)

	var initErr *BrowserInitError
	require.True(t, errors.As(wrapped, &initErr))
	assert.Len(t, initErr.Attempts, 1)
}

func TestNetworkError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError("https://travel.interpark.com/air", cause)

	assert.Contains(t, err.Error(), "travel.interpark.com")
	assert.ErrorIs(t, err, cause)

	var netErr *NetworkError
	require.True(t, errors.As(fmt.Errorf("navigate: %w", err), &netErr))
	assert.Equal(t, "https://travel.interpark.com/air", netErr.URL)
}

func TestNetworkError_WithoutURL(t *testing.T) {
	err := NewNetworkError("", errors.New("timeout"))
	assert.Equal(t, "navigation failed: timeout", err.Error())
}

func TestDataExtractionError_Message(t *testing.T) {
	assert.Equal(t, "automated extraction returned no offers", NewDataExtractionError("").Error())
	assert.Equal(t, "automated extraction failed: result list never rendered", NewDataExtractionError("result list never rendered").Error())
}

func TestManualModeActivationError_UnwrapsCause(t *testing.T) {
	cause := errors.New("browser closed")
	err := NewManualModeActivationError("reopening visible session", cause)

	assert.Contains(t, err.Error(), "manual mode activation failed")
	assert.Contains(t, err.Error(), "reopening visible session")
	assert.ErrorIs(t, err, cause)
}
