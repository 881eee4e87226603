// Package response provides standardized HTTP response builders for the
// fare search API. It centralizes response formatting to ensure consistency
// across all endpoints.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorDetail contains structured error information.
type ErrorDetail struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details contains field-specific error details (for validation errors)
	Details map[string]string `json:"details,omitempty"`
}

// Error codes used in API responses.
const (
	CodeInvalidRequest     = "invalid_request"
	CodeValidationError    = "validation_error"
	CodeBrowserUnavailable = "browser_unavailable"
	CodeUpstreamError      = "upstream_error"
	CodeNotInManualMode    = "not_in_manual_mode"
	CodeTimeout            = "timeout"
	CodeInternalError      = "internal_error"
)

// Error messages used in API responses.
const (
	MsgInvalidRequestBody  = "Failed to parse request body"
	MsgValidationFailed    = "Request validation failed"
	MsgBrowserUnavailable  = "No usable browser could be started"
	MsgTimeout             = "Request timed out"
	MsgRequestCancelled    = "Request was cancelled"
	MsgInternalError       = "An unexpected error occurred"
	MsgNotInManualMode     = "No manual-mode browser session is active"
)

// OK writes a 200 OK response with the given data.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// NoContent writes a 204 No Content response.
func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
