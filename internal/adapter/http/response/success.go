package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health writes a health check response.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status: "ok",
	})
}

// SearchResults writes a 200 OK response with search results.
func SearchResults(c echo.Context, results interface{}) error {
	return c.JSON(http.StatusOK, results)
}

// CacheClearedResponse acknowledges a cache clear.
type CacheClearedResponse struct {
	Cleared bool `json:"cleared"`
}

// CacheCleared writes a 200 OK response acknowledging a cache clear.
func CacheCleared(c echo.Context) error {
	return c.JSON(http.StatusOK, &CacheClearedResponse{Cleared: true})
}
