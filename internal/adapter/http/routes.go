package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all fare search API routes. The health check
// stays outside the versioned group.
func RegisterRoutes(e *echo.Echo, h *FareHandler) {
	e.GET("/health", h.Health)

	api := e.Group("/api/v1")

	flights := api.Group("/flights")
	flights.POST("/search", h.SearchFares)
	flights.POST("/extract-manual", h.ExtractManual)
	flights.POST("/cache/clear", h.ClearCache)
}

// RegisterRoutesWithMiddleware registers routes with group-scoped
// middleware; the health check stays middleware-free.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *FareHandler, middleware ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health)

	api := e.Group("/api/v1", middleware...)

	flights := api.Group("/flights")
	flights.POST("/search", h.SearchFares)
	flights.POST("/extract-manual", h.ExtractManual)
	flights.POST("/cache/clear", h.ClearCache)
}
