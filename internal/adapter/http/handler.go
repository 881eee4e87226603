package http

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flightbot/flight-fare-scraper/internal/adapter/http/response"
	"github.com/flightbot/flight-fare-scraper/internal/domain"
	"github.com/flightbot/flight-fare-scraper/internal/usecase"
)

// FareHandler handles HTTP requests for fare search endpoints.
type FareHandler struct {
	searcher *usecase.FlightSearcher
}

// NewFareHandler creates a handler around the given searcher.
func NewFareHandler(searcher *usecase.FlightSearcher) *FareHandler {
	return &FareHandler{searcher: searcher}
}

// SearchFares handles POST /api/v1/flights/search
//
// @Summary Search flight fares
// @Description Scrapes the booking site for fares matching the query. When automated extraction fails, the response carries manual_mode=true and an empty offer list; call the extract-manual endpoint after completing the search in the opened browser.
// @Tags flights
// @Accept json
// @Produce json
// @Param request body SearchFaresRequest true "Search parameters"
// @Success 200 {object} SearchFaresResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 502 {object} response.ErrorDetail "Site unreachable"
// @Failure 503 {object} response.ErrorDetail "No browser available"
// @Router /api/v1/flights/search [post]
func (h *FareHandler) SearchFares(c echo.Context) error {
	var req SearchFaresRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	query := ToDomainQuery(&req)
	query.SetDefaults()
	opts := ToSearchOptions(&req)

	start := time.Now()
	offers, err := h.searcher.Search(c.Request().Context(), query, opts)
	if err != nil {
		return h.handleError(c, err)
	}

	dto := ToSearchFaresResponse(query, offers, h.searcher.IsManualMode(), time.Since(start).Milliseconds())
	return response.SearchResults(c, dto)
}

// ExtractManual handles POST /api/v1/flights/extract-manual
//
// @Summary Extract fares from the manual-mode browser
// @Description Re-scrapes whatever is currently rendered in the manual-mode session, without navigating.
// @Tags flights
// @Accept json
// @Produce json
// @Param request body ExtractManualRequest false "Optional filters"
// @Success 200 {object} SearchFaresResponse
// @Failure 409 {object} response.ErrorDetail "No manual-mode session"
// @Router /api/v1/flights/extract-manual [post]
func (h *FareHandler) ExtractManual(c echo.Context) error {
	var req ExtractManualRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	opts := usecase.SearchOptions{Filters: ToDomainFilters(req.Filters)}

	start := time.Now()
	offers, err := h.searcher.ExtractManual(c.Request().Context(), opts)
	if err != nil {
		return h.handleError(c, err)
	}

	dto := ToSearchFaresResponse(domain.SearchQuery{}, offers, h.searcher.IsManualMode(), time.Since(start).Milliseconds())
	return response.SearchResults(c, dto)
}

// ClearCache handles POST /api/v1/flights/cache/clear
//
// @Summary Clear the result cache
// @Tags flights
// @Produce json
// @Success 200 {object} response.CacheClearedResponse
// @Router /api/v1/flights/cache/clear [post]
func (h *FareHandler) ClearCache(c echo.Context) error {
	h.searcher.ClearCache()
	return response.CacheCleared(c)
}

// Health handles GET /health
// Simple health check endpoint.
func (h *FareHandler) Health(c echo.Context) error {
	return response.Health(c)
}

// handleValidationError handles validation errors and returns a 400
// response.
func (h *FareHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to HTTP statuses: browser launch failures
// are 503, site navigation failures 502, missing manual sessions 409,
// invalid queries 400, timeouts 504.
func (h *FareHandler) handleError(c echo.Context, err error) error {
	var initErr *domain.BrowserInitError
	if errors.As(err, &initErr) {
		return response.BrowserUnavailable(c, initErr.Error())
	}

	var netErr *domain.NetworkError
	if errors.As(err, &netErr) {
		return response.UpstreamError(c, netErr.Error())
	}

	if errors.Is(err, domain.ErrNotInManualMode) {
		return response.NotInManualMode(c)
	}
	if errors.Is(err, domain.ErrInvalidQuery) {
		return response.ValidationErrorWithMessage(c, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return response.GatewayTimeout(c)
	}
	if errors.Is(err, context.Canceled) {
		return response.RequestCancelled(c)
	}

	var manualErr *domain.ManualModeActivationError
	if errors.As(err, &manualErr) {
		return response.InternalServerErrorWithMessage(c, manualErr.Error())
	}

	var extractErr *domain.DataExtractionError
	if errors.As(err, &extractErr) {
		return response.InternalServerErrorWithMessage(c, extractErr.Error())
	}

	return response.InternalServerError(c)
}
