// Package integration contains end-to-end tests that exercise the HTTP
// layer, use cases, and cache together against a mock page scraper.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	farehttp "github.com/flightbot/flight-fare-scraper/internal/adapter/http"
	"github.com/flightbot/flight-fare-scraper/internal/cache"
	"github.com/flightbot/flight-fare-scraper/internal/domain"
	"github.com/flightbot/flight-fare-scraper/internal/infrastructure/logger"
	"github.com/flightbot/flight-fare-scraper/internal/usecase"
)

// newTestServer builds an Echo instance wired like main, but with a mock
// scraper and a fresh cache.
func newTestServer(scraper domain.PageScraper) (*echo.Echo, *usecase.FlightSearcher) {
	searcher := usecase.NewFlightSearcher(scraper, cache.New(), logger.Nop())

	e := echo.New()
	handler := farehttp.NewFareHandler(searcher)
	farehttp.RegisterRoutes(e, handler)
	return e, searcher
}

// doJSON performs a request with a JSON body and returns the recorder.
func doJSON(t *testing.T, e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// decodeResponse unmarshals a recorded JSON body.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response body %q: %v", rec.Body.String(), err)
	}
}

// searchBody returns a valid search request body.
func searchBody() map[string]interface{} {
	return map[string]interface{}{
		"origin":         "ICN",
		"destination":    "CJU",
		"departure_date": "20260901",
	}
}
