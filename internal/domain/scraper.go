package domain

import "context"

// ProgressFunc receives human-readable status strings throughout the search
// pipeline. It is a fire-and-forget sink: implementations must not block and
// its return is ignored. A nil ProgressFunc is always safe to pass.
type ProgressFunc func(msg string)

// Emit calls the sink when it is non-nil.
func (f ProgressFunc) Emit(msg string) {
	if f != nil {
		f(msg)
	}
}

// PageScraper drives a browser against the booking site and converts
// rendered pages into offers. The production implementation lives in
// internal/scraper; tests substitute mocks.
//
//go:generate mockgen -source=scraper.go -destination=mock_scraper.go -package=domain
type PageScraper interface {
	// Search runs the full pipeline for one query: navigate, wait,
	// extract, and for domestic round trips the two-step combine flow.
	// On recoverable failures it enters manual mode and returns an empty
	// list with a nil error; IsManualMode then reports true.
	Search(ctx context.Context, query SearchQuery, emit ProgressFunc) ([]FlightOffer, error)

	// ExtractCurrent re-scrapes whatever is currently rendered, without
	// navigating. Valid only while a manual-mode session is alive.
	ExtractCurrent(ctx context.Context) ([]FlightOffer, error)

	// IsManualMode reports whether a manual-mode session is being kept
	// alive for a user-triggered extraction.
	IsManualMode() bool

	// Close releases the browser session. It is idempotent.
	Close()
}
