// Package usecase contains the business logic for fare searches. It wraps
// the page scraper with result caching, filtering, and a bounded worker
// pool for multi-destination and date-range runs.
package usecase

import "github.com/flightbot/flight-fare-scraper/internal/domain"

// SearchOptions contains optional parameters for a fare search.
type SearchOptions struct {
	// Filters contains optional filtering criteria to apply to results
	Filters *domain.FilterOptions

	// ForceRefresh bypasses the result cache for this search
	ForceRefresh bool

	// Progress receives human-readable status updates; may be nil
	Progress domain.ProgressFunc
}

// DefaultSearchOptions returns SearchOptions with sensible defaults.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{}
}
