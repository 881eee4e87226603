package usecase

import (
	"context"

	"github.com/flightbot/flight-fare-scraper/internal/cache"
	"github.com/flightbot/flight-fare-scraper/internal/domain"
	"github.com/flightbot/flight-fare-scraper/internal/infrastructure/logger"
)

// FlightSearcher runs single fare searches through a page scraper, fronted
// by the result cache. Manual-mode results are never cached: they reflect
// whatever the user happened to have on screen, not the query.
type FlightSearcher struct {
	scraper domain.PageScraper
	cache   *cache.Store
	log     *logger.Logger
}

// NewFlightSearcher wires a searcher. A nil store disables caching.
func NewFlightSearcher(scraper domain.PageScraper, store *cache.Store, log *logger.Logger) *FlightSearcher {
	if store == nil {
		store = cache.Disabled()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &FlightSearcher{
		scraper: scraper,
		cache:   store,
		log:     log.WithComponent("searcher"),
	}
}

// Search returns offers for the query, served from cache when a fresh entry
// exists. Filters apply after the cache, so one scrape serves differently
// filtered views of the same query.
func (s *FlightSearcher) Search(ctx context.Context, query domain.SearchQuery, opts SearchOptions) ([]domain.FlightOffer, error) {
	query.SetDefaults()
	if err := query.Validate(); err != nil {
		return nil, err
	}

	key := query.CacheKey()
	if offers, ok := s.cache.Get(key, opts.ForceRefresh); ok {
		s.log.Debug().
			Str("origin", query.Origin).
			Str("destination", query.Destination).
			Int("offers", len(offers)).
			Msg("cache hit")
		opts.Progress.Emit("serving cached results")
		return ApplyFilters(offers, opts.Filters), nil
	}

	offers, err := s.scraper.Search(ctx, query, opts.Progress)
	if err != nil {
		return nil, err
	}

	if s.scraper.IsManualMode() {
		opts.Progress.Emit("waiting for manual search in the opened browser")
		return offers, nil
	}

	s.cache.Put(key, offers)
	return ApplyFilters(offers, opts.Filters), nil
}

// ExtractManual re-scrapes the live manual-mode page. The result is
// filtered but never cached.
func (s *FlightSearcher) ExtractManual(ctx context.Context, opts SearchOptions) ([]domain.FlightOffer, error) {
	offers, err := s.scraper.ExtractCurrent(ctx)
	if err != nil {
		return nil, err
	}
	return ApplyFilters(offers, opts.Filters), nil
}

// IsManualMode reports whether the underlying scraper is holding a
// manual-mode session open.
func (s *FlightSearcher) IsManualMode() bool {
	return s.scraper.IsManualMode()
}

// ClearCache drops every cached result.
func (s *FlightSearcher) ClearCache() {
	s.cache.Clear()
}

// Close releases the scraper's browser session.
func (s *FlightSearcher) Close() {
	s.scraper.Close()
}

// Cheapest returns the lowest-priced valid offer.
func Cheapest(offers []domain.FlightOffer) (domain.FlightOffer, bool) {
	var best domain.FlightOffer
	found := false
	for _, o := range offers {
		if !o.Valid() {
			continue
		}
		if !found || o.Price < best.Price {
			best = o
			found = true
		}
	}
	return best, found
}
