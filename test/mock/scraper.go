// Package mock provides test doubles for the fare scraper. These mocks are
// designed for integration testing where we need configurable behavior
// (delays, errors, manual-mode transitions).
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/flightbot/flight-fare-scraper/internal/domain"
)

// Scraper is a configurable mock implementation of domain.PageScraper. It
// supports configurable delays, errors, and manual-mode behavior for
// testing cache, worker, and handler scenarios without a browser.
type Scraper struct {
	mu sync.Mutex

	offers       []domain.FlightOffer
	manualOffers []domain.FlightOffer
	err          error
	delay        time.Duration
	manual       bool
	goesManual   bool

	searchCalls  int
	extractCalls int
	closeCalls   int
	closed       bool
}

// NewScraper creates a mock scraper configured via the builder methods.
func NewScraper() *Scraper {
	return &Scraper{}
}

// WithOffers configures the offers Search returns.
func (s *Scraper) WithOffers(offers []domain.FlightOffer) *Scraper {
	s.offers = offers
	return s
}

// WithError configures Search to fail with err.
func (s *Scraper) WithError(err error) *Scraper {
	s.err = err
	return s
}

// WithDelay makes Search wait before responding, for cancellation tests.
func (s *Scraper) WithDelay(d time.Duration) *Scraper {
	s.delay = d
	return s
}

// WithManualMode makes Search enter manual mode and return an empty list;
// offers is what ExtractCurrent then yields.
func (s *Scraper) WithManualMode(offers []domain.FlightOffer) *Scraper {
	s.goesManual = true
	s.manualOffers = offers
	return s
}

// Search implements domain.PageScraper. A closed scraper refuses to search,
// matching the production latch that stops work racing with cancellation.
func (s *Scraper) Search(ctx context.Context, query domain.SearchQuery, emit domain.ProgressFunc) ([]domain.FlightOffer, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, context.Canceled
	}
	s.searchCalls++
	delay := s.delay
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	if s.goesManual {
		s.manual = true
		return []domain.FlightOffer{}, nil
	}

	emit.Emit("search finished")
	out := make([]domain.FlightOffer, len(s.offers))
	copy(out, s.offers)
	return out, nil
}

// ExtractCurrent implements domain.PageScraper.
func (s *Scraper) ExtractCurrent(ctx context.Context) ([]domain.FlightOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.extractCalls++
	if !s.manual || s.closed {
		return nil, domain.ErrNotInManualMode
	}
	out := make([]domain.FlightOffer, len(s.manualOffers))
	copy(out, s.manualOffers)
	return out, nil
}

// IsManualMode implements domain.PageScraper.
func (s *Scraper) IsManualMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manual && !s.closed
}

// Close implements domain.PageScraper.
func (s *Scraper) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeCalls++
	s.closed = true
	s.manual = false
}

// SearchCalls reports how many times Search was invoked.
func (s *Scraper) SearchCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchCalls
}

// CloseCalls reports how many times Close was invoked.
func (s *Scraper) CloseCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeCalls
}

// Closed reports whether Close has been called at least once.
func (s *Scraper) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

var _ domain.PageScraper = (*Scraper)(nil)
