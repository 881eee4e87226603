package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flightbot/flight-fare-scraper/internal/config"
	"github.com/flightbot/flight-fare-scraper/internal/domain"
	"github.com/flightbot/flight-fare-scraper/internal/infrastructure/logger"
)

// SearcherFactory builds one searcher per worker. Each worker owns its own
// browser session, so searchers must never be shared between workers.
type SearcherFactory func() *FlightSearcher

// DestinationResult is the outcome of one destination in a fan-out run.
// Results come back in input order regardless of completion order.
type DestinationResult struct {
	Destination string
	Offers      []domain.FlightOffer
	Cheapest    *domain.FlightOffer
	Err         error
}

// DateResult is the outcome of one departure date in a date-range run.
type DateResult struct {
	DepartureDate string
	ReturnDate    string
	Offers        []domain.FlightOffer
	Cheapest      *domain.FlightOffer
	Err           error
}

// ParallelSearcher fans one base query out over destinations or departure
// dates with a bounded number of concurrent browser sessions. Cancel stops
// new work and closes every live session.
type ParallelSearcher struct {
	factory     SearcherFactory
	concurrency int
	maxDates    int
	log         *logger.Logger

	mu        sync.Mutex
	active    map[int]*FlightSearcher
	nextID    int
	cancelled bool
}

// NewParallelSearcher wires a pool from worker settings.
func NewParallelSearcher(factory SearcherFactory, cfg config.WorkerConfig, log *logger.Logger) *ParallelSearcher {
	if log == nil {
		log = logger.Nop()
	}
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	maxDates := cfg.MaxDates
	if maxDates < 1 {
		maxDates = 1
	}
	return &ParallelSearcher{
		factory:     factory,
		concurrency: concurrency,
		maxDates:    maxDates,
		log:         log.WithComponent("workers"),
		active:      make(map[int]*FlightSearcher),
	}
}

// SearchDestinations runs the base query against each destination. The
// result slice is ordered like the input; failed destinations carry their
// error in place rather than aborting the rest.
func (p *ParallelSearcher) SearchDestinations(ctx context.Context, base domain.SearchQuery, destinations []string, opts SearchOptions) []DestinationResult {
	p.resetCancel()

	results := make([]DestinationResult, len(destinations))
	sem := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup

	for i, dest := range destinations {
		results[i].Destination = dest

		wg.Add(1)
		go func(i int, dest string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			query := base
			query.Destination = dest
			offers, err := p.runOne(ctx, query, opts)
			results[i].Offers = offers
			results[i].Err = err
			if best, ok := Cheapest(offers); ok {
				results[i].Cheapest = &best
			}
			opts.Progress.Emit(fmt.Sprintf("destination %s finished with %d offers", dest, len(offers)))
		}(i, dest)
	}

	wg.Wait()
	return results
}

// SearchDateRange runs the base query across consecutive departure dates
// starting at the base date. Round-trip queries keep the trip length: each
// shifted departure gets an equally shifted return. The date count is
// capped by the worker settings.
func (p *ParallelSearcher) SearchDateRange(ctx context.Context, base domain.SearchQuery, days int, opts SearchOptions) ([]DateResult, error) {
	if days < 1 {
		return nil, fmt.Errorf("%w: days must be at least 1", domain.ErrInvalidQuery)
	}
	if days > p.maxDates {
		p.log.Warn().Int("requested", days).Int("cap", p.maxDates).Msg("date range capped")
		days = p.maxDates
	}

	depart, err := time.Parse("20060102", base.DepartureDate)
	if err != nil {
		return nil, fmt.Errorf("%w: departure date must be YYYYMMDD, got %q", domain.ErrInvalidQuery, base.DepartureDate)
	}

	tripLength := time.Duration(0)
	if base.ReturnDate != "" {
		ret, err := time.Parse("20060102", base.ReturnDate)
		if err != nil {
			return nil, fmt.Errorf("%w: return date must be YYYYMMDD, got %q", domain.ErrInvalidQuery, base.ReturnDate)
		}
		tripLength = ret.Sub(depart)
	}

	p.resetCancel()

	results := make([]DateResult, days)
	sem := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup

	for i := 0; i < days; i++ {
		day := depart.AddDate(0, 0, i)
		query := base
		query.DepartureDate = day.Format("20060102")
		if base.ReturnDate != "" {
			query.ReturnDate = day.Add(tripLength).Format("20060102")
		}
		results[i].DepartureDate = query.DepartureDate
		results[i].ReturnDate = query.ReturnDate

		wg.Add(1)
		go func(i int, query domain.SearchQuery) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			offers, err := p.runOne(ctx, query, opts)
			results[i].Offers = offers
			results[i].Err = err
			if best, ok := Cheapest(offers); ok {
				results[i].Cheapest = &best
			}
			opts.Progress.Emit(fmt.Sprintf("date %s finished with %d offers", query.DepartureDate, len(offers)))
		}(i, query)
	}

	wg.Wait()
	return results, nil
}

// runOne executes a single query on a fresh searcher, keeping it registered
// for the duration so Cancel can reach its session.
func (p *ParallelSearcher) runOne(ctx context.Context, query domain.SearchQuery, opts SearchOptions) ([]domain.FlightOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.isCancelled() {
		return nil, context.Canceled
	}

	searcher := p.factory()
	id, ok := p.register(searcher)
	if !ok {
		// Cancelled between the check and the registration.
		searcher.Close()
		return nil, context.Canceled
	}
	defer func() {
		p.unregister(id)
		searcher.Close()
	}()

	return searcher.Search(ctx, query, opts)
}

// Cancel stops new work and closes every registered session. Workers
// already in flight observe their session dying and return promptly.
func (p *ParallelSearcher) Cancel() {
	p.mu.Lock()
	p.cancelled = true
	searchers := make([]*FlightSearcher, 0, len(p.active))
	for _, s := range p.active {
		searchers = append(searchers, s)
	}
	p.mu.Unlock()

	for _, s := range searchers {
		s.Close()
	}
	p.log.Info().Int("sessions_closed", len(searchers)).Msg("parallel run cancelled")
}

func (p *ParallelSearcher) register(s *FlightSearcher) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancelled {
		return 0, false
	}
	id := p.nextID
	p.nextID++
	p.active[id] = s
	return id, true
}

func (p *ParallelSearcher) unregister(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.active, id)
}

func (p *ParallelSearcher) isCancelled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancelled
}

func (p *ParallelSearcher) resetCancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelled = false
}
