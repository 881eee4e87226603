package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightbot/flight-fare-scraper/internal/cache"
	"github.com/flightbot/flight-fare-scraper/internal/config"
	"github.com/flightbot/flight-fare-scraper/internal/domain"
	"github.com/flightbot/flight-fare-scraper/internal/infrastructure/logger"
	"github.com/flightbot/flight-fare-scraper/internal/usecase"
	"github.com/flightbot/flight-fare-scraper/test/mock"
	"github.com/flightbot/flight-fare-scraper/test/testutil"
)

// trackingFactory builds one mock-backed searcher per call and remembers
// every scraper it created.
type trackingFactory struct {
	mu       sync.Mutex
	scrapers []*mock.Scraper
	build    func() *mock.Scraper
}

func newTrackingFactory(build func() *mock.Scraper) *trackingFactory {
	return &trackingFactory{build: build}
}

func (f *trackingFactory) factory() *usecase.FlightSearcher {
	s := f.build()
	f.mu.Lock()
	f.scrapers = append(f.scrapers, s)
	f.mu.Unlock()
	return usecase.NewFlightSearcher(s, cache.Disabled(), logger.Nop())
}

func (f *trackingFactory) created() []*mock.Scraper {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*mock.Scraper, len(f.scrapers))
	copy(out, f.scrapers)
	return out
}

func workerConfig(concurrency, maxDates int) config.WorkerConfig {
	return config.WorkerConfig{Concurrency: concurrency, MaxDates: maxDates}
}

func TestParallel_DestinationResultsKeepInputOrder(t *testing.T) {
	tf := newTrackingFactory(func() *mock.Scraper {
		return mock.NewScraper().WithOffers([]domain.FlightOffer{
			testutil.Offer("대한항공", 120000, "08:00", "10:10"),
		})
	})
	p := usecase.NewParallelSearcher(tf.factory, workerConfig(2, 30), logger.Nop())

	base := testutil.Query("ICN", "NRT", "20260901")
	destinations := []string{"NRT", "KIX", "FUK", "BKK"}

	results := p.SearchDestinations(context.Background(), base, destinations, usecase.SearchOptions{})

	require.Len(t, results, len(destinations))
	for i, dest := range destinations {
		assert.Equal(t, dest, results[i].Destination)
		assert.NoError(t, results[i].Err)
		require.NotNil(t, results[i].Cheapest)
		assert.Equal(t, 120000, results[i].Cheapest.Price)
	}
}

func TestParallel_EverySessionClosedAfterRun(t *testing.T) {
	tf := newTrackingFactory(func() *mock.Scraper {
		return mock.NewScraper().WithOffers([]domain.FlightOffer{
			testutil.Offer("제주항공", 45000, "07:30", "08:40"),
		})
	})
	p := usecase.NewParallelSearcher(tf.factory, workerConfig(2, 30), logger.Nop())

	base := testutil.Query("ICN", "CJU", "20260901")
	p.SearchDestinations(context.Background(), base, []string{"CJU", "PUS", "TAE"}, usecase.SearchOptions{})

	created := tf.created()
	require.Len(t, created, 3)
	for i, s := range created {
		assert.True(t, s.Closed(), "scraper %d must be closed after its search", i)
		assert.Equal(t, 1, s.CloseCalls(), "scraper %d closed exactly once", i)
	}
}

func TestParallel_CancelClosesLiveSessions(t *testing.T) {
	tf := newTrackingFactory(func() *mock.Scraper {
		return mock.NewScraper().
			WithDelay(2 * time.Second).
			WithOffers([]domain.FlightOffer{testutil.Offer("대한항공", 58000, "08:00", "09:10")})
	})
	p := usecase.NewParallelSearcher(tf.factory, workerConfig(2, 30), logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	base := testutil.Query("ICN", "CJU", "20260901")
	done := make(chan []usecase.DestinationResult, 1)
	go func() {
		done <- p.SearchDestinations(ctx, base, []string{"CJU", "PUS", "TAE", "GMP"}, usecase.SearchOptions{})
	}()

	// Let the first workers start, then pull the plug.
	time.Sleep(100 * time.Millisecond)
	p.Cancel()
	cancel()

	select {
	case results := <-done:
		require.Len(t, results, 4)
		for _, s := range tf.created() {
			assert.True(t, s.Closed())
		}
		// At least the workers that never started must report cancellation.
		var cancelled int
		for _, r := range results {
			if r.Err != nil {
				cancelled++
			}
		}
		assert.Greater(t, cancelled, 0)
	case <-time.After(5 * time.Second):
		t.Fatal("parallel run did not finish after cancel")
	}
}

func TestParallel_DateRangeCappedAndOrdered(t *testing.T) {
	tf := newTrackingFactory(func() *mock.Scraper {
		return mock.NewScraper().WithOffers([]domain.FlightOffer{
			testutil.Offer("티웨이", 39000, "06:20", "07:30"),
		})
	})
	p := usecase.NewParallelSearcher(tf.factory, workerConfig(2, 5), logger.Nop())

	base := testutil.Query("GMP", "CJU", "20260901")
	results, err := p.SearchDateRange(context.Background(), base, 10, usecase.SearchOptions{})
	require.NoError(t, err)

	require.Len(t, results, 5, "date count capped by worker settings")
	wantDates := []string{"20260901", "20260902", "20260903", "20260904", "20260905"}
	for i, want := range wantDates {
		assert.Equal(t, want, results[i].DepartureDate)
		assert.NoError(t, results[i].Err)
	}
}

func TestParallel_DateRangeKeepsTripLength(t *testing.T) {
	tf := newTrackingFactory(func() *mock.Scraper {
		return mock.NewScraper().WithOffers([]domain.FlightOffer{
			testutil.RoundTripOffer("제주항공", 45000, 39000, "07:30", "19:00"),
		})
	})
	p := usecase.NewParallelSearcher(tf.factory, workerConfig(2, 30), logger.Nop())

	base := testutil.RoundTripQuery("GMP", "CJU", "20260901", "20260903")
	results, err := p.SearchDateRange(context.Background(), base, 3, usecase.SearchOptions{})
	require.NoError(t, err)

	require.Len(t, results, 3)
	wantReturns := []string{"20260903", "20260904", "20260905"}
	for i, want := range wantReturns {
		assert.Equal(t, want, results[i].ReturnDate, "two-night trip length preserved")
	}
}

func TestParallel_InvalidDateRangeRejected(t *testing.T) {
	tf := newTrackingFactory(func() *mock.Scraper { return mock.NewScraper() })
	p := usecase.NewParallelSearcher(tf.factory, workerConfig(2, 30), logger.Nop())

	base := testutil.Query("GMP", "CJU", "20260901")
	_, err := p.SearchDateRange(context.Background(), base, 0, usecase.SearchOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
}
