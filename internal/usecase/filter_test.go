package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightbot/flight-fare-scraper/internal/domain"
)

func intPtr(v int) *int { return &v }

func sampleOffers() []domain.FlightOffer {
	return []domain.FlightOffer{
		{Airline: "대한항공", Price: 98000, Stops: 0, DepartureTime: "08:00", ArrivalTime: "09:10"},
		{Airline: "제주항공", Price: 52000, Stops: 0, DepartureTime: "09:30", ArrivalTime: "10:40"},
		{Airline: "진에어", Price: 61000, Stops: 1, DepartureTime: "14:00", ArrivalTime: "16:30"},
		{Airline: "아시아나", Price: 87000, Stops: 0, DepartureTime: "19:45", ArrivalTime: "21:00"},
	}
}

func TestApplyFilters_NilAndEmptyPassThrough(t *testing.T) {
	offers := sampleOffers()

	assert.Equal(t, offers, ApplyFilters(offers, nil))
	assert.Equal(t, offers, ApplyFilters(offers, &domain.FilterOptions{}))
}

func TestApplyFilters_MaxPrice(t *testing.T) {
	got := ApplyFilters(sampleOffers(), &domain.FilterOptions{MaxPrice: intPtr(61000)})

	require.Len(t, got, 2)
	assert.Equal(t, "제주항공", got[0].Airline)
	assert.Equal(t, "진에어", got[1].Airline)
}

func TestApplyFilters_MaxStops(t *testing.T) {
	got := ApplyFilters(sampleOffers(), &domain.FilterOptions{MaxStops: intPtr(0)})

	require.Len(t, got, 3)
	for _, o := range got {
		assert.Equal(t, 0, o.Stops)
	}
}

func TestApplyFilters_Airlines(t *testing.T) {
	t.Run("exact name", func(t *testing.T) {
		got := ApplyFilters(sampleOffers(), &domain.FilterOptions{Airlines: []string{"제주항공"}})
		require.Len(t, got, 1)
		assert.Equal(t, "제주항공", got[0].Airline)
	})

	t.Run("short form matches full scraped name", func(t *testing.T) {
		got := ApplyFilters(sampleOffers(), &domain.FilterOptions{Airlines: []string{"제주"}})
		require.Len(t, got, 1)
	})

	t.Run("full form matches short scraped name", func(t *testing.T) {
		got := ApplyFilters(sampleOffers(), &domain.FilterOptions{Airlines: []string{"아시아나항공"}})
		require.Len(t, got, 1)
		assert.Equal(t, "아시아나", got[0].Airline)
	})

	t.Run("any listed airline is enough", func(t *testing.T) {
		got := ApplyFilters(sampleOffers(), &domain.FilterOptions{Airlines: []string{"대한항공", "진에어"}})
		assert.Len(t, got, 2)
	})
}

func TestApplyFilters_ReturnAirlineMatches(t *testing.T) {
	offers := []domain.FlightOffer{
		{
			Airline:       "대한항공",
			ReturnAirline: "제주항공",
			Price:         110000,
			DepartureTime: "08:00",
			ArrivalTime:   "09:10",
			IsRoundTrip:   true,
		},
	}

	got := ApplyFilters(offers, &domain.FilterOptions{Airlines: []string{"제주항공"}})
	assert.Len(t, got, 1, "round trips match on either leg's carrier")
}

func TestApplyFilters_Categories(t *testing.T) {
	got := ApplyFilters(sampleOffers(), &domain.FilterOptions{Categories: []string{domain.CategoryLCC}})

	require.Len(t, got, 2)
	assert.Equal(t, "제주항공", got[0].Airline)
	assert.Equal(t, "진에어", got[1].Airline)

	got = ApplyFilters(sampleOffers(), &domain.FilterOptions{Categories: []string{"fsc"}})
	assert.Len(t, got, 2, "category comparison is case-insensitive")
}

func TestApplyFilters_DepartureHours(t *testing.T) {
	morning := &domain.FilterOptions{DepartureHours: &domain.HourRange{Start: 6, End: 12}}

	got := ApplyFilters(sampleOffers(), morning)

	require.Len(t, got, 2)
	assert.Equal(t, "08:00", got[0].DepartureTime)
	assert.Equal(t, "09:30", got[1].DepartureTime)
}

func TestApplyFilters_DepartureHoursHalfOpen(t *testing.T) {
	offers := []domain.FlightOffer{
		{Airline: "A", Price: 1000, DepartureTime: "06:00", ArrivalTime: "07:00"},
		{Airline: "B", Price: 1000, DepartureTime: "11:59", ArrivalTime: "13:00"},
		{Airline: "C", Price: 1000, DepartureTime: "12:00", ArrivalTime: "13:30"},
	}

	got := ApplyFilters(offers, &domain.FilterOptions{DepartureHours: &domain.HourRange{Start: 6, End: 12}})

	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Airline, "start hour included")
	assert.Equal(t, "B", got[1].Airline, "end hour excluded")
}

func TestApplyFilters_UnparseableTimeDropped(t *testing.T) {
	offers := []domain.FlightOffer{
		{Airline: "A", Price: 1000, DepartureTime: "soon", ArrivalTime: "later"},
	}

	got := ApplyFilters(offers, &domain.FilterOptions{DepartureHours: &domain.HourRange{Start: 0, End: 24}})
	assert.Empty(t, got)
}

func TestApplyFilters_DimensionsCombineWithAnd(t *testing.T) {
	opts := &domain.FilterOptions{
		MaxPrice:   intPtr(90000),
		MaxStops:   intPtr(0),
		Categories: []string{domain.CategoryLCC},
	}

	got := ApplyFilters(sampleOffers(), opts)

	// 제주항공 is the only offer that is cheap, direct, and low-cost.
	require.Len(t, got, 1)
	assert.Equal(t, "제주항공", got[0].Airline)
}
