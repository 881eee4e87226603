package usecase

import (
	"strconv"
	"strings"

	"github.com/flightbot/flight-fare-scraper/internal/domain"
)

// ApplyFilters returns the offers that pass every set filter dimension.
// A nil or empty options value returns the input unchanged.
func ApplyFilters(offers []domain.FlightOffer, opts *domain.FilterOptions) []domain.FlightOffer {
	if opts.IsEmpty() {
		return offers
	}

	result := make([]domain.FlightOffer, 0, len(offers))
	for _, o := range offers {
		if matchesOffer(o, opts) {
			result = append(result, o)
		}
	}
	return result
}

// matchesOffer checks one offer against every set dimension. Dimensions are
// ANDed; within Airlines and Categories any entry matching is enough.
func matchesOffer(o domain.FlightOffer, opts *domain.FilterOptions) bool {
	if opts.MaxPrice != nil && o.Price > *opts.MaxPrice {
		return false
	}
	if opts.MaxStops != nil && o.Stops > *opts.MaxStops {
		return false
	}

	if len(opts.Airlines) > 0 && !matchesAirline(o, opts.Airlines) {
		return false
	}
	if len(opts.Categories) > 0 && !matchesCategory(o, opts.Categories) {
		return false
	}

	if opts.DepartureHours != nil && opts.DepartureHours.IsValid() {
		hour, ok := departureHour(o.DepartureTime)
		if !ok {
			return false
		}
		if hour < opts.DepartureHours.Start || hour >= opts.DepartureHours.End {
			return false
		}
	}

	return true
}

// matchesAirline matches scraped carrier names by substring in either
// direction, since the site mixes short and full forms. Round trips match
// on either leg's carrier.
func matchesAirline(o domain.FlightOffer, airlines []string) bool {
	names := []string{o.Airline}
	if o.ReturnAirline != "" {
		names = append(names, o.ReturnAirline)
	}
	for _, want := range airlines {
		w := strings.ToLower(strings.TrimSpace(want))
		if w == "" {
			continue
		}
		for _, name := range names {
			n := strings.ToLower(name)
			if strings.Contains(n, w) || strings.Contains(w, n) {
				return true
			}
		}
	}
	return false
}

func matchesCategory(o domain.FlightOffer, categories []string) bool {
	got := domain.AirlineCategory(o.Airline)
	for _, want := range categories {
		if strings.EqualFold(strings.TrimSpace(want), got) {
			return true
		}
	}
	return false
}

// departureHour parses the hour out of an extracted HH:MM time.
func departureHour(t string) (int, bool) {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}
