package scraper

import (
	"fmt"
	"strings"

	"github.com/flightbot/flight-fare-scraper/internal/domain"
)

// searchBaseURL is the booking site's fare search endpoint.
const searchBaseURL = "https://travel.interpark.com/air/search"

// locationSegment encodes one endpoint for the URL path: codes present in
// the city-code table use the "c:" prefix with the mapped city code,
// anything else passes through as an airport code with the "a:" prefix.
func locationSegment(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	if city, ok := domain.CityCodes[c]; ok {
		return "c:" + city
	}
	return "a:" + c
}

// BuildSearchURL constructs the site URL for a query. One-way searches use a
// single leg segment; round trips append a mirrored return leg. Infant and
// child counts are fixed at zero in this scope.
func BuildSearchURL(q domain.SearchQuery) string {
	origin := locationSegment(q.Origin)
	dest := locationSegment(q.Destination)

	cabin := strings.ToUpper(q.CabinClass)
	if cabin == "" {
		cabin = domain.CabinEconomy
	}
	adults := q.Adults
	if adults < 1 {
		adults = 1
	}

	if q.ReturnDate != "" {
		return fmt.Sprintf("%s/%s-%s-%s/%s-%s-%s?cabin=%s&infant=0&child=0&adult=%d",
			searchBaseURL,
			origin, dest, q.DepartureDate,
			dest, origin, q.ReturnDate,
			cabin, adults)
	}
	return fmt.Sprintf("%s/%s-%s-%s?cabin=%s&infant=0&child=0&adult=%d",
		searchBaseURL,
		origin, dest, q.DepartureDate,
		cabin, adults)
}
