// Package testutil provides test helper functions for unit and integration
// tests.
package testutil

import (
	"github.com/flightbot/flight-fare-scraper/internal/domain"
)

// Ptr returns a pointer to the given value. Useful for creating pointers to
// literals in tests.
func Ptr[T any](v T) *T {
	return &v
}

// Offer builds a minimal valid one-way offer.
func Offer(airline string, price int, depTime, arrTime string) domain.FlightOffer {
	return domain.FlightOffer{
		Airline:       airline,
		Price:         price,
		Currency:      domain.DefaultCurrency,
		DepartureTime: depTime,
		ArrivalTime:   arrTime,
		Source:        "test",
	}
}

// RoundTripOffer builds a valid round-trip offer with consistent price
// components.
func RoundTripOffer(airline string, outPrice, retPrice int, depTime, retDepTime string) domain.FlightOffer {
	o := Offer(airline, outPrice+retPrice, depTime, "23:00")
	o.IsRoundTrip = true
	o.OutboundPrice = outPrice
	o.ReturnPrice = retPrice
	o.ReturnAirline = airline
	o.ReturnDepartureTime = retDepTime
	o.ReturnArrivalTime = "23:55"
	return o
}

// Query builds a valid one-way query with defaults applied.
func Query(origin, destination, departureDate string) domain.SearchQuery {
	q := domain.SearchQuery{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: departureDate,
	}
	q.SetDefaults()
	return q
}

// RoundTripQuery builds a valid round-trip query with defaults applied.
func RoundTripQuery(origin, destination, departureDate, returnDate string) domain.SearchQuery {
	q := Query(origin, destination, departureDate)
	q.ReturnDate = returnDate
	return q
}
