// Package domain contains the core business entities and rules for the
// flight fare scraper. These entities are transport-agnostic and form the
// foundation upon which the scraper, cache, and API layers are built.
package domain

import "sort"

// FlightOffer is a single priced itinerary candidate extracted from the
// booking site. The field set is stable: the last-search persistence
// collaborator restores offers field-for-field across process restarts.
type FlightOffer struct {
	// Airline is the operating carrier of the outbound leg (e.g., "대한항공")
	Airline string `json:"airline"`

	// Price is the total price in KRW won (round-trip offers carry the sum)
	Price int `json:"price"`

	// Currency is the ISO 4217 currency code
	Currency string `json:"currency"`

	// DepartureTime is the outbound departure time in HH:MM
	DepartureTime string `json:"departure_time"`

	// ArrivalTime is the outbound arrival time in HH:MM
	ArrivalTime string `json:"arrival_time"`

	// Duration is a human-readable flight duration, when the site exposes one
	Duration string `json:"duration,omitempty"`

	// Stops is the outbound stop count (0 = direct)
	Stops int `json:"stops"`

	// FlightNumber is the airline's flight number, when available
	FlightNumber string `json:"flight_number,omitempty"`

	// Source tags where the offer came from (auto extraction, manual mode)
	Source string `json:"source"`

	// Return leg fields, populated only for round-trip offers.
	ReturnDepartureTime string `json:"return_departure_time,omitempty"`
	ReturnArrivalTime   string `json:"return_arrival_time,omitempty"`
	ReturnDuration      string `json:"return_duration,omitempty"`
	ReturnStops         int    `json:"return_stops,omitempty"`
	IsRoundTrip         bool   `json:"is_round_trip"`

	// Per-leg price split for domestic round-trip combinations.
	// Invariant: Price == OutboundPrice + ReturnPrice when both are non-zero
	// and IsRoundTrip is set.
	OutboundPrice int `json:"outbound_price,omitempty"`
	ReturnPrice   int `json:"return_price,omitempty"`

	// ReturnAirline is the inbound carrier for cross-airline domestic
	// combinations; empty when both legs share a carrier.
	ReturnAirline string `json:"return_airline,omitempty"`
}

// DefaultCurrency is the currency every extracted offer is priced in.
const DefaultCurrency = "KRW"

// Valid reports whether the offer carries the minimum fields required to be
// shown to a user: a positive price and both outbound times.
func (o *FlightOffer) Valid() bool {
	return o.Price > 0 && o.DepartureTime != "" && o.ArrivalTime != ""
}

// SortOffersByPrice orders offers cheapest-first in place. Zero or negative
// prices sink to the end; ties keep their discovery order (stable sort).
func SortOffersByPrice(offers []FlightOffer) {
	sort.SliceStable(offers, func(i, j int) bool {
		pi, pj := offers[i].Price, offers[j].Price
		if pi <= 0 {
			return false
		}
		if pj <= 0 {
			return true
		}
		return pi < pj
	})
}

// CapOffers truncates an already-sorted offer list to at most max entries.
// A non-positive max means no cap. The second return value reports whether
// truncation happened, so callers can surface it rather than drop silently.
func CapOffers(offers []FlightOffer, max int) ([]FlightOffer, bool) {
	if max <= 0 || len(offers) <= max {
		return offers, false
	}
	return offers[:max], true
}
