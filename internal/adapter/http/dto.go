package http

import (
	"github.com/flightbot/flight-fare-scraper/internal/domain"
)

// SearchFaresResponse is the payload for search and manual-extraction
// responses, with snake_case fields.
type SearchFaresResponse struct {
	Query      QueryDTO    `json:"query"`
	ManualMode bool        `json:"manual_mode"`
	Metadata   MetadataDTO `json:"metadata"`
	Offers     []OfferDTO  `json:"offers"`
}

// QueryDTO echoes the normalized search parameters back to the caller.
type QueryDTO struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date,omitempty"`
	Adults        int    `json:"adults"`
	CabinClass    string `json:"cabin_class"`
}

// MetadataDTO contains metadata about the search execution.
type MetadataDTO struct {
	TotalResults int   `json:"total_results"`
	SearchTimeMs int64 `json:"search_time_ms"`
}

// OfferDTO is the data transfer object for one extracted fare.
type OfferDTO struct {
	Airline       string `json:"airline"`
	Price         int    `json:"price"`
	Currency      string `json:"currency"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	Duration      string `json:"duration,omitempty"`
	Stops         int    `json:"stops"`
	FlightNumber  string `json:"flight_number,omitempty"`
	Source        string `json:"source"`

	IsRoundTrip         bool   `json:"is_round_trip"`
	ReturnAirline       string `json:"return_airline,omitempty"`
	ReturnDepartureTime string `json:"return_departure_time,omitempty"`
	ReturnArrivalTime   string `json:"return_arrival_time,omitempty"`
	ReturnDuration      string `json:"return_duration,omitempty"`
	ReturnStops         int    `json:"return_stops,omitempty"`
	OutboundPrice       int    `json:"outbound_price,omitempty"`
	ReturnPrice         int    `json:"return_price,omitempty"`
}

// ToOfferDTO converts a domain offer.
func ToOfferDTO(o domain.FlightOffer) OfferDTO {
	return OfferDTO{
		Airline:             o.Airline,
		Price:               o.Price,
		Currency:            o.Currency,
		DepartureTime:       o.DepartureTime,
		ArrivalTime:         o.ArrivalTime,
		Duration:            o.Duration,
		Stops:               o.Stops,
		FlightNumber:        o.FlightNumber,
		Source:              o.Source,
		IsRoundTrip:         o.IsRoundTrip,
		ReturnAirline:       o.ReturnAirline,
		ReturnDepartureTime: o.ReturnDepartureTime,
		ReturnArrivalTime:   o.ReturnArrivalTime,
		ReturnDuration:      o.ReturnDuration,
		ReturnStops:         o.ReturnStops,
		OutboundPrice:       o.OutboundPrice,
		ReturnPrice:         o.ReturnPrice,
	}
}

// ToSearchFaresResponse assembles the response payload for a finished
// search. An empty offer list with manualMode set tells the client to call
// the manual extraction endpoint once the user has results on screen.
func ToSearchFaresResponse(query domain.SearchQuery, offers []domain.FlightOffer, manualMode bool, searchTimeMs int64) *SearchFaresResponse {
	dto := &SearchFaresResponse{
		Query: QueryDTO{
			Origin:        query.Origin,
			Destination:   query.Destination,
			DepartureDate: query.DepartureDate,
			ReturnDate:    query.ReturnDate,
			Adults:        query.Adults,
			CabinClass:    query.CabinClass,
		},
		ManualMode: manualMode,
		Metadata: MetadataDTO{
			TotalResults: len(offers),
			SearchTimeMs: searchTimeMs,
		},
		Offers: make([]OfferDTO, len(offers)),
	}
	for i, o := range offers {
		dto.Offers[i] = ToOfferDTO(o)
	}
	return dto
}
