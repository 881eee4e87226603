package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Cabin classes accepted by the booking site's URL scheme.
const (
	CabinEconomy  = "ECONOMY"
	CabinBusiness = "BUSINESS"
	CabinFirst    = "FIRST"
)

// validCabins defines the allowed cabin classes.
var validCabins = map[string]bool{
	CabinEconomy:  true,
	CabinBusiness: true,
	CabinFirst:    true,
}

// airportCodeRegex matches valid 3-letter airport/city codes.
var airportCodeRegex = regexp.MustCompile(`^[A-Za-z]{3}$`)

// dateRegex matches dates in the site's YYYYMMDD format.
var dateRegex = regexp.MustCompile(`^\d{8}$`)

// SearchQuery defines the parameters for one fare search.
type SearchQuery struct {
	// Origin is the 3-letter departure airport or city code (e.g., "ICN")
	Origin string `json:"origin"`

	// Destination is the 3-letter arrival airport or city code (e.g., "NRT")
	Destination string `json:"destination"`

	// DepartureDate is the outbound date in YYYYMMDD format
	DepartureDate string `json:"departure_date"`

	// ReturnDate is the optional inbound date in YYYYMMDD format
	ReturnDate string `json:"return_date,omitempty"`

	// Adults is the number of adult passengers (default: 1)
	Adults int `json:"adults"`

	// CabinClass is ECONOMY, BUSINESS, or FIRST (default: ECONOMY)
	CabinClass string `json:"cabin_class,omitempty"`

	// MaxResults caps the returned offer list (default: 1000)
	MaxResults int `json:"max_results,omitempty"`
}

// Validate checks the query and returns a wrapped ErrInvalidQuery on failure.
func (q *SearchQuery) Validate() error {
	if q.Origin == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidQuery)
	}
	if !airportCodeRegex.MatchString(q.Origin) {
		return fmt.Errorf("%w: origin must be a 3-letter code, got %q", ErrInvalidQuery, q.Origin)
	}
	if q.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidQuery)
	}
	if !airportCodeRegex.MatchString(q.Destination) {
		return fmt.Errorf("%w: destination must be a 3-letter code, got %q", ErrInvalidQuery, q.Destination)
	}
	if strings.EqualFold(q.Origin, q.Destination) {
		return fmt.Errorf("%w: origin and destination must be different", ErrInvalidQuery)
	}

	if q.DepartureDate == "" {
		return fmt.Errorf("%w: departure date is required", ErrInvalidQuery)
	}
	if !dateRegex.MatchString(q.DepartureDate) {
		return fmt.Errorf("%w: departure date must be YYYYMMDD, got %q", ErrInvalidQuery, q.DepartureDate)
	}
	if _, err := time.Parse("20060102", q.DepartureDate); err != nil {
		return fmt.Errorf("%w: departure date is not a valid date: %s", ErrInvalidQuery, q.DepartureDate)
	}

	if q.ReturnDate != "" {
		if !dateRegex.MatchString(q.ReturnDate) {
			return fmt.Errorf("%w: return date must be YYYYMMDD, got %q", ErrInvalidQuery, q.ReturnDate)
		}
		if _, err := time.Parse("20060102", q.ReturnDate); err != nil {
			return fmt.Errorf("%w: return date is not a valid date: %s", ErrInvalidQuery, q.ReturnDate)
		}
		if q.ReturnDate < q.DepartureDate {
			return fmt.Errorf("%w: return date is before departure date", ErrInvalidQuery)
		}
	}

	if q.Adults < 1 {
		return fmt.Errorf("%w: adults must be at least 1", ErrInvalidQuery)
	}
	if q.CabinClass != "" && !validCabins[strings.ToUpper(q.CabinClass)] {
		return fmt.Errorf("%w: cabin class must be one of ECONOMY, BUSINESS, FIRST; got %q", ErrInvalidQuery, q.CabinClass)
	}
	if q.MaxResults < 0 {
		return fmt.Errorf("%w: max results cannot be negative", ErrInvalidQuery)
	}

	return nil
}

// SetDefaults applies default values to empty optional fields and normalizes
// code and cabin casing.
func (q *SearchQuery) SetDefaults() {
	q.Origin = strings.ToUpper(strings.TrimSpace(q.Origin))
	q.Destination = strings.ToUpper(strings.TrimSpace(q.Destination))
	if q.Adults == 0 {
		q.Adults = 1
	}
	q.CabinClass = strings.ToUpper(q.CabinClass)
	if !validCabins[q.CabinClass] {
		q.CabinClass = CabinEconomy
	}
	if q.MaxResults == 0 {
		q.MaxResults = 1000
	}
}

// IsRoundTrip reports whether the query has a return leg.
func (q *SearchQuery) IsRoundTrip() bool {
	return q.ReturnDate != ""
}

// IsDomestic reports whether both endpoints resolve into the domestic
// airport set. The classification selects the extraction strategy and URL
// scheme.
func (q *SearchQuery) IsDomestic() bool {
	return IsDomesticAirport(q.Origin) && IsDomesticAirport(q.Destination)
}

// CacheKey is the normalized identity of a search, used by the result cache.
type CacheKey struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	CabinClass    string
	MaxResults    int
}

// CacheKey builds the normalized cache key for this query. Queries differing
// only in code casing map to the same key.
func (q *SearchQuery) CacheKey() CacheKey {
	cabin := strings.ToUpper(q.CabinClass)
	if cabin == "" {
		cabin = CabinEconomy
	}
	adults := q.Adults
	if adults < 1 {
		adults = 1
	}
	return CacheKey{
		Origin:        strings.ToUpper(q.Origin),
		Destination:   strings.ToUpper(q.Destination),
		DepartureDate: q.DepartureDate,
		ReturnDate:    q.ReturnDate,
		Adults:        adults,
		CabinClass:    cabin,
		MaxResults:    q.MaxResults,
	}
}
