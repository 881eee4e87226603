// Package http provides the HTTP handler layer for the fare search API.
// It handles request parsing, validation, response formatting, and error
// mapping.
package http

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// SearchFaresRequest is the request body for a fare search.
type SearchFaresRequest struct {
	// Origin is the 3-letter code of the departure airport (e.g., "ICN")
	Origin string `json:"origin"`

	// Destination is the 3-letter code of the arrival airport (e.g., "CJU")
	Destination string `json:"destination"`

	// DepartureDate is the outbound date in YYYYMMDD format
	DepartureDate string `json:"departure_date"`

	// ReturnDate is the optional inbound date in YYYYMMDD format
	ReturnDate string `json:"return_date,omitempty"`

	// Adults is the number of adult passengers (default 1)
	Adults int `json:"adults,omitempty"`

	// CabinClass is ECONOMY, BUSINESS, or FIRST (default ECONOMY)
	CabinClass string `json:"cabin_class,omitempty"`

	// MaxResults caps the returned offer list (default 1000)
	MaxResults int `json:"max_results,omitempty"`

	// ForceRefresh bypasses the result cache
	ForceRefresh bool `json:"force_refresh,omitempty"`

	// Filters contains optional filtering criteria
	Filters *FilterDTO `json:"filters,omitempty"`
}

// FilterDTO represents optional filters for a fare search.
type FilterDTO struct {
	// MaxPrice drops offers priced above this amount in won
	MaxPrice *int `json:"max_price,omitempty" example:"150000"`

	// MaxStops drops offers with more stops than this value (0 = direct only)
	MaxStops *int `json:"max_stops,omitempty" example:"0"`

	// Airlines keeps only these carriers (substring match on scraped names)
	Airlines []string `json:"airlines,omitempty"`

	// Categories keeps only these carrier categories: LCC, FSC, OTHER
	Categories []string `json:"categories,omitempty" example:"LCC"`

	// DepartureHours keeps only offers departing within [start, end) hours
	DepartureHours *HourRangeDTO `json:"departure_hours,omitempty"`
}

// HourRangeDTO is a half-open departure-hour window.
type HourRangeDTO struct {
	// Start is the first included hour (0-23)
	Start int `json:"start" example:"6"`

	// End is the first excluded hour (1-24)
	End int `json:"end" example:"12"`
}

// ExtractManualRequest is the optional body for a manual extraction.
type ExtractManualRequest struct {
	// Filters applied to the extracted offers
	Filters *FilterDTO `json:"filters,omitempty"`
}

// Validation patterns for the site's code and date formats.
var (
	airportCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)
	datePattern        = regexp.MustCompile(`^\d{8}$`)
)

var validCabinClasses = map[string]bool{
	"":         true,
	"ECONOMY":  true,
	"BUSINESS": true,
	"FIRST":    true,
}

var validCategories = map[string]bool{
	"LCC":   true,
	"FSC":   true,
	"OTHER": true,
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for the API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate checks the request and collects every field error.
func (r *SearchFaresRequest) Validate() error {
	errs := &ValidationErrors{}

	r.validateEndpoint(errs, "origin", &r.Origin)
	r.validateEndpoint(errs, "destination", &r.Destination)
	if r.Origin != "" && strings.EqualFold(r.Origin, r.Destination) {
		errs.Add("destination", "origin and destination must be different")
	}

	r.validateDate(errs, "departure_date", r.DepartureDate, true)
	r.validateDate(errs, "return_date", r.ReturnDate, false)
	if r.ReturnDate != "" && r.DepartureDate != "" && r.ReturnDate < r.DepartureDate {
		errs.Add("return_date", "return_date must not be before departure_date")
	}

	if r.Adults < 0 {
		errs.Add("adults", "adults must be at least 1")
	}
	if r.Adults > 9 {
		errs.Add("adults", "adults cannot exceed 9")
	}
	if !validCabinClasses[strings.ToUpper(r.CabinClass)] {
		errs.Add("cabin_class", "cabin_class must be one of: ECONOMY, BUSINESS, FIRST")
	}
	if r.MaxResults < 0 {
		errs.Add("max_results", "max_results must be a non-negative number")
	}

	if r.Filters != nil {
		r.Filters.validate(errs)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *SearchFaresRequest) validateEndpoint(errs *ValidationErrors, field string, code *string) {
	if *code == "" {
		errs.Add(field, field+" is required")
		return
	}
	normalized := strings.ToUpper(strings.TrimSpace(*code))
	if !airportCodePattern.MatchString(normalized) {
		errs.Add(field, field+" must be a 3-letter airport or city code")
		return
	}
	*code = normalized
}

func (r *SearchFaresRequest) validateDate(errs *ValidationErrors, field, value string, required bool) {
	if value == "" {
		if required {
			errs.Add(field, field+" is required")
		}
		return
	}
	if !datePattern.MatchString(value) {
		errs.Add(field, field+" must be in YYYYMMDD format")
		return
	}
	if _, err := time.Parse("20060102", value); err != nil {
		errs.Add(field, field+" is not a valid date")
	}
}

func (f *FilterDTO) validate(errs *ValidationErrors) {
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		errs.Add("filters.max_price", "max_price must be a non-negative number")
	}
	if f.MaxStops != nil && *f.MaxStops < 0 {
		errs.Add("filters.max_stops", "max_stops must be a non-negative number")
	}
	for i, category := range f.Categories {
		normalized := strings.ToUpper(strings.TrimSpace(category))
		if !validCategories[normalized] {
			errs.Add(fmt.Sprintf("filters.categories[%d]", i),
				"category must be one of: LCC, FSC, OTHER")
			continue
		}
		f.Categories[i] = normalized
	}
	if f.DepartureHours != nil {
		h := f.DepartureHours
		if h.Start < 0 || h.End > 24 || h.Start >= h.End {
			errs.Add("filters.departure_hours",
				"departure_hours must satisfy 0 <= start < end <= 24")
		}
	}
}

// Validate checks the manual extraction request.
func (r *ExtractManualRequest) Validate() error {
	errs := &ValidationErrors{}
	if r.Filters != nil {
		r.Filters.validate(errs)
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}
