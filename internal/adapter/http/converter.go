package http

import (
	"strings"

	"github.com/flightbot/flight-fare-scraper/internal/domain"
	"github.com/flightbot/flight-fare-scraper/internal/usecase"
)

// ToDomainQuery converts a validated request to a domain.SearchQuery.
// Defaults are left to the domain's SetDefaults.
func ToDomainQuery(req *SearchFaresRequest) domain.SearchQuery {
	return domain.SearchQuery{
		Origin:        strings.ToUpper(req.Origin),
		Destination:   strings.ToUpper(req.Destination),
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Adults:        req.Adults,
		CabinClass:    strings.ToUpper(req.CabinClass),
		MaxResults:    req.MaxResults,
	}
}

// ToDomainFilters converts a FilterDTO to domain.FilterOptions.
func ToDomainFilters(dto *FilterDTO) *domain.FilterOptions {
	if dto == nil {
		return nil
	}

	opts := &domain.FilterOptions{
		MaxPrice:   dto.MaxPrice,
		MaxStops:   dto.MaxStops,
		Airlines:   dto.Airlines,
		Categories: dto.Categories,
	}
	if dto.DepartureHours != nil {
		opts.DepartureHours = &domain.HourRange{
			Start: dto.DepartureHours.Start,
			End:   dto.DepartureHours.End,
		}
	}
	return opts
}

// ToSearchOptions converts request fields to usecase.SearchOptions.
func ToSearchOptions(req *SearchFaresRequest) usecase.SearchOptions {
	return usecase.SearchOptions{
		Filters:      ToDomainFilters(req.Filters),
		ForceRefresh: req.ForceRefresh,
	}
}
