package http

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func validRequest() SearchFaresRequest {
	return SearchFaresRequest{
		Origin:        "ICN",
		Destination:   "CJU",
		DepartureDate: "20260901",
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verrs *ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected *ValidationErrors, got %T", err)
	return verrs.ToMap()
}

func TestSearchFaresRequest_Validate_Valid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SearchFaresRequest)
	}{
		{"minimal one-way", func(r *SearchFaresRequest) {}},
		{"round trip", func(r *SearchFaresRequest) { r.ReturnDate = "20260903" }},
		{"same-day round trip", func(r *SearchFaresRequest) { r.ReturnDate = "20260901" }},
		{"explicit options", func(r *SearchFaresRequest) {
			r.Adults = 2
			r.CabinClass = "business"
			r.MaxResults = 50
		}},
		{"filters", func(r *SearchFaresRequest) {
			r.Filters = &FilterDTO{
				MaxPrice:       intPtr(150000),
				MaxStops:       intPtr(0),
				Airlines:       []string{"대한항공"},
				Categories:     []string{"lcc"},
				DepartureHours: &HourRangeDTO{Start: 6, End: 12},
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(&r)
			assert.NoError(t, r.Validate())
		})
	}
}

func TestSearchFaresRequest_Validate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*SearchFaresRequest)
		wantField string
	}{
		{"missing origin", func(r *SearchFaresRequest) { r.Origin = "" }, "origin"},
		{"origin too short", func(r *SearchFaresRequest) { r.Origin = "IC" }, "origin"},
		{"origin with digits", func(r *SearchFaresRequest) { r.Origin = "1CN" }, "origin"},
		{"missing destination", func(r *SearchFaresRequest) { r.Destination = "" }, "destination"},
		{"same endpoints case-insensitive", func(r *SearchFaresRequest) { r.Destination = "icn" }, "destination"},
		{"missing departure date", func(r *SearchFaresRequest) { r.DepartureDate = "" }, "departure_date"},
		{"dashed date", func(r *SearchFaresRequest) { r.DepartureDate = "2026-09-01" }, "departure_date"},
		{"impossible date", func(r *SearchFaresRequest) { r.DepartureDate = "20260231" }, "departure_date"},
		{"bad return date format", func(r *SearchFaresRequest) { r.ReturnDate = "next week" }, "return_date"},
		{"return before departure", func(r *SearchFaresRequest) { r.ReturnDate = "20260831" }, "return_date"},
		{"negative adults", func(r *SearchFaresRequest) { r.Adults = -1 }, "adults"},
		{"too many adults", func(r *SearchFaresRequest) { r.Adults = 10 }, "adults"},
		{"unknown cabin", func(r *SearchFaresRequest) { r.CabinClass = "PREMIUM" }, "cabin_class"},
		{"negative max results", func(r *SearchFaresRequest) { r.MaxResults = -5 }, "max_results"},
		{"negative max price", func(r *SearchFaresRequest) {
			r.Filters = &FilterDTO{MaxPrice: intPtr(-1)}
		}, "filters.max_price"},
		{"negative max stops", func(r *SearchFaresRequest) {
			r.Filters = &FilterDTO{MaxStops: intPtr(-1)}
		}, "filters.max_stops"},
		{"unknown category", func(r *SearchFaresRequest) {
			r.Filters = &FilterDTO{Categories: []string{"BUDGET"}}
		}, "filters.categories[0]"},
		{"inverted hour range", func(r *SearchFaresRequest) {
			r.Filters = &FilterDTO{DepartureHours: &HourRangeDTO{Start: 12, End: 6}}
		}, "filters.departure_hours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(&r)

			err := r.Validate()
			require.Error(t, err)
			assert.Contains(t, fieldErrors(t, err), tt.wantField)
		})
	}
}

func TestSearchFaresRequest_Validate_CollectsAllErrors(t *testing.T) {
	r := SearchFaresRequest{
		Origin:      "",
		Destination: "TOOLONG",
		Adults:      -1,
	}

	err := r.Validate()
	require.Error(t, err)

	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "origin")
	assert.Contains(t, fields, "destination")
	assert.Contains(t, fields, "departure_date")
	assert.Contains(t, fields, "adults")
}

func TestSearchFaresRequest_Validate_NormalizesCodes(t *testing.T) {
	r := SearchFaresRequest{
		Origin:        " icn ",
		Destination:   "cju",
		DepartureDate: "20260901",
		Filters:       &FilterDTO{Categories: []string{" lcc "}},
	}

	require.NoError(t, r.Validate())
	assert.Equal(t, "ICN", r.Origin)
	assert.Equal(t, "CJU", r.Destination)
	assert.Equal(t, "LCC", r.Filters.Categories[0])
}

func TestExtractManualRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ExtractManualRequest{}).Validate())
	assert.NoError(t, (&ExtractManualRequest{
		Filters: &FilterDTO{MaxPrice: intPtr(100000)},
	}).Validate())

	err := (&ExtractManualRequest{
		Filters: &FilterDTO{DepartureHours: &HourRangeDTO{Start: 8, End: 8}},
	}).Validate()
	require.Error(t, err)
	assert.Contains(t, fieldErrors(t, err), "filters.departure_hours")
}
