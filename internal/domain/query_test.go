package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuery() SearchQuery {
	return SearchQuery{
		Origin:        "ICN",
		Destination:   "NRT",
		DepartureDate: "20260901",
		Adults:        1,
	}
}

func TestSearchQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SearchQuery)
		wantErr string
	}{
		{
			name:   "valid one-way",
			mutate: func(q *SearchQuery) {},
		},
		{
			name: "valid round-trip",
			mutate: func(q *SearchQuery) {
				q.ReturnDate = "20260905"
			},
		},
		{
			name:    "missing origin",
			mutate:  func(q *SearchQuery) { q.Origin = "" },
			wantErr: "origin is required",
		},
		{
			name:    "origin too long",
			mutate:  func(q *SearchQuery) { q.Origin = "ICNX" },
			wantErr: "3-letter code",
		},
		{
			name:    "missing destination",
			mutate:  func(q *SearchQuery) { q.Destination = "" },
			wantErr: "destination is required",
		},
		{
			name: "same endpoints case-insensitive",
			mutate: func(q *SearchQuery) {
				q.Destination = "icn"
			},
			wantErr: "must be different",
		},
		{
			name:    "missing departure date",
			mutate:  func(q *SearchQuery) { q.DepartureDate = "" },
			wantErr: "departure date is required",
		},
		{
			name:    "dashed date format",
			mutate:  func(q *SearchQuery) { q.DepartureDate = "2026-09-01" },
			wantErr: "must be YYYYMMDD",
		},
		{
			name:    "impossible calendar date",
			mutate:  func(q *SearchQuery) { q.DepartureDate = "20260231" },
			wantErr: "not a valid date",
		},
		{
			name:    "return before departure",
			mutate:  func(q *SearchQuery) { q.ReturnDate = "20260831" },
			wantErr: "before departure",
		},
		{
			name:    "zero adults",
			mutate:  func(q *SearchQuery) { q.Adults = 0 },
			wantErr: "adults must be at least 1",
		},
		{
			name:    "unknown cabin class",
			mutate:  func(q *SearchQuery) { q.CabinClass = "PREMIUM" },
			wantErr: "cabin class must be one of",
		},
		{
			name:    "negative max results",
			mutate:  func(q *SearchQuery) { q.MaxResults = -1 },
			wantErr: "cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuery()
			tt.mutate(&q)

			err := q.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidQuery)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSearchQuery_SetDefaults(t *testing.T) {
	q := SearchQuery{
		Origin:        " icn ",
		Destination:   "nrt",
		DepartureDate: "20260901",
	}
	q.SetDefaults()

	assert.Equal(t, "ICN", q.Origin, "codes normalized to uppercase")
	assert.Equal(t, "NRT", q.Destination)
	assert.Equal(t, 1, q.Adults)
	assert.Equal(t, CabinEconomy, q.CabinClass)
	assert.Equal(t, 1000, q.MaxResults)
}

func TestSearchQuery_SetDefaults_KeepsExplicitValues(t *testing.T) {
	q := SearchQuery{
		Origin:        "ICN",
		Destination:   "NRT",
		DepartureDate: "20260901",
		Adults:        2,
		CabinClass:    "business",
		MaxResults:    50,
	}
	q.SetDefaults()

	assert.Equal(t, 2, q.Adults)
	assert.Equal(t, CabinBusiness, q.CabinClass, "cabin casing normalized")
	assert.Equal(t, 50, q.MaxResults)
}

func TestSearchQuery_IsRoundTrip(t *testing.T) {
	q := validQuery()
	assert.False(t, q.IsRoundTrip())

	q.ReturnDate = "20260905"
	assert.True(t, q.IsRoundTrip())
}

func TestSearchQuery_IsDomestic(t *testing.T) {
	tests := []struct {
		origin, destination string
		want                bool
	}{
		{"GMP", "CJU", true},
		{"ICN", "PUS", true},
		{"icn", "cju", true},
		{"ICN", "NRT", false},
		{"BKK", "SIN", false},
		{"SEL", "CJU", true},
	}

	for _, tt := range tests {
		q := SearchQuery{Origin: tt.origin, Destination: tt.destination}
		assert.Equal(t, tt.want, q.IsDomestic(), "%s-%s", tt.origin, tt.destination)
	}
}

func TestSearchQuery_CacheKey_NormalizesCasing(t *testing.T) {
	a := SearchQuery{Origin: "icn", Destination: "nrt", DepartureDate: "20260901", Adults: 1}
	b := SearchQuery{Origin: "ICN", Destination: "NRT", DepartureDate: "20260901", Adults: 1}

	assert.Equal(t, a.CacheKey(), b.CacheKey())
}

func TestSearchQuery_CacheKey_DefaultsBeforeDefaultsApplied(t *testing.T) {
	// A query that never went through SetDefaults still keys the same as
	// its defaulted twin, except for MaxResults which is part of identity.
	raw := SearchQuery{Origin: "ICN", Destination: "NRT", DepartureDate: "20260901"}
	key := raw.CacheKey()

	assert.Equal(t, 1, key.Adults)
	assert.Equal(t, CabinEconomy, key.CabinClass)
}

func TestSearchQuery_CacheKey_DistinguishesDatesAndCabin(t *testing.T) {
	base := SearchQuery{Origin: "ICN", Destination: "NRT", DepartureDate: "20260901", Adults: 1}

	other := base
	other.DepartureDate = "20260902"
	assert.NotEqual(t, base.CacheKey(), other.CacheKey())

	other = base
	other.ReturnDate = "20260905"
	assert.NotEqual(t, base.CacheKey(), other.CacheKey())

	other = base
	other.CabinClass = CabinBusiness
	assert.NotEqual(t, base.CacheKey(), other.CacheKey())
}
