package domain

// FilterOptions defines optional filters applied to offer lists after
// extraction. Nil pointer fields and empty slices mean "no filtering on
// this dimension".
type FilterOptions struct {
	// MaxPrice drops offers priced above this amount (KRW won)
	MaxPrice *int `json:"max_price,omitempty"`

	// MaxStops drops offers with more outbound stops than this value
	// (0 = direct flights only)
	MaxStops *int `json:"max_stops,omitempty"`

	// Airlines keeps only offers from these carriers (substring match,
	// since scraped names vary between short and full forms)
	Airlines []string `json:"airlines,omitempty"`

	// Categories keeps only offers whose carrier falls into these
	// categories (LCC, FSC, OTHER)
	Categories []string `json:"categories,omitempty"`

	// DepartureHours keeps only offers departing within [Start, End) hours
	DepartureHours *HourRange `json:"departure_hours,omitempty"`
}

// HourRange is a half-open departure-hour window in local time.
type HourRange struct {
	// Start is the first included hour (0-23)
	Start int `json:"start"`

	// End is the first excluded hour (1-24)
	End int `json:"end"`
}

// IsValid reports whether the range is a usable window.
func (r *HourRange) IsValid() bool {
	if r == nil {
		return true
	}
	return r.Start >= 0 && r.End <= 24 && r.Start < r.End
}

// IsEmpty reports whether no filter dimension is set.
func (f *FilterOptions) IsEmpty() bool {
	if f == nil {
		return true
	}
	return f.MaxPrice == nil && f.MaxStops == nil &&
		len(f.Airlines) == 0 && len(f.Categories) == 0 &&
		f.DepartureHours == nil
}
