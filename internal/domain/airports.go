package domain

import "strings"

// domesticAirports is the fixed set of in-country airports. A route whose
// endpoints both resolve into this set is classified as domestic and uses
// the button-list extraction strategy and two-step round-trip flow.
var domesticAirports = map[string]bool{
	"ICN": true, "GMP": true, "CJU": true,
	"PUS": true, "TAE": true, "SEL": true,
}

// CityCodes maps airport codes to the city codes the booking site's URL
// scheme expects. Codes present here are encoded with the "c:" prefix;
// anything else is passed through as an airport code with the "a:" prefix.
var CityCodes = map[string]string{
	"ICN": "SEL", "GMP": "SEL", // Seoul
	"NRT": "TYO", "HND": "TYO", // Tokyo
	"KIX": "OSA", // Osaka
	"FUK": "FUK",
	"CJU": "CJU",
	"PUS": "PUS",
	"BKK": "BKK",
	"SIN": "SIN",
	"HKG": "HKG",
	"SGN": "SGN",
	"DAD": "DAD",
	"DPS": "DPS",
}

// DomesticAirlines is the roster of known in-country carriers. Extraction
// matches element text against these names; anything else falls back to
// AirlineOther.
var DomesticAirlines = []string{
	"대한항공", "아시아나", "제주항공", "진에어", "티웨이",
	"에어부산", "에어서울", "이스타항공", "하이에어", "에어프레미아", "플라이강원",
}

// AirlineOther is the bucket airline name used when no roster entry matches.
const AirlineOther = "기타"

// Carrier categories for result filtering.
const (
	CategoryLCC   = "LCC"
	CategoryFSC   = "FSC"
	CategoryOther = "OTHER"
)

// airlineCategories groups carriers into low-cost and full-service sets.
var airlineCategories = map[string][]string{
	CategoryLCC: {
		"진에어", "제주항공", "티웨이항공", "에어부산", "에어서울", "이스타항공",
		"피치항공", "젯스타", "스쿠트", "에어아시아", "세부퍼시픽", "비엣젯",
		"스프링항공", "ZipAir", "Air Busan", "Jin Air", "T'way", "Jeju Air",
	},
	CategoryFSC: {
		"대한항공", "아시아나항공", "일본항공", "전일본공수", "JAL", "ANA",
		"캐세이퍼시픽", "싱가포르항공", "타이항공", "베트남항공",
		"Korean Air", "Asiana", "Cathay Pacific", "Singapore Airlines",
	},
}

// IsDomesticAirport reports whether the code (airport or mapped city code)
// belongs to the domestic set.
func IsDomesticAirport(code string) bool {
	c := strings.ToUpper(strings.TrimSpace(code))
	if domesticAirports[c] {
		return true
	}
	if city, ok := CityCodes[c]; ok {
		return domesticAirports[city]
	}
	return false
}

// AirlineCategory classifies an airline name as LCC, FSC, or OTHER using
// case-insensitive substring matching in either direction, since scraped
// names vary between short and full forms.
func AirlineCategory(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return CategoryOther
	}
	for category, airlines := range airlineCategories {
		for _, a := range airlines {
			al := strings.ToLower(a)
			if strings.Contains(n, al) || strings.Contains(al, n) {
				return category
			}
		}
	}
	return CategoryOther
}
