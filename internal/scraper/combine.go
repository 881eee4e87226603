package scraper

import (
	"container/heap"
	"sort"

	"github.com/flightbot/flight-fare-scraper/internal/domain"
)

// comboKey identifies one outbound/return pairing for dedup. Two pairings
// with the same carriers, total price, and departure times are the same
// itinerary as far as a fare browser cares.
type comboKey struct {
	outAirline string
	retAirline string
	total      int
	outDep     string
	retDep     string
}

// comboItem is one heap entry. seq breaks price ties so eviction order is
// deterministic under equal totals.
type comboItem struct {
	offer domain.FlightOffer
	total int
	seq   int
}

// comboHeap is a max-heap on (total, seq): the root is always the worst
// kept combination, so bounding to K cheapest is a single peek-and-replace.
type comboHeap []comboItem

func (h comboHeap) Len() int { return len(h) }

func (h comboHeap) Less(i, j int) bool {
	if h[i].total != h[j].total {
		return h[i].total > h[j].total
	}
	return h[i].seq > h[j].seq
}

func (h comboHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *comboHeap) Push(x interface{}) {
	*h = append(*h, x.(comboItem))
}

func (h *comboHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// CombineRoundTrips pairs outbound and return legs into round-trip offers
// and keeps the maxResults cheapest by total price. Each leg list is first
// cut to its topN cheapest so the cross product stays bounded; pairings are
// deduplicated before entering the heap. Output is ascending by total, with
// insertion order breaking ties.
func CombineRoundTrips(outbound, inbound []Leg, source string, topN, maxResults int) []domain.FlightOffer {
	out := cheapestLegs(outbound, topN)
	in := cheapestLegs(inbound, topN)
	if len(out) == 0 || len(in) == 0 {
		return nil
	}
	if maxResults <= 0 {
		maxResults = len(out) * len(in)
	}

	seen := make(map[comboKey]bool)
	h := make(comboHeap, 0, maxResults)
	heap.Init(&h)

	seq := 0
	for _, ob := range out {
		for _, rt := range in {
			total := ob.Price + rt.Price
			key := comboKey{
				outAirline: ob.Airline,
				retAirline: rt.Airline,
				total:      total,
				outDep:     ob.DepTime,
				retDep:     rt.DepTime,
			}
			if seen[key] {
				continue
			}

			if len(h) >= maxResults {
				worst := h[0]
				if total > worst.total || (total == worst.total && seq > worst.seq) {
					continue
				}
			}

			seen[key] = true
			item := comboItem{
				offer: domain.FlightOffer{
					Airline:             ob.Airline,
					Price:               total,
					Currency:            domain.DefaultCurrency,
					DepartureTime:       ob.DepTime,
					ArrivalTime:         ob.ArrTime,
					Stops:               ob.Stops,
					Source:              source,
					ReturnDepartureTime: rt.DepTime,
					ReturnArrivalTime:   rt.ArrTime,
					ReturnStops:         rt.Stops,
					ReturnAirline:       rt.Airline,
					IsRoundTrip:         true,
					OutboundPrice:       ob.Price,
					ReturnPrice:         rt.Price,
				},
				total: total,
				seq:   seq,
			}
			seq++

			if len(h) < maxResults {
				heap.Push(&h, item)
			} else {
				h[0] = item
				heap.Fix(&h, 0)
			}
		}
	}

	offers := make([]domain.FlightOffer, len(h))
	items := []comboItem(h)
	sort.Slice(items, func(i, j int) bool {
		if items[i].total != items[j].total {
			return items[i].total < items[j].total
		}
		return items[i].seq < items[j].seq
	})
	for i, item := range items {
		offers[i] = item.offer
	}
	return offers
}

// cheapestLegs drops non-positive prices and returns the n cheapest legs in
// ascending price order. Ties keep collection order.
func cheapestLegs(legs []Leg, n int) []Leg {
	valid := make([]Leg, 0, len(legs))
	for _, l := range legs {
		if l.Price > 0 && l.DepTime != "" && l.ArrTime != "" {
			valid = append(valid, l)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Price < valid[j].Price
	})
	if n > 0 && len(valid) > n {
		valid = valid[:n]
	}
	return valid
}
