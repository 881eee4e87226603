package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/flightbot/flight-fare-scraper/internal/domain"
)

// rawOffer is the untyped payload returned by the in-page scripts. Fields
// are validated one by one before an offer reaches the typed domain; a
// malformed element is skipped, never fatal.
type rawOffer struct {
	Airline     string `json:"airline"`
	Price       int    `json:"price"`
	DepTime     string `json:"depTime"`
	ArrTime     string `json:"arrTime"`
	Stops       int    `json:"stops"`
	RetDepTime  string `json:"retDepTime"`
	RetArrTime  string `json:"retArrTime"`
	RetStops    int    `json:"retStops"`
	IsRoundTrip bool   `json:"isRoundTrip"`
}

// Leg is one validated one-way offer used by the domestic two-step flow.
type Leg struct {
	Airline string
	Price   int
	DepTime string
	ArrTime string
	Stops   int
}

// valid mirrors the drop conditions at the script boundary: positive price
// and both times present.
func (r *rawOffer) valid() bool {
	return r.Price > 0 && r.DepTime != "" && r.ArrTime != ""
}

// dedupKey distinguishes offers by the full per-leg identity, including
// return fields, so distinct itineraries sharing a price are not collapsed.
func (r *rawOffer) dedupKey() string {
	return fmt.Sprintf("%s|%d|%s|%s|%d|%s|%s|%d",
		r.Airline, r.Price, r.DepTime, r.ArrTime, r.Stops,
		r.RetDepTime, r.RetArrTime, r.RetStops)
}

// legKey distinguishes domestic legs by airline, times, and price.
func (r *rawOffer) legKey() string {
	return fmt.Sprintf("%s|%s|%s|%d", r.Airline, r.DepTime, r.ArrTime, r.Price)
}

// toOffer converts a validated payload into a typed offer.
func (r *rawOffer) toOffer(source string) domain.FlightOffer {
	airline := r.Airline
	if airline == "" {
		airline = domain.AirlineOther
	}
	return domain.FlightOffer{
		Airline:             airline,
		Price:               r.Price,
		Currency:            domain.DefaultCurrency,
		DepartureTime:       r.DepTime,
		ArrivalTime:         r.ArrTime,
		Stops:               r.Stops,
		Source:              source,
		ReturnDepartureTime: r.RetDepTime,
		ReturnArrivalTime:   r.RetArrTime,
		ReturnStops:         r.RetStops,
		IsRoundTrip:         r.IsRoundTrip,
	}
}

// evaluate runs an arrow-function script in the page and decodes the JSON
// result. chromedp evaluates expressions, so the function is invoked as an
// IIFE.
func evaluate(ctx context.Context, script string, out interface{}) error {
	return chromedp.Run(ctx, chromedp.Evaluate("("+script+")()", out))
}

// scrollState is the result of one scrollCheckScript round-trip.
type scrollState struct {
	CanScroll     bool `json:"canScroll"`
	ReachedBottom bool `json:"reachedBottom"`
}

// Stall thresholds for the domestic scroll loop.
const (
	bottomStallLimit = 3
	scrollStallLimit = 3
	noNewStallLimit  = 8
)

// extractDomesticLegs scroll-collects every visible domestic leg, keyed for
// dedup, until one of three stop conditions fires: the container reports
// bottom with no new items three times, scrolling stops moving three times,
// or eight consecutive iterations add nothing (lazy-loading stall).
func (s *Scraper) extractDomesticLegs(ctx context.Context) ([]Leg, error) {
	script := domesticListScript(domain.DomesticAirlines)

	seen := make(map[string]Leg)
	order := make([]string, 0, 64)

	bottomCount := 0
	noScrollCount := 0
	noNewCount := 0

	for i := 0; i < s.cfg.DomesticMaxScrolls; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var batch []rawOffer
		if err := evaluate(ctx, script, &batch); err != nil {
			return nil, err
		}

		newCount := 0
		for _, r := range batch {
			if !r.valid() {
				continue
			}
			key := r.legKey()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = Leg{
				Airline: r.Airline,
				Price:   r.Price,
				DepTime: r.DepTime,
				ArrTime: r.ArrTime,
				Stops:   r.Stops,
			}
			order = append(order, key)
			newCount++
		}

		var state scrollState
		if err := evaluate(ctx, scrollCheckScript, &state); err != nil {
			return nil, err
		}

		if err := sleepCtx(ctx, s.cfg.DomesticScrollPause); err != nil {
			return nil, err
		}

		if state.ReachedBottom && newCount == 0 {
			bottomCount++
			if bottomCount >= bottomStallLimit {
				break
			}
			if err := sleepCtx(ctx, s.cfg.DomesticBottomPause); err != nil {
				return nil, err
			}
			continue
		}
		bottomCount = 0

		if !state.CanScroll {
			noScrollCount++
			if noScrollCount >= scrollStallLimit {
				break
			}
		} else {
			noScrollCount = 0
		}

		if newCount == 0 {
			noNewCount++
			if noNewCount >= noNewStallLimit {
				break
			}
		} else {
			noNewCount = 0
		}
	}

	legs := make([]Leg, 0, len(order))
	for _, key := range order {
		legs = append(legs, seen[key])
	}
	s.log.Debug().Int("legs", len(legs)).Msg("domestic leg collection finished")
	return legs, nil
}

// extractDomesticOffers runs the one-shot button sweep for domestic one-way
// results.
func (s *Scraper) extractDomesticOffers(ctx context.Context, source string) ([]domain.FlightOffer, error) {
	var batch []rawOffer
	if err := evaluate(ctx, domesticListScript(domain.DomesticAirlines), &batch); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	offers := make([]domain.FlightOffer, 0, len(batch))
	for _, r := range batch {
		if !r.valid() {
			continue
		}
		key := r.legKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		offers = append(offers, r.toOffer(source))
	}
	return offers, nil
}

// extractInternational alternates extract, scroll to bottom, wait, and
// re-extract, merging new offers into a deduplicated set. Collection stops
// early once the page height stops changing after at least three
// iterations. The looser fallback sweep runs when the primary selector
// finds nothing.
func (s *Scraper) extractInternational(ctx context.Context, source string) ([]domain.FlightOffer, error) {
	primary := internationalScript()
	fallback := internationalFallbackScript()

	seen := make(map[string]rawOffer)
	order := make([]string, 0, 64)

	merge := func(batch []rawOffer) int {
		added := 0
		for _, r := range batch {
			if !r.valid() {
				continue
			}
			key := r.dedupKey()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = r
			order = append(order, key)
			added++
		}
		return added
	}

	previousHeight := 0
	for i := 0; i < s.cfg.InternationalMaxScrolls; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var batch []rawOffer
		if err := evaluate(ctx, primary, &batch); err != nil {
			return nil, err
		}
		if len(batch) == 0 && i == 0 {
			var loose []rawOffer
			if err := evaluate(ctx, fallback, &loose); err == nil && len(loose) > 0 {
				s.log.Debug().Msg("primary card selector empty, using fallback sweep")
				batch = loose
			}
		}

		added := merge(batch)
		s.log.Debug().Int("iteration", i+1).Int("new", added).Int("total", len(seen)).Msg("international scroll pass")

		if err := chromedp.Run(ctx, chromedp.Evaluate(scrollToBottomScript, nil)); err != nil {
			return nil, err
		}
		if err := sleepCtx(ctx, s.cfg.ScrollPause); err != nil {
			return nil, err
		}

		var height int
		if err := chromedp.Run(ctx, chromedp.Evaluate(pageHeightScript, &height)); err != nil {
			return nil, err
		}
		if height == previousHeight && i > 2 {
			break
		}
		previousHeight = height
	}

	// Markup drift can leave the primary selector empty on a fully loaded
	// page; give the fallback one last shot.
	if len(seen) == 0 {
		var loose []rawOffer
		if err := evaluate(ctx, fallback, &loose); err == nil {
			merge(loose)
		}
	}

	offers := make([]domain.FlightOffer, 0, len(order))
	for _, key := range order {
		ro := seen[key]
		offers = append(offers, ro.toOffer(source))
	}
	return offers, nil
}

// sleepCtx pauses for d or returns early when ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
