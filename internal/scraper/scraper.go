package scraper

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/flightbot/flight-fare-scraper/internal/config"
	"github.com/flightbot/flight-fare-scraper/internal/domain"
	"github.com/flightbot/flight-fare-scraper/internal/infrastructure/logger"
	"github.com/flightbot/flight-fare-scraper/internal/infrastructure/retry"
)

// SourceName tags every offer with the site it was extracted from.
const SourceName = "interpark"

// resultPollInterval is how often the wait loops re-check the page.
const resultPollInterval = 500 * time.Millisecond

// browserStarter launches browser sessions. Production uses BrowserManager;
// tests substitute a fake.
type browserStarter interface {
	Start(ctx context.Context, opts StartOptions) (*Session, error)
}

// Scraper implements domain.PageScraper on top of a chromedp session. One
// Scraper owns at most one live browser session at a time; parallel
// searches each get their own Scraper.
type Scraper struct {
	cfg      config.ScraperConfig
	log      *logger.Logger
	browsers browserStarter

	mu        sync.Mutex
	session   *Session
	manual    bool
	closed    bool
	lastQuery domain.SearchQuery
}

// New creates a Scraper with the given policy.
func New(cfg config.ScraperConfig, log *logger.Logger) *Scraper {
	if log == nil {
		log = logger.Nop()
	}
	return &Scraper{
		cfg:      cfg,
		log:      log.WithComponent("scraper"),
		browsers: NewBrowserManager(log),
	}
}

var _ domain.PageScraper = (*Scraper)(nil)

// Search runs one full automated search. Navigation and extraction
// failures, like an empty result set, reopen the session visible on the
// same profile and return an empty list with a nil error; the caller checks
// IsManualMode and later calls ExtractCurrent once the user has the results
// on screen. Only browser startup and manual-mode activation failures are
// returned as errors.
func (s *Scraper) Search(ctx context.Context, query domain.SearchQuery, emit domain.ProgressFunc) ([]domain.FlightOffer, error) {
	query.SetDefaults()
	if err := query.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, context.Canceled
	}
	prev := s.session
	s.session = nil
	s.manual = false
	s.lastQuery = query
	s.mu.Unlock()

	// A manual-mode session kept alive from an earlier search must not
	// outlive the new one.
	if prev != nil {
		s.log.Info().Msg("closing previous session before new search")
		prev.Close()
	}

	log := s.log.WithRoute(query.Origin, query.Destination)
	url := BuildSearchURL(query)

	emit.Emit("starting browser")
	sess, err := s.browsers.Start(ctx, StartOptions{
		Headless:       s.cfg.AutoHeadless,
		ProfileDir:     s.cfg.ProfileDir,
		BlockResources: s.cfg.BlockResources && s.cfg.AutoHeadless,
	})
	if err != nil {
		return nil, err
	}
	if !s.trackSession(sess) {
		return nil, context.Canceled
	}

	offers, err := s.runSearch(ctx, sess, query, url, emit, log)
	if err != nil {
		sess.Close()
		s.clearSession()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.Warn().Err(err).Msg("automated search failed, switching to manual mode")
		emit.Emit("automated search failed, opening browser for manual search")
		if mErr := s.enterManualMode(ctx, url); mErr != nil {
			return nil, fmt.Errorf("automated search failed (%v): %w", err, mErr)
		}
		return []domain.FlightOffer{}, nil
	}

	if len(offers) == 0 {
		log.Warn().Msg("automated extraction returned nothing, switching to manual mode")
		emit.Emit("no results extracted automatically, opening browser for manual search")
		sess.Close()
		s.clearSession()
		if err := s.enterManualMode(ctx, url); err != nil {
			return nil, err
		}
		return []domain.FlightOffer{}, nil
	}

	sess.Close()
	s.clearSession()

	domain.SortOffersByPrice(offers)
	offers, truncated := domain.CapOffers(offers, query.MaxResults)
	if truncated {
		emit.Emit(fmt.Sprintf("results truncated to cheapest %d", query.MaxResults))
	}

	log.Info().Int("offers", len(offers)).Msg("search finished")
	return offers, nil
}

// runSearch drives the navigate-wait-extract pipeline on an open session.
func (s *Scraper) runSearch(ctx context.Context, sess *Session, query domain.SearchQuery, url string, emit domain.ProgressFunc, log *logger.Logger) ([]domain.FlightOffer, error) {
	emit.Emit("loading search results page")
	if err := s.navigate(ctx, sess, url); err != nil {
		return nil, domain.NewNetworkError(url, err)
	}

	domestic := query.IsDomestic()
	if err := s.waitForResults(ctx, sess, domestic); err != nil {
		// A page that never settles is handled like an empty extraction:
		// the caller falls back to manual mode.
		log.Warn().Err(err).Msg("results never appeared")
		return nil, nil
	}
	if err := sleepCtx(sess.Context(), s.cfg.StabilizeDelay); err != nil {
		return nil, err
	}

	switch {
	case domestic && query.IsRoundTrip():
		return s.searchDomesticRoundTrip(ctx, sess, query, emit, log)
	case domestic:
		emit.Emit("collecting fares")
		legs, err := s.extractDomesticLegs(sess.Context())
		if err != nil {
			return nil, domain.NewDataExtractionError(err.Error())
		}
		return legsToOffers(legs), nil
	default:
		emit.Emit("collecting fares")
		offers, err := s.extractInternational(sess.Context(), SourceName)
		if err != nil {
			return nil, domain.NewDataExtractionError(err.Error())
		}
		return offers, nil
	}
}

// searchDomesticRoundTrip runs the two-step flow: collect outbound legs,
// click the cheapest one to reveal the inbound panel, collect inbound legs,
// and combine. When the click or the inbound panel fails, the outbound legs
// still come back as one-way offers rather than nothing.
func (s *Scraper) searchDomesticRoundTrip(ctx context.Context, sess *Session, query domain.SearchQuery, emit domain.ProgressFunc, log *logger.Logger) ([]domain.FlightOffer, error) {
	emit.Emit("collecting outbound fares")
	outbound, err := s.extractDomesticLegs(sess.Context())
	if err != nil {
		return nil, domain.NewDataExtractionError(err.Error())
	}
	if len(outbound) == 0 {
		return nil, nil
	}

	emit.Emit("selecting outbound flight")
	if !s.clickCheapestOutbound(sess.Context(), outbound) {
		log.Warn().Msg("could not select an outbound flight, returning outbound fares only")
		return legsToOffers(outbound), nil
	}

	if err := s.waitForReturnView(ctx, sess); err != nil {
		log.Warn().Err(err).Msg("inbound panel never appeared, returning outbound fares only")
		return legsToOffers(outbound), nil
	}
	if err := sleepCtx(sess.Context(), s.cfg.DomesticReturnSettle); err != nil {
		return nil, err
	}

	emit.Emit("collecting return fares")
	inbound, err := s.extractDomesticLegs(sess.Context())
	if err != nil {
		return nil, domain.NewDataExtractionError(err.Error())
	}
	if len(inbound) == 0 {
		log.Warn().Msg("no inbound fares extracted, returning outbound fares only")
		return legsToOffers(outbound), nil
	}

	emit.Emit("combining outbound and return fares")
	combined := CombineRoundTrips(outbound, inbound, SourceName, s.cfg.CombinationTopN, query.MaxResults)
	log.Info().
		Int("outbound", len(outbound)).
		Int("inbound", len(inbound)).
		Int("combined", len(combined)).
		Msg("round-trip combination finished")
	return combined, nil
}

// clickCheapestOutbound tries an exact match on the cheapest leg's details
// first, then the looser pattern heuristic.
func (s *Scraper) clickCheapestOutbound(ctx context.Context, legs []Leg) bool {
	cheapest := legs[0]
	for _, l := range legs[1:] {
		if l.Price < cheapest.Price {
			cheapest = l
		}
	}

	var clicked bool
	script := clickFlightByDetailsScript(cheapest.Airline, cheapest.DepTime, cheapest.ArrTime, formatPriceKRW(cheapest.Price))
	if err := evaluate(ctx, script, &clicked); err == nil && clicked {
		return true
	}

	clicked = false
	if err := evaluate(ctx, clickFlightByPatternScript(domain.DomesticAirlines), &clicked); err != nil {
		return false
	}
	return clicked
}

// navigate loads the URL with bounded retries, each attempt under the page
// load timeout. The timeout expiring is not a failure: the site keeps
// streaming results after the load event stalls, so the pipeline continues
// on whatever rendered.
func (s *Scraper) navigate(ctx context.Context, sess *Session, url string) error {
	cfg := retry.Config{
		MaxAttempts:  s.cfg.NavigationRetries,
		InitialDelay: s.cfg.NavigationRetryDelay,
		MaxDelay:     s.cfg.NavigationRetryDelay,
		Multiplier:   1.0,
	}
	return retry.Do(ctx, func() error {
		navCtx, cancel := context.WithTimeout(sess.Context(), s.cfg.PageLoadTimeout)
		defer cancel()
		err := chromedp.Run(navCtx, chromedp.Navigate(url))
		if softNavigationTimeout(err, ctx, sess.Context()) {
			s.log.Warn().Str("url", url).Msg("page load timed out, continuing with the partially loaded page")
			return nil
		}
		return err
	}, cfg)
}

// softNavigationTimeout reports whether a navigation error is only the
// per-attempt page load budget expiring, as opposed to the search being
// cancelled or the session dying.
func softNavigationTimeout(err error, outer, sess context.Context) bool {
	return errors.Is(err, context.DeadlineExceeded) &&
		outer.Err() == nil && sess.Err() == nil
}

// waitForResults polls until at least one priced result is rendered or the
// data wait timeout elapses. Domestic pages render plain buttons; the
// international list uses indexed cards.
func (s *Scraper) waitForResults(ctx context.Context, sess *Session, domestic bool) error {
	script := internationalResultsPresentScript
	if domestic {
		script = domesticResultsPresentScript()
	}
	return s.pollUntil(ctx, sess, script, s.cfg.DataWaitTimeout, "results")
}

// waitForReturnView polls for the inbound panel of the domestic two-step
// flow.
func (s *Scraper) waitForReturnView(ctx context.Context, sess *Session) error {
	return s.pollUntil(ctx, sess, returnViewReadyScript(), s.cfg.DomesticReturnWaitTimeout, "return view")
}

// pollUntil evaluates a boolean script repeatedly until it reports true.
func (s *Scraper) pollUntil(ctx context.Context, sess *Session, script string, timeout time.Duration, what string) error {
	deadline := time.Now().Add(timeout)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var ready bool
		if err := evaluate(sess.Context(), script, &ready); err == nil && ready {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timed out waiting for %s after %s", what, timeout)
		}
		if err := sleepCtx(sess.Context(), resultPollInterval); err != nil {
			return err
		}
	}
}

// enterManualMode reopens a visible browser on the same profile so the user
// can complete the search by hand. Resource blocking stays off so the page
// renders normally. Only a failed relaunch is an activation failure: when
// navigation fails the visible browser is still useful, the user can reach
// the search page themselves.
func (s *Scraper) enterManualMode(ctx context.Context, url string) error {
	sess, err := s.browsers.Start(ctx, StartOptions{
		Headless:       false,
		ProfileDir:     s.cfg.ProfileDir,
		BlockResources: false,
	})
	if err != nil {
		return domain.NewManualModeActivationError("browser relaunch failed", err)
	}

	navCtx, cancel := context.WithTimeout(sess.Context(), s.cfg.PageLoadTimeout)
	err = chromedp.Run(navCtx, chromedp.Navigate(url))
	cancel()
	if err != nil {
		s.log.Warn().Err(err).Str("url", url).Msg("manual mode navigation failed, leaving browser open")
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		sess.Close()
		return domain.NewManualModeActivationError("scraper closed during activation", context.Canceled)
	}
	s.session = sess
	s.manual = true
	s.mu.Unlock()

	s.log.Info().Str("url", url).Msg("manual mode active, browser left open")
	return nil
}

// ExtractCurrent re-scrapes whatever is currently rendered in the
// manual-mode session, without navigating.
func (s *Scraper) ExtractCurrent(ctx context.Context) ([]domain.FlightOffer, error) {
	s.mu.Lock()
	sess := s.session
	manual := s.manual
	query := s.lastQuery
	s.mu.Unlock()

	if !manual || sess == nil || sess.Closed() {
		return nil, domain.ErrNotInManualMode
	}

	var offers []domain.FlightOffer
	var err error
	if query.IsDomestic() {
		offers, err = s.extractDomesticOffers(sess.Context(), SourceName)
	} else {
		offers, err = s.extractInternational(sess.Context(), SourceName)
	}
	if err != nil {
		return nil, domain.NewDataExtractionError(err.Error())
	}

	domain.SortOffersByPrice(offers)
	offers, _ = domain.CapOffers(offers, query.MaxResults)
	s.log.Info().Int("offers", len(offers)).Msg("manual extraction finished")
	return offers, nil
}

// IsManualMode reports whether a manual-mode session is being kept alive.
func (s *Scraper) IsManualMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manual && s.session != nil && !s.session.Closed()
}

// Close releases any live session, manual or automated, and latches the
// scraper shut: a Search racing with Close (the parallel cancellation path)
// finds the latch and shuts its just-opened session down instead of running
// the pipeline. Idempotent.
func (s *Scraper) Close() {
	s.mu.Lock()
	s.closed = true
	sess := s.session
	s.session = nil
	s.manual = false
	s.mu.Unlock()

	if sess != nil {
		sess.Close()
	}
}

// trackSession records the live session, unless Close already ran, in which
// case the session is shut down immediately and false comes back.
func (s *Scraper) trackSession(sess *Session) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		sess.Close()
		return false
	}
	s.session = sess
	s.mu.Unlock()
	return true
}

func (s *Scraper) clearSession() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
}

// legsToOffers converts one-way domestic legs into offers.
func legsToOffers(legs []Leg) []domain.FlightOffer {
	offers := make([]domain.FlightOffer, 0, len(legs))
	for _, l := range legs {
		offers = append(offers, domain.FlightOffer{
			Airline:       l.Airline,
			Price:         l.Price,
			Currency:      domain.DefaultCurrency,
			DepartureTime: l.DepTime,
			ArrivalTime:   l.ArrTime,
			Stops:         l.Stops,
			Source:        SourceName,
		})
	}
	return offers
}

// formatPriceKRW renders a won amount with thousands separators, matching
// the site's on-screen price text.
func formatPriceKRW(price int) string {
	s := strconv.Itoa(price)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
