package scraper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightbot/flight-fare-scraper/internal/config"
	"github.com/flightbot/flight-fare-scraper/internal/domain"
)

// fakeStarter stands in for BrowserManager. Sessions it hands out wrap a
// plain context, so any chromedp action against them fails immediately and
// the orchestration around the failure can be observed without a browser.
type fakeStarter struct {
	mu       sync.Mutex
	errs     []error
	calls    int
	opts     []StartOptions
	sessions []*Session
	onStart  func()
}

func (f *fakeStarter) Start(ctx context.Context, opts StartOptions) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := f.calls
	f.calls++
	f.opts = append(f.opts, opts)
	if f.onStart != nil {
		f.onStart()
	}
	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	sess := &Session{channel: "stub", ctx: context.Background()}
	f.sessions = append(f.sessions, sess)
	return sess, nil
}

func (f *fakeStarter) startCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func quickScraperConfig() config.ScraperConfig {
	return config.ScraperConfig{
		AutoHeadless:         true,
		BlockResources:       true,
		PageLoadTimeout:      time.Second,
		DataWaitTimeout:      time.Second,
		NavigationRetries:    2,
		NavigationRetryDelay: time.Millisecond,
	}
}

func newStubbedScraper(starter *fakeStarter) *Scraper {
	s := New(quickScraperConfig(), nil)
	s.browsers = starter
	return s
}

func intlQuery() domain.SearchQuery {
	return domain.SearchQuery{
		Origin:        "ICN",
		Destination:   "NRT",
		DepartureDate: "20261001",
	}
}

func TestSearch_NavigationFailureEntersManualMode(t *testing.T) {
	starter := &fakeStarter{}
	s := newStubbedScraper(starter)
	defer s.Close()

	offers, err := s.Search(context.Background(), intlQuery(), nil)

	require.NoError(t, err)
	assert.Empty(t, offers)
	assert.True(t, s.IsManualMode())

	// One headless attempt, then the visible relaunch on the same profile.
	require.Equal(t, 2, starter.startCalls())
	assert.True(t, starter.opts[0].Headless)
	assert.False(t, starter.opts[1].Headless)
	assert.False(t, starter.opts[1].BlockResources)
	assert.Equal(t, starter.opts[0].ProfileDir, starter.opts[1].ProfileDir)

	// The failed automated session is gone; the visible one stays alive
	// even though its navigation also failed.
	assert.True(t, starter.sessions[0].Closed())
	assert.False(t, starter.sessions[1].Closed())
}

func TestSearch_ManualRelaunchFailurePropagates(t *testing.T) {
	launchErr := domain.NewBrowserInitError([]domain.ChannelAttempt{
		{Channel: "Chrome", Reason: "executable not found"},
	})
	starter := &fakeStarter{errs: []error{nil, launchErr}}
	s := newStubbedScraper(starter)
	defer s.Close()

	offers, err := s.Search(context.Background(), intlQuery(), nil)

	require.Error(t, err)
	assert.Nil(t, offers)
	var actErr *domain.ManualModeActivationError
	assert.True(t, errors.As(err, &actErr))
	assert.False(t, s.IsManualMode())
	assert.Equal(t, 2, starter.startCalls())
}

func TestSearch_CancelledContextSkipsManualFallback(t *testing.T) {
	starter := &fakeStarter{}
	s := newStubbedScraper(starter)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	offers, err := s.Search(ctx, intlQuery(), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, offers)
	assert.False(t, s.IsManualMode())
	// No visible relaunch after a cancellation.
	assert.Equal(t, 1, starter.startCalls())
	assert.True(t, starter.sessions[0].Closed())
}

func TestSearch_RefusedAfterClose(t *testing.T) {
	starter := &fakeStarter{}
	s := newStubbedScraper(starter)

	s.Close()
	offers, err := s.Search(context.Background(), intlQuery(), nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, offers)
	assert.Equal(t, 0, starter.startCalls())
}

func TestSearch_CloseDuringStartupShutsSessionDown(t *testing.T) {
	starter := &fakeStarter{}
	s := newStubbedScraper(starter)
	// Close lands between the launch and the session being tracked, the
	// window a concurrent cancellation can hit.
	starter.onStart = s.Close

	offers, err := s.Search(context.Background(), intlQuery(), nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, offers)
	require.Len(t, starter.sessions, 1)
	assert.True(t, starter.sessions[0].Closed())
	assert.False(t, s.IsManualMode())
}

func TestSearch_ClosesLeftoverManualSession(t *testing.T) {
	launchErr := domain.NewBrowserInitError(nil)
	starter := &fakeStarter{errs: []error{launchErr}}
	s := newStubbedScraper(starter)
	defer s.Close()

	leftover := &Session{channel: "stub", ctx: context.Background()}
	s.mu.Lock()
	s.session = leftover
	s.manual = true
	s.mu.Unlock()

	_, err := s.Search(context.Background(), intlQuery(), nil)

	// The launch failure is irrelevant here; the point is that the old
	// manual-mode session does not outlive the new search.
	require.Error(t, err)
	assert.True(t, leftover.Closed())
	assert.False(t, s.IsManualMode())
}

func TestSoftNavigationTimeout(t *testing.T) {
	live := context.Background()
	dead, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name  string
		err   error
		outer context.Context
		sess  context.Context
		want  bool
	}{
		{"deadline with live contexts", context.DeadlineExceeded, live, live, true},
		{"wrapped deadline", fmt.Errorf("run: %w", context.DeadlineExceeded), live, live, true},
		{"outer context cancelled", context.DeadlineExceeded, dead, live, false},
		{"session context dead", context.DeadlineExceeded, live, dead, false},
		{"other error", errors.New("net::ERR_CONNECTION_REFUSED"), live, live, false},
		{"no error", nil, live, live, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, softNavigationTimeout(tt.err, tt.outer, tt.sess))
		})
	}
}
