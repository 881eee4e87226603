package scraper

import (
	"context"
	"os"
	"os/exec"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/flightbot/flight-fare-scraper/internal/domain"
	"github.com/flightbot/flight-fare-scraper/internal/infrastructure/logger"
)

// userAgent is sent on every automated session; the site serves the Korean
// desktop layout for it.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// blockedResourceTypes are aborted when resource blocking is on. Heavy
// static assets only; documents, scripts, and XHR always go through.
var blockedResourceTypes = map[network.ResourceType]bool{
	network.ResourceTypeImage: true,
	network.ResourceTypeMedia: true,
	network.ResourceTypeFont:  true,
}

// Channel is one browser install the manager can try to launch.
type Channel struct {
	// Name identifies the channel in diagnostics (e.g., "Chrome").
	Name string

	// ExecCandidates are binary names or absolute paths probed in order.
	// Empty means chromedp's own default discovery.
	ExecCandidates []string
}

// defaultChannels is the fixed launch order: a user-installed Chrome, then
// Edge, then whatever Chromium chromedp can find on its own.
var defaultChannels = []Channel{
	{
		Name: "Chrome",
		ExecCandidates: []string{
			"google-chrome", "google-chrome-stable", "chrome",
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
		},
	},
	{
		Name: "Edge",
		ExecCandidates: []string{
			"microsoft-edge", "microsoft-edge-stable", "msedge",
			"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
			`C:\Program Files (x86)\Microsoft\Edge\Application\msedge.exe`,
			`C:\Program Files\Microsoft\Edge\Application\msedge.exe`,
		},
	},
	{
		// Default chromedp discovery, covers chromium and snap installs.
		Name: "Chromium",
	},
}

// StartOptions controls how a browser session is launched.
type StartOptions struct {
	// Headless hides the browser window. Manual-mode sessions must be
	// started visible.
	Headless bool

	// ProfileDir, when non-empty, opens a persistent context bound to the
	// directory so cookies and login state survive across runs.
	ProfileDir string

	// BlockResources aborts image/media/font requests. Never set this for
	// a session a human needs to see.
	BlockResources bool
}

// Session owns one live browser: the allocator, the browsing context, and a
// page. It is exclusively owned by the worker that created it.
type Session struct {
	channel     string
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// Context returns the chromedp tab context actions run against.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Channel reports which browser channel the session launched with.
func (s *Session) Channel() string {
	return s.channel
}

// Close releases the page, browsing context, and browser process in that
// order. It is idempotent and safe to call from another goroutine while a
// search is in flight (cancellation path).
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	if s.cancelTab != nil {
		s.cancelTab()
	}
	if s.cancelAlloc != nil {
		s.cancelAlloc()
	}
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// BrowserManager launches browser sessions, trying channels in a fixed
// order until one starts.
type BrowserManager struct {
	channels []Channel
	log      *logger.Logger
}

// NewBrowserManager creates a manager with the default channel order.
func NewBrowserManager(log *logger.Logger) *BrowserManager {
	if log == nil {
		log = logger.Nop()
	}
	return &BrowserManager{
		channels: defaultChannels,
		log:      log.WithComponent("browser"),
	}
}

// Start launches a browser session. Channels are tried in order; the first
// one that launches wins. When every channel fails, the returned error is a
// *domain.BrowserInitError listing each channel and its failure reason.
func (m *BrowserManager) Start(ctx context.Context, opts StartOptions) (*Session, error) {
	var attempts []domain.ChannelAttempt

	for _, ch := range m.channels {
		execPath, ok := findExecPath(ch)
		if !ok {
			attempts = append(attempts, domain.ChannelAttempt{
				Channel: ch.Name,
				Reason:  "executable not found",
			})
			continue
		}

		sess, err := m.launch(ctx, ch, execPath, opts)
		if err != nil {
			m.log.Debug().Str("channel", ch.Name).Err(err).Msg("channel launch failed")
			attempts = append(attempts, domain.ChannelAttempt{
				Channel: ch.Name,
				Reason:  err.Error(),
			})
			continue
		}

		m.log.Info().
			Str("channel", ch.Name).
			Bool("headless", opts.Headless).
			Bool("persistent_profile", opts.ProfileDir != "").
			Msg("browser session started")
		return sess, nil
	}

	return nil, domain.NewBrowserInitError(attempts)
}

// launch builds the allocator and tab for one channel and verifies the
// browser actually starts.
func (m *BrowserManager) launch(ctx context.Context, ch Channel, execPath string, opts StartOptions) (*Session, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("lang", "ko-KR"),
		chromedp.NoSandbox,
		chromedp.UserAgent(userAgent),
		chromedp.WindowSize(1400, 900),
	)
	if execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(execPath))
	}
	if opts.ProfileDir != "" {
		if err := os.MkdirAll(opts.ProfileDir, 0o755); err != nil {
			return nil, err
		}
		allocOpts = append(allocOpts, chromedp.UserDataDir(opts.ProfileDir))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	sess := &Session{
		channel:     ch.Name,
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
	}

	// Running an empty action forces the browser process to start, which
	// is where a broken install fails.
	if err := chromedp.Run(tabCtx); err != nil {
		sess.Close()
		return nil, err
	}

	if opts.BlockResources {
		if err := m.enableResourceBlocking(sess); err != nil {
			// Blocking is an optimization; a session without it is
			// still usable.
			m.log.Debug().Err(err).Msg("resource blocking setup failed, continuing without")
		}
	}

	return sess, nil
}

// enableResourceBlocking intercepts requests via the CDP fetch domain and
// fails any request for a blocked resource type.
func (m *BrowserManager) enableResourceBlocking(sess *Session) error {
	tabCtx := sess.Context()

	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		e, ok := ev.(*fetch.EventRequestPaused)
		if !ok {
			return
		}
		go func() {
			c := chromedp.FromContext(tabCtx)
			ectx := cdp.WithExecutor(tabCtx, c.Target)
			if blockedResourceTypes[e.ResourceType] {
				_ = fetch.FailRequest(e.RequestID, network.ErrorReasonBlockedByClient).Do(ectx)
			} else {
				_ = fetch.ContinueRequest(e.RequestID).Do(ectx)
			}
		}()
	})

	return chromedp.Run(tabCtx, fetch.Enable())
}

// findExecPath resolves the first usable executable for a channel. Channels
// without candidates defer to chromedp's default discovery.
func findExecPath(ch Channel) (string, bool) {
	if len(ch.ExecCandidates) == 0 {
		return "", true
	}
	for _, cand := range ch.ExecCandidates {
		if p, err := exec.LookPath(cand); err == nil {
			return p, true
		}
		if info, err := os.Stat(cand); err == nil && !info.IsDir() {
			return cand, true
		}
	}
	return "", false
}
