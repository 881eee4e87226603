// Package cache provides a process-wide, time-bounded, size-bounded store
// for search results keyed by normalized search parameters. It is used to
// short-circuit repeated identical queries without re-driving a browser.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/flightbot/flight-fare-scraper/internal/domain"
	"github.com/flightbot/flight-fare-scraper/internal/infrastructure/timeutil"
)

// Defaults match the policy the scraper was tuned with.
const (
	DefaultTTL        = 180 * time.Second
	DefaultMaxEntries = 64
)

// entry is one cached result set with its insertion timestamp.
type entry struct {
	key     domain.CacheKey
	savedAt time.Time
	offers  []domain.FlightOffer
}

// Store is a TTL + LRU bounded cache of offer lists. A single mutex guards
// every read-prune-write sequence, so it is safe under concurrent access
// from parallel search workers.
type Store struct {
	mu         sync.Mutex
	enabled    bool
	ttl        time.Duration
	maxEntries int
	clock      timeutil.Clock

	// order tracks recency: front = least recently used.
	order   *list.List
	entries map[domain.CacheKey]*list.Element
}

// Option configures a Store.
type Option func(*Store)

// WithTTL overrides the entry time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithMaxEntries overrides the entry cap.
func WithMaxEntries(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// WithClock injects a clock, used by tests to control expiry.
func WithClock(c timeutil.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// Disabled returns a store whose Get always misses and whose Put is a no-op.
func Disabled() *Store {
	s := New()
	s.enabled = false
	return s
}

// New creates an enabled Store with the default policy.
func New(opts ...Option) *Store {
	s := &Store{
		enabled:    true,
		ttl:        DefaultTTL,
		maxEntries: DefaultMaxEntries,
		clock:      timeutil.NewRealClock(),
		order:      list.New(),
		entries:    make(map[domain.CacheKey]*list.Element),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the cached offers for key. It misses when forceRefresh is set,
// caching is disabled, the key is absent, or the entry has outlived the TTL
// (expired entries are evicted on read). A hit refreshes recency and returns
// a copy the caller may mutate freely.
func (s *Store) Get(key domain.CacheKey, forceRefresh bool) ([]domain.FlightOffer, bool) {
	if forceRefresh || !s.enabled {
		return nil, false
	}

	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)

	el, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	e := el.Value.(*entry)
	if now.Sub(e.savedAt) > s.ttl {
		s.removeLocked(el)
		return nil, false
	}
	s.order.MoveToBack(el)

	return cloneOffers(e.offers), true
}

// Put stores offers under key. Empty offer lists are not cached. The stored
// copy is detached from the caller's slice. After insertion both expired
// entries and, if still over the cap, least-recently-used entries are pruned.
func (s *Store) Put(key domain.CacheKey, offers []domain.FlightOffer) {
	if !s.enabled || len(offers) == 0 {
		return
	}

	now := s.clock.Now()
	stored := cloneOffers(offers)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)

	if el, ok := s.entries[key]; ok {
		e := el.Value.(*entry)
		e.savedAt = now
		e.offers = stored
		s.order.MoveToBack(el)
	} else {
		el := s.order.PushBack(&entry{key: key, savedAt: now, offers: stored})
		s.entries[key] = el
	}

	s.pruneLocked(now)
}

// Clear drops all entries unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order.Init()
	s.entries = make(map[domain.CacheKey]*list.Element)
}

// Len reports the current entry count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// pruneLocked evicts expired entries, then trims least-recently-used
// entries until the count fits the cap. Callers must hold the mutex.
func (s *Store) pruneLocked(now time.Time) {
	var expired []*list.Element
	for el := s.order.Front(); el != nil; el = el.Next() {
		if now.Sub(el.Value.(*entry).savedAt) > s.ttl {
			expired = append(expired, el)
		}
	}
	for _, el := range expired {
		s.removeLocked(el)
	}

	for len(s.entries) > s.maxEntries {
		oldest := s.order.Front()
		if oldest == nil {
			break
		}
		s.removeLocked(oldest)
	}
}

func (s *Store) removeLocked(el *list.Element) {
	e := el.Value.(*entry)
	s.order.Remove(el)
	delete(s.entries, e.key)
}

func cloneOffers(offers []domain.FlightOffer) []domain.FlightOffer {
	out := make([]domain.FlightOffer, len(offers))
	copy(out, offers)
	return out
}
