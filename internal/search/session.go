package search

import (
	"strings"
	"sync"
	"time"

	"github.com/siyara/storefront/internal/domain"
)

// Stats summarizes the state of a search session.
type Stats struct {
	TotalResults int  `json:"total_results"`
	IsSearching  bool `json:"is_searching"`
	HasQuery     bool `json:"has_query"`
}

// StatsFor builds stats for a query that has already settled.
func StatsFor(query string, results int) Stats {
	return Stats{
		TotalResults: results,
		HasQuery:     strings.TrimSpace(query) != "",
	}
}

// SettleFunc is called after a query settles, outside the session lock.
type SettleFunc func(query string, results []domain.Product)

// Option configures a Session.
type Option func(*Session)

// WithQuietPeriod overrides DefaultQuietPeriod.
func WithQuietPeriod(d time.Duration) Option {
	return func(s *Session) {
		s.debouncer = NewDebouncer(d)
	}
}

// WithOnSettle registers a callback fired each time a query settles.
func WithOnSettle(fn SettleFunc) Option {
	return func(s *Session) {
		s.onSettle = fn
	}
}

// scheduler delays a function until input goes quiet. *Debouncer is the
// only production implementation.
type scheduler interface {
	Trigger(fn func())
	Cancel() bool
}

// Session tracks a live query as it is typed and the settled query the
// results are computed from. Results are recomputed once per settle.
type Session struct {
	mu        sync.Mutex
	products  []domain.Product
	live      string
	settled   string
	results   []domain.Product
	debouncer scheduler
	onSettle  SettleFunc
}

// NewSession starts a session over products with an empty query.
func NewSession(products []domain.Product, opts ...Option) *Session {
	s := &Session{
		products:  products,
		results:   products,
		debouncer: NewDebouncer(DefaultQuietPeriod),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetQuery records the live query and restarts the quiet period. The
// scheduled settle applies this query only, never a later one.
func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	s.live = query
	s.mu.Unlock()

	s.debouncer.Trigger(func() { s.settleTo(query) })
}

// Flush settles the live query immediately.
func (s *Session) Flush() {
	s.debouncer.Cancel()
	s.mu.Lock()
	query := s.live
	s.mu.Unlock()
	s.settleTo(query)
}

// Close cancels any pending settle. The session remains readable.
func (s *Session) Close() {
	s.debouncer.Cancel()
}

// Query returns the live query.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// SettledQuery returns the query the results reflect.
func (s *Session) SettledQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settled
}

// Results returns the products matching the settled query.
func (s *Session) Results() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// Snapshot is the settled state of a session read under one lock.
type Snapshot struct {
	Query     string
	Results   []domain.Product
	Searching bool
}

// Snapshot returns the settled query, its results and whether newer input
// is still pending. Results are shared and must not be modified.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Query:     s.settled,
		Results:   s.results,
		Searching: s.live != s.settled,
	}
}

// Stats reports result count and whether input is still settling.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := StatsFor(s.settled, len(s.results))
	st.IsSearching = s.live != s.settled
	return st
}

func (s *Session) settleTo(query string) {
	s.mu.Lock()
	s.settled = query
	s.results = Match(s.products, s.settled)
	results, cb := s.results, s.onSettle
	s.mu.Unlock()

	if cb != nil {
		cb(query, results)
	}
}
