package discovery

import (
	"context"
	"sync"
)

// DefaultPageSize is the page size used by a new Session.
const DefaultPageSize = 12

// Searcher executes one resolved strategy. *Client satisfies it; tests
// substitute their own.
type Searcher interface {
	Do(ctx context.Context, strategy Strategy) (Page, error)
}

// Session is the stateful search orchestrator: it holds the current
// query (coordinate, type, term, filters), the merged result list, and
// pagination state, and enforces single-flight request discipline.
//
// Session is safe for concurrent use. The mutex guards state only; it is
// never held across the network call, so accessors stay responsive while
// a request is in flight.
type Session struct {
	searcher Searcher

	mu       sync.Mutex
	query    Query
	pageSize int

	results  []Business
	seen     map[string]struct{}
	page     PageState
	inFlight bool
	searched bool
	lastErr  error
}

// NewSession creates a session over the given searcher with the default
// coordinate, radius and page size.
func NewSession(searcher Searcher) *Session {
	return &Session{
		searcher: searcher,
		query: Query{
			Coordinate: DefaultCoordinate,
			Type:       SearchBusiness,
			Filters:    LocationFilters{RadiusKm: DefaultRadiusKm},
		},
		pageSize: DefaultPageSize,
		seen:     make(map[string]struct{}),
	}
}

// SetCoordinate sets the origin for proximity searches.
func (s *Session) SetCoordinate(c Coordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Coordinate = c
}

// SetTerm sets the free-text search term.
func (s *Session) SetTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Term = term
}

// SetSearchType switches the search mode. Leaving advanced mode clears
// the free-text term so the next search does not reuse stale input.
func (s *Session) SetSearchType(t SearchType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.query.Type == SearchAdvanced && t != SearchAdvanced {
		s.query.Term = ""
	}
	s.query.Type = t
}

// SetFilters replaces the region filters. A radius differing from the
// default routes termless searches to the within-radius endpoint;
// restoring the default radius routes them back to nearest.
func (s *Session) SetFilters(f LocationFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.RadiusKm == 0 {
		f.RadiusKm = DefaultRadiusKm
	}
	s.query.RadiusCustomized = f.RadiusKm != DefaultRadiusKm
	s.query.Filters = f
}

// SetAdvanced replaces the advanced search parameters.
func (s *Session) SetAdvanced(p AdvancedParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.RadiusKm == 0 {
		p.RadiusKm = DefaultRadiusKm
	}
	s.query.Advanced = p
}

// SetPageSize changes the number of results requested per page.
func (s *Session) SetPageSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > 0 {
		s.pageSize = n
	}
}

// Search runs a fresh page-0 search, replacing the result list. It
// reports whether a request was actually issued; false means another
// request was already in flight and this trigger was dropped.
func (s *Session) Search(ctx context.Context) (bool, error) {
	return s.PerformSearch(ctx, 0)
}

// LoadMore fetches the page after the current one and appends its
// results. A no-op returning false when a request is in flight or there
// are no more pages.
func (s *Session) LoadMore(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if !s.page.HasMore {
		s.mu.Unlock()
		return false, nil
	}
	next := s.page.Current + 1
	s.mu.Unlock()
	return s.PerformSearch(ctx, next)
}

// PerformSearch fetches the given 0-based page. Page 0 replaces the
// result list; later pages append, suppressing businesses already seen.
// If a request is already in flight the call is ignored and returns
// (false, nil). The in-flight guard is cleared on every exit path,
// success or failure.
func (s *Session) PerformSearch(ctx context.Context, pageIndex int) (bool, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return false, nil
	}
	s.inFlight = true
	query := s.query
	skip := pageIndex * s.pageSize
	limit := s.pageSize
	s.mu.Unlock()

	strategy := SelectStrategy(query, skip, limit)
	page, err := s.searcher.Do(ctx, strategy)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil {
		s.lastErr = err
		return true, err
	}

	s.lastErr = nil
	s.searched = true

	if pageIndex == 0 {
		s.results = s.results[:0]
		s.seen = make(map[string]struct{}, len(page.Data))
	}
	for _, b := range page.Data {
		if _, dup := s.seen[b.ID]; dup {
			continue
		}
		s.seen[b.ID] = struct{}{}
		s.results = append(s.results, b)
	}

	s.page = PageState{
		Current:    pageIndex,
		TotalItems: page.TotalCount,
		HasMore:    page.HasMore,
	}
	return true, nil
}

// Reset clears results, pagination and error state, keeping the query.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = nil
	s.seen = make(map[string]struct{})
	s.page = PageState{}
	s.searched = false
	s.lastErr = nil
}

// Results returns a copy of the merged result list.
func (s *Session) Results() []Business {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Business, len(s.results))
	copy(out, s.results)
	return out
}

// Page returns the current pagination state.
func (s *Session) Page() PageState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// InFlight reports whether a request is currently outstanding.
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Searched reports whether at least one search has completed
// successfully since the last Reset.
func (s *Session) Searched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searched
}

// LastError returns the error from the most recent request, or nil if
// it succeeded.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Query returns a snapshot of the current query.
func (s *Session) Query() Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}
