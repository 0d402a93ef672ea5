package discovery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

// fakeSearcher records strategies and serves canned pages keyed by skip.
type fakeSearcher struct {
	mu      sync.Mutex
	calls   []Strategy
	pages   map[int]Page
	err     error
	block   chan struct{} // when set, Do waits until closed
	started chan struct{} // signaled when a blocked Do begins
}

func (f *fakeSearcher) Do(ctx context.Context, s Strategy) (Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, s)
	block := f.block
	started := f.started
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		<-block
	}
	if f.err != nil {
		return Page{}, f.err
	}

	skip := skipOf(s)
	page, ok := f.pages[skip]
	if !ok {
		return Page{}, fmt.Errorf("no page for skip %d", skip)
	}
	return page, nil
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func skipOf(s Strategy) int {
	switch body := s.Body.(type) {
	case searchBody:
		return body.Skip
	case advancedBody:
		return body.Skip
	}
	return 0
}

func business(id string) Business {
	return Business{ID: id, Name: "biz " + id}
}

func TestSessionSearchReplacesThenLoadMoreAppends(t *testing.T) {
	searcher := &fakeSearcher{pages: map[int]Page{
		0:  {Data: []Business{business("a"), business("b")}, TotalCount: 4, HasMore: true},
		12: {Data: []Business{business("c"), business("d")}, TotalCount: 4, HasMore: false},
	}}
	session := NewSession(searcher)

	if _, err := session.Search(context.Background()); err != nil {
		t.Fatalf("search: %v", err)
	}
	if got := len(session.Results()); got != 2 {
		t.Fatalf("results after page 0 = %d, want 2", got)
	}

	if _, err := session.LoadMore(context.Background()); err != nil {
		t.Fatalf("load more: %v", err)
	}
	results := session.Results()
	if len(results) != 4 {
		t.Fatalf("results after page 1 = %d, want 4", len(results))
	}
	if results[0].ID != "a" || results[3].ID != "d" {
		t.Fatalf("unexpected order: %v", results)
	}

	page := session.Page()
	if page.Current != 1 || page.HasMore {
		t.Fatalf("page = %+v", page)
	}
}

func TestSessionLoadMoreSendsNextSkip(t *testing.T) {
	searcher := &fakeSearcher{pages: map[int]Page{
		0:  {Data: []Business{business("a")}, HasMore: true},
		12: {Data: []Business{business("b")}, HasMore: false},
	}}
	session := NewSession(searcher)

	if _, err := session.Search(context.Background()); err != nil {
		t.Fatalf("search: %v", err)
	}
	if _, err := session.LoadMore(context.Background()); err != nil {
		t.Fatalf("load more: %v", err)
	}

	if got := skipOf(searcher.calls[1]); got != 12 {
		t.Fatalf("second request skip = %d, want 12", got)
	}
}

func TestSessionDedupesAcrossPages(t *testing.T) {
	// Page 1 re-serves "b": new rows inserted server-side shift offsets.
	searcher := &fakeSearcher{pages: map[int]Page{
		0:  {Data: []Business{business("a"), business("b")}, HasMore: true},
		12: {Data: []Business{business("b"), business("c")}, HasMore: false},
	}}
	session := NewSession(searcher)

	_, _ = session.Search(context.Background())
	_, _ = session.LoadMore(context.Background())

	results := session.Results()
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3 (duplicate suppressed)", len(results))
	}
	seen := map[string]bool{}
	for _, b := range results {
		if seen[b.ID] {
			t.Fatalf("duplicate id %q in results", b.ID)
		}
		seen[b.ID] = true
	}
}

func TestSessionFreshSearchResetsDedupe(t *testing.T) {
	searcher := &fakeSearcher{pages: map[int]Page{
		0: {Data: []Business{business("a")}, HasMore: false},
	}}
	session := NewSession(searcher)

	_, _ = session.Search(context.Background())
	_, _ = session.Search(context.Background())

	if got := len(session.Results()); got != 1 {
		t.Fatalf("results = %d, want 1 (page 0 replaces, dedupe set reset)", got)
	}
}

func TestSessionSingleFlight(t *testing.T) {
	searcher := &fakeSearcher{
		pages:   map[int]Page{0: {Data: []Business{business("a")}}},
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	session := NewSession(searcher)

	done := make(chan error, 1)
	go func() {
		_, err := session.Search(context.Background())
		done <- err
	}()
	<-searcher.started

	issued, err := session.Search(context.Background())
	if err != nil {
		t.Fatalf("second search: %v", err)
	}
	if issued {
		t.Fatalf("second search issued a request while one was in flight")
	}

	close(searcher.block)
	if err := <-done; err != nil {
		t.Fatalf("first search: %v", err)
	}
	if got := searcher.callCount(); got != 1 {
		t.Fatalf("requests = %d, want 1", got)
	}
}

func TestSessionGuardClearedAfterFailure(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("boom")}
	session := NewSession(searcher)

	issued, err := session.Search(context.Background())
	if !issued || err == nil {
		t.Fatalf("issued=%v err=%v, want issued with error", issued, err)
	}
	if session.InFlight() {
		t.Fatalf("in-flight guard still set after failure")
	}
	if session.LastError() == nil {
		t.Fatalf("last error not recorded")
	}

	// The session must accept the next trigger.
	searcher.err = nil
	searcher.pages = map[int]Page{0: {Data: []Business{business("a")}}}
	issued, err = session.Search(context.Background())
	if !issued || err != nil {
		t.Fatalf("retry after failure: issued=%v err=%v", issued, err)
	}
	if session.LastError() != nil {
		t.Fatalf("last error not cleared on success")
	}
}

func TestSessionLeavingAdvancedClearsTerm(t *testing.T) {
	session := NewSession(&fakeSearcher{})

	session.SetSearchType(SearchAdvanced)
	session.SetTerm("stale")
	session.SetSearchType(SearchBusiness)

	if q := session.Query(); q.Term != "" {
		t.Fatalf("term = %q, want cleared after leaving advanced mode", q.Term)
	}

	// Switching between non-advanced modes keeps the term.
	session.SetTerm("bakery")
	session.SetSearchType(SearchProduct)
	if q := session.Query(); q.Term != "bakery" {
		t.Fatalf("term = %q, want preserved", q.Term)
	}
}

func TestSessionCustomRadiusMarksCustomized(t *testing.T) {
	session := NewSession(&fakeSearcher{})

	session.SetFilters(LocationFilters{RadiusKm: DefaultRadiusKm})
	if session.Query().RadiusCustomized {
		t.Fatalf("default radius marked customized")
	}

	session.SetFilters(LocationFilters{RadiusKm: 30})
	if !session.Query().RadiusCustomized {
		t.Fatalf("changed radius not marked customized")
	}

	session.SetFilters(LocationFilters{RadiusKm: DefaultRadiusKm})
	if session.Query().RadiusCustomized {
		t.Fatalf("restored default radius still marked customized")
	}
}

func TestSessionRestoredRadiusRoutesBackToNearest(t *testing.T) {
	searcher := &fakeSearcher{pages: map[int]Page{
		0: {Data: []Business{business("a")}, HasMore: false},
	}}
	session := NewSession(searcher)

	session.SetFilters(LocationFilters{RadiusKm: 30})
	if _, err := session.Search(context.Background()); err != nil {
		t.Fatalf("search: %v", err)
	}

	session.SetFilters(LocationFilters{RadiusKm: DefaultRadiusKm})
	if _, err := session.Search(context.Background()); err != nil {
		t.Fatalf("search: %v", err)
	}

	searcher.mu.Lock()
	defer searcher.mu.Unlock()
	if got := searcher.calls[0].Path; got != "/discovery/within-radius" {
		t.Fatalf("first path = %q, want /discovery/within-radius", got)
	}
	if got := searcher.calls[1].Path; got != "/discovery/nearest" {
		t.Fatalf("second path = %q, want /discovery/nearest", got)
	}
}

func TestSessionLoadMoreWithoutMorePages(t *testing.T) {
	searcher := &fakeSearcher{pages: map[int]Page{
		0: {Data: []Business{business("a")}, HasMore: false},
	}}
	session := NewSession(searcher)

	_, _ = session.Search(context.Background())
	issued, err := session.LoadMore(context.Background())
	if err != nil {
		t.Fatalf("load more: %v", err)
	}
	if issued {
		t.Fatalf("load more issued a request with hasMore=false")
	}
	if got := searcher.callCount(); got != 1 {
		t.Fatalf("requests = %d, want 1", got)
	}
}
