package discovery

import (
	"context"
	"testing"
)

type fakeObserver struct {
	onIntersect func()
	stopped     bool
}

func (f *fakeObserver) Observe(onIntersect func()) func() {
	f.onIntersect = onIntersect
	return func() { f.stopped = true }
}

func (f *fakeObserver) intersect() {
	if f.onIntersect != nil {
		f.onIntersect()
	}
}

func TestPaginationTriggersNextPage(t *testing.T) {
	searcher := &fakeSearcher{pages: map[int]Page{
		0:  {Data: []Business{business("a")}, TotalCount: 2, HasMore: true},
		12: {Data: []Business{business("b")}, TotalCount: 2, HasMore: false},
	}}
	session := NewSession(searcher)
	controller := NewPaginationController(session)
	observer := &fakeObserver{}
	controller.Bind(context.Background(), observer)

	if _, err := session.Search(context.Background()); err != nil {
		t.Fatalf("search: %v", err)
	}

	observer.intersect()
	if got := len(session.Results()); got != 2 {
		t.Fatalf("results = %d, want 2 after sentinel trigger", got)
	}
	if page := session.Page(); page.Current != 1 {
		t.Fatalf("page = %d, want 1", page.Current)
	}
}

func TestPaginationIgnoresBeforeFirstSearch(t *testing.T) {
	searcher := &fakeSearcher{pages: map[int]Page{}}
	session := NewSession(searcher)
	controller := NewPaginationController(session)
	observer := &fakeObserver{}
	controller.Bind(context.Background(), observer)

	observer.intersect()
	if got := searcher.callCount(); got != 0 {
		t.Fatalf("requests = %d, want 0 before an initial search", got)
	}
}

func TestPaginationIgnoresWhenNoMorePages(t *testing.T) {
	searcher := &fakeSearcher{pages: map[int]Page{
		0: {Data: []Business{business("a")}, HasMore: false},
	}}
	session := NewSession(searcher)
	controller := NewPaginationController(session)
	observer := &fakeObserver{}
	controller.Bind(context.Background(), observer)

	_, _ = session.Search(context.Background())
	observer.intersect()

	if got := searcher.callCount(); got != 1 {
		t.Fatalf("requests = %d, want 1 (no trigger with hasMore=false)", got)
	}
}

func TestPaginationIgnoresWhileLoading(t *testing.T) {
	searcher := &fakeSearcher{
		pages: map[int]Page{
			0:  {Data: []Business{business("a")}, HasMore: true},
			12: {Data: []Business{business("b")}, HasMore: true},
		},
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	session := NewSession(searcher)
	controller := NewPaginationController(session)
	observer := &fakeObserver{}
	controller.Bind(context.Background(), observer)

	// Complete page 0 first.
	searcher.mu.Lock()
	block := searcher.block
	searcher.block = nil
	searcher.started = nil
	searcher.mu.Unlock()
	_, _ = session.Search(context.Background())

	// Start a blocked page-1 load, then fire the sentinel again.
	searcher.mu.Lock()
	searcher.block = block
	searcher.started = make(chan struct{}, 1)
	started := searcher.started
	searcher.mu.Unlock()

	done := make(chan struct{})
	go func() {
		observer.intersect()
		close(done)
	}()
	<-started

	observer.intersect() // must be dropped: request in flight

	close(block)
	<-done

	if got := searcher.callCount(); got != 2 {
		t.Fatalf("requests = %d, want 2 (page 0 + one page 1)", got)
	}
}

func TestPaginationBindReplacesObserver(t *testing.T) {
	session := NewSession(&fakeSearcher{})
	controller := NewPaginationController(session)

	first := &fakeObserver{}
	controller.Bind(context.Background(), first)
	second := &fakeObserver{}
	controller.Bind(context.Background(), second)

	if !first.stopped {
		t.Fatalf("first observer not stopped on rebind")
	}

	controller.Unbind()
	if !second.stopped {
		t.Fatalf("second observer not stopped on unbind")
	}
}

func TestPaginationReportsErrors(t *testing.T) {
	searcher := &fakeSearcher{pages: map[int]Page{
		0: {Data: []Business{business("a")}, HasMore: true},
	}}
	session := NewSession(searcher)
	controller := NewPaginationController(session)

	var reported error
	controller.OnError = func(err error) { reported = err }

	observer := &fakeObserver{}
	controller.Bind(context.Background(), observer)

	_, _ = session.Search(context.Background())
	// No page mapped for skip 12, so the triggered load fails.
	observer.intersect()

	if reported == nil {
		t.Fatalf("load error not reported")
	}
	if session.InFlight() {
		t.Fatalf("guard still set after failed triggered load")
	}
}
