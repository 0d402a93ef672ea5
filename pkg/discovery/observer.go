package discovery

import (
	"context"
	"sync"
)

// ViewportObserver reports when a sentinel element enters the visible
// viewport. Observe registers the callback and returns a stop function;
// implementations fire the callback once per intersection.
type ViewportObserver interface {
	Observe(onIntersect func()) (stop func())
}

// PaginationController binds a viewport observer to a session: when the
// end-of-list sentinel becomes visible and the session has more pages,
// is idle, and has completed an initial search, it loads the next page.
//
// At most one observer binding is active at a time; Bind replaces any
// previous one.
type PaginationController struct {
	session *Session

	mu   sync.Mutex
	stop func()

	// OnError, if set, receives errors from triggered page loads.
	OnError func(error)
}

// NewPaginationController creates a controller over the session.
func NewPaginationController(session *Session) *PaginationController {
	return &PaginationController{session: session}
}

// Bind attaches the controller to an observer, detaching any previous
// binding first.
func (p *PaginationController) Bind(ctx context.Context, observer ViewportObserver) {
	p.mu.Lock()
	if p.stop != nil {
		p.stop()
	}
	p.stop = observer.Observe(func() {
		p.onIntersect(ctx)
	})
	p.mu.Unlock()
}

// Unbind detaches the controller from its observer.
func (p *PaginationController) Unbind() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop != nil {
		p.stop()
		p.stop = nil
	}
}

func (p *PaginationController) onIntersect(ctx context.Context) {
	page := p.session.Page()
	if !page.HasMore || p.session.InFlight() || !p.session.Searched() {
		return
	}

	issued, err := p.session.PerformSearch(ctx, page.Current+1)
	if issued && err != nil && p.OnError != nil {
		p.OnError(err)
	}
}
