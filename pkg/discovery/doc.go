// Package discovery is a Go client for the ShopWise business directory:
// it orchestrates location resolution, search strategy selection,
// single-flight pagination with duplicate suppression, and grid/map view
// synchronization on top of the /discovery REST contract.
//
// The pieces compose around a Session:
//
//	client := discovery.NewClient("https://api.example.com/api/v1")
//	session := discovery.NewSession(client)
//
//	resolver := discovery.NewLocationResolver(provider)
//	coord, notice := resolver.Resolve(ctx)
//	session.SetCoordinate(coord)
//
//	_, err := session.Search(ctx)        // page 0, replaces results
//	_, err = session.LoadMore(ctx)       // page N+1, appends with dedupe
//
// Browser-global side effects live behind narrow interfaces
// (LocationProvider, ViewportObserver, ScrollStore) so the orchestration
// is testable without a real front end.
//
// # Known limitation
//
// The Session enforces single-flight discipline: while a request is
// outstanding, further triggers are dropped, not queued. It does not tag
// requests with a generation token, so if filters change while a request
// is in flight the stale response is still applied when it lands.
package discovery
