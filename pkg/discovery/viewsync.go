package discovery

import (
	"sync"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

const (
	// DefaultZoom is the map zoom for an overview of results.
	DefaultZoom = 13.0
	// FocusZoom is the map zoom applied when a single result is selected.
	FocusZoom = 16.0

	rtreeDimensions  = 2
	rtreeMinChildren = 2
	rtreeMaxChildren = 8
	rtreeTolerance   = 1e-6
)

// MapView abstracts the map widget: the only thing synchronization needs
// from it is recentering.
type MapView interface {
	SetCenter(center orb.Point, zoom float64)
}

// GridView abstracts the result grid.
type GridView interface {
	ScrollIntoView(id string)
}

// ScrollStore persists a scroll offset across a navigation away from the
// results view. Take removes the stored value, so a restore happens at
// most once per Save.
type ScrollStore interface {
	Save(key string, offset float64)
	Take(key string) (float64, bool)
}

// MemoryScrollStore is an in-process ScrollStore.
type MemoryScrollStore struct {
	mu      sync.Mutex
	offsets map[string]float64
}

// NewMemoryScrollStore creates an empty store.
func NewMemoryScrollStore() *MemoryScrollStore {
	return &MemoryScrollStore{offsets: make(map[string]float64)}
}

func (s *MemoryScrollStore) Save(key string, offset float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offsets[key] = offset
}

func (s *MemoryScrollStore) Take(key string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	offset, ok := s.offsets[key]
	if ok {
		delete(s.offsets, key)
	}
	return offset, ok
}

var _ ScrollStore = (*MemoryScrollStore)(nil)

type listingItem struct {
	business Business
	rect     *rtreego.Rect
}

func (li *listingItem) Bounds() *rtreego.Rect {
	return li.rect
}

// ViewSync keeps the result grid and the map in step: selecting a result
// recenters the map on it and scrolls its card into view, and the map's
// visible bounds can be queried against the loaded results through an
// R-tree index.
type ViewSync struct {
	mapView MapView
	grid    GridView
	store   ScrollStore

	defaultCenter orb.Point

	mu       sync.Mutex
	tree     *rtreego.Rtree
	byID     map[string]Business
	selected string
}

// NewViewSync creates a synchronizer. mapView, grid and store may each
// be nil; the corresponding effect is then skipped.
func NewViewSync(mapView MapView, grid GridView, store ScrollStore, defaultCenter Coordinate) *ViewSync {
	return &ViewSync{
		mapView:       mapView,
		grid:          grid,
		store:         store,
		defaultCenter: orb.Point{defaultCenter.Longitude, defaultCenter.Latitude},
		tree:          rtreego.NewTree(rtreeDimensions, rtreeMinChildren, rtreeMaxChildren),
		byID:          make(map[string]Business),
	}
}

// SetResults replaces the indexed result set, rebuilding the spatial
// index. A selection pointing at a business no longer present is
// cleared.
func (v *ViewSync) SetResults(results []Business) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.tree = rtreego.NewTree(rtreeDimensions, rtreeMinChildren, rtreeMaxChildren)
	v.byID = make(map[string]Business, len(results))
	for _, b := range results {
		v.byID[b.ID] = b
		point := rtreego.Point{b.Location.Latitude, b.Location.Longitude}
		v.tree.Insert(&listingItem{business: b, rect: point.ToRect(rtreeTolerance)})
	}
	if _, ok := v.byID[v.selected]; !ok {
		v.selected = ""
	}
}

// Select marks a business selected, recenters the map on it and scrolls
// its grid card into view. Returns false for an unknown ID.
func (v *ViewSync) Select(id string) bool {
	v.mu.Lock()
	business, ok := v.byID[id]
	if !ok {
		v.mu.Unlock()
		return false
	}
	v.selected = id
	v.mu.Unlock()

	if v.mapView != nil {
		v.mapView.SetCenter(orb.Point{business.Location.Longitude, business.Location.Latitude}, FocusZoom)
	}
	if v.grid != nil {
		v.grid.ScrollIntoView(id)
	}
	return true
}

// Selected returns the currently selected business ID, empty when none.
func (v *ViewSync) Selected() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected
}

// ResetView clears the selection and recenters the map on the default
// center at the overview zoom.
func (v *ViewSync) ResetView() {
	v.mu.Lock()
	v.selected = ""
	v.mu.Unlock()

	if v.mapView != nil {
		v.mapView.SetCenter(v.defaultCenter, DefaultZoom)
	}
}

// InViewport returns the loaded businesses whose position lies within
// the map's visible bounds.
func (v *ViewSync) InViewport(bound orb.Bound) []Business {
	v.mu.Lock()
	defer v.mu.Unlock()

	bottomLeft := rtreego.Point{bound.Min.Lat(), bound.Min.Lon()}
	lengths := []float64{bound.Max.Lat() - bound.Min.Lat(), bound.Max.Lon() - bound.Min.Lon()}
	rect, err := rtreego.NewRect(bottomLeft, lengths)
	if err != nil {
		return nil
	}

	matches := v.tree.SearchIntersect(rect)
	out := make([]Business, 0, len(matches))
	for _, match := range matches {
		item, ok := match.(*listingItem)
		if !ok {
			continue
		}
		// The index rect carries a tolerance; verify against the exact
		// bounds.
		if bound.Contains(orb.Point{item.business.Location.Longitude, item.business.Location.Latitude}) {
			out = append(out, item.business)
		}
	}
	return out
}

// SaveScroll records the grid scroll offset before navigating away.
func (v *ViewSync) SaveScroll(key string, offset float64) {
	if v.store == nil {
		return
	}
	v.store.Save(key, offset)
}

// RestoreScroll returns a previously saved offset, consuming it so a
// second restore is a no-op.
func (v *ViewSync) RestoreScroll(key string) (float64, bool) {
	if v.store == nil {
		return 0, false
	}
	return v.store.Take(key)
}
