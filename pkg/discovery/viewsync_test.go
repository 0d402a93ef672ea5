package discovery

import (
	"testing"

	"github.com/paulmach/orb"
)

type fakeMap struct {
	center orb.Point
	zoom   float64
	calls  int
}

func (m *fakeMap) SetCenter(center orb.Point, zoom float64) {
	m.center = center
	m.zoom = zoom
	m.calls++
}

type fakeGrid struct {
	scrolled []string
}

func (g *fakeGrid) ScrollIntoView(id string) {
	g.scrolled = append(g.scrolled, id)
}

func placedBusiness(id string, lat, lon float64) Business {
	return Business{
		ID:       id,
		Name:     "biz " + id,
		Location: Location{Latitude: lat, Longitude: lon},
	}
}

func TestViewSyncSelectRecentersAndScrolls(t *testing.T) {
	mapView := &fakeMap{}
	grid := &fakeGrid{}
	sync := NewViewSync(mapView, grid, nil, DefaultCoordinate)

	sync.SetResults([]Business{
		placedBusiness("a", -1.95, 30.06),
		placedBusiness("b", -1.96, 30.10),
	})

	if !sync.Select("b") {
		t.Fatalf("select returned false for known id")
	}
	if sync.Selected() != "b" {
		t.Fatalf("selected = %q", sync.Selected())
	}
	want := orb.Point{30.10, -1.96}
	if mapView.center != want {
		t.Fatalf("map center = %v, want %v", mapView.center, want)
	}
	if mapView.zoom != FocusZoom {
		t.Fatalf("zoom = %v, want %v", mapView.zoom, FocusZoom)
	}
	if len(grid.scrolled) != 1 || grid.scrolled[0] != "b" {
		t.Fatalf("scrolled = %v", grid.scrolled)
	}
}

func TestViewSyncSelectUnknownID(t *testing.T) {
	mapView := &fakeMap{}
	sync := NewViewSync(mapView, nil, nil, DefaultCoordinate)
	sync.SetResults([]Business{placedBusiness("a", -1.95, 30.06)})

	if sync.Select("missing") {
		t.Fatalf("select returned true for unknown id")
	}
	if mapView.calls != 0 {
		t.Fatalf("map recentered on failed select")
	}
}

func TestViewSyncResetView(t *testing.T) {
	mapView := &fakeMap{}
	sync := NewViewSync(mapView, nil, nil, DefaultCoordinate)
	sync.SetResults([]Business{placedBusiness("a", -1.95, 30.06)})
	sync.Select("a")

	sync.ResetView()
	if sync.Selected() != "" {
		t.Fatalf("selection survived reset")
	}
	want := orb.Point{DefaultCoordinate.Longitude, DefaultCoordinate.Latitude}
	if mapView.center != want || mapView.zoom != DefaultZoom {
		t.Fatalf("center/zoom = %v/%v, want %v/%v", mapView.center, mapView.zoom, want, DefaultZoom)
	}
}

func TestViewSyncSetResultsClearsStaleSelection(t *testing.T) {
	sync := NewViewSync(nil, nil, nil, DefaultCoordinate)
	sync.SetResults([]Business{placedBusiness("a", -1.95, 30.06)})
	sync.Select("a")

	sync.SetResults([]Business{placedBusiness("b", -1.96, 30.10)})
	if sync.Selected() != "" {
		t.Fatalf("selection %q points at a removed business", sync.Selected())
	}
}

func TestViewSyncInViewport(t *testing.T) {
	sync := NewViewSync(nil, nil, nil, DefaultCoordinate)
	sync.SetResults([]Business{
		placedBusiness("inside", -1.95, 30.06),
		placedBusiness("outside", -2.50, 30.50),
	})

	bound := orb.Bound{
		Min: orb.Point{30.00, -2.00},
		Max: orb.Point{30.20, -1.90},
	}
	visible := sync.InViewport(bound)
	if len(visible) != 1 {
		t.Fatalf("visible = %d, want 1", len(visible))
	}
	if visible[0].ID != "inside" {
		t.Fatalf("visible[0] = %q", visible[0].ID)
	}
}

func TestScrollRestoreExactlyOnce(t *testing.T) {
	store := NewMemoryScrollStore()
	sync := NewViewSync(nil, nil, store, DefaultCoordinate)

	sync.SaveScroll("results", 840.5)

	offset, ok := sync.RestoreScroll("results")
	if !ok || offset != 840.5 {
		t.Fatalf("first restore = %v/%v", offset, ok)
	}

	if _, ok := sync.RestoreScroll("results"); ok {
		t.Fatalf("second restore returned a value; must be consumed on first use")
	}
}

func TestViewSyncNilCollaborators(t *testing.T) {
	sync := NewViewSync(nil, nil, nil, DefaultCoordinate)
	sync.SetResults([]Business{placedBusiness("a", -1.95, 30.06)})

	// None of these may panic without a map, grid or store wired.
	sync.Select("a")
	sync.ResetView()
	sync.SaveScroll("k", 1)
	if _, ok := sync.RestoreScroll("k"); ok {
		t.Fatalf("restore succeeded without a store")
	}
}
