package discovery

import (
	"testing"
)

func baseQuery() Query {
	return Query{
		Coordinate: DefaultCoordinate,
		Type:       SearchBusiness,
		Filters:    LocationFilters{RadiusKm: DefaultRadiusKm},
	}
}

func TestSelectStrategySingleRegionFastPath(t *testing.T) {
	q := baseQuery()
	q.Filters.District = "Gasabo"

	s := SelectStrategy(q, 0, 12)

	if s.Kind != StrategyFilterRegion {
		t.Fatalf("kind = %q, want %q", s.Kind, StrategyFilterRegion)
	}
	if s.Path != "/discovery/filter/district/Gasabo" {
		t.Fatalf("path = %q", s.Path)
	}
	body, ok := s.Body.(searchBody)
	if !ok {
		t.Fatalf("body = %T, want searchBody", s.Body)
	}
	if body.Skip != 0 || body.Limit != 12 {
		t.Fatalf("skip/limit = %d/%d, want 0/12", body.Skip, body.Limit)
	}
}

func TestSelectStrategyMultipleRegionsSkipFastPath(t *testing.T) {
	q := baseQuery()
	q.Filters.Province = "Kigali"
	q.Filters.District = "Gasabo"

	s := SelectStrategy(q, 0, 12)
	if s.Kind != StrategyNearest {
		t.Fatalf("kind = %q, want %q", s.Kind, StrategyNearest)
	}
}

func TestSelectStrategyTermBlocksFastPath(t *testing.T) {
	q := baseQuery()
	q.Filters.Province = "Kigali"
	q.Term = "bakery"

	s := SelectStrategy(q, 0, 12)
	if s.Kind != StrategyByName {
		t.Fatalf("kind = %q, want %q", s.Kind, StrategyByName)
	}
	if s.Path != "/discovery/search/name/bakery" {
		t.Fatalf("path = %q", s.Path)
	}
	body, ok := s.Body.(searchBody)
	if !ok {
		t.Fatalf("body type %T", s.Body)
	}
	if body.Province != "Kigali" {
		t.Fatalf("province = %q, want Kigali", body.Province)
	}
}

func TestSelectStrategyNoneSentinelNormalized(t *testing.T) {
	q := baseQuery()
	q.Filters.Province = "None"
	q.Filters.Sector = "Remera"

	s := SelectStrategy(q, 0, 12)
	if s.Kind != StrategyFilterRegion {
		t.Fatalf("kind = %q, want %q (\"None\" should count as unset)", s.Kind, StrategyFilterRegion)
	}
	if s.Path != "/discovery/filter/sector/Remera" {
		t.Fatalf("path = %q", s.Path)
	}
}

func TestSelectStrategyProductSearch(t *testing.T) {
	q := baseQuery()
	q.Type = SearchProduct
	q.Term = "  maize flour  "

	s := SelectStrategy(q, 24, 12)
	if s.Kind != StrategyByProduct {
		t.Fatalf("kind = %q, want %q", s.Kind, StrategyByProduct)
	}
	if s.Path != "/discovery/search/product/maize%20flour" {
		t.Fatalf("path = %q", s.Path)
	}
	body := s.Body.(searchBody)
	if body.Skip != 24 || body.Limit != 12 {
		t.Fatalf("skip/limit = %d/%d, want 24/12", body.Skip, body.Limit)
	}
}

func TestSelectStrategyAdvanced(t *testing.T) {
	q := baseQuery()
	q.Type = SearchAdvanced
	// A plain single-region filter must not divert an advanced search.
	q.Filters.Province = "Kigali"
	q.Advanced = AdvancedParams{
		BusinessName: "kiosk",
		ProductName:  "none",
		LocationFilters: LocationFilters{
			District: "Nyarugenge",
			RadiusKm: 25,
		},
	}

	s := SelectStrategy(q, 0, 12)
	if s.Kind != StrategyAdvanced {
		t.Fatalf("kind = %q, want %q", s.Kind, StrategyAdvanced)
	}
	if s.Path != "/discovery/search/advanced" {
		t.Fatalf("path = %q", s.Path)
	}
	body := s.Body.(advancedBody)
	if body.BusinessName != "kiosk" {
		t.Fatalf("businessName = %q", body.BusinessName)
	}
	if body.ProductName != "" {
		t.Fatalf("productName = %q, want empty (\"none\" normalized)", body.ProductName)
	}
	if body.District != "Nyarugenge" || body.RadiusKm != 25 {
		t.Fatalf("district/radius = %q/%v", body.District, body.RadiusKm)
	}
}

func TestSelectStrategyRadiusCustomized(t *testing.T) {
	q := baseQuery()
	q.Filters.RadiusKm = 30
	q.RadiusCustomized = true

	s := SelectStrategy(q, 0, 12)
	if s.Kind != StrategyWithinRadius {
		t.Fatalf("kind = %q, want %q", s.Kind, StrategyWithinRadius)
	}
	if s.Path != "/discovery/within-radius" {
		t.Fatalf("path = %q", s.Path)
	}
	if s.Body.(searchBody).RadiusKm != 30 {
		t.Fatalf("radius = %v, want 30", s.Body.(searchBody).RadiusKm)
	}
}

func TestSelectStrategyDefaultNearest(t *testing.T) {
	s := SelectStrategy(baseQuery(), 0, 12)
	if s.Kind != StrategyNearest {
		t.Fatalf("kind = %q, want %q", s.Kind, StrategyNearest)
	}
	if s.Path != "/discovery/nearest" {
		t.Fatalf("path = %q", s.Path)
	}
	body := s.Body.(searchBody)
	if body.Latitude != DefaultCoordinate.Latitude || body.Longitude != DefaultCoordinate.Longitude {
		t.Fatalf("coordinate = %v/%v", body.Latitude, body.Longitude)
	}
}

func TestSelectStrategyDeterministic(t *testing.T) {
	q := baseQuery()
	q.Term = "shop"

	first := SelectStrategy(q, 12, 12)
	second := SelectStrategy(q, 12, 12)
	if first.Kind != second.Kind || first.Path != second.Path {
		t.Fatalf("strategy not deterministic: %v vs %v", first, second)
	}
}
