package discovery

import (
	"net/url"
	"strings"
)

// StrategyKind names the endpoint family a query resolves to.
type StrategyKind string

const (
	StrategyFilterRegion StrategyKind = "filter_region"
	StrategyByName       StrategyKind = "by_name"
	StrategyByProduct    StrategyKind = "by_product"
	StrategyAdvanced     StrategyKind = "advanced"
	StrategyNearest      StrategyKind = "nearest"
	StrategyWithinRadius StrategyKind = "within_radius"
)

// Query is everything the strategy selector needs: the session's current
// coordinate, mode, term and filters.
type Query struct {
	Coordinate Coordinate
	Type       SearchType
	Term       string
	Filters    LocationFilters
	Advanced   AdvancedParams
	// RadiusCustomized is true while the radius differs from its default;
	// it routes termless searches to within-radius.
	RadiusCustomized bool
}

// Strategy is a resolved endpoint choice: the request path (relative to
// the API base) and JSON body.
type Strategy struct {
	Kind StrategyKind
	Path string
	Body any
}

type searchBody struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusKm  float64 `json:"radius,omitempty"`
	Skip      int     `json:"skip"`
	Limit     int     `json:"limit"`
	Province  string  `json:"province,omitempty"`
	District  string  `json:"district,omitempty"`
	Sector    string  `json:"sector,omitempty"`
	Cell      string  `json:"cell,omitempty"`
	Village   string  `json:"village,omitempty"`
}

type advancedBody struct {
	BusinessName string `json:"businessName,omitempty"`
	ProductName  string `json:"productName,omitempty"`
	searchBody
}

// SelectStrategy maps the current query to exactly one endpoint. The
// decision order is:
//
//  1. Exactly one region filter set, no free-text term, not in advanced
//     mode → the single-region filter endpoint for that level.
//  2. Otherwise dispatch by SearchType: business/product with a term hit
//     the name/product search; advanced hits the multi-field endpoint;
//     a termless search hits nearest, or within-radius once the radius
//     has been customized.
//
// The "none" sentinel is normalized to unset everywhere. Pure function:
// same inputs, same strategy.
func SelectStrategy(q Query, skip, limit int) Strategy {
	filters := normalizeFilters(q.Filters)
	term := strings.TrimSpace(q.Term)

	body := searchBody{
		Latitude:  q.Coordinate.Latitude,
		Longitude: q.Coordinate.Longitude,
		RadiusKm:  filters.RadiusKm,
		Skip:      skip,
		Limit:     limit,
		Province:  filters.Province,
		District:  filters.District,
		Sector:    filters.Sector,
		Cell:      filters.Cell,
		Village:   filters.Village,
	}

	if level, value, ok := singleRegion(filters); ok && q.Type != SearchAdvanced && term == "" {
		return Strategy{
			Kind: StrategyFilterRegion,
			Path: "/discovery/filter/" + level + "/" + url.PathEscape(value),
			Body: body,
		}
	}

	switch {
	case q.Type == SearchAdvanced:
		advanced := normalizeAdvanced(q.Advanced)
		return Strategy{
			Kind: StrategyAdvanced,
			Path: "/discovery/search/advanced",
			Body: advancedBody{
				BusinessName: advanced.BusinessName,
				ProductName:  advanced.ProductName,
				searchBody: searchBody{
					Latitude:  q.Coordinate.Latitude,
					Longitude: q.Coordinate.Longitude,
					RadiusKm:  advanced.RadiusKm,
					Skip:      skip,
					Limit:     limit,
					Province:  advanced.Province,
					District:  advanced.District,
					Sector:    advanced.Sector,
					Cell:      advanced.Cell,
					Village:   advanced.Village,
				},
			},
		}

	case q.Type == SearchBusiness && term != "":
		return Strategy{
			Kind: StrategyByName,
			Path: "/discovery/search/name/" + url.PathEscape(term),
			Body: body,
		}

	case q.Type == SearchProduct && term != "":
		return Strategy{
			Kind: StrategyByProduct,
			Path: "/discovery/search/product/" + url.PathEscape(term),
			Body: body,
		}

	case q.RadiusCustomized:
		return Strategy{
			Kind: StrategyWithinRadius,
			Path: "/discovery/within-radius",
			Body: body,
		}

	default:
		return Strategy{
			Kind: StrategyNearest,
			Path: "/discovery/nearest",
			Body: body,
		}
	}
}

// singleRegion reports the single set region level in increasing
// specificity, or false when zero or more than one level is set.
func singleRegion(f LocationFilters) (level, value string, ok bool) {
	levels := []struct {
		name  string
		value string
	}{
		{"province", f.Province},
		{"district", f.District},
		{"sector", f.Sector},
		{"cell", f.Cell},
		{"village", f.Village},
	}

	count := 0
	for _, l := range levels {
		if l.value != "" {
			count++
			level, value = l.name, l.value
		}
	}
	return level, value, count == 1
}

func normalizeFilters(f LocationFilters) LocationFilters {
	f.Province = normalizeNone(f.Province)
	f.District = normalizeNone(f.District)
	f.Sector = normalizeNone(f.Sector)
	f.Cell = normalizeNone(f.Cell)
	f.Village = normalizeNone(f.Village)
	return f
}

func normalizeAdvanced(p AdvancedParams) AdvancedParams {
	p.LocationFilters = normalizeFilters(p.LocationFilters)
	p.BusinessName = normalizeNone(strings.TrimSpace(p.BusinessName))
	p.ProductName = normalizeNone(strings.TrimSpace(p.ProductName))
	return p
}

// normalizeNone maps the UI's "none" sentinel to unset.
func normalizeNone(value string) string {
	if strings.EqualFold(strings.TrimSpace(value), "none") {
		return ""
	}
	return strings.TrimSpace(value)
}
