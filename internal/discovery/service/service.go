// Package service provides business logic for the public discovery directory.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopwise_backend/internal/discovery/cache"
	"shopwise_backend/internal/discovery/repository"
	"shopwise_backend/internal/discovery/transport"
	"shopwise_backend/platform/apperr"
	"shopwise_backend/platform/geo"
	"shopwise_backend/platform/logger"
)

const (
	defaultPageSize = 10
	// noneSentinel is what clients send for unset filter dropdowns.
	noneSentinel = "none"
)

// Config is the subset of application config the directory service needs.
type Config interface {
	GetDiscoveryDefaultRadiusKm() float64
	GetDiscoveryMaxPageSize() int
}

// Service provides the directory search operations.
type Service struct {
	repo  repository.Repository
	cache *cache.ResultCache
	cfg   Config
	log   *logger.Logger
}

// New creates a new discovery service.
func New(repo repository.Repository, resultCache *cache.ResultCache, cfg Config, log *logger.Logger) *Service {
	return &Service{repo: repo, cache: resultCache, cfg: cfg, log: log}
}

// Nearest returns listings ordered by distance from the caller, unbounded by
// radius. First pages are served from the result cache when possible.
func (s *Service) Nearest(ctx context.Context, req transport.SearchRequest) (transport.SearchResponse, error) {
	skip, limit := s.clampPage(req.Skip, req.Limit)

	cacheKey := ""
	if skip == 0 && !hasRegionFilters(req.RegionFilters) {
		cacheKey = cache.Key(req.Latitude, req.Longitude, 0, limit)
		if resp, ok := s.cache.Get(ctx, cacheKey); ok {
			return resp, nil
		}
	}

	resp, err := s.search(ctx, "nearest", repository.SearchParams{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Skip:      skip,
		Limit:     limit,
		Province:  normalize(req.Province),
		District:  normalize(req.District),
		Sector:    normalize(req.Sector),
		Cell:      normalize(req.Cell),
		Village:   normalize(req.Village),
	})
	if err != nil {
		return transport.SearchResponse{}, err
	}

	if cacheKey != "" {
		s.cache.Set(ctx, cacheKey, resp)
	}
	return resp, nil
}

// WithinRadius returns listings inside the requested radius, nearest first.
func (s *Service) WithinRadius(ctx context.Context, req transport.SearchRequest) (transport.SearchResponse, error) {
	skip, limit := s.clampPage(req.Skip, req.Limit)
	radius := req.RadiusKm
	if radius <= 0 {
		radius = s.cfg.GetDiscoveryDefaultRadiusKm()
	}

	return s.search(ctx, "within_radius", repository.SearchParams{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		RadiusKm:  radius,
		Skip:      skip,
		Limit:     limit,
		Province:  normalize(req.Province),
		District:  normalize(req.District),
		Sector:    normalize(req.Sector),
		Cell:      normalize(req.Cell),
		Village:   normalize(req.Village),
	})
}

// SearchByName finds listings whose name matches the term, nearest first.
func (s *Service) SearchByName(ctx context.Context, name string, req transport.SearchRequest) (transport.SearchResponse, error) {
	term := strings.TrimSpace(name)
	if term == "" {
		return transport.SearchResponse{}, apperr.BadRequest("search term is required")
	}
	skip, limit := s.clampPage(req.Skip, req.Limit)

	return s.search(ctx, "by_name", repository.SearchParams{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Name:      term,
		Skip:      skip,
		Limit:     limit,
		Province:  normalize(req.Province),
		District:  normalize(req.District),
		Sector:    normalize(req.Sector),
		Cell:      normalize(req.Cell),
		Village:   normalize(req.Village),
	})
}

// SearchByProduct finds listings selling a matching product, nearest first.
func (s *Service) SearchByProduct(ctx context.Context, productName string, req transport.SearchRequest) (transport.SearchResponse, error) {
	term := strings.TrimSpace(productName)
	if term == "" {
		return transport.SearchResponse{}, apperr.BadRequest("product term is required")
	}
	skip, limit := s.clampPage(req.Skip, req.Limit)

	return s.search(ctx, "by_product", repository.SearchParams{
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ProductName: term,
		Skip:        skip,
		Limit:       limit,
		Province:    normalize(req.Province),
		District:    normalize(req.District),
		Sector:      normalize(req.Sector),
		Cell:        normalize(req.Cell),
		Village:     normalize(req.Village),
	})
}

// Advanced combines free-text business and product terms with region filters
// and a radius. "none" sentinel values are treated as absent.
func (s *Service) Advanced(ctx context.Context, req transport.AdvancedSearchRequest) (transport.SearchResponse, error) {
	skip, limit := s.clampPage(req.Skip, req.Limit)

	params := repository.SearchParams{
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		RadiusKm:    req.RadiusKm,
		Name:        normalize(req.BusinessName),
		ProductName: normalize(req.ProductName),
		Skip:        skip,
		Limit:       limit,
		Province:    normalize(req.Province),
		District:    normalize(req.District),
		Sector:      normalize(req.Sector),
		Cell:        normalize(req.Cell),
		Village:     normalize(req.Village),
	}
	if params.RadiusKm <= 0 {
		params.RadiusKm = s.cfg.GetDiscoveryDefaultRadiusKm()
	}

	return s.search(ctx, "advanced", params)
}

// FilterByRegion lists every business in one administrative region, by name.
// Results from this path carry no distance because no coordinate is involved;
// ordering intentionally differs from the geo endpoints.
func (s *Service) FilterByRegion(ctx context.Context, level, value string, skip, limit int) (transport.SearchResponse, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, noneSentinel) {
		return transport.SearchResponse{}, apperr.BadRequest("region value is required")
	}
	if !isRegionLevel(level) {
		return transport.SearchResponse{}, apperr.BadRequest("unknown region level")
	}
	skip, limit = s.clampPage(skip, limit)

	started := time.Now()
	listings, total, err := s.repo.FilterByRegion(ctx, level, value, skip, limit)
	if err != nil {
		return transport.SearchResponse{}, err
	}
	s.log.SearchEvent("filter_"+strings.ToLower(level), skip, limit, len(listings), float64(time.Since(started).Milliseconds()))

	return buildResponse(listings, total, skip, limit), nil
}

// GetByID fetches a single listing for the detail page.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.BusinessResult, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.BusinessResult{}, err
	}
	return toResult(listing), nil
}

func (s *Service) search(ctx context.Context, strategy string, params repository.SearchParams) (transport.SearchResponse, error) {
	started := time.Now()
	listings, total, err := s.repo.Search(ctx, params)
	if err != nil {
		return transport.SearchResponse{}, err
	}
	s.log.SearchEvent(strategy, params.Skip, params.Limit, len(listings), float64(time.Since(started).Milliseconds()))

	return buildResponse(listings, total, params.Skip, params.Limit), nil
}

func (s *Service) clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if max := s.cfg.GetDiscoveryMaxPageSize(); max > 0 && limit > max {
		limit = max
	}
	return skip, limit
}

func buildResponse(listings []repository.Listing, total, skip, limit int) transport.SearchResponse {
	results := make([]transport.BusinessResult, 0, len(listings))
	for _, listing := range listings {
		results = append(results, toResult(listing))
	}
	return transport.SearchResponse{
		Data:       results,
		TotalCount: total,
		Skip:       skip,
		Limit:      limit,
		HasMore:    skip+len(results) < total,
	}
}

func toResult(listing repository.Listing) transport.BusinessResult {
	result := transport.BusinessResult{
		ID:          listing.ID,
		Name:        listing.Name,
		About:       listing.About,
		WebsiteLink: listing.WebsiteLink,
		Phone:       listing.Phone,
		Location: transport.LocationResponse{
			Province:  listing.Province,
			District:  listing.District,
			Sector:    listing.Sector,
			Cell:      listing.Cell,
			Village:   listing.Village,
			Latitude:  listing.Latitude,
			Longitude: listing.Longitude,
		},
		ProductCount:  listing.ProductCount,
		EmployeeCount: listing.EmployeeCount,
		DistanceKm:    listing.DistanceKm,
	}
	if listing.DistanceKm != nil {
		formatted := geo.FormatDistance(*listing.DistanceKm)
		result.FormattedDistance = &formatted
	}
	return result
}

// normalize trims the value and strips the "none" sentinel.
func normalize(value string) string {
	trimmed := strings.TrimSpace(value)
	if strings.EqualFold(trimmed, noneSentinel) {
		return ""
	}
	return trimmed
}

func hasRegionFilters(filters transport.RegionFilters) bool {
	for _, value := range []string{filters.Province, filters.District, filters.Sector, filters.Cell, filters.Village} {
		if normalize(value) != "" {
			return true
		}
	}
	return false
}

func isRegionLevel(level string) bool {
	switch strings.ToLower(level) {
	case "province", "district", "sector", "cell", "village":
		return true
	default:
		return false
	}
}
