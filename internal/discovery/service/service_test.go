package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"shopwise_backend/internal/discovery/cache"
	"shopwise_backend/internal/discovery/repository"
	"shopwise_backend/internal/discovery/transport"
	"shopwise_backend/platform/apperr"
	"shopwise_backend/platform/logger"
)

type fakeRepo struct {
	lastSearch  repository.SearchParams
	lastLevel   string
	lastValue   string
	listings    []repository.Listing
	total       int
	searchCalls int
}

func (f *fakeRepo) Search(ctx context.Context, params repository.SearchParams) ([]repository.Listing, int, error) {
	f.lastSearch = params
	f.searchCalls++
	return f.listings, f.total, nil
}

func (f *fakeRepo) FilterByRegion(ctx context.Context, level, value string, skip, limit int) ([]repository.Listing, int, error) {
	f.lastLevel, f.lastValue = level, value
	return f.listings, f.total, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (repository.Listing, error) {
	if len(f.listings) == 0 {
		return repository.Listing{}, apperr.NotFound("business not found")
	}
	return f.listings[0], nil
}

func (f *fakeRepo) Upsert(ctx context.Context, listing repository.Listing) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (f *fakeRepo) RefreshCounts(ctx context.Context, businessID uuid.UUID) error { return nil }
func (f *fakeRepo) RefreshAllCounts(ctx context.Context) (int, error)             { return 0, nil }
func (f *fakeRepo) DeleteByBusiness(ctx context.Context, businessID uuid.UUID) error {
	return nil
}

var _ repository.Repository = (*fakeRepo)(nil)

type fakeConfig struct {
	radius  float64
	maxPage int
}

func (f fakeConfig) GetDiscoveryDefaultRadiusKm() float64 { return f.radius }
func (f fakeConfig) GetDiscoveryMaxPageSize() int         { return f.maxPage }

func newService(repo *fakeRepo) *Service {
	return New(repo, cache.New(nil, 0), fakeConfig{radius: 10, maxPage: 50}, logger.New("test"))
}

func distancedListing(name string, km float64) repository.Listing {
	return repository.Listing{
		ID:         uuid.New(),
		BusinessID: uuid.New(),
		Name:       name,
		Province:   "Kigali City",
		District:   "Gasabo",
		Sector:     "Kimironko",
		Latitude:   -1.93,
		Longitude:  30.11,
		DistanceKm: &km,
	}
}

func TestNearestNormalizesSentinelFilters(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)

	req := transport.SearchRequest{Latitude: -1.94, Longitude: 30.06, Limit: 10}
	req.Province = "None"
	req.District = "  Gasabo "

	if _, err := svc.Nearest(context.Background(), req); err != nil {
		t.Fatalf("nearest: %v", err)
	}
	if repo.lastSearch.Province != "" {
		t.Fatalf("province = %q, want sentinel stripped", repo.lastSearch.Province)
	}
	if repo.lastSearch.District != "Gasabo" {
		t.Fatalf("district = %q, want trimmed", repo.lastSearch.District)
	}
}

func TestNearestClampsPagination(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)

	req := transport.SearchRequest{Latitude: -1.94, Longitude: 30.06, Skip: -5, Limit: 500}
	if _, err := svc.Nearest(context.Background(), req); err != nil {
		t.Fatalf("nearest: %v", err)
	}
	if repo.lastSearch.Skip != 0 {
		t.Fatalf("skip = %d, want 0", repo.lastSearch.Skip)
	}
	if repo.lastSearch.Limit != 50 {
		t.Fatalf("limit = %d, want clamped to 50", repo.lastSearch.Limit)
	}
}

func TestWithinRadiusDefaultsRadius(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)

	req := transport.SearchRequest{Latitude: -1.94, Longitude: 30.06, Limit: 10}
	if _, err := svc.WithinRadius(context.Background(), req); err != nil {
		t.Fatalf("within radius: %v", err)
	}
	if repo.lastSearch.RadiusKm != 10 {
		t.Fatalf("radius = %v, want default 10", repo.lastSearch.RadiusKm)
	}

	req.RadiusKm = 25
	if _, err := svc.WithinRadius(context.Background(), req); err != nil {
		t.Fatalf("within radius: %v", err)
	}
	if repo.lastSearch.RadiusKm != 25 {
		t.Fatalf("radius = %v, want 25", repo.lastSearch.RadiusKm)
	}
}

func TestSearchByNameRequiresTerm(t *testing.T) {
	svc := newService(&fakeRepo{})

	_, err := svc.SearchByName(context.Background(), "   ", transport.SearchRequest{})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindBadRequest {
		t.Fatalf("err = %v, want bad request", err)
	}
}

func TestAdvancedNormalizesTerms(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)

	req := transport.AdvancedSearchRequest{BusinessName: "none", ProductName: " cement "}
	req.Latitude, req.Longitude, req.Limit = -1.94, 30.06, 10

	if _, err := svc.Advanced(context.Background(), req); err != nil {
		t.Fatalf("advanced: %v", err)
	}
	if repo.lastSearch.Name != "" {
		t.Fatalf("name = %q, want sentinel stripped", repo.lastSearch.Name)
	}
	if repo.lastSearch.ProductName != "cement" {
		t.Fatalf("productName = %q, want trimmed", repo.lastSearch.ProductName)
	}
	if repo.lastSearch.RadiusKm != 10 {
		t.Fatalf("radius = %v, want default applied", repo.lastSearch.RadiusKm)
	}
}

func TestFilterByRegionValidation(t *testing.T) {
	svc := newService(&fakeRepo{})

	if _, err := svc.FilterByRegion(context.Background(), "province", "none", 0, 10); err == nil {
		t.Fatalf("sentinel region value accepted")
	}
	if _, err := svc.FilterByRegion(context.Background(), "continent", "Africa", 0, 10); err == nil {
		t.Fatalf("unknown region level accepted")
	}
}

func TestFilterByRegionPassesThrough(t *testing.T) {
	repo := &fakeRepo{listings: []repository.Listing{distancedListing("a", 0)}, total: 1}
	repo.listings[0].DistanceKm = nil
	svc := newService(repo)

	resp, err := svc.FilterByRegion(context.Background(), "district", "Gasabo", 0, 10)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if repo.lastLevel != "district" || repo.lastValue != "Gasabo" {
		t.Fatalf("level/value = %q/%q", repo.lastLevel, repo.lastValue)
	}
	if resp.Data[0].DistanceKm != nil || resp.Data[0].FormattedDistance != nil {
		t.Fatalf("region filter results must carry no distance")
	}
}

func TestResponseHasMoreAndFormattedDistance(t *testing.T) {
	repo := &fakeRepo{
		listings: []repository.Listing{distancedListing("near", 0.4), distancedListing("far", 3.25)},
		total:    5,
	}
	svc := newService(repo)

	resp, err := svc.Nearest(context.Background(), transport.SearchRequest{Latitude: -1.94, Longitude: 30.06, Limit: 2})
	if err != nil {
		t.Fatalf("nearest: %v", err)
	}
	if !resp.HasMore {
		t.Fatalf("hasMore = false with 2 of 5 returned")
	}
	if resp.TotalCount != 5 {
		t.Fatalf("totalCount = %d", resp.TotalCount)
	}
	if got := *resp.Data[0].FormattedDistance; got != "400m" {
		t.Fatalf("formatted distance = %q, want 400m", got)
	}
	if got := *resp.Data[1].FormattedDistance; got != "3.3km" {
		t.Fatalf("formatted distance = %q, want 3.3km", got)
	}
}
