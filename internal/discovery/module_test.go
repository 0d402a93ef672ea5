package discovery

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"shopwise_backend/internal/discovery/repository"
	"shopwise_backend/internal/events"
	"shopwise_backend/platform/logger"
)

type fakeListingRepo struct {
	refreshed []uuid.UUID
}

func (f *fakeListingRepo) Search(ctx context.Context, params repository.SearchParams) ([]repository.Listing, int, error) {
	return nil, 0, nil
}

func (f *fakeListingRepo) FilterByRegion(ctx context.Context, level, value string, skip, limit int) ([]repository.Listing, int, error) {
	return nil, 0, nil
}

func (f *fakeListingRepo) GetByID(ctx context.Context, id uuid.UUID) (repository.Listing, error) {
	return repository.Listing{}, nil
}

func (f *fakeListingRepo) Upsert(ctx context.Context, listing repository.Listing) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (f *fakeListingRepo) RefreshCounts(ctx context.Context, businessID uuid.UUID) error {
	f.refreshed = append(f.refreshed, businessID)
	return nil
}

func (f *fakeListingRepo) RefreshAllCounts(ctx context.Context) (int, error) {
	return 0, nil
}

func (f *fakeListingRepo) DeleteByBusiness(ctx context.Context, businessID uuid.UUID) error {
	return nil
}

func TestDirectoryCountsRefreshOnDomainEvents(t *testing.T) {
	repo := &fakeListingRepo{}
	module := &Module{repo: repo}
	bus := events.NewInMemoryBus(logger.New("test"))
	module.RegisterHandlers(bus)

	businessID := uuid.New()
	published := []events.Event{
		events.CatalogChanged{BaseEvent: events.NewBaseEvent(), BusinessID: businessID},
		events.WorkforceChanged{BaseEvent: events.NewBaseEvent(), BusinessID: businessID},
		events.SaleRecorded{BaseEvent: events.NewBaseEvent(), BusinessID: businessID},
	}
	for _, event := range published {
		if err := bus.PublishSync(context.Background(), event); err != nil {
			t.Fatalf("publish %s: %v", event.EventName(), err)
		}
	}

	if got := len(repo.refreshed); got != len(published) {
		t.Fatalf("refreshes = %d, want %d", got, len(published))
	}
	for i, id := range repo.refreshed {
		if id != businessID {
			t.Fatalf("refresh %d for business %s, want %s", i, id, businessID)
		}
	}
}
