// Package discovery provides the public business directory bounded context.
package discovery

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"shopwise_backend/internal/discovery/cache"
	"shopwise_backend/internal/discovery/handler"
	"shopwise_backend/internal/discovery/repository"
	"shopwise_backend/internal/discovery/service"
	"shopwise_backend/internal/events"
	apphttp "shopwise_backend/internal/http"
	"shopwise_backend/platform/config"
	"shopwise_backend/platform/logger"
	"shopwise_backend/platform/validator"
)

// Module is the discovery bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the discovery module. redisClient may be
// nil, which disables the first-page result cache.
func NewModule(pool *pgxpool.Pool, redisClient *redis.Client, cfg *config.Config, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	resultCache := cache.New(redisClient, cfg.GetDiscoveryCacheTTL())
	svc := service.New(repo, resultCache, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "discovery"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for adapters that write listings.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts the public discovery routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/discovery")
	group.POST("/nearest", m.handler.Nearest)
	group.POST("/within-radius", m.handler.WithinRadius)
	group.POST("/search/name/:name", m.handler.SearchByName)
	group.POST("/search/product/:name", m.handler.SearchByProduct)
	group.POST("/search/advanced", m.handler.Advanced)
	group.POST("/filter/:level/:value", m.handler.FilterByRegion)
	group.GET("/get-by-id/:id", m.handler.GetByID)
}

// RegisterHandlers subscribes to domain events that mutate the directory.
// Product and employee changes re-derive the denormalized counts right
// away instead of waiting for the nightly refresh.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.SaleRecorded{}.EventName(), events.HandlerFunc(m.handleDirectoryChange))
	bus.Subscribe(events.CatalogChanged{}.EventName(), events.HandlerFunc(m.handleDirectoryChange))
	bus.Subscribe(events.WorkforceChanged{}.EventName(), events.HandlerFunc(m.handleDirectoryChange))
}

func (m *Module) handleDirectoryChange(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.SaleRecorded:
		return m.repo.RefreshCounts(ctx, e.BusinessID)
	case events.CatalogChanged:
		return m.repo.RefreshCounts(ctx, e.BusinessID)
	case events.WorkforceChanged:
		return m.repo.RefreshCounts(ctx, e.BusinessID)
	}
	return nil
}

// RefreshCounts re-derives denormalized counters for one business.
func (m *Module) RefreshCounts(ctx context.Context, businessID uuid.UUID) error {
	return m.repo.RefreshCounts(ctx, businessID)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
