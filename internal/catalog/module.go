// Package catalog provides the catalog bounded context module.
package catalog

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"shopwise_backend/internal/adapters/storage"
	"shopwise_backend/internal/catalog/handler"
	"shopwise_backend/internal/catalog/repository"
	"shopwise_backend/internal/catalog/service"
	"shopwise_backend/internal/events"
	apphttp "shopwise_backend/internal/http"
	"shopwise_backend/platform/config"
	"shopwise_backend/platform/logger"
	"shopwise_backend/platform/validator"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the catalog module. storageSvc may be
// nil when MinIO is not configured.
func NewModule(pool *pgxpool.Pool, storageSvc storage.StorageService, cfg *config.Config, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, storageSvc, cfg, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for adapters (stock decrement on sale).
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/catalog")
	group.GET("/products", m.handler.ListProducts)
	group.GET("/products/:id", m.handler.GetProductByID)
	group.POST("/products", m.handler.CreateProduct)
	group.PUT("/products/:id", m.handler.UpdateProduct)
	group.DELETE("/products/:id", m.handler.DeleteProduct)
	group.POST("/products/:id/stock", m.handler.AdjustStock)

	group.POST("/products/:id/assets/presign", m.handler.PresignAssetUpload)
	group.POST("/products/:id/assets", m.handler.RegisterAsset)
	group.GET("/products/:id/assets", m.handler.ListAssets)
	group.GET("/assets/:assetId/download", m.handler.PresignAssetDownload)
	group.DELETE("/assets/:assetId", m.handler.DeleteAsset)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
