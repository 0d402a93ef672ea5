// Package business provides the tenant business profile bounded context.
package business

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"shopwise_backend/internal/adapters/storage"
	"shopwise_backend/internal/business/handler"
	"shopwise_backend/internal/business/repository"
	"shopwise_backend/internal/business/service"
	"shopwise_backend/internal/events"
	apphttp "shopwise_backend/internal/http"
	"shopwise_backend/platform/config"
	"shopwise_backend/platform/logger"
	"shopwise_backend/platform/validator"
)

// Module is the business bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the business module. store may be nil
// when MinIO is not configured.
func NewModule(pool *pgxpool.Pool, listings service.ListingWriter, store storage.StorageService, cfg *config.Config, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, listings, store, cfg, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "business"
}

// Service returns the business service for use by other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts business routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/businesses", m.handler.Register)
	ctx.Protected.GET("/businesses/me", m.handler.Mine)
	ctx.Protected.PUT("/businesses/me", m.handler.Update)
	ctx.Protected.POST("/businesses/me/logo-upload", m.handler.LogoUploadURL)
	ctx.Protected.POST("/businesses/me/logo", m.handler.ConfirmLogo)
	ctx.Protected.GET("/businesses/me/logo", m.handler.LogoDownloadURL)
	ctx.Protected.GET("/businesses/me/qr", m.handler.ProfileQR)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
