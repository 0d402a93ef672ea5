// Package auth provides the authentication bounded context module.
package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"shopwise_backend/internal/auth/handler"
	"shopwise_backend/internal/auth/repository"
	"shopwise_backend/internal/auth/service"
	"shopwise_backend/internal/events"
	apphttp "shopwise_backend/internal/http"
	"shopwise_backend/platform/config"
	"shopwise_backend/platform/logger"
	"shopwise_backend/platform/validator"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg *config.Config, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, bus, log)
	h := handler.New(svc, cfg, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the auth service for use by other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public auth routes with stricter rate limiting
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup)

	// Protected profile routes
	ctx.Protected.GET("/users/me", m.handler.GetMe)
	ctx.Protected.PATCH("/users/me", m.handler.UpdateMe)
	ctx.Protected.POST("/users/me/password", m.handler.ChangePassword)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
