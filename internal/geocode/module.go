// Package geocode proxies address search to OpenStreetMap Nominatim so
// business owners can pin their location during onboarding.
package geocode

import (
	apphttp "shopwise_backend/internal/http"
	"shopwise_backend/platform/config"
	"shopwise_backend/platform/logger"
)

// Module wires the geocode lookup HTTP routes.
type Module struct {
	handler *Handler
}

func NewModule(cfg config.GeocodeConfig, log *logger.Logger) *Module {
	svc := NewService(cfg, log)
	h := NewHandler(svc)
	return &Module{handler: h}
}

func (m *Module) Name() string {
	return "geocode"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/geocode")
	group.GET("/search", m.handler.SearchPlace)
}

var _ apphttp.Module = (*Module)(nil)
