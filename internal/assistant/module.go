// Package assistant provides the AI chat assistant bounded context module.
package assistant

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"shopwise_backend/internal/assistant/handler"
	"shopwise_backend/internal/assistant/repository"
	"shopwise_backend/internal/assistant/service"
	apphttp "shopwise_backend/internal/http"
	"shopwise_backend/platform/logger"
	"shopwise_backend/platform/validator"
)

// Module is the assistant bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the assistant module. generator and
// queue may be nil when the assistant is not configured.
func NewModule(pool *pgxpool.Pool, generator service.Generator, queue service.ReplyQueue, snapshots service.ContextProvider, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, generator, queue, snapshots, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "assistant"
}

// Service returns the service layer for the scheduler worker.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts assistant routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/assistant")
	group.GET("/conversations", m.handler.ListConversations)
	group.POST("/conversations", m.handler.CreateConversation)
	group.GET("/conversations/:id", m.handler.GetConversation)
	group.DELETE("/conversations/:id", m.handler.DeleteConversation)
	group.POST("/conversations/:id/messages", m.handler.PostMessage)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
