// Package finance provides the finance bounded context module: expense
// logging, sale recording and monthly summaries.
package finance

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"shopwise_backend/internal/events"
	"shopwise_backend/internal/finance/handler"
	"shopwise_backend/internal/finance/repository"
	"shopwise_backend/internal/finance/service"
	apphttp "shopwise_backend/internal/http"
	"shopwise_backend/platform/logger"
	"shopwise_backend/platform/validator"
)

// Module is the finance bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the finance module. stock is the
// adapter that decrements catalog stock when a sale is recorded.
func NewModule(pool *pgxpool.Pool, stock service.StockPort, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, stock, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "finance"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts finance routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/finance")
	group.GET("/expenses", m.handler.ListExpenses)
	group.POST("/expenses", m.handler.CreateExpense)
	group.DELETE("/expenses/:id", m.handler.DeleteExpense)

	group.GET("/sales", m.handler.ListSales)
	group.GET("/sales/:id", m.handler.GetSale)
	group.POST("/sales", m.handler.RecordSale)

	group.GET("/summary", m.handler.MonthlySummary)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
