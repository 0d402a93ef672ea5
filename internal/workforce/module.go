// Package workforce provides the workforce bounded context module:
// employee management and monthly payroll.
package workforce

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"shopwise_backend/internal/events"
	apphttp "shopwise_backend/internal/http"
	"shopwise_backend/internal/workforce/handler"
	"shopwise_backend/internal/workforce/repository"
	"shopwise_backend/internal/workforce/service"
	"shopwise_backend/platform/logger"
	"shopwise_backend/platform/validator"
)

// Module is the workforce bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the workforce module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "workforce"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts workforce routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/workforce")
	group.GET("/employees", m.handler.ListEmployees)
	group.GET("/employees/:id", m.handler.GetEmployee)
	group.POST("/employees", m.handler.CreateEmployee)
	group.PUT("/employees/:id", m.handler.UpdateEmployee)
	group.DELETE("/employees/:id", m.handler.DeleteEmployee)

	group.POST("/payroll/runs", m.handler.RunPayroll)
	group.GET("/payroll/runs", m.handler.ListPayrollRuns)
	group.GET("/payroll/runs/:id", m.handler.GetPayrollRun)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
