package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopwise_backend/internal/workforce/service"
	"shopwise_backend/internal/workforce/transport"
	"shopwise_backend/platform/httpkit"
	"shopwise_backend/platform/validator"
)

// Handler handles HTTP requests for the workforce module.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid workforce id"
)

// New creates a new workforce handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// CreateEmployee registers a staff member.
// POST /api/v1/workforce/employees
func (h *Handler) CreateEmployee(c *gin.Context) {
	var req transport.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	businessID, ok := tenant(c)
	if !ok {
		return
	}

	result, err := h.svc.CreateEmployee(c.Request.Context(), businessID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// UpdateEmployee patches a staff member.
// PUT /api/v1/workforce/employees/:id
func (h *Handler) UpdateEmployee(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req transport.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	businessID, ok := tenant(c)
	if !ok {
		return
	}

	result, err := h.svc.UpdateEmployee(c.Request.Context(), businessID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteEmployee removes a staff member.
// DELETE /api/v1/workforce/employees/:id
func (h *Handler) DeleteEmployee(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	businessID, ok := tenant(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteEmployee(c.Request.Context(), businessID, id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "employee deleted"})
}

// GetEmployee retrieves a staff member.
// GET /api/v1/workforce/employees/:id
func (h *Handler) GetEmployee(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	businessID, ok := tenant(c)
	if !ok {
		return
	}

	result, err := h.svc.GetEmployee(c.Request.Context(), businessID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListEmployees lists staff.
// GET /api/v1/workforce/employees
func (h *Handler) ListEmployees(c *gin.Context) {
	var req transport.ListEmployeesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	businessID, ok := tenant(c)
	if !ok {
		return
	}

	result, err := h.svc.ListEmployees(c.Request.Context(), businessID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// RunPayroll executes payroll for a month.
// POST /api/v1/workforce/payroll/runs
func (h *Handler) RunPayroll(c *gin.Context) {
	var req transport.RunPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	businessID, ok := tenant(c)
	if !ok {
		return
	}

	result, err := h.svc.RunPayroll(c.Request.Context(), businessID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// ListPayrollRuns lists run history.
// GET /api/v1/workforce/payroll/runs
func (h *Handler) ListPayrollRuns(c *gin.Context) {
	businessID, ok := tenant(c)
	if !ok {
		return
	}

	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "pageSize", 20)

	result, err := h.svc.ListPayrollRuns(c.Request.Context(), businessID, page, pageSize)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetPayrollRun fetches one run with its items.
// GET /api/v1/workforce/payroll/runs/:id
func (h *Handler) GetPayrollRun(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	businessID, ok := tenant(c)
	if !ok {
		return
	}

	result, err := h.svc.GetPayrollRun(c.Request.Context(), businessID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func tenant(c *gin.Context) (uuid.UUID, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.Nil, false
	}
	return httpkit.MustGetBusinessID(c, identity)
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
