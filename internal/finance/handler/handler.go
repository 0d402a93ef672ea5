package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopwise_backend/internal/finance/service"
	"shopwise_backend/internal/finance/transport"
	"shopwise_backend/platform/httpkit"
	"shopwise_backend/platform/validator"
)

// Handler handles HTTP requests for the finance module.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid finance id"
)

// New creates a new finance handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// CreateExpense logs a cost.
// POST /api/v1/finance/expenses
func (h *Handler) CreateExpense(c *gin.Context) {
	var req transport.CreateExpenseRequest
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

	result, err := h.svc.CreateExpense(c.Request.Context(), businessID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// DeleteExpense removes an expense.
// DELETE /api/v1/finance/expenses/:id
func (h *Handler) DeleteExpense(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	businessID, ok := tenant(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteExpense(c.Request.Context(), businessID, id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "expense deleted"})
}

// ListExpenses lists expenses.
// GET /api/v1/finance/expenses
func (h *Handler) ListExpenses(c *gin.Context) {
	var req transport.ListExpensesRequest
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

	result, err := h.svc.ListExpenses(c.Request.Context(), businessID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// RecordSale records a sale, decrementing product stock.
// POST /api/v1/finance/sales
func (h *Handler) RecordSale(c *gin.Context) {
	var req transport.RecordSaleRequest
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

	result, err := h.svc.RecordSale(c.Request.Context(), businessID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// GetSale fetches one sale.
// GET /api/v1/finance/sales/:id
func (h *Handler) GetSale(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	businessID, ok := tenant(c)
	if !ok {
		return
	}

	result, err := h.svc.GetSale(c.Request.Context(), businessID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListSales lists sales.
// GET /api/v1/finance/sales
func (h *Handler) ListSales(c *gin.Context) {
	var req transport.ListSalesRequest
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

	result, err := h.svc.ListSales(c.Request.Context(), businessID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// MonthlySummary aggregates one calendar month.
// GET /api/v1/finance/summary?month=YYYY-MM
func (h *Handler) MonthlySummary(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		httpkit.Error(c, http.StatusBadRequest, "month query parameter is required", nil)
		return
	}
	businessID, ok := tenant(c)
	if !ok {
		return
	}

	result, err := h.svc.MonthlySummary(c.Request.Context(), businessID, month)
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
