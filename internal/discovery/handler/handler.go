// Package handler exposes the public discovery endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopwise_backend/internal/discovery/service"
	"shopwise_backend/internal/discovery/transport"
	"shopwise_backend/platform/httpkit"
	"shopwise_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid business id"
)

// Handler handles HTTP requests for the discovery directory.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new discovery handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Nearest returns businesses ordered by distance.
// POST /api/v1/discovery/nearest
func (h *Handler) Nearest(c *gin.Context) {
	req, ok := h.bindSearch(c)
	if !ok {
		return
	}

	result, err := h.svc.Nearest(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// WithinRadius returns businesses inside the requested radius.
// POST /api/v1/discovery/within-radius
func (h *Handler) WithinRadius(c *gin.Context) {
	req, ok := h.bindSearch(c)
	if !ok {
		return
	}

	result, err := h.svc.WithinRadius(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SearchByName finds businesses by name.
// POST /api/v1/discovery/search/name/:name
func (h *Handler) SearchByName(c *gin.Context) {
	req, ok := h.bindSearch(c)
	if !ok {
		return
	}

	result, err := h.svc.SearchByName(c.Request.Context(), c.Param("name"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SearchByProduct finds businesses selling a matching product.
// POST /api/v1/discovery/search/product/:name
func (h *Handler) SearchByProduct(c *gin.Context) {
	req, ok := h.bindSearch(c)
	if !ok {
		return
	}

	result, err := h.svc.SearchByProduct(c.Request.Context(), c.Param("name"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Advanced runs the multi-field search.
// POST /api/v1/discovery/search/advanced
func (h *Handler) Advanced(c *gin.Context) {
	var req transport.AdvancedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Advanced(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// FilterByRegion lists businesses in a single administrative region. The
// body is the shared search envelope; only skip and limit are used.
// POST /api/v1/discovery/filter/:level/:value
func (h *Handler) FilterByRegion(c *gin.Context) {
	req, ok := h.bindSearch(c)
	if !ok {
		return
	}

	result, err := h.svc.FilterByRegion(c.Request.Context(), c.Param("level"), c.Param("value"), req.Skip, req.Limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetByID returns one listing for the detail page.
// GET /api/v1/discovery/get-by-id/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) bindSearch(c *gin.Context) (transport.SearchRequest, bool) {
	var req transport.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return transport.SearchRequest{}, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return transport.SearchRequest{}, false
	}
	return req, true
}
