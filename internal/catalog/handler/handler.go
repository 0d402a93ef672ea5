package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopwise_backend/internal/catalog/service"
	"shopwise_backend/internal/catalog/transport"
	"shopwise_backend/platform/httpkit"
	"shopwise_backend/platform/validator"
)

// Handler handles HTTP requests for the product catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid catalog id"
)

// New creates a new catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListProducts retrieves products.
// GET /api/v1/catalog/products
func (h *Handler) ListProducts(c *gin.Context) {
	var req transport.ListProductsRequest
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

	result, err := h.svc.ListProducts(c.Request.Context(), businessID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetProductByID retrieves a product by ID.
// GET /api/v1/catalog/products/:id
func (h *Handler) GetProductByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	businessID, ok := tenant(c)
	if !ok {
		return
	}

	result, err := h.svc.GetProductByID(c.Request.Context(), businessID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateProduct creates a new product.
// POST /api/v1/catalog/products
func (h *Handler) CreateProduct(c *gin.Context) {
	var req transport.CreateProductRequest
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

	result, err := h.svc.CreateProduct(c.Request.Context(), businessID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// UpdateProduct updates a product.
// PUT /api/v1/catalog/products/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req transport.UpdateProductRequest
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

	result, err := h.svc.UpdateProduct(c.Request.Context(), businessID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteProduct deletes a product.
// DELETE /api/v1/catalog/products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	businessID, ok := tenant(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteProduct(c.Request.Context(), businessID, id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "product deleted"})
}

// AdjustStock applies a manual stock correction.
// POST /api/v1/catalog/products/:id/stock
func (h *Handler) AdjustStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req transport.AdjustStockRequest
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

	result, err := h.svc.AdjustStock(c.Request.Context(), businessID, id, req.Delta)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// PresignAssetUpload presigns a product image upload.
// POST /api/v1/catalog/products/:id/assets/presign
func (h *Handler) PresignAssetUpload(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req transport.PresignProductAssetRequest
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

	result, err := h.svc.PresignAssetUpload(c.Request.Context(), businessID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// RegisterAsset records a completed upload.
// POST /api/v1/catalog/products/:id/assets
func (h *Handler) RegisterAsset(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req transport.CreateProductAssetRequest
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

	result, err := h.svc.RegisterAsset(c.Request.Context(), businessID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// ListAssets lists assets for a product.
// GET /api/v1/catalog/products/:id/assets
func (h *Handler) ListAssets(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	businessID, ok := tenant(c)
	if !ok {
		return
	}

	result, err := h.svc.ListAssets(c.Request.Context(), businessID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// PresignAssetDownload presigns an asset download.
// GET /api/v1/catalog/assets/:assetId/download
func (h *Handler) PresignAssetDownload(c *gin.Context) {
	assetID, ok := pathID(c, "assetId")
	if !ok {
		return
	}
	businessID, ok := tenant(c)
	if !ok {
		return
	}

	result, err := h.svc.PresignAssetDownload(c.Request.Context(), businessID, assetID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteAsset removes an asset.
// DELETE /api/v1/catalog/assets/:assetId
func (h *Handler) DeleteAsset(c *gin.Context) {
	assetID, ok := pathID(c, "assetId")
	if !ok {
		return
	}
	businessID, ok := tenant(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteAsset(c.Request.Context(), businessID, assetID); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "asset deleted"})
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
