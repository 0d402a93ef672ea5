// Package handler exposes the tenant business profile endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopwise_backend/internal/business/repository"
	"shopwise_backend/internal/business/service"
	"shopwise_backend/internal/business/transport"
	"shopwise_backend/platform/httpkit"
	"shopwise_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Register creates the caller's business.
// POST /api/v1/businesses
func (h *Handler) Register(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.RegisterBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	business, err := h.svc.Register(c.Request.Context(), id.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, toResponse(business))
}

// Mine returns the caller's business profile.
// GET /api/v1/businesses/me
func (h *Handler) Mine(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	business, err := h.svc.Mine(c.Request.Context(), id.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toResponse(business))
}

// Update replaces the caller's business profile.
// PUT /api/v1/businesses/me
func (h *Handler) Update(c *gin.Context) {
	businessID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req transport.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	business, err := h.svc.Update(c.Request.Context(), businessID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toResponse(business))
}

// LogoUploadURL presigns a logo upload.
// POST /api/v1/businesses/me/logo-upload
func (h *Handler) LogoUploadURL(c *gin.Context) {
	businessID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req transport.LogoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	presigned, err := h.svc.LogoUploadURL(c.Request.Context(), businessID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, presigned)
}

// ConfirmLogo records the uploaded logo key.
// POST /api/v1/businesses/me/logo
func (h *Handler) ConfirmLogo(c *gin.Context) {
	businessID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req struct {
		FileKey string `json:"fileKey" validate:"required,max=512"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.ConfirmLogo(c.Request.Context(), businessID, req.FileKey); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "logo saved"})
}

// LogoDownloadURL presigns a logo download.
// GET /api/v1/businesses/me/logo
func (h *Handler) LogoDownloadURL(c *gin.Context) {
	businessID, ok := h.tenant(c)
	if !ok {
		return
	}

	presigned, err := h.svc.LogoDownloadURL(c.Request.Context(), businessID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, presigned)
}

// ProfileQR streams a PNG QR code for the public profile link.
// GET /api/v1/businesses/me/qr
func (h *Handler) ProfileQR(c *gin.Context) {
	businessID, ok := h.tenant(c)
	if !ok {
		return
	}

	png, err := h.svc.ProfileQR(c.Request.Context(), businessID)
	if httpkit.HandleError(c, err) {
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) tenant(c *gin.Context) (uuid.UUID, bool) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return uuid.Nil, false
	}
	return httpkit.MustGetBusinessID(c, id)
}

func toResponse(b repository.Business) transport.BusinessResponse {
	return transport.BusinessResponse{
		ID:          b.ID.String(),
		Name:        b.Name,
		About:       b.About,
		WebsiteLink: b.WebsiteLink,
		Phone:       b.Phone,
		Province:    b.Province,
		District:    b.District,
		Sector:      b.Sector,
		Cell:        b.Cell,
		Village:     b.Village,
		Latitude:    b.Latitude,
		Longitude:   b.Longitude,
		LogoKey:     b.LogoKey,
		Published:   b.Published,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
