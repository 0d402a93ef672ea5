package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shopwise_backend/internal/auth/repository"
	"shopwise_backend/internal/auth/service"
	"shopwise_backend/internal/auth/transport"
	"shopwise_backend/platform/config"
	"shopwise_backend/platform/httpkit"
	"shopwise_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	cfg config.CookieConfig
	val *validator.Validator
}

func New(svc *service.Service, cfg config.CookieConfig, val *validator.Validator) *Handler {
	return &Handler{svc: svc, cfg: cfg, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
	rg.POST("/refresh", h.Refresh)
	rg.POST("/logout", h.Logout)
}

func (h *Handler) Register(c *gin.Context) {
	var req transport.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	user, accessToken, refreshToken, err := h.svc.Register(c.Request.Context(), req.Email, req.Password, req.FullName, req.Phone)
	if httpkit.HandleError(c, err) {
		return
	}

	h.setRefreshCookie(c, refreshToken)
	httpkit.JSON(c, http.StatusCreated, transport.AuthResponse{
		AccessToken: accessToken,
		User:        toProfile(user),
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	user, accessToken, refreshToken, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpkit.Error(c, http.StatusUnauthorized, err.Error(), nil)
		return
	}

	h.setRefreshCookie(c, refreshToken)
	httpkit.OK(c, transport.AuthResponse{
		AccessToken: accessToken,
		User:        toProfile(user),
	})
}

func (h *Handler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(h.cfg.GetRefreshCookieName())
	if err != nil || refreshToken == "" {
		httpkit.Error(c, http.StatusUnauthorized, service.ErrTokenInvalid.Error(), nil)
		return
	}

	accessToken, newRefreshToken, err := h.svc.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.clearRefreshCookie(c)
		httpkit.Error(c, http.StatusUnauthorized, err.Error(), nil)
		return
	}

	h.setRefreshCookie(c, newRefreshToken)
	httpkit.OK(c, gin.H{"accessToken": accessToken})
}

func (h *Handler) Logout(c *gin.Context) {
	if refreshToken, err := c.Cookie(h.cfg.GetRefreshCookieName()); err == nil && refreshToken != "" {
		if err := h.svc.Logout(c.Request.Context(), refreshToken); err != nil {
			httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
	}

	h.clearRefreshCookie(c)
	httpkit.OK(c, gin.H{"message": "signed out"})
}

func (h *Handler) GetMe(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	user, err := h.svc.Me(c.Request.Context(), id.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toProfile(user))
}

func (h *Handler) UpdateMe(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), id.UserID(), req.FullName, req.Phone)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toProfile(user))
}

func (h *Handler) ChangePassword(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), id.UserID(), req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidCurrentPassword) {
			httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, gin.H{"message": "password updated"})
}

func toProfile(user repository.User) transport.ProfileResponse {
	profile := transport.ProfileResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		FullName:  user.FullName,
		Phone:     user.Phone,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if user.BusinessID != nil {
		id := user.BusinessID.String()
		profile.BusinessID = &id
	}
	return profile
}

func (h *Handler) setRefreshCookie(c *gin.Context, value string) {
	maxAge := int(h.cfg.GetRefreshTokenTTL() / time.Second)
	c.SetSameSite(h.cfg.GetRefreshCookieSameSite())
	c.SetCookie(
		h.cfg.GetRefreshCookieName(),
		value,
		maxAge,
		h.cfg.GetRefreshCookiePath(),
		h.cfg.GetRefreshCookieDomain(),
		h.cfg.GetRefreshCookieSecure(),
		true,
	)
}

func (h *Handler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(h.cfg.GetRefreshCookieSameSite())
	c.SetCookie(
		h.cfg.GetRefreshCookieName(),
		"",
		-1,
		h.cfg.GetRefreshCookiePath(),
		h.cfg.GetRefreshCookieDomain(),
		h.cfg.GetRefreshCookieSecure(),
		true,
	)
}
