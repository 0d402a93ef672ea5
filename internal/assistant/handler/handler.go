package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopwise_backend/internal/assistant/service"
	"shopwise_backend/internal/assistant/transport"
	"shopwise_backend/platform/httpkit"
	"shopwise_backend/platform/validator"
)

// Handler handles HTTP requests for the assistant module.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid conversation id"
)

// New creates a new assistant handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// CreateConversation starts a thread.
// POST /api/v1/assistant/conversations
func (h *Handler) CreateConversation(c *gin.Context) {
	var req transport.CreateConversationRequest
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

	result, err := h.svc.CreateConversation(c.Request.Context(), businessID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// ListConversations lists threads.
// GET /api/v1/assistant/conversations
func (h *Handler) ListConversations(c *gin.Context) {
	businessID, ok := tenant(c)
	if !ok {
		return
	}

	result, err := h.svc.ListConversations(c.Request.Context(), businessID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetConversation fetches a thread with messages.
// GET /api/v1/assistant/conversations/:id
func (h *Handler) GetConversation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	businessID, ok := tenant(c)
	if !ok {
		return
	}

	result, err := h.svc.GetConversation(c.Request.Context(), businessID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteConversation removes a thread.
// DELETE /api/v1/assistant/conversations/:id
func (h *Handler) DeleteConversation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	businessID, ok := tenant(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteConversation(c.Request.Context(), businessID, id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "conversation deleted"})
}

// PostMessage accepts a user turn and schedules the reply.
// POST /api/v1/assistant/conversations/:id/messages
func (h *Handler) PostMessage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req transport.PostMessageRequest
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

	result, err := h.svc.PostMessage(c.Request.Context(), businessID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusAccepted, result)
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
