package geocode

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopwise_backend/platform/httpkit"
)

// Handler exposes the place search endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// SearchPlace handles GET /api/v1/geocode/search?q=...
func (h *Handler) SearchPlace(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query 'q' is required (min 3 chars)", nil)
		return
	}

	results, err := h.svc.SearchPlace(c.Request.Context(), req.Query)
	if err != nil {
		httpkit.Error(c, http.StatusBadGateway, "place lookup service unavailable", nil)
		return
	}

	httpkit.OK(c, results)
}
