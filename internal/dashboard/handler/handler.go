package handler

import (
	"crm_backend/internal/dashboard/service"
	"crm_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for dashboard statistics.
type Handler struct {
	svc *service.Service
}

// New creates a new dashboard handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the dashboard routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.Stats)
}

// Stats always answers 200 with a complete bundle.
func (h *Handler) Stats(c *gin.Context) {
	httpkit.OK(c, h.svc.Stats(c.Request.Context()))
}
