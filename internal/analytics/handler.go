package analytics

import (
	"github.com/gin-gonic/gin"
	"github.com/richxcame/kyc-nova/pkg/common"
)

// Handler handles analytics HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a new analytics handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetDashboard handles GET /api/analytics
func (h *Handler) GetDashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		common.HandleServiceError(c, err, "Failed to load analytics")
		return
	}
	common.SuccessResponse(c, dashboard)
}

// RegisterRoutes registers analytics routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analytics", h.GetDashboard)
}
