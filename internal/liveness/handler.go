package liveness

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/kyc-nova/internal/rekognition"
	"github.com/richxcame/kyc-nova/pkg/common"
	"github.com/richxcame/kyc-nova/pkg/logger"
	"github.com/richxcame/kyc-nova/pkg/middleware"
	"github.com/richxcame/kyc-nova/pkg/resilience"
	"go.uber.org/zap"
)

// Handler exposes the liveness endpoints
type Handler struct {
	service *Service
}

// NewHandler creates a new liveness handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Analyze handles POST /api/liveness/analyze
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	common.SuccessResponse(c, h.service.Analyze(req.Frames))
}

// Detect handles POST /api/liveness/detect
func (h *Handler) Detect(c *gin.Context) {
	var req AnalyzeRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	result, err := h.service.Detect(c.Request.Context(), req.Frames)
	if err != nil {
		common.HandleServiceError(c, err, "Liveness detection failed")
		return
	}

	common.SuccessResponse(c, result)
}

// StartSession handles POST /api/liveness/session
func (h *Handler) StartSession(c *gin.Context) {
	session, err := h.service.StartSession(c.Request.Context())
	if err != nil {
		h.respondSessionError(c, err, "Failed to start liveness session")
		return
	}

	common.CreatedResponse(c, session)
}

// SessionResults handles GET /api/liveness/session/:sessionId
func (h *Handler) SessionResults(c *gin.Context) {
	result, err := h.service.SessionResults(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.respondSessionError(c, err, "Failed to get liveness session results")
		return
	}

	common.SuccessResponse(c, result)
}

func (h *Handler) respondSessionError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, rekognition.ErrNotConfigured):
		common.ErrorResponse(c, http.StatusServiceUnavailable, "AWS Face Liveness is not configured")
	case errors.Is(err, resilience.ErrCircuitOpen):
		common.ErrorResponse(c, http.StatusServiceUnavailable, "AWS Face Liveness is temporarily unavailable")
	default:
		logger.WithContext(c.Request.Context()).Error(message, zap.Error(err))
		common.ErrorResponse(c, http.StatusBadGateway, message)
	}
}

// RegisterRoutes registers liveness routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	lv := rg.Group("/liveness")
	{
		lv.POST("/analyze", h.Analyze)
		lv.POST("/detect", h.Detect)
		lv.POST("/session", h.StartSession)
		lv.GET("/session/:sessionId", h.SessionResults)
	}
}
