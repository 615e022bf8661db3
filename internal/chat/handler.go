package chat

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/kyc-nova/pkg/common"
	"github.com/richxcame/kyc-nova/pkg/middleware"
)

// Recorder counts assistant exchanges
type Recorder interface {
	RecordInteraction(ctx context.Context)
}

// Handler handles chat HTTP requests
type Handler struct {
	service  *Service
	recorder Recorder
}

// NewHandler creates a new chat handler. recorder may be nil.
func NewHandler(service *Service, recorder Recorder) *Handler {
	return &Handler{service: service, recorder: recorder}
}

// SendMessage handles POST /api/chat
func (h *Handler) SendMessage(c *gin.Context) {
	var req MessageRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	reply, err := h.service.Respond(c.Request.Context(), req.Message)
	if err != nil {
		common.HandleServiceError(c, err, "Chat processing failed")
		return
	}
	if h.recorder != nil {
		h.recorder.RecordInteraction(c.Request.Context())
	}

	common.SuccessResponse(c, reply)
}

// RegisterRoutes registers chat routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.SendMessage)
}
