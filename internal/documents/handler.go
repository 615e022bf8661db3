package documents

import (
	"github.com/gin-gonic/gin"
	"github.com/richxcame/kyc-nova/pkg/common"
)

// Handler handles document HTTP requests
type Handler struct {
	service  *Service
	recorder Recorder
}

// NewHandler creates a new documents handler. recorder may be nil.
func NewHandler(service *Service, recorder Recorder) *Handler {
	return &Handler{service: service, recorder: recorder}
}

// ProcessDocument handles POST /api/process-document (multipart document)
func (h *Handler) ProcessDocument(c *gin.Context) {
	upload, err := common.ReadUpload(c, "document", h.service.MaxUploadBytes())
	if err != nil {
		common.HandleServiceError(c, err, "Document processing failed")
		return
	}

	result, err := h.service.Process(c.Request.Context(), upload)
	if err != nil {
		common.HandleServiceError(c, err, "Document processing failed")
		return
	}
	if h.recorder != nil {
		h.recorder.RecordDocument(c.Request.Context())
	}

	common.SuccessResponse(c, result)
}

// RegisterRoutes registers document routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/process-document", h.ProcessDocument)
}
