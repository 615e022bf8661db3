package biometrics

import (
	"github.com/gin-gonic/gin"
	"github.com/richxcame/kyc-nova/pkg/common"
)

// Handler handles face verification HTTP requests
type Handler struct {
	service        *Service
	maxUploadBytes int64
}

// NewHandler creates a new biometrics handler
func NewHandler(service *Service, maxUploadBytes int64) *Handler {
	return &Handler{service: service, maxUploadBytes: maxUploadBytes}
}

// VerifyFace handles POST /api/verify-face (multipart livePhoto, documentPhoto)
func (h *Handler) VerifyFace(c *gin.Context) {
	live, err := common.ReadUpload(c, "livePhoto", h.maxUploadBytes)
	if err != nil {
		common.HandleServiceError(c, err, "Face verification failed")
		return
	}
	document, err := common.ReadUpload(c, "documentPhoto", h.maxUploadBytes)
	if err != nil {
		common.HandleServiceError(c, err, "Face verification failed")
		return
	}

	result, err := h.service.Verify(c.Request.Context(), live.Data, document.Data)
	if err != nil {
		common.HandleServiceError(c, err, "Face verification failed")
		return
	}

	common.SuccessResponse(c, result)
}

// RegisterRoutes registers biometrics routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/verify-face", h.VerifyFace)
}
