package aadhaar

import (
	"github.com/gin-gonic/gin"
	"github.com/richxcame/kyc-nova/pkg/common"
)

// Handler handles Aadhaar extraction HTTP requests
type Handler struct {
	service        *Service
	maxUploadBytes int64
}

// NewHandler creates a new aadhaar handler
func NewHandler(service *Service, maxUploadBytes int64) *Handler {
	return &Handler{service: service, maxUploadBytes: maxUploadBytes}
}

// Extract handles POST /api/aadhaar/extract (multipart aadhaar_image)
func (h *Handler) Extract(c *gin.Context) {
	upload, err := common.ReadUpload(c, "aadhaar_image", h.maxUploadBytes)
	if err != nil {
		common.HandleServiceError(c, err, "Aadhaar extraction failed")
		return
	}

	result, err := h.service.Extract(c.Request.Context(), upload.Data)
	if err != nil {
		common.HandleServiceError(c, err, "Aadhaar extraction failed")
		return
	}

	common.SuccessResponse(c, result)
}

// RegisterRoutes registers aadhaar routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	aadhaar := rg.Group("/aadhaar")
	{
		aadhaar.POST("/extract", h.Extract)
	}
}
