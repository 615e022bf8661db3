package rekognition

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/kyc-nova/pkg/common"
	"github.com/richxcame/kyc-nova/pkg/logger"
	"github.com/richxcame/kyc-nova/pkg/middleware"
	"github.com/richxcame/kyc-nova/pkg/resilience"
	"go.uber.org/zap"
)

// Handler exposes the Rekognition proxy endpoints
type Handler struct {
	service        *Service
	maxUploadBytes int64
}

// NewHandler creates a new rekognition handler
func NewHandler(service *Service, maxUploadBytes int64) *Handler {
	return &Handler{service: service, maxUploadBytes: maxUploadBytes}
}

func (h *Handler) respondError(c *gin.Context, err error, message string) {
	var appErr *common.AppError
	switch {
	case errors.As(err, &appErr):
		common.AppErrorResponse(c, appErr)
	case errors.Is(err, ErrNotConfigured):
		common.ErrorResponse(c, http.StatusServiceUnavailable, "AWS Rekognition is not configured")
	case errors.Is(err, resilience.ErrCircuitOpen):
		common.ErrorResponse(c, http.StatusServiceUnavailable, "AWS Rekognition is temporarily unavailable")
	default:
		logger.WithContext(c.Request.Context()).Error(message, zap.Error(err))
		common.ErrorResponse(c, http.StatusInternalServerError, message)
	}
}

func decodeOrRespond(c *gin.Context, data, field string) ([]byte, bool) {
	img, err := DecodeBase64Image(data)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, field+": "+err.Error())
		return nil, false
	}
	return img, true
}

// ========================================
// LIVENESS
// ========================================

// StartLiveness handles POST /api/rekognition/start-liveness
func (h *Handler) StartLiveness(c *gin.Context) {
	session, err := h.service.StartLiveness(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to start liveness detection session")
		return
	}

	common.SuccessResponseWithStatus(c, http.StatusOK, session, session.Message)
}

// LivenessResults handles GET /api/rekognition/liveness-results/:sessionId
func (h *Handler) LivenessResults(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "session ID is required")
		return
	}

	result, err := h.service.LivenessResults(c.Request.Context(), sessionID)
	if err != nil {
		h.respondError(c, err, "Failed to get liveness detection results")
		return
	}

	common.SuccessResponse(c, result)
}

// ========================================
// FACES
// ========================================

// CompareFaces handles POST /api/rekognition/compare-faces (multipart sourceImage, targetImage)
func (h *Handler) CompareFaces(c *gin.Context) {
	source, err := common.ReadUpload(c, "sourceImage", h.maxUploadBytes)
	if err != nil {
		h.respondError(c, err, "Face comparison failed")
		return
	}
	target, err := common.ReadUpload(c, "targetImage", h.maxUploadBytes)
	if err != nil {
		h.respondError(c, err, "Face comparison failed")
		return
	}

	result, err := h.service.CompareFaces(c.Request.Context(), source.Data, target.Data, DefaultSimilarityThreshold)
	if err != nil {
		h.respondError(c, err, "Face comparison failed")
		return
	}

	common.SuccessResponse(c, result)
}

// CompareFacesBase64 handles POST /api/rekognition/compare-faces-base64
func (h *Handler) CompareFacesBase64(c *gin.Context) {
	var req CompareFacesBase64Request
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	source, ok := decodeOrRespond(c, req.SourceImage, "sourceImage")
	if !ok {
		return
	}
	target, ok := decodeOrRespond(c, req.TargetImage, "targetImage")
	if !ok {
		return
	}

	result, err := h.service.CompareFaces(c.Request.Context(), source, target, req.Threshold)
	if err != nil {
		h.respondError(c, err, "Face comparison failed")
		return
	}

	common.SuccessResponse(c, result)
}

// DetectFaces handles POST /api/rekognition/detect-faces (multipart image)
func (h *Handler) DetectFaces(c *gin.Context) {
	upload, err := common.ReadUpload(c, "image", h.maxUploadBytes)
	if err != nil {
		h.respondError(c, err, "Face detection failed")
		return
	}

	result, err := h.service.DetectFaces(c.Request.Context(), upload.Data)
	if err != nil {
		h.respondError(c, err, "Face detection failed")
		return
	}

	common.SuccessResponse(c, result)
}

// DetectFacesBase64 handles POST /api/rekognition/detect-faces-base64
func (h *Handler) DetectFacesBase64(c *gin.Context) {
	var req ImageRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	img, ok := decodeOrRespond(c, req.Image, "image")
	if !ok {
		return
	}

	result, err := h.service.DetectFaces(c.Request.Context(), img)
	if err != nil {
		h.respondError(c, err, "Face detection failed")
		return
	}

	common.SuccessResponse(c, result)
}

// DetectLabelsBase64 handles POST /api/rekognition/detect-labels-base64
func (h *Handler) DetectLabelsBase64(c *gin.Context) {
	var req ImageRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	img, ok := decodeOrRespond(c, req.Image, "image")
	if !ok {
		return
	}

	result, err := h.service.DetectLabels(c.Request.Context(), img)
	if err != nil {
		h.respondError(c, err, "Label detection failed")
		return
	}

	common.SuccessResponse(c, result)
}

// ValidateImageQuality handles POST /api/rekognition/validate-image-quality
func (h *Handler) ValidateImageQuality(c *gin.Context) {
	var req ImageRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	img, ok := decodeOrRespond(c, req.Image, "image")
	if !ok {
		return
	}

	result, err := h.service.ValidateImageQuality(c.Request.Context(), img)
	if err != nil {
		h.respondError(c, err, "Image quality validation failed")
		return
	}

	common.SuccessResponse(c, result)
}

// ========================================
// COLLECTIONS
// ========================================

// CreateCollection handles POST /api/rekognition/create-collection
func (h *Handler) CreateCollection(c *gin.Context) {
	var req CreateCollectionRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	result, err := h.service.CreateCollection(c.Request.Context(), req.CollectionID)
	if err != nil {
		h.respondError(c, err, "Failed to create collection")
		return
	}

	common.CreatedResponse(c, result)
}

// IndexFace handles POST /api/rekognition/index-face
func (h *Handler) IndexFace(c *gin.Context) {
	var req IndexFaceRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	img, ok := decodeOrRespond(c, req.Image, "image")
	if !ok {
		return
	}

	result, err := h.service.IndexFace(c.Request.Context(), img, req.CollectionID, req.ExternalImageID)
	if err != nil {
		h.respondError(c, err, "Failed to index face")
		return
	}

	common.SuccessResponse(c, result)
}

// SearchFaces handles POST /api/rekognition/search-faces
func (h *Handler) SearchFaces(c *gin.Context) {
	var req SearchFacesRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	img, ok := decodeOrRespond(c, req.Image, "image")
	if !ok {
		return
	}

	result, err := h.service.SearchFaces(c.Request.Context(), img, req.CollectionID, req.Threshold, req.MaxFaces)
	if err != nil {
		h.respondError(c, err, "Failed to search faces")
		return
	}

	common.SuccessResponse(c, result)
}

// ValidateCredentials handles GET /api/rekognition/validate-credentials
func (h *Handler) ValidateCredentials(c *gin.Context) {
	common.SuccessResponse(c, h.service.ValidateCredentials(c.Request.Context()))
}

// RegisterRoutes registers rekognition routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rk := rg.Group("/rekognition")
	{
		rk.GET("/validate-credentials", h.ValidateCredentials)
		rk.POST("/start-liveness", h.StartLiveness)
		rk.GET("/liveness-results/:sessionId", h.LivenessResults)
		rk.POST("/compare-faces", h.CompareFaces)
		rk.POST("/compare-faces-base64", h.CompareFacesBase64)
		rk.POST("/detect-faces", h.DetectFaces)
		rk.POST("/detect-faces-base64", h.DetectFacesBase64)
		rk.POST("/detect-labels-base64", h.DetectLabelsBase64)
		rk.POST("/validate-image-quality", h.ValidateImageQuality)
		rk.POST("/create-collection", h.CreateCollection)
		rk.POST("/index-face", h.IndexFace)
		rk.POST("/search-faces", h.SearchFaces)
	}
}
