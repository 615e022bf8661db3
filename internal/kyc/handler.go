package kyc

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/kyc-nova/internal/liveness"
	"github.com/richxcame/kyc-nova/internal/trust"
	"github.com/richxcame/kyc-nova/pkg/common"
	"github.com/richxcame/kyc-nova/pkg/middleware"
	"github.com/richxcame/kyc-nova/pkg/validation"
)

// Handler handles trust scoring, full verification and health requests
type Handler struct {
	orchestrator   *Orchestrator
	maxUploadBytes int64
	health         common.HealthInfo
	checks         map[string]func() error
}

// NewHandler creates a new kyc handler
func NewHandler(orchestrator *Orchestrator, maxUploadBytes int64, health common.HealthInfo, checks map[string]func() error) *Handler {
	return &Handler{
		orchestrator:   orchestrator,
		maxUploadBytes: maxUploadBytes,
		health:         health,
		checks:         checks,
	}
}

// CalculateTrust handles POST /api/calculate-trust
func (h *Handler) CalculateTrust(c *gin.Context) {
	var req CalculateTrustRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	common.SuccessResponse(c, h.orchestrator.Calculate(&req))
}

// Verify handles POST /api/kyc/verify.
// Multipart fields: document, livePhoto, and optional JSON encoded frames and behavioralData.
func (h *Handler) Verify(c *gin.Context) {
	document, err := common.ReadUpload(c, "document", h.maxUploadBytes)
	if err != nil {
		common.HandleServiceError(c, err, "Verification failed")
		return
	}
	live, err := common.ReadUpload(c, "livePhoto", h.maxUploadBytes)
	if err != nil {
		common.HandleServiceError(c, err, "Verification failed")
		return
	}

	req := &Request{Document: document, LivePhoto: live.Data}

	if raw := c.PostForm("frames"); raw != "" {
		frames := liveness.AnalyzeRequest{}
		if err := json.Unmarshal([]byte(raw), &frames.Frames); err != nil {
			common.AppErrorResponse(c, common.NewBadRequestError("frames must be a JSON array", err))
			return
		}
		if err := validation.ValidateStruct(&frames); err != nil {
			middleware.RespondWithValidationError(c, err)
			return
		}
		req.Frames = frames.Frames
	}

	if raw := c.PostForm("behavioralData"); raw != "" {
		var behavior BehavioralData
		if err := json.Unmarshal([]byte(raw), &behavior); err != nil {
			common.AppErrorResponse(c, common.NewBadRequestError("behavioralData must be a JSON object", err))
			return
		}
		req.Behavior = &trust.BehaviorSignals{
			MouseMovements: behavior.MouseMovements,
			TypingCadence:  behavior.TypingCadence,
			SessionSeconds: behavior.SessionTime,
		}
	}

	result, err := h.orchestrator.Verify(c.Request.Context(), req)
	if err != nil {
		common.HandleServiceError(c, err, "Verification failed")
		return
	}

	common.SuccessResponse(c, result)
}

// RegisterRoutes registers kyc routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", common.HealthCheckWithDeps(h.health, h.checks))
	rg.POST("/calculate-trust", h.CalculateTrust)
	rg.POST("/kyc/verify", h.Verify)
}
