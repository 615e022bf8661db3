package kyc

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/richxcame/kyc-nova/internal/biometrics"
	"github.com/richxcame/kyc-nova/internal/documents"
	"github.com/richxcame/kyc-nova/internal/liveness"
	"github.com/richxcame/kyc-nova/internal/trust"
	"github.com/richxcame/kyc-nova/pkg/common"
)

// EventVerificationCompleted is published after every finished verification
const EventVerificationCompleted = "kyc.verification.completed"

// Flag reasons
const (
	FlagLivenessFailed = "liveness check failed"
	FlagFaceMismatch   = "face does not match document"
	FlagReviewRequired = "trust score requires review"
)

// ========================================
// TRUST CALCULATION
// ========================================

// ExtractedName is the part of the extracted document data the risk check reads
type ExtractedName struct {
	Name string `json:"name"`
}

// DocumentData is the document stage summary sent by the client
type DocumentData struct {
	Confidence    *float64       `json:"confidence"`
	ExtractedData *ExtractedName `json:"extractedData"`
}

// BiometricData is the face match summary sent by the client
type BiometricData struct {
	Confidence *float64 `json:"confidence"`
	Match      *bool    `json:"match"`
}

// BehavioralData holds the interaction signals captured by the client
type BehavioralData struct {
	MouseMovements *trust.MouseSignal  `json:"mouseMovements"`
	TypingCadence  *trust.TypingSignal `json:"typingCadence"`
	SessionTime    float64             `json:"sessionTime" validate:"gte=0"`
	Score          *float64            `json:"score"`
}

// CalculateTrustRequest is the body of POST /api/calculate-trust.
// Every section is optional; missing scores use the policy defaults.
type CalculateTrustRequest struct {
	DocumentData   *DocumentData   `json:"documentData"`
	BiometricData  *BiometricData  `json:"biometricData"`
	BehavioralData *BehavioralData `json:"behavioralData"`
}

// Input converts the request into aggregator input
func (r *CalculateTrustRequest) Input() trust.Input {
	var in trust.Input

	var consistency *trust.Consistency
	ensure := func() *trust.Consistency {
		if consistency == nil {
			consistency = &trust.Consistency{NameExtracted: true, FaceMatched: true}
		}
		return consistency
	}

	if d := r.DocumentData; d != nil {
		in.DocumentScore = d.Confidence
		if d.ExtractedData != nil {
			ensure().NameExtracted = strings.TrimSpace(d.ExtractedData.Name) != ""
		}
	}
	if b := r.BiometricData; b != nil {
		in.BiometricScore = b.Confidence
		if b.Match != nil {
			ensure().FaceMatched = *b.Match
		}
	}
	if b := r.BehavioralData; b != nil {
		in.BehaviorScore = b.Score
		in.Behavior = &trust.BehaviorSignals{
			MouseMovements: b.MouseMovements,
			TypingCadence:  b.TypingCadence,
			SessionSeconds: b.SessionTime,
		}
	}
	in.Consistency = consistency

	return in
}

// ========================================
// FULL VERIFICATION
// ========================================

// Request carries every input of one verification run
type Request struct {
	Document  *common.Upload
	LivePhoto []byte
	Frames    []liveness.Frame
	Behavior  *trust.BehaviorSignals
}

// Result is the joined outcome of all stages
type Result struct {
	VerificationID uuid.UUID          `json:"verificationId"`
	Document       *documents.Result  `json:"document"`
	Biometrics     *biometrics.Result `json:"biometrics"`
	Liveness       *liveness.Result   `json:"liveness"`
	Trust          *trust.Result      `json:"trust"`
	Flagged        bool               `json:"flagged"`
	FlagReasons    []string           `json:"flagReasons,omitempty"`
	DurationMs     int64              `json:"processingTime"`
	CompletedAt    time.Time          `json:"completedAt"`
}

// CompletedEvent is the payload of EventVerificationCompleted
type CompletedEvent struct {
	VerificationID  uuid.UUID    `json:"verification_id"`
	FinalScore      float64      `json:"final_score"`
	Status          trust.Status `json:"status"`
	Flagged         bool         `json:"flagged"`
	FlagReasons     []string     `json:"flag_reasons,omitempty"`
	DocumentSource  string       `json:"document_source"`
	BiometricSource string       `json:"biometric_source"`
	LivenessSource  string       `json:"liveness_source"`
	DurationMs      int64        `json:"duration_ms"`
	CompletedAt     time.Time    `json:"completed_at"`
}

func newCompletedEvent(r *Result) CompletedEvent {
	return CompletedEvent{
		VerificationID:  r.VerificationID,
		FinalScore:      r.Trust.DisplayScore,
		Status:          r.Trust.Recommendation.Status,
		Flagged:         r.Flagged,
		FlagReasons:     r.FlagReasons,
		DocumentSource:  string(r.Document.Source),
		BiometricSource: string(r.Biometrics.Source),
		LivenessSource:  string(r.Liveness.Source),
		DurationMs:      r.DurationMs,
		CompletedAt:     r.CompletedAt,
	}
}
