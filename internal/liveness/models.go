package liveness

import (
	"time"

	"github.com/richxcame/kyc-nova/internal/rekognition"
)

// Scenario is the label assigned to a captured frame
type Scenario string

const (
	ScenarioNormal  Scenario = "normal"
	ScenarioPhoto   Scenario = "photo"
	ScenarioBlocked Scenario = "blocked"
)

// Valid reports whether s is one of the three known labels
func (s Scenario) Valid() bool {
	switch s {
	case ScenarioNormal, ScenarioPhoto, ScenarioBlocked:
		return true
	}
	return false
}

// Source tags which path produced a Result
type Source string

const (
	SourceScenarioAnalysis Source = "scenario_analysis"
	SourceFallback         Source = "fallback_analysis"
	SourceEnhanced         Source = "aws_rekognition_enhanced"
	SourceFaceLiveness     Source = "aws_face_liveness"
)

// RiskLevel is the overall liveness risk
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Recommendation is the liveness verdict handed to the reviewer
type Recommendation string

const (
	RecommendApproved Recommendation = "APPROVED"
	RecommendRejected Recommendation = "REJECTED"
)

// Frame is one captured image sample. A client-supplied Scenario is only a hint;
// the analyzer always relabels frames from Data.
type Frame struct {
	Data       string    `json:"data"`
	Scenario   Scenario  `json:"scenario,omitempty" validate:"omitempty,scenario"`
	CapturedAt time.Time `json:"capturedAt,omitempty"`
}

// Length returns the encoded size of the frame
func (f Frame) Length() int {
	return len(f.Data)
}

// Distribution counts frames per scenario
type Distribution struct {
	Normal  int `json:"normal"`
	Photo   int `json:"photo"`
	Blocked int `json:"blocked"`
}

// Total returns the number of frames counted
func (d Distribution) Total() int {
	return d.Normal + d.Photo + d.Blocked
}

// Add counts one frame
func (d *Distribution) Add(s Scenario) {
	switch s {
	case ScenarioNormal:
		d.Normal++
	case ScenarioPhoto:
		d.Photo++
	case ScenarioBlocked:
		d.Blocked++
	}
}

// Dominant returns the scenario with the highest count.
// Counts are walked in the order normal, blocked, photo and the last tied label wins,
// so a tie never resolves to normal.
// ok is false for an empty distribution.
func (d Distribution) Dominant() (s Scenario, ok bool) {
	if d.Total() == 0 {
		return "", false
	}

	order := []struct {
		scenario Scenario
		count    int
	}{
		{ScenarioNormal, d.Normal},
		{ScenarioBlocked, d.Blocked},
		{ScenarioPhoto, d.Photo},
	}

	best := order[0]
	for _, c := range order[1:] {
		if c.count >= best.count {
			best = c
		}
	}
	return best.scenario, true
}

// Tally counts the scenario of every frame
func Tally(frames []Frame) Distribution {
	var d Distribution
	for _, f := range frames {
		d.Add(f.Scenario)
	}
	return d
}

// RiskAssessment breaks down the liveness risk
type RiskAssessment struct {
	SpoofingRisk    float64   `json:"spoofingRisk"`
	ObstructionRisk float64   `json:"obstructionRisk"`
	DeepfakeRisk    float64   `json:"deepfakeRisk"`
	OverallRisk     RiskLevel `json:"overallRisk"`
}

// Signals lists the liveness checks that passed
type Signals struct {
	BlinkDetection   bool `json:"blinkDetection"`
	HeadMovement     bool `json:"headMovement"`
	DepthAnalysis    bool `json:"depthAnalysis"`
	TextureAnalysis  bool `json:"textureAnalysis"`
	MultipleAngles   bool `json:"multipleAngles"`
	RealTimeAnalysis bool `json:"realTimeAnalysis"`
}

// BiometricAnalysis describes the captured face
type BiometricAnalysis struct {
	FaceQuality    float64 `json:"faceQuality"`
	EyesVisible    bool    `json:"eyesVisible"`
	MouthVisible   bool    `json:"mouthVisible"`
	NoObstructions bool    `json:"noObstructions"`
	LightingGood   bool    `json:"lightingGood"`
}

// EnhancedDetails carries the face attribute aggregates of a DetectFaces run
type EnhancedDetails struct {
	TotalFrames       int                  `json:"totalFrames"`
	FacesDetected     int                  `json:"facesDetected"`
	AvgFaceConfidence float64              `json:"avgFaceConfidence"`
	AvgLivenessScore  float64              `json:"avgLivenessScore"`
	FaceQuality       *rekognition.Quality `json:"faceQuality,omitempty"`
	EyesOpenDetected  int                  `json:"eyesOpenDetected"`
	MouthMovement     int                  `json:"mouthMovement"`
	EmotionVariation  int                  `json:"emotionVariation"`
}

// SessionDetails carries the Face Liveness session a result came from
type SessionDetails struct {
	SessionID   string                   `json:"sessionId"`
	Status      string                   `json:"status"`
	AuditImages []rekognition.AuditImage `json:"auditImages,omitempty"`
}

// Result is the liveness verdict for one capture session
type Result struct {
	Success        bool              `json:"success"`
	Confidence     float64           `json:"confidence"`
	Scenario       Scenario          `json:"scenario,omitempty"`
	Reason         string            `json:"reason"`
	Source         Source            `json:"source"`
	Distribution   Distribution      `json:"scenarioDistribution"`
	Risk           RiskAssessment    `json:"riskAssessment"`
	Signals        Signals           `json:"signals"`
	Biometrics     BiometricAnalysis `json:"biometricAnalysis"`
	Recommendation Recommendation    `json:"recommendation"`
	CapturedFrames int               `json:"capturedImages"`
	Enhanced       *EnhancedDetails  `json:"enhanced,omitempty"`
	Session        *SessionDetails   `json:"session,omitempty"`
	ProcessedAt    time.Time         `json:"processedAt"`
	FallbackReason string            `json:"fallbackReason,omitempty"`
}

// IsFallback reports whether the result was synthesized
func (r *Result) IsFallback() bool {
	return r.Source == SourceFallback
}

// ========================================
// REQUESTS
// ========================================

// AnalyzeRequest carries the frames of one capture session
type AnalyzeRequest struct {
	Frames []Frame `json:"frames" binding:"required" validate:"max=64,dive"`
}
