package biometrics

import "github.com/richxcame/kyc-nova/internal/scoring"

// Source identifies where a face verification result came from
type Source string

const (
	SourceRekognition Source = "aws_rekognition"
	SourceFallback    Source = "fallback_comparison"
)

// MatchThreshold is the similarity a comparison must exceed to count as a match
const MatchThreshold = 85.0

var (
	// FallbackSimilarityRange bounds the synthetic similarity
	FallbackSimilarityRange = scoring.Range{Min: 90, Max: 99}
	// LivenessRange bounds the synthetic liveness score attached to a verification
	LivenessRange = scoring.Range{Min: 85, Max: 95}
	// QualityRange bounds the synthetic face quality when no face detail is available
	QualityRange = scoring.Range{Min: 85, Max: 95}
)

// LivenessSignals are the passive liveness checks reported with a verification
type LivenessSignals struct {
	BlinkDetection  bool `json:"blinkDetection"`
	HeadMovement    bool `json:"headMovement"`
	DepthAnalysis   bool `json:"depthAnalysis"`
	TextureAnalysis bool `json:"textureAnalysis"`
}

// LivenessCheck is the liveness block of a verification
type LivenessCheck struct {
	Score   float64         `json:"score"`
	Passed  bool            `json:"passed"`
	Signals LivenessSignals `json:"signals"`
}

// Result is the outcome of comparing a live photo against a document photo
type Result struct {
	Success          bool          `json:"success"`
	Similarity       float64       `json:"similarity"`
	Confidence       float64       `json:"confidence"`
	Match            bool          `json:"match"`
	Liveness         LivenessCheck `json:"liveness"`
	FaceQuality      float64       `json:"faceQuality"`
	Source           Source        `json:"source"`
	ProcessingTimeMs int64         `json:"processingTime"`
	FallbackReason   string        `json:"fallbackReason,omitempty"`
}

// IsFallback reports whether the similarity was synthesized
func (r *Result) IsFallback() bool {
	return r.Source == SourceFallback
}

// confidenceFor maps similarity onto the reported confidence tier
func confidenceFor(similarity float64) float64 {
	switch {
	case similarity > 90:
		return 96.8
	case similarity > 80:
		return 88.5
	default:
		return 72.3
	}
}
