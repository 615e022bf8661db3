package trust

import "time"

// Category names a trust factor
type Category string

const (
	CategoryDocument   Category = "Document Authenticity"
	CategoryBiometric  Category = "Biometric Match"
	CategoryBehavioral Category = "Behavioral Analysis"
	CategoryRisk       Category = "Risk Assessment"
)

// Impact is the qualitative label of a factor score
type Impact string

const (
	ImpactHigh   Impact = "High Positive"
	ImpactMedium Impact = "Medium Positive"
	ImpactLow    Impact = "Low Positive"
)

// Status is the final recommendation
type Status string

const (
	StatusApproved       Status = "Approved"
	StatusMonitoring     Status = "Approved with Monitoring"
	StatusReviewRequired Status = "Review Required"
)

// Factor is one weighted contribution to the trust score.
// A zero Weight marks an informational factor.
type Factor struct {
	Category Category `json:"category"`
	Score    float64  `json:"score"`
	Weight   float64  `json:"weight"`
	Impact   Impact   `json:"impact"`
	Details  string   `json:"details"`
}

// Recommendation is the categorical verdict with its confidence level
type Recommendation struct {
	Status     Status `json:"status"`
	Confidence string `json:"confidence"`
	Message    string `json:"message"`
}

// Result is the aggregated trust score.
// FinalScore keeps full precision, DisplayScore is rounded to one decimal.
type Result struct {
	FinalScore     float64        `json:"finalScore"`
	DisplayScore   float64        `json:"displayScore"`
	Factors        []Factor       `json:"factors"`
	Recommendation Recommendation `json:"recommendation"`
	Timestamp      time.Time      `json:"timestamp"`
}

// Factor returns the factor of the given category
func (r *Result) Factor(c Category) (Factor, bool) {
	for _, f := range r.Factors {
		if f.Category == c {
			return f, true
		}
	}
	return Factor{}, false
}

// MouseSignal describes pointer movement during the session
type MouseSignal struct {
	Natural bool `json:"natural"`
}

// TypingSignal describes keystroke cadence during the session
type TypingSignal struct {
	Human bool `json:"human"`
}

// BehaviorSignals are the interaction patterns captured by the client
type BehaviorSignals struct {
	MouseMovements *MouseSignal  `json:"mouseMovements,omitempty"`
	TypingCadence  *TypingSignal `json:"typingCadence,omitempty"`
	SessionSeconds float64       `json:"sessionTime,omitempty"`
}

// Consistency holds the cross-stage checks behind the risk indicator
type Consistency struct {
	NameExtracted bool `json:"nameExtracted"`
	FaceMatched   bool `json:"faceMatched"`
}

// Input holds the stage scores. A nil score falls back to the policy default.
// Behavior is only analyzed when BehaviorScore is nil.
type Input struct {
	DocumentScore  *float64
	BiometricScore *float64
	BehaviorScore  *float64
	Behavior       *BehaviorSignals
	Consistency    *Consistency
}

// Score returns a pointer to v, for building an Input
func Score(v float64) *float64 {
	return &v
}
