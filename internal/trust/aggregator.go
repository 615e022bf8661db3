package trust

import (
	"fmt"
	"time"

	"github.com/richxcame/kyc-nova/internal/scoring"
	"github.com/richxcame/kyc-nova/pkg/config"
)

// Behavior scoring
const (
	behaviorBase      = 75
	behaviorMin       = 30
	behaviorMax       = 100
	naturalMouseBonus = 10
	robotMousePenalty = 5
	typingAdjustment  = 8
	sessionBonus      = 5
	rushedPenalty     = 15
	minNormalSession  = 30
	maxNormalSession  = 600
	rushedSession     = 10
)

// Risk indicator scoring
const (
	riskBase           = 90
	riskFloor          = 50
	missingNamePenalty = 10
	noMatchPenalty     = 20
)

var recommendations = map[Status]Recommendation{
	StatusApproved: {
		Status:     StatusApproved,
		Confidence: "High",
		Message:    "All verification criteria exceeded. Recommended for immediate approval.",
	},
	StatusMonitoring: {
		Status:     StatusMonitoring,
		Confidence: "Medium",
		Message:    "Good verification results. Approved with standard monitoring.",
	},
	StatusReviewRequired: {
		Status:     StatusReviewRequired,
		Confidence: "Low",
		Message:    "Additional review recommended before final approval.",
	},
}

// Aggregator combines stage scores into a trust score under a scoring policy
type Aggregator struct {
	policy config.ScoringPolicy
	now    func() time.Time
}

// NewAggregator creates an aggregator. The policy is assumed valid.
func NewAggregator(policy config.ScoringPolicy) *Aggregator {
	return &Aggregator{policy: policy, now: time.Now}
}

// Policy returns the policy in use
func (a *Aggregator) Policy() config.ScoringPolicy {
	return a.policy
}

// Aggregate computes the weighted trust score. Every input is clamped to [0,100] first.
func (a *Aggregator) Aggregate(in Input) *Result {
	p := a.policy

	doc := scoring.ClampPercent(valueOr(in.DocumentScore, p.Defaults.Document))
	bio := scoring.ClampPercent(valueOr(in.BiometricScore, p.Defaults.Biometric))

	behavior := p.Defaults.Behavioral
	switch {
	case in.BehaviorScore != nil:
		behavior = *in.BehaviorScore
	case in.Behavior != nil:
		behavior = AnalyzeBehavior(*in.Behavior)
	}
	behavior = scoring.ClampPercent(behavior)

	risk := RiskIndicators(in.Consistency)

	final := doc*p.Weights.Document + bio*p.Weights.Biometric + behavior*p.Weights.Behavioral
	final = scoring.ClampPercent(final)

	factors := []Factor{
		{
			Category: CategoryDocument,
			Score:    doc,
			Weight:   p.Weights.Document,
			Impact:   a.impact(doc, p.Impact.Medium),
			Details:  fmt.Sprintf("Document confidence: %.1f%%", doc),
		},
		{
			Category: CategoryBiometric,
			Score:    bio,
			Weight:   p.Weights.Biometric,
			Impact:   a.impact(bio, p.Impact.BiometricMedium),
			Details:  fmt.Sprintf("Face match confidence: %.1f%%", bio),
		},
		{
			Category: CategoryBehavioral,
			Score:    behavior,
			Weight:   p.Weights.Behavioral,
			Impact:   a.impact(behavior, p.Impact.Medium),
			Details:  "User interaction patterns analysis",
		},
		{
			Category: CategoryRisk,
			Score:    risk,
			Weight:   0,
			Impact:   a.impact(risk, p.Impact.Medium),
			Details:  "Fraud and compliance risk analysis",
		},
	}

	return &Result{
		FinalScore:     final,
		DisplayScore:   scoring.Round1(final),
		Factors:        factors,
		Recommendation: a.Recommend(final),
		Timestamp:      a.now().UTC(),
	}
}

// Recommend maps a final score onto the recommendation
func (a *Aggregator) Recommend(score float64) Recommendation {
	switch {
	case score >= a.policy.Recommendation.Approved:
		return recommendations[StatusApproved]
	case score >= a.policy.Recommendation.Monitoring:
		return recommendations[StatusMonitoring]
	default:
		return recommendations[StatusReviewRequired]
	}
}

func (a *Aggregator) impact(score, medium float64) Impact {
	switch {
	case score > a.policy.Impact.High:
		return ImpactHigh
	case score > medium:
		return ImpactMedium
	default:
		return ImpactLow
	}
}

// AnalyzeBehavior scores interaction signals in [30,100] starting from 75
func AnalyzeBehavior(s BehaviorSignals) float64 {
	score := float64(behaviorBase)

	if m := s.MouseMovements; m != nil {
		if m.Natural {
			score += naturalMouseBonus
		} else {
			score -= robotMousePenalty
		}
	}

	if t := s.TypingCadence; t != nil {
		if t.Human {
			score += typingAdjustment
		} else {
			score -= typingAdjustment
		}
	}

	if secs := s.SessionSeconds; secs > 0 {
		if secs > minNormalSession && secs < maxNormalSession {
			score += sessionBonus
		}
		if secs < rushedSession {
			score -= rushedPenalty
		}
	}

	return scoring.Clamp(score, behaviorMin, behaviorMax)
}

// RiskIndicators scores cross-stage consistency in [50,90].
// Without consistency data the score stays at 90.
func RiskIndicators(c *Consistency) float64 {
	score := float64(riskBase)
	if c != nil {
		if !c.NameExtracted {
			score -= missingNamePenalty
		}
		if !c.FaceMatched {
			score -= noMatchPenalty
		}
	}
	if score < riskFloor {
		return riskFloor
	}
	return score
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
