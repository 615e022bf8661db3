package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ScoringPolicy holds the trust score weights and thresholds.
// The zero value is not usable; start from DefaultScoringPolicy.
type ScoringPolicy struct {
	Weights        FactorWeights        `yaml:"weights"`
	Defaults       FactorDefaults       `yaml:"defaults"`
	Impact         ImpactThresholds     `yaml:"impact"`
	Recommendation RecommendationLimits `yaml:"recommendation"`
}

// FactorWeights must sum to 1.0
type FactorWeights struct {
	Document   float64 `yaml:"document"`
	Biometric  float64 `yaml:"biometric"`
	Behavioral float64 `yaml:"behavioral"`
}

// FactorDefaults are used when a stage did not supply a score
type FactorDefaults struct {
	Document   float64 `yaml:"document"`
	Biometric  float64 `yaml:"biometric"`
	Behavioral float64 `yaml:"behavioral"`
}

// ImpactThresholds map a factor score onto its qualitative label
type ImpactThresholds struct {
	High            float64 `yaml:"high"`
	Medium          float64 `yaml:"medium"`
	BiometricMedium float64 `yaml:"biometric_medium"`
}

// RecommendationLimits are the inclusive lower bounds of each recommendation
type RecommendationLimits struct {
	Approved   float64 `yaml:"approved"`
	Monitoring float64 `yaml:"monitoring"`
}

// DefaultScoringPolicy returns the 40/35/25 policy
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		Weights:        FactorWeights{Document: 0.40, Biometric: 0.35, Behavioral: 0.25},
		Defaults:       FactorDefaults{Document: 85, Biometric: 80, Behavioral: 75},
		Impact:         ImpactThresholds{High: 90, Medium: 75, BiometricMedium: 85},
		Recommendation: RecommendationLimits{Approved: 90, Monitoring: 75},
	}
}

// LoadPolicy reads a YAML policy file on top of the defaults.
// An empty path returns the defaults.
func LoadPolicy(path string) (ScoringPolicy, error) {
	policy := DefaultScoringPolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return policy, fmt.Errorf("failed to read scoring policy: %w", err)
	}

	if err := yaml.Unmarshal(data, &policy); err != nil {
		return policy, fmt.Errorf("failed to parse scoring policy: %w", err)
	}

	if err := policy.Validate(); err != nil {
		return policy, err
	}

	return policy, nil
}

// Validate checks weight and threshold consistency
func (p ScoringPolicy) Validate() error {
	w := p.Weights
	if w.Document < 0 || w.Biometric < 0 || w.Behavioral < 0 {
		return fmt.Errorf("scoring policy: weights must not be negative")
	}
	if sum := w.Document + w.Biometric + w.Behavioral; math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("scoring policy: weights must total 1.0, got %.4f", sum)
	}
	if p.Recommendation.Monitoring > p.Recommendation.Approved {
		return fmt.Errorf("scoring policy: monitoring limit %.1f is above approved limit %.1f",
			p.Recommendation.Monitoring, p.Recommendation.Approved)
	}
	for name, v := range map[string]float64{
		"defaults.document":   p.Defaults.Document,
		"defaults.biometric":  p.Defaults.Biometric,
		"defaults.behavioral": p.Defaults.Behavioral,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("scoring policy: %s must be within [0,100], got %.1f", name, v)
		}
	}
	return nil
}
