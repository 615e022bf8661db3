package kyc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	verificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kyc_verifications_total",
			Help: "Total number of finished verifications by recommendation",
		},
		[]string{"status", "flagged"},
	)

	verificationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kyc_verification_duration_seconds",
			Help:    "End-to-end verification duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2, 3, 5, 10, 30},
		},
	)

	trustScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kyc_trust_score",
			Help:    "Distribution of final trust scores",
			Buckets: prometheus.LinearBuckets(50, 5, 11), // 50 .. 100
		},
	)

	stageFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kyc_stage_fallbacks_total",
			Help: "Verification stages answered from fallback data",
		},
		[]string{"stage"},
	)
)
