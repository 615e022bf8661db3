package resilience

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

// Call outcomes recorded per external service
const (
	outcomeSuccess  = "success"
	outcomeFailure  = "failure"
	outcomeRejected = "rejected"
)

var (
	externalCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kyc_external_calls_total",
		Help: "Calls to external KYC services by outcome (success, failure, rejected by an open breaker)",
	}, []string{"service", "outcome"})

	breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "kyc_external_breaker_state",
		Help: "Breaker state per external service (0=closed, 1=half-open, 2=open)",
	}, []string{"service"})

	breakerTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kyc_external_breaker_transitions_total",
		Help: "Breaker state transitions per external service",
	}, []string{"service", "to"})
)

func observeState(service string, state gobreaker.State) {
	// gobreaker orders its states closed, half-open, open
	breakerState.WithLabelValues(service).Set(float64(state))
}

func observeTransition(service string, to gobreaker.State) {
	breakerTransitionsTotal.WithLabelValues(service, to.String()).Inc()
	observeState(service, to)
}

func observeCall(service, outcome string) {
	externalCallsTotal.WithLabelValues(service, outcome).Inc()
}
