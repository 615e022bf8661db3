package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/richxcame/kyc-nova/pkg/config"
	"github.com/richxcame/kyc-nova/pkg/logger"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrCircuitOpen is returned when the breaker rejects a call
var ErrCircuitOpen = errors.New("circuit breaker is open")

const defaultServiceName = "external"

// Settings configures a CircuitBreaker
type Settings struct {
	Name             string
	Interval         time.Duration // window after which closed-state counts reset
	Timeout          time.Duration // how long the breaker stays open
	FailureThreshold uint32        // consecutive failures that trip the breaker
	SuccessThreshold uint32        // requests allowed through while half-open
}

func (s Settings) withDefaults() Settings {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Timeout <= 0 {
		s.Timeout = 30 * time.Second
	}
	if s.FailureThreshold == 0 {
		s.FailureThreshold = 5
	}
	if s.SuccessThreshold == 0 {
		s.SuccessThreshold = 1
	}
	return s
}

// ExternalCallSettings returns the settings shared by the external KYC
// services. An open breaker waits three call timeouts before probing again.
func ExternalCallSettings(name string, cfg config.ScoringConfig) Settings {
	return Settings{
		Name:             name,
		Interval:         time.Minute,
		Timeout:          3 * cfg.CallTimeout(),
		FailureThreshold: 3,
		SuccessThreshold: 1,
	}
}

// FallbackFunc decides the result of a call the breaker rejected
type FallbackFunc func(ctx context.Context, err error) (interface{}, error)

// DegradeToFallback logs the rejection and returns ErrCircuitOpen, on which
// the calling service substitutes its synthetic result.
func DegradeToFallback(service string) FallbackFunc {
	return func(ctx context.Context, err error) (interface{}, error) {
		logger.WithContext(ctx).Warn("External service unavailable, using fallback",
			zap.String("service", service),
			zap.Error(err),
		)
		return nil, ErrCircuitOpen
	}
}

// CircuitBreaker guards one external service
type CircuitBreaker struct {
	name     string
	cb       *gobreaker.CircuitBreaker
	fallback FallbackFunc
}

// NewCircuitBreaker creates a breaker. With a nil fallback rejected calls return ErrCircuitOpen.
func NewCircuitBreaker(settings Settings, fallback FallbackFunc) *CircuitBreaker {
	s := settings.withDefaults()

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.SuccessThreshold,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Breaker state changed",
				zap.String("service", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
			observeTransition(name, to)
		},
	})
	observeState(s.Name, gobreaker.StateClosed)

	return &CircuitBreaker{name: s.Name, cb: cb, fallback: fallback}
}

// Name returns the guarded service name
func (b *CircuitBreaker) Name() string {
	return b.name
}

// State returns the current breaker state as a string
func (b *CircuitBreaker) State() string {
	return b.cb.State().String()
}

// Execute runs op through the breaker. A context that is already done counts
// as a failure without calling op.
func (b *CircuitBreaker) Execute(ctx context.Context, op func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return op(ctx)
	})

	switch {
	case err == nil:
		observeCall(b.name, outcomeSuccess)
		return result, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		observeCall(b.name, outcomeRejected)
		if b.fallback == nil {
			return nil, ErrCircuitOpen
		}
		return b.fallback(ctx, err)
	default:
		observeCall(b.name, outcomeFailure)
		return nil, err
	}
}
