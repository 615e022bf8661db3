package authenticity

import (
	"context"
	"time"

	"github.com/richxcame/kyc-nova/internal/scoring"
	"github.com/richxcame/kyc-nova/pkg/common"
	"github.com/richxcame/kyc-nova/pkg/logger"
	"github.com/richxcame/kyc-nova/pkg/resilience"
	"go.uber.org/zap"
)

// simulatedRange is the demo processing delay in milliseconds
var simulatedRange = scoring.Range{Min: 1500, Max: 1500}

// Service scores document authenticity, preferring the external analyzer
type Service struct {
	external Analyzer
	fallback Analyzer
	breaker  *resilience.CircuitBreaker
	scorer   scoring.Scorer
	config   ServiceConfig
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	CallTimeout      time.Duration
	SimulatedLatency bool
}

// NewService creates an authenticity service. A nil external analyzer means fallback mode.
func NewService(external Analyzer, scorer scoring.Scorer, breaker *resilience.CircuitBreaker, config ServiceConfig) *Service {
	if config.CallTimeout <= 0 {
		config.CallTimeout = 10 * time.Second
	}
	if breaker == nil {
		breaker = resilience.NewCircuitBreaker(resilience.Settings{Name: "textract"}, resilience.DegradeToFallback("textract"))
	}

	return &Service{
		external: external,
		fallback: NewFallbackAnalyzer(scorer),
		breaker:  breaker,
		scorer:   scorer,
		config:   config,
	}
}

// Mode returns the source the service will try first
func (s *Service) Mode() Source {
	if s.external != nil {
		return SourceTextract
	}
	return SourceFallback
}

// Score grades the document image. External failures never surface as errors.
func (s *Service) Score(ctx context.Context, image []byte) (*Result, error) {
	if len(image) == 0 {
		return nil, common.NewBadRequestError("document image is required", nil)
	}

	start := time.Now()
	var reason string

	if s.external != nil {
		result, err := resilience.Call(ctx, s.breaker, s.config.CallTimeout, "authenticity.textract",
			func(ctx context.Context) (*Result, error) {
				return s.external.Analyze(ctx, image)
			})
		if err == nil && result != nil {
			result.ProcessingTimeMs = time.Since(start).Milliseconds()
			return result, nil
		}

		reason = "external document verification unavailable"
		logger.WithContext(ctx).Warn("document authenticity falling back to synthetic result",
			zap.String("stage", "authenticity"),
			zap.Error(err),
			zap.String("source", string(SourceFallback)),
		)
	}

	if s.config.SimulatedLatency {
		_ = scoring.Wait(ctx, scoring.Latency(s.scorer, simulatedRange))
	}

	result, _ := s.fallback.Analyze(ctx, image)
	result.FallbackReason = reason
	result.ProcessingTimeMs = time.Since(start).Milliseconds()
	return result, nil
}
