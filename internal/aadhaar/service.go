package aadhaar

import (
	"context"
	"time"

	"github.com/richxcame/kyc-nova/internal/scoring"
	"github.com/richxcame/kyc-nova/pkg/common"
	"github.com/richxcame/kyc-nova/pkg/logger"
	"github.com/richxcame/kyc-nova/pkg/resilience"
	"go.uber.org/zap"
)

// Fallback metadata draws. Upper bounds are exclusive.
var (
	fallbackConfidence = scoring.Range{Min: 92, Max: 101}
	fallbackProcessing = scoring.Range{Min: 200, Max: 1000}
)

// Service extracts Aadhaar card data, falling back to the demo data set
type Service struct {
	extractor Extractor
	breaker   *resilience.CircuitBreaker
	scorer    scoring.Scorer
	config    ServiceConfig
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	CallTimeout time.Duration
}

// NewService creates an Aadhaar service. A nil extractor means fallback mode.
func NewService(extractor Extractor, scorer scoring.Scorer, breaker *resilience.CircuitBreaker, config ServiceConfig) *Service {
	if config.CallTimeout <= 0 {
		config.CallTimeout = 10 * time.Second
	}
	if breaker == nil {
		breaker = resilience.NewCircuitBreaker(resilience.Settings{Name: "aadhaar"}, resilience.DegradeToFallback("aadhaar"))
	}

	return &Service{
		extractor: extractor,
		breaker:   breaker,
		scorer:    scorer,
		config:    config,
	}
}

// Mode returns the source the service will try first
func (s *Service) Mode() Source {
	if s.extractor != nil {
		return SourceRealAPI
	}
	return SourceFallback
}

// Extract reads the card. API failures are logged and replaced by the demo data set.
func (s *Service) Extract(ctx context.Context, image []byte) (*Result, error) {
	if len(image) == 0 {
		return nil, common.NewBadRequestError("aadhaar image is required", nil)
	}

	var reason string
	if s.extractor != nil {
		extraction, err := resilience.Call(ctx, s.breaker, s.config.CallTimeout, "aadhaar.extract",
			func(ctx context.Context) (*Extraction, error) {
				return s.extractor.Extract(ctx, image)
			})
		if err == nil && extraction != nil {
			return &Result{
				Success: true,
				Source:  SourceRealAPI,
				Data:    extraction.Data,
				Metadata: ScanMetadata{
					Confidence:       extraction.Confidence,
					ProcessingTimeMs: extraction.ProcessingTimeMs,
					APIVersion:       extraction.APIVersion,
				},
			}, nil
		}

		reason = "aadhaar API unavailable"
		logger.WithContext(ctx).Warn("aadhaar extraction falling back to demo data",
			zap.String("stage", "aadhaar"),
			zap.Error(err),
			zap.String("source", string(SourceFallback)),
		)
	}

	return s.fallback(reason), nil
}

func (s *Service) fallback(reason string) *Result {
	confidence := scoring.Clamp(float64(scoring.Int(s.scorer, fallbackConfidence)), 92, 100)
	processing := scoring.Clamp(float64(scoring.Int(s.scorer, fallbackProcessing)), 200, 999)

	return &Result{
		Success: true,
		Source:  SourceFallback,
		Data:    FallbackData(),
		Metadata: ScanMetadata{
			Confidence:       confidence,
			ProcessingTimeMs: int64(processing),
			APIVersion:       fallbackAPIVersion,
			ExtractionMethod: fallbackExtractionMethod,
		},
		FallbackReason: reason,
	}
}
