package biometrics

import (
	"context"
	"time"

	"github.com/richxcame/kyc-nova/internal/rekognition"
	"github.com/richxcame/kyc-nova/internal/scoring"
	"github.com/richxcame/kyc-nova/pkg/common"
	"github.com/richxcame/kyc-nova/pkg/logger"
	"github.com/richxcame/kyc-nova/pkg/resilience"
	"go.uber.org/zap"
)

var simulatedRange = scoring.Range{Min: 1500, Max: 2000}

// Service verifies that a live photo matches the portrait on a document
type Service struct {
	comparer FaceComparer
	breaker  *resilience.CircuitBreaker
	scorer   scoring.Scorer
	config   ServiceConfig
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	CallTimeout      time.Duration
	SimulatedLatency bool
}

// NewService creates a biometrics service. A nil comparer means fallback mode.
func NewService(comparer FaceComparer, scorer scoring.Scorer, breaker *resilience.CircuitBreaker, config ServiceConfig) *Service {
	if config.CallTimeout <= 0 {
		config.CallTimeout = 10 * time.Second
	}
	if breaker == nil {
		breaker = resilience.NewCircuitBreaker(resilience.Settings{Name: "biometrics"}, resilience.DegradeToFallback("biometrics"))
	}

	return &Service{
		comparer: comparer,
		breaker:  breaker,
		scorer:   scorer,
		config:   config,
	}
}

// Mode returns the source the service will try first
func (s *Service) Mode() Source {
	if s.comparer != nil {
		return SourceRekognition
	}
	return SourceFallback
}

// Verify compares live against document. Comparison failures fall back to a synthetic similarity.
func (s *Service) Verify(ctx context.Context, live, document []byte) (*Result, error) {
	if len(live) == 0 || len(document) == 0 {
		return nil, common.NewBadRequestError("Both live photo and document photo required", nil)
	}

	start := time.Now()
	var reason string

	if s.comparer != nil {
		compared, err := resilience.Call(ctx, s.breaker, s.config.CallTimeout, "biometrics.compare_faces",
			func(ctx context.Context) (*rekognition.CompareResult, error) {
				return s.comparer.CompareFaces(ctx, live, document, MatchThreshold)
			})
		if err == nil && compared != nil {
			result := s.fromComparison(compared)
			result.ProcessingTimeMs = time.Since(start).Milliseconds()
			return result, nil
		}

		reason = "face comparison service unavailable"
		logger.WithContext(ctx).Warn("face verification falling back to synthetic result",
			zap.String("stage", "biometrics"),
			zap.Error(err),
			zap.String("source", string(SourceFallback)),
		)
	}

	if s.config.SimulatedLatency {
		_ = scoring.Wait(ctx, scoring.Latency(s.scorer, simulatedRange))
	}

	similarity := scoring.Round1(s.scorer.Score(FallbackSimilarityRange))
	result := &Result{
		Success:        true,
		Similarity:     similarity,
		Confidence:     confidenceFor(similarity),
		Match:          similarity > MatchThreshold,
		Liveness:       s.liveness(),
		FaceQuality:    scoring.Round1(s.scorer.Score(QualityRange)),
		Source:         SourceFallback,
		FallbackReason: reason,
	}
	result.ProcessingTimeMs = time.Since(start).Milliseconds()
	return result, nil
}

func (s *Service) fromComparison(c *rekognition.CompareResult) *Result {
	similarity := scoring.Round1(c.Confidence)
	quality := scoring.Round1(s.scorer.Score(QualityRange))
	if c.Face != nil && c.Face.Quality != nil {
		quality = scoring.Round1(scoring.ClampPercent(c.Face.Quality.Sharpness))
	}

	return &Result{
		Success:     true,
		Similarity:  similarity,
		Confidence:  confidenceFor(similarity),
		Match:       c.FaceMatch && similarity > MatchThreshold,
		Liveness:    s.liveness(),
		FaceQuality: quality,
		Source:      SourceRekognition,
	}
}

func (s *Service) liveness() LivenessCheck {
	return LivenessCheck{
		Score:  scoring.Round1(s.scorer.Score(LivenessRange)),
		Passed: true,
		Signals: LivenessSignals{
			BlinkDetection:  true,
			HeadMovement:    true,
			DepthAnalysis:   true,
			TextureAnalysis: true,
		},
	}
}
