package liveness

import (
	"context"
	"time"

	"github.com/richxcame/kyc-nova/internal/rekognition"
	"github.com/richxcame/kyc-nova/internal/scoring"
	"github.com/richxcame/kyc-nova/pkg/logger"
	"github.com/richxcame/kyc-nova/pkg/resilience"
	"go.uber.org/zap"
)

// DefaultSessionThreshold is the Face Liveness confidence a session must reach to pass
const DefaultSessionThreshold = 80

// simulatedRange is the demo analysis delay in milliseconds
var simulatedRange = scoring.Range{Min: 800, Max: 1500}

// SessionProvider runs Rekognition Face Liveness sessions
type SessionProvider interface {
	IsConfigured() bool
	StartLiveness(ctx context.Context) (*rekognition.LivenessSession, error)
	LivenessResults(ctx context.Context, sessionID string) (*rekognition.LivenessSessionResult, error)
}

var (
	_ SessionProvider = (*rekognition.Service)(nil)
	_ FaceDetector    = (*rekognition.Service)(nil)
)

// Service runs liveness checks, preferring Rekognition and falling back to synthetic results
type Service struct {
	analyzer *Analyzer
	fallback *Analyzer
	enhanced *EnhancedAnalyzer
	sessions SessionProvider
	breaker  *resilience.CircuitBreaker
	scorer   scoring.Scorer
	config   ServiceConfig
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	HasExternalLivenessService bool
	CallTimeout                time.Duration
	SimulatedLatency           bool
	SessionThreshold           float64
}

// NewService creates a liveness service. A nil detector disables the DetectFaces path,
// a nil sessions provider disables Face Liveness sessions.
func NewService(detector FaceDetector, sessions SessionProvider, scorer scoring.Scorer, breaker *resilience.CircuitBreaker, config ServiceConfig) *Service {
	if config.CallTimeout <= 0 {
		config.CallTimeout = 10 * time.Second
	}
	if config.SessionThreshold <= 0 {
		config.SessionThreshold = DefaultSessionThreshold
	}
	if breaker == nil {
		breaker = resilience.NewCircuitBreaker(resilience.Settings{Name: "liveness"}, resilience.DegradeToFallback("liveness"))
	}

	s := &Service{
		analyzer: NewAnalyzer(scorer, config.HasExternalLivenessService),
		fallback: NewAnalyzer(scorer, false),
		sessions: sessions,
		breaker:  breaker,
		scorer:   scorer,
		config:   config,
	}
	if detector != nil {
		s.enhanced = NewEnhancedAnalyzer(detector, scorer)
	}
	return s
}

// Mode returns the source Detect will try first
func (s *Service) Mode() Source {
	if s.enhanced != nil {
		return SourceEnhanced
	}
	return SourceFallback
}

// HasExternalLivenessService reports whether frame classification runs the scenario heuristics
func (s *Service) HasExternalLivenessService() bool {
	return s.analyzer.HasExternalLivenessService
}

// Analyze classifies client-captured frames into a verdict
func (s *Service) Analyze(frames []Frame) *Result {
	return s.analyzer.Analyze(frames)
}

// Detect checks liveness on the frames through Rekognition DetectFaces.
// Errors and timeouts produce a fallback result instead of an error.
func (s *Service) Detect(ctx context.Context, frames []Frame) (*Result, error) {
	if len(frames) == 0 {
		return s.analyzer.Analyze(nil), nil
	}

	var reason string
	if s.enhanced != nil {
		result, err := resilience.Call(ctx, s.breaker, s.config.CallTimeout, "liveness.detect_faces",
			func(ctx context.Context) (*Result, error) {
				return s.enhanced.Analyze(ctx, frames)
			})
		if err == nil {
			return result, nil
		}

		reason = "AWS Rekognition liveness unavailable: " + err.Error()
		logger.WithContext(ctx).Warn("liveness falling back to synthetic result",
			zap.String("stage", "liveness"),
			zap.Error(err),
			zap.String("source", string(SourceFallback)),
		)
	}

	if s.config.SimulatedLatency {
		_ = scoring.Wait(ctx, scoring.Latency(s.scorer, simulatedRange))
	}

	result := s.fallback.Fallback(len(frames))
	result.FallbackReason = reason
	return result, nil
}

// StartSession opens a Rekognition Face Liveness session
func (s *Service) StartSession(ctx context.Context) (*rekognition.LivenessSession, error) {
	if s.sessions == nil || !s.sessions.IsConfigured() {
		return nil, rekognition.ErrNotConfigured
	}
	return s.sessions.StartLiveness(ctx)
}

// SessionResults converts a finished Face Liveness session into a verdict
func (s *Service) SessionResults(ctx context.Context, sessionID string) (*Result, error) {
	if s.sessions == nil || !s.sessions.IsConfigured() {
		return nil, rekognition.ErrNotConfigured
	}

	session, err := s.sessions.LivenessResults(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.fromSession(session), nil
}

func (s *Service) fromSession(session *rekognition.LivenessSessionResult) *Result {
	success := session.Succeeded() && session.Confidence >= s.config.SessionThreshold
	frames := len(session.AuditImages)

	var dist Distribution
	if success {
		dist.Normal = frames
	} else {
		dist.Photo = frames
	}

	result := &Result{
		Success:        success,
		Confidence:     scoring.Round1(scoring.ClampPercent(session.Confidence)),
		Source:         SourceFaceLiveness,
		Distribution:   dist,
		Signals:        scenarioSignals(success, frames),
		CapturedFrames: frames,
		ProcessedAt:    s.analyzer.now(),
		Session: &SessionDetails{
			SessionID:   session.SessionID,
			Status:      session.Status,
			AuditImages: session.AuditImages,
		},
	}
	if dominant, ok := dist.Dominant(); ok {
		result.Scenario = dominant
	}

	switch {
	case success:
		result.Reason = "Live person verified using AWS Rekognition Face Liveness"
		result.Recommendation = RecommendApproved
		result.Risk = RiskAssessment{SpoofingRisk: scoring.Round1(100 - result.Confidence), OverallRisk: RiskLow}
	case !session.Succeeded():
		result.Reason = "Face Liveness session did not complete: " + session.Status
		result.Recommendation = RecommendRejected
		result.Risk = RiskAssessment{OverallRisk: RiskHigh}
	default:
		result.Reason = "Face Liveness confidence below threshold"
		result.Recommendation = RecommendRejected
		result.Risk = RiskAssessment{SpoofingRisk: scoring.Round1(100 - result.Confidence), OverallRisk: RiskHigh}
	}
	return result
}
