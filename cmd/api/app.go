package main

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/richxcame/kyc-nova/internal/aadhaar"
	"github.com/richxcame/kyc-nova/internal/analytics"
	"github.com/richxcame/kyc-nova/internal/authenticity"
	"github.com/richxcame/kyc-nova/internal/biometrics"
	"github.com/richxcame/kyc-nova/internal/chat"
	"github.com/richxcame/kyc-nova/internal/documents"
	"github.com/richxcame/kyc-nova/internal/kyc"
	"github.com/richxcame/kyc-nova/internal/liveness"
	"github.com/richxcame/kyc-nova/internal/rekognition"
	"github.com/richxcame/kyc-nova/internal/scoring"
	"github.com/richxcame/kyc-nova/internal/trust"
	"github.com/richxcame/kyc-nova/pkg/common"
	"github.com/richxcame/kyc-nova/pkg/config"
	"github.com/richxcame/kyc-nova/pkg/events"
	"github.com/richxcame/kyc-nova/pkg/health"
	"github.com/richxcame/kyc-nova/pkg/logger"
	"github.com/richxcame/kyc-nova/pkg/middleware"
	"github.com/richxcame/kyc-nova/pkg/resilience"
	"github.com/richxcame/kyc-nova/pkg/secrets"
	"github.com/richxcame/kyc-nova/pkg/storage"
	"go.uber.org/zap"
)

const (
	serviceVersion     = "1.0.0"
	credentialCheckTTL = 5 * time.Minute
)

// infra holds the optional connections made in main. Zero values select the in-process fallbacks.
type infra struct {
	proxyAWS  *aws.Config // backend proxy credential set
	directAWS *aws.Config // face match and liveness credential set
	redis     goredis.Cmdable
	publisher events.Publisher
	secrets   secrets.Manager
	limiter   middleware.RateLimiter
	checks    map[string]func() error
}

// routes are the registered API handlers
type routes interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// app is the fully wired service graph
type app struct {
	cfg      *config.Config
	limiter  middleware.RateLimiter
	handlers []routes
}

func buildApp(ctx context.Context, cfg *config.Config, policy config.ScoringPolicy, in infra) *app {
	scorer := scoring.NewRandom(cfg.Scoring.Seed)
	timeout := cfg.Scoring.CallTimeout()
	breaker := func(name string) *resilience.CircuitBreaker {
		return resilience.NewCircuitBreaker(resilience.ExternalCallSettings(name, cfg.Scoring), resilience.DegradeToFallback(name))
	}
	maxUpload := cfg.Server.MaxUploadBytes()

	// Rekognition proxy, backed by the proxy credential set
	var proxyClient rekognition.API
	var auditStore storage.AuditImageStore
	if in.proxyAWS != nil {
		proxyClient = rekognition.NewClient(*in.proxyAWS)
		auditStore = storage.NewS3AuditStore(*in.proxyAWS, cfg.AWS.LivenessBucket)
	}
	proxy := rekognition.NewService(proxyClient, auditStore, breaker("rekognition"), rekognition.ServiceConfig{
		Region:         cfg.AWS.Region,
		LivenessBucket: cfg.AWS.LivenessBucket,
		CallTimeout:    timeout,
	})

	checks := make(map[string]func() error, len(in.checks)+1)
	for name, check := range in.checks {
		checks[name] = check
	}
	if proxy.IsConfigured() {
		checks["rekognition"] = health.NewCachedChecker(health.ContextChecker(func(ctx context.Context) error {
			if c := proxy.ValidateCredentials(ctx); !c.Valid {
				return errors.New(c.Message)
			}
			return nil
		}, timeout), credentialCheckTTL).Check
	}

	// Face match and frame liveness use the direct set when present, else the proxy set
	direct := proxy
	region := cfg.AWS.Region
	if in.directAWS != nil {
		direct = rekognition.NewService(rekognition.NewClient(*in.directAWS), nil, breaker("rekognition_direct"), rekognition.ServiceConfig{
			Region:      cfg.AWSDirect.Region,
			CallTimeout: timeout,
		})
		region = cfg.AWSDirect.Region
	}

	var comparer biometrics.FaceComparer
	var detector liveness.FaceDetector
	if direct.IsConfigured() {
		comparer = direct
		detector = direct
	}

	var analyzer authenticity.Analyzer
	if in.proxyAWS != nil {
		analyzer = authenticity.NewTextractAnalyzer(textract.NewFromConfig(*in.proxyAWS))
	}

	authSvc := authenticity.NewService(analyzer, scorer, breaker("textract"), authenticity.ServiceConfig{
		CallTimeout:      timeout,
		SimulatedLatency: cfg.Scoring.SimulatedLatency,
	})
	docSvc := documents.NewService(authSvc, scorer, documents.ServiceConfig{MaxFileSizeMB: cfg.Server.MaxUploadMB})
	faceSvc := biometrics.NewService(comparer, scorer, breaker("biometrics"), biometrics.ServiceConfig{
		CallTimeout:      timeout,
		SimulatedLatency: cfg.Scoring.SimulatedLatency,
	})
	livenessSvc := liveness.NewService(detector, proxy, scorer, breaker("liveness"), liveness.ServiceConfig{
		HasExternalLivenessService: detector != nil,
		CallTimeout:                timeout,
		SimulatedLatency:           cfg.Scoring.SimulatedLatency,
	})
	aadhaarSvc := aadhaar.NewService(newAadhaarExtractor(ctx, cfg, in.secrets), scorer, breaker("aadhaar"), aadhaar.ServiceConfig{
		CallTimeout: timeout,
	})

	var store analytics.Store = analytics.NewMemoryStore()
	if in.redis != nil {
		store = analytics.NewRedisStore(in.redis)
	}
	analyticsSvc := analytics.NewService(store, analytics.DefaultBaseline(), scorer)

	orchestrator := kyc.NewOrchestrator(docSvc, faceSvc, livenessSvc, trust.NewAggregator(policy), analyticsSvc, in.publisher)

	healthInfo := common.HealthInfo{
		Service:  cfg.Server.ServiceName,
		Version:  serviceVersion,
		Services: kyc.Services(),
		Modes: kyc.ComponentModes(kyc.Components{
			Aadhaar:         aadhaarSvc.Mode(),
			AadhaarEndpoint: cfg.Aadhaar.Endpoint,
			Rekognition:     faceSvc.Mode(),
			Region:          region,
			Documents:       authSvc.Mode(),
			Liveness:        livenessSvc.Mode(),
		}),
	}

	logger.Info("Services wired",
		zap.String("aadhaar", string(aadhaarSvc.Mode())),
		zap.String("biometrics", string(faceSvc.Mode())),
		zap.String("documents", string(authSvc.Mode())),
		zap.String("liveness", string(livenessSvc.Mode())),
		zap.Bool("redis_analytics", in.redis != nil),
	)

	return &app{
		cfg:     cfg,
		limiter: in.limiter,
		handlers: []routes{
			kyc.NewHandler(orchestrator, maxUpload, healthInfo, checks),
			documents.NewHandler(docSvc, analyticsSvc),
			biometrics.NewHandler(faceSvc, maxUpload),
			liveness.NewHandler(livenessSvc),
			aadhaar.NewHandler(aadhaarSvc, maxUpload),
			rekognition.NewHandler(proxy, maxUpload),
			chat.NewHandler(chat.NewService(scorer), analyticsSvc),
			analytics.NewHandler(analyticsSvc),
		},
	}
}

// newAadhaarExtractor returns nil, and with it fallback mode, unless both endpoint and key are set
func newAadhaarExtractor(ctx context.Context, cfg *config.Config, m secrets.Manager) aadhaar.Extractor {
	if !cfg.Aadhaar.IsConfigured() {
		return nil
	}

	key, err := aadhaar.ResolveAPIKey(ctx, m, cfg.Aadhaar.APIKey)
	if err != nil {
		logger.Warn("Failed to resolve Aadhaar API key, using fallback data", zap.Error(err))
		return nil
	}
	return aadhaar.NewAPIClient(cfg.Aadhaar.Endpoint, key, cfg.Scoring.CallTimeout())
}
