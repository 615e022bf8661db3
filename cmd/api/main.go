package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/richxcame/kyc-nova/internal/rekognition"
	"github.com/richxcame/kyc-nova/pkg/config"
	"github.com/richxcame/kyc-nova/pkg/events"
	"github.com/richxcame/kyc-nova/pkg/health"
	"github.com/richxcame/kyc-nova/pkg/logger"
	"github.com/richxcame/kyc-nova/pkg/ratelimit"
	"github.com/richxcame/kyc-nova/pkg/redis"
	"github.com/richxcame/kyc-nova/pkg/secrets"
	"github.com/richxcame/kyc-nova/pkg/tracing"
	"go.uber.org/zap"
)

const serviceName = "kyc-api"

func main() {
	// Load configuration
	cfg, err := config.Load(serviceName)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	policy, err := config.LoadPolicy(cfg.Scoring.PolicyFile)
	if err != nil {
		logger.Fatal("Invalid scoring policy", zap.String("file", cfg.Scoring.PolicyFile), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Sentry is optional
	var extra []gin.HandlerFunc
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Server.Environment,
			Release:          serviceName + "@" + serviceVersion,
			EnableTracing:    cfg.Sentry.TracesSampleRate > 0,
			TracesSampleRate: cfg.Sentry.TracesSampleRate,
		}); err != nil {
			logger.Warn("Failed to initialize Sentry", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
			extra = append(extra, sentrygin.New(sentrygin.Options{Repanic: true}))
			logger.Info("Sentry enabled")
		}
	}

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, serviceName, cfg.Server.Environment)
	if err != nil {
		logger.Warn("Failed to initialize tracing", zap.Error(err))
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracing(shutdownCtx); err != nil {
				logger.Warn("Failed to flush traces", zap.Error(err))
			}
		}()
	}

	in := infra{checks: make(map[string]func() error)}

	// AWS credential sets; without credentials every AWS backed component runs on fallback data
	in.proxyAWS = loadAWS(ctx, "proxy", cfg.AWS)
	in.directAWS = loadAWS(ctx, "direct", cfg.AWSDirect)

	// Secret references such as aws://kyc/aadhaar#api_key
	if secrets.IsReference(cfg.Aadhaar.APIKey) {
		m, err := secrets.NewManager(ctx, secrets.Config{
			Provider: secrets.ProviderFor(cfg.Aadhaar.APIKey),
			CacheTTL: cfg.Secrets.CacheTTL(),
			File:     secrets.FileConfig{BaseDir: cfg.Secrets.Dir},
			AWS: secrets.AWSConfig{
				Region:          cfg.AWS.Region,
				AccessKeyID:     cfg.AWS.AccessKeyID,
				SecretAccessKey: cfg.AWS.SecretAccessKey,
			},
		})
		if err != nil {
			logger.Warn("Secrets manager unavailable, Aadhaar API stays in fallback mode", zap.Error(err))
		} else {
			defer m.Close()
			in.secrets = m
		}
	}

	// Redis backs the analytics counters when enabled
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, analytics counters kept in memory", zap.Error(err))
		} else {
			defer redisClient.Close()
			in.redis = redisClient
			in.checks["redis"] = health.AsyncChecker(health.RedisChecker(redisClient.Client), 2*time.Second)
			logger.Info("Connected to Redis", zap.String("addr", cfg.Redis.RedisAddr()))

			if cfg.RateLimit.Enabled {
				in.limiter = ratelimit.NewLimiter(redisClient.Client, cfg.RateLimit)
				logger.Info("Rate limiting enabled", zap.Int("default_limit", cfg.RateLimit.DefaultLimit))
			}
		}
	}
	if cfg.RateLimit.Enabled && in.limiter == nil {
		logger.Warn("Rate limiting needs Redis, requests are not limited")
	}

	// NATS carries verification-completed events when enabled
	in.publisher = events.NoopPublisher{}
	if cfg.NATS.Enabled {
		publisher, conn, err := events.NewNATSPublisher(cfg.NATS, serviceName)
		if err != nil {
			logger.Warn("NATS unavailable, verification events disabled", zap.Error(err))
		} else {
			defer publisher.Close()
			in.publisher = publisher
			in.checks["nats"] = health.NATSChecker(conn)
			logger.Info("Connected to NATS", zap.String("subject", cfg.NATS.Subject))
		}
	}

	router := newRouter(buildApp(ctx, cfg, policy, in), extra...)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("KYC API starting", zap.String("port", cfg.Server.Port), zap.String("environment", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Server exited")
}

func loadAWS(ctx context.Context, name string, cfg config.AWSConfig) *aws.Config {
	if !cfg.HasCredentials() {
		logger.Info("AWS credentials not configured, using fallback mode", zap.String("set", name))
		return nil
	}

	awsCfg, err := rekognition.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to load AWS config, using fallback mode", zap.String("set", name), zap.Error(err))
		return nil
	}
	logger.Info("AWS configured", zap.String("set", name), zap.String("region", cfg.Region))
	return &awsCfg
}
