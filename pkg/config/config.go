package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	AWS       AWSConfig
	AWSDirect AWSConfig
	Aadhaar   AadhaarConfig
	Redis     RedisConfig
	NATS      NATSConfig
	Sentry    SentryConfig
	Tracing   TracingConfig
	Scoring   ScoringConfig
	RateLimit RateLimitConfig
	Secrets   SecretsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           string
	Environment    string
	ServiceName    string
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int    // seconds, applied per request by the timeout middleware
	CORSOrigins    string // Comma-separated list of allowed origins
	MaxUploadMB    int
}

// AWSConfig holds one AWS credential set.
// The backend proxy and the front-end-direct path each get their own set.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	LivenessBucket  string
}

// AadhaarConfig holds the Aadhaar-equivalent extraction API configuration
type AadhaarConfig struct {
	Endpoint string
	APIKey   string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// NATSConfig holds NATS configuration for verification events
type NATSConfig struct {
	URL     string
	Subject string
	Enabled bool
}

// SentryConfig holds Sentry configuration
type SentryConfig struct {
	DSN              string
	TracesSampleRate float64
}

// TracingConfig holds OpenTelemetry exporter configuration
type TracingConfig struct {
	Endpoint string
	Insecure bool
}

// ScoringConfig holds scoring and external-call tuning
type ScoringConfig struct {
	PolicyFile          string
	ExternalCallTimeout int // seconds
	SimulatedLatency    bool
	Seed                uint64 // 0 means time-seeded
}

// RateLimitConfig holds the Redis backed per-client rate limiter settings
type RateLimitConfig struct {
	Enabled           bool
	WindowSeconds     int
	DefaultLimit      int
	DefaultBurst      int
	RedisPrefix       string
	EndpointOverrides map[string]EndpointRateLimitConfig
}

// EndpointRateLimitConfig overrides the defaults for one route.
// Zero Limit and WindowSeconds keep the defaults; Burst applies when >= 0.
type EndpointRateLimitConfig struct {
	Limit         int
	Burst         int
	WindowSeconds int
}

// SecretsConfig tunes resolution of secret references in other settings
type SecretsConfig struct {
	Dir             string // mount point for file:// references
	CacheTTLSeconds int
}

// VerifyRoute is the route given its own rate limit override
const VerifyRoute = "/api/kyc/verify"

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "3001"),
			Environment:    getEnv("ENVIRONMENT", "development"),
			ServiceName:    serviceName,
			ReadTimeout:    getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:   getEnvAsInt("WRITE_TIMEOUT", 30),
			RequestTimeout: getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 25),
			CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:3000"),
			MaxUploadMB:    getEnvAsInt("MAX_UPLOAD_MB", 10),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			LivenessBucket:  getEnv("REKOGNITION_S3_BUCKET", "rekognition-liveness-bucket"),
		},
		AWSDirect: AWSConfig{
			Region:          getEnv("AWS_DIRECT_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_DIRECT_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_DIRECT_SECRET_ACCESS_KEY", ""),
		},
		Aadhaar: AadhaarConfig{
			Endpoint: getEnv("AADHAAR_API_ENDPOINT", ""),
			APIKey:   getEnv("AADHAAR_API_KEY", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},
		NATS: NATSConfig{
			URL:     getEnv("NATS_URL", "nats://localhost:4222"),
			Subject: getEnv("NATS_SUBJECT", "kyc.verification.completed"),
			Enabled: getEnvAsBool("NATS_ENABLED", false),
		},
		Sentry: SentryConfig{
			DSN:              getEnv("SENTRY_DSN", ""),
			TracesSampleRate: getEnvAsFloat("SENTRY_TRACES_SAMPLE_RATE", 0.1),
		},
		Tracing: TracingConfig{
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure: getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		},
		Scoring: ScoringConfig{
			PolicyFile:          getEnv("SCORING_POLICY_FILE", ""),
			ExternalCallTimeout: getEnvAsInt("EXTERNAL_CALL_TIMEOUT_SECONDS", 10),
			SimulatedLatency:    getEnvAsBool("SIMULATED_LATENCY", false),
			Seed:                uint64(getEnvAsInt("SCORING_SEED", 0)),
		},
		RateLimit: RateLimitConfig{
			Enabled:       getEnvAsBool("RATE_LIMIT_ENABLED", false),
			WindowSeconds: getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 60),
			DefaultLimit:  getEnvAsInt("RATE_LIMIT_DEFAULT_LIMIT", 120),
			DefaultBurst:  getEnvAsInt("RATE_LIMIT_DEFAULT_BURST", 20),
			RedisPrefix:   getEnv("RATE_LIMIT_REDIS_PREFIX", "kyc:rl"),
			EndpointOverrides: map[string]EndpointRateLimitConfig{
				VerifyRoute: {
					Limit: getEnvAsInt("RATE_LIMIT_VERIFY_LIMIT", 10),
					Burst: getEnvAsInt("RATE_LIMIT_VERIFY_BURST", 2),
				},
			},
		},
		Secrets: SecretsConfig{
			Dir:             getEnv("SECRETS_DIR", "/var/run/secrets/kyc"),
			CacheTTLSeconds: getEnvAsInt("SECRETS_CACHE_TTL_SECONDS", 300),
		},
	}

	if cfg.Server.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", cfg.Server.MaxUploadMB)
	}

	return cfg, nil
}

// HasCredentials reports whether both halves of the key pair are present.
// This is the switch between external-service mode and fallback mode.
func (c *AWSConfig) HasCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// IsConfigured reports whether the Aadhaar API can be called
func (c *AadhaarConfig) IsConfigured() bool {
	return c.Endpoint != "" && c.APIKey != ""
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// CallTimeout returns the bound applied to every external service call
func (c *ScoringConfig) CallTimeout() time.Duration {
	if c.ExternalCallTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ExternalCallTimeout) * time.Second
}

// Window returns the default rate limit window, one minute when unset
func (c RateLimitConfig) Window() time.Duration {
	if c.WindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.WindowSeconds) * time.Second
}

// CacheTTL returns how long resolved secrets are reused
func (c SecretsConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// MaxUploadBytes returns the upload limit in bytes
func (c *ServerConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1024 * 1024
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
