package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/richxcame/kyc-nova/pkg/common"
	"github.com/richxcame/kyc-nova/pkg/logger"
	"github.com/richxcame/kyc-nova/pkg/ratelimit"
	"go.uber.org/zap"
)

var rateLimitRejections = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_rate_limit_rejections_total",
		Help: "Requests rejected by the per-client rate limiter",
	},
	[]string{"endpoint"},
)

// RateLimiter is the subset of ratelimit.Limiter the middleware needs
type RateLimiter interface {
	RuleFor(endpoint string) ratelimit.Rule
	Allow(ctx context.Context, endpoint, identity string, rule ratelimit.Rule) (*ratelimit.Result, error)
}

var _ RateLimiter = (*ratelimit.Limiter)(nil)

// RateLimit limits requests per client IP and route.
// Limiter errors let the request through.
func RateLimit(limiter RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}

		result, err := limiter.Allow(c.Request.Context(), endpoint, c.ClientIP(), limiter.RuleFor(endpoint))
		if err != nil {
			logger.WithContext(c.Request.Context()).Warn("Rate limiter unavailable, allowing request",
				zap.String("endpoint", endpoint), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			rateLimitRejections.WithLabelValues(endpoint).Inc()
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(result.RetryAfter.Seconds()))))
			common.ErrorResponse(c, http.StatusTooManyRequests, "too many requests, please retry later")
			c.Abort()
			return
		}

		c.Next()
	}
}
