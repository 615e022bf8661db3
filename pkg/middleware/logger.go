package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/kyc-nova/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// probeRoutes are polled by probes and scrapers
var probeRoutes = map[string]bool{
	"/metrics":    true,
	"/api/health": true,
}

// RequestLogger writes one line per request. Bodies carry identity documents
// and are never logged, only their sizes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()

		level := zapcore.InfoLevel
		switch {
		case len(c.Errors) > 0 || status >= 500:
			level = zapcore.ErrorLevel
		case status >= 400:
			level = zapcore.WarnLevel
		case probeRoutes[route]:
			level = zapcore.DebugLevel
		}

		log := logger.WithContext(c.Request.Context())
		if ce := log.Check(level, "Request completed"); ce != nil {
			fields := []zap.Field{
				zap.String("method", c.Request.Method),
				zap.String("route", route),
				zap.Int("status", status),
				zap.String("client_ip", c.ClientIP()),
				zap.Int64("request_bytes", c.Request.ContentLength),
				zap.Int("response_bytes", c.Writer.Size()),
				zap.Duration("latency", time.Since(start)),
			}
			if len(c.Errors) > 0 {
				fields = append(fields, zap.String("errors", c.Errors.String()))
			}
			ce.Write(fields...)
		}
	}
}
