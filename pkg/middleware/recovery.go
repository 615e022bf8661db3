package middleware

import (
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/richxcame/kyc-nova/pkg/common"
	"github.com/richxcame/kyc-nova/pkg/logger"
	"go.uber.org/zap"
)

// Recovery turns a handler panic into a 500. The panic goes to Sentry through
// the request hub when sentrygin bound one, otherwise the global hub.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			route := c.FullPath()
			logger.WithContext(c.Request.Context()).Error("Handler panicked",
				zap.Any("panic", rec),
				zap.String("route", route),
				zap.Stack("stack"),
			)

			hub := sentry.GetHubFromContext(c.Request.Context())
			if hub == nil {
				hub = sentry.CurrentHub()
			}
			hub.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("route", route)
				scope.SetTag("correlation_id", GetCorrelationID(c))
				hub.CaptureException(fmt.Errorf("panic in %s: %v", route, rec))
			})

			common.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
			c.Abort()
		}()

		c.Next()
	}
}
