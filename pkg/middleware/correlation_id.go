package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/richxcame/kyc-nova/pkg/logger"
)

// CorrelationIDHeader carries the request id in both directions
const CorrelationIDHeader = "X-Request-ID"

const correlationIDKey = "correlation_id"

// maxCorrelationIDLength bounds ids accepted from clients before they reach logs
const maxCorrelationIDLength = 128

// CorrelationID reuses the caller's request id or assigns a new one, and puts
// it on the request context so service logs carry it.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(CorrelationIDHeader)
		if id == "" || len(id) > maxCorrelationIDLength {
			id = uuid.NewString()
		}

		c.Set(correlationIDKey, id)
		c.Request = c.Request.WithContext(logger.ContextWithCorrelationID(c.Request.Context(), id))
		c.Header(CorrelationIDHeader, id)

		c.Next()
	}
}

// GetCorrelationID returns the id assigned by CorrelationID
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(correlationIDKey)
}
