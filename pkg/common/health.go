package common

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health statuses
const (
	HealthOK        = "OK"
	HealthUnhealthy = "unhealthy"
)

// ComponentMode describes whether a component talks to its external provider or runs on fallback data
type ComponentMode struct {
	Mode     string `json:"mode"`
	Status   string `json:"status"`
	Endpoint string `json:"endpoint,omitempty"`
	Region   string `json:"region,omitempty"`
}

// HealthInfo is the static part of the health response
type HealthInfo struct {
	Service  string
	Version  string
	Services map[string]string
	Modes    map[string]ComponentMode
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string                   `json:"status"`
	Service   string                   `json:"service"`
	Version   string                   `json:"version"`
	Timestamp time.Time                `json:"timestamp"`
	Services  map[string]string        `json:"services,omitempty"`
	Modes     map[string]ComponentMode `json:"modes,omitempty"`
	Checks    map[string]string        `json:"checks,omitempty"`
}

// HealthCheck returns a health check handler
func HealthCheck(info HealthInfo) gin.HandlerFunc {
	return HealthCheckWithDeps(info, nil)
}

// HealthCheckWithDeps returns a health check handler with dependency checks.
// Any failing check turns the response into a 503.
func HealthCheckWithDeps(info HealthInfo, checks map[string]func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := HealthOK
		var checkResults map[string]string

		if len(checks) > 0 {
			checkResults = make(map[string]string, len(checks))
		}
		for name, checkFunc := range checks {
			if err := checkFunc(); err != nil {
				checkResults[name] = "unhealthy: " + err.Error()
				status = HealthUnhealthy
			} else {
				checkResults[name] = "healthy"
			}
		}

		statusCode := http.StatusOK
		if status == HealthUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, HealthResponse{
			Status:    status,
			Service:   info.Service,
			Version:   info.Version,
			Timestamp: time.Now().UTC(),
			Services:  info.Services,
			Modes:     info.Modes,
			Checks:    checkResults,
		})
	}
}
