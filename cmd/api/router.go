package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/richxcame/kyc-nova/pkg/common"
	"github.com/richxcame/kyc-nova/pkg/middleware"
)

// multipart bodies carry up to two images plus form fields
const bodyOverheadBytes = 1 << 20

func newRouter(a *app, extra ...gin.HandlerFunc) *gin.Engine {
	cfg := a.cfg.Server

	router := gin.New()
	router.Use(extra...)
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics(cfg.ServiceName))
	router.Use(middleware.Recovery())
	router.Use(middleware.SecurityHeaders())

	corsConfig := cors.DefaultConfig()
	if origins := splitOrigins(cfg.CORSOrigins); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", middleware.CorrelationIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.CorrelationIDHeader}
	router.Use(cors.New(corsConfig))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	if a.limiter != nil {
		api.Use(middleware.RateLimit(a.limiter))
	}
	api.Use(middleware.MaxBodySize(2*cfg.MaxUploadBytes() + bodyOverheadBytes))
	if cfg.RequestTimeout > 0 {
		api.Use(timeout.New(
			timeout.WithTimeout(time.Duration(cfg.RequestTimeout)*time.Second),
			timeout.WithResponse(func(c *gin.Context) {
				common.ErrorResponse(c, http.StatusServiceUnavailable, "request timed out")
			}),
		))
	}

	for _, h := range a.handlers {
		h.RegisterRoutes(api)
	}

	return router
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
