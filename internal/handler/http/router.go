package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/enrichx/directory-service/internal/config"
	"github.com/enrichx/directory-service/internal/handler/http/middleware"
)

// SetupRouter wires middleware and routes into a gin engine. The rate
// limiter may be nil when rate limiting is disabled.
func SetupRouter(
	gate middleware.AccessGate,
	directory DirectoryService,
	stats StatsService,
	mutations MutationService,
	limiter middleware.RateLimiter,
	cfg *config.Config,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.CorsMiddleware())
	router.Use(middleware.MetricsMiddleware())

	RegisterHealthRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	adminHandler := NewAdminHandler(logger, directory, stats, mutations)

	api := router.Group("/api/v1")
	admin := api.Group("/admin")
	admin.Use(middleware.RateLimitMiddleware(limiter, cfg.Security.RateLimiting.AdminAPI, logger))
	admin.Use(middleware.AuthMiddleware(gate, logger))
	RegisterAdminRoutes(admin, adminHandler)

	return router
}
