package api

import (
	"time"

	"recipe-ingest/internal/api/handlers/health"
	"recipe-ingest/internal/api/handlers/ingest"
	"recipe-ingest/internal/api/middleware"
	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	timeoutDuration    = 30 * time.Second
	defaultMaxBodySize = 1 << 20
)

// SetupRouter builds the gin engine.
func SetupRouter(cfg *config.Config, svc *Services) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	maxBodySize := cfg.Request.MaxBodyBytes
	if maxBodySize <= 0 {
		maxBodySize = defaultMaxBodySize
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())
	router.Use(middleware.RequestContext())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))
	router.Use(middleware.Timeout(timeoutDuration))

	healthHandler := health.NewHandler(cfg, svc.Cache, svc.Pool, svc.Categorizer)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	router.GET("/metrics", gin.WrapH(svc.Metrics.Handler()))

	h := ingest.NewHandler(svc.Parser, svc.Detector, svc.Importer, svc.Shopping, svc.Metrics, cfg.App.Debug)

	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled && cfg.RateLimit.Requests > 0 && cfg.RateLimit.Window > 0 {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	{
		ingredients := api.Group("/ingredients")
		ingredients.POST("/parse", h.HandleParse)
		ingredients.POST("/categorize", h.HandleCategorize)

		api.POST("/courses/detect", h.HandleDetectCourse)
		api.POST("/units/normalize", h.HandleNormalizeUnits)

		recipes := api.Group("/recipes")
		if cfg.DedupWindow > 0 {
			recipes.Use(middleware.Deduplication(cfg.DedupWindow))
		}
		recipes.POST("/import", h.HandleImport)
		recipes.POST("/import/url", h.HandleImportURL)
	}

	common.LogInfo("Router setup completed",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("dedup_window", cfg.DedupWindow),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router
}
