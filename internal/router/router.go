package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/stemsi/perfdash/internal/config"
	"github.com/stemsi/perfdash/internal/handler"
	"github.com/stemsi/perfdash/internal/middleware"
	"github.com/stemsi/perfdash/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Dashboard  *handler.DashboardHandler
	Student    *handler.StudentHandler
	Analytics  *handler.AnalyticsHandler
	Prediction *handler.PredictionHandler
	File       *handler.FileHandler
	Report     *handler.ReportHandler
	System     *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// Background upkeep started here, such as rate limiter eviction, stops when
// ctx is cancelled.
func SetupRouter(ctx context.Context, handlers *Handlers, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))

	// Downloads are streamed or already zipped.
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Quality: middleware.DefaultBrotliConfig.Quality,
		Skipper: middleware.SkipPathPrefixes("/api/v1/files/export", "/api/v1/reports", "/metrics"),
	}))

	router.GET("/health", handlers.System.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	api := router.Group("/api/v1")
	if cfg.RateLimit > 0 {
		api.Use(middleware.NewRateLimiter(ctx, cfg.RateLimit, time.Minute).Middleware())
	}
	api.Use(middleware.NoStore())
	{
		api.GET("/dashboard", handlers.Dashboard.GetDashboard)
		api.GET("/students/:id", handlers.Student.GetStudent)
		api.GET("/analytics/departments", handlers.Analytics.GetDepartmentComparison)

		api.GET("/predictions/students", middleware.CacheControl(30), handlers.Prediction.ListCandidates)
		api.GET("/predictions/:id", handlers.Prediction.GetPrediction)

		api.POST("/files/upload", handlers.File.Upload)
		api.GET("/files/export/:id", handlers.File.ExportStudent)
		api.GET("/files/export-all", handlers.File.ExportAll)

		api.GET("/reports/roster.xlsx", handlers.Report.RosterWorkbook)
	}

	return router
}
