package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/stemsi/perfdash/internal/client"
	"github.com/stemsi/perfdash/internal/config"
	"github.com/stemsi/perfdash/internal/database"
	"github.com/stemsi/perfdash/internal/handler"
	"github.com/stemsi/perfdash/internal/logger"
	"github.com/stemsi/perfdash/internal/repository"
	"github.com/stemsi/perfdash/internal/router"
	"github.com/stemsi/perfdash/internal/service"
	"github.com/stemsi/perfdash/internal/validator"
	"github.com/stemsi/perfdash/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("upstream", cfg.PerformanceAPIURL).
		Msg("Starting perfdash")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Redis (optional) ───────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	api := client.New(cfg.PerformanceAPIURL, cfg.UpstreamTimeout, log)
	cache := repository.NewCache(rdb, cfg.CacheTTL, log)

	studentRepo := repository.NewStudentRepository(api, cache)
	performanceRepo := repository.NewPerformanceRepository(api, cache)
	predictionRepo := repository.NewPredictionRepository(api)

	// ─── Initialize Services ──────────────────────────────────────────
	dashboardService := service.NewDashboardService(studentRepo)
	studentService := service.NewStudentService(performanceRepo)
	analyticsService := service.NewAnalyticsService(studentRepo, performanceRepo, cfg.DepartmentFetchConcurrency)
	predictionService := service.NewPredictionService(studentRepo, predictionRepo)
	fileService := service.NewFileService(api, studentRepo, cfg.MaxUploadBytes, log)
	reportService := service.NewReportService(studentRepo, performanceRepo, cfg.DepartmentFetchConcurrency, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		Student:    handler.NewStudentHandler(studentService),
		Analytics:  handler.NewAnalyticsHandler(analyticsService),
		Prediction: handler.NewPredictionHandler(predictionService),
		File:       handler.NewFileHandler(fileService, cfg.MaxUploadBytes),
		Report:     handler.NewReportHandler(reportService),
		System:     handler.NewSystemHandler(rdb, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	workerDone := make(chan struct{})

	if cache.Enabled() {
		// ─── Prewarm Redis Cache ──────────────────────────────────────
		// Load the roster BEFORE accepting traffic so the first dashboard
		// request is served from cache.
		if students, err := studentRepo.Refresh(ctx); err != nil {
			log.Warn().Err(err).Msg("Roster prewarm failed")
		} else {
			log.Info().Int("students", len(students)).Msg("Roster cache prewarmed")
		}

		rosterWorker := worker.NewRosterRefreshWorker(studentRepo, cfg.RosterRefresh, log)
		go func() {
			rosterWorker.Start(workerCtx)
			close(workerDone)
		}()
	} else {
		close(workerDone)
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(workerCtx, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and router upkeep.
	workerCancel()
	<-workerDone

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
