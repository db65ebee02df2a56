package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mertkaya/teampulse/internal/handlers"
	"github.com/mertkaya/teampulse/internal/middleware"
	"github.com/mertkaya/teampulse/internal/repositories"
	"github.com/mertkaya/teampulse/internal/services"
	"github.com/mertkaya/teampulse/internal/sources"
	"github.com/mertkaya/teampulse/internal/workers"
	"github.com/mertkaya/teampulse/pkg/config"
	"github.com/mertkaya/teampulse/pkg/database"
	"github.com/mertkaya/teampulse/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init()
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db, cfg.Database.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	memberRepo := repositories.NewMemberRepository(db)
	identifierRepo := repositories.NewIdentifierRepository(db)
	activityRepo := repositories.NewActivityRepository(db)
	jobRepo := repositories.NewJobRepository(db)

	// Services
	identityService := services.NewIdentityService(memberRepo, identifierRepo)
	activityService := services.NewActivityService(activityRepo)
	syncService := services.NewSyncService(identityService, activityService)
	statisticsService := services.NewStatisticsService(identityService, activityService)
	reportService := services.NewReportService()

	// Static source registry: a source exists only if registered here
	registry := sources.NewRegistry()
	if err := registry.Register(sources.NewGitHubAdapter(cfg)); err != nil {
		log.Fatalf("Failed to register sources: %v", err)
	}

	// Background sync workers, one per source
	workerManager := workers.NewWorkerManager(registry, jobRepo, syncService, cfg)
	if err := workerManager.StartAll(); err != nil {
		log.Fatalf("Failed to start workers: %v", err)
	}
	defer workerManager.StopAll()

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	setupRoutes(router, cfg, identityService, statisticsService, reportService, jobRepo, registry)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	logger.Info("Server stopped")
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	identityService *services.IdentityService,
	statisticsService *services.StatisticsService,
	reportService *services.ReportService,
	jobRepo *repositories.JobRepository,
	registry *sources.Registry,
) {
	memberHandler := handlers.NewMemberHandler(identityService, statisticsService)
	statisticsHandler := handlers.NewStatisticsHandler(identityService, statisticsService, reportService)
	syncHandler := handlers.NewSyncHandler(jobRepo, registry)

	api := router.Group("/api")
	api.Use(middleware.TokenAuth(cfg))
	{
		api.GET("/members", memberHandler.List)
		api.GET("/members/:name/activities", memberHandler.Activities)
		api.GET("/members/:name/statistics", statisticsHandler.MemberStatistics)

		api.GET("/team/summary", statisticsHandler.TeamSummary)
		api.GET("/team/summary/export", statisticsHandler.TeamExport)
		api.GET("/team/report", statisticsHandler.TeamReport)

		api.GET("/sources", syncHandler.Sources)
		api.POST("/sync/:source", syncHandler.Enqueue)
		api.GET("/jobs/:id", syncHandler.Status)
	}
}
