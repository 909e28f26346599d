package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reelsmaxx/reelview/pkg/reelview/auth"
	"github.com/reelsmaxx/reelview/pkg/reelview/config"
	"github.com/reelsmaxx/reelview/pkg/reelview/database"
	"github.com/reelsmaxx/reelview/pkg/reelview/models"
	"github.com/reelsmaxx/reelview/pkg/reelview/notify"
	"github.com/reelsmaxx/reelview/pkg/reelview/review"
	"github.com/reelsmaxx/reelview/pkg/reelview/store"
	"github.com/reelsmaxx/reelview/pkg/reelview/videos"
)

// @title ReelView API
// @version 1.0
// @description Internal review board for Drive-hosted video clips.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := models.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	logger.Info("Database migrations completed", zap.String("driver", cfg.DBDriver))

	videoStore := store.New(db)

	dispatcher := review.NewDispatcher(videoStore, logger, cfg.WriteQueueSize)
	stopDispatcher := dispatcher.Start(cfg.WriteWorkers)
	defer func() {
		if err := stopDispatcher(context.Background()); err != nil {
			logger.Warn("Dispatcher did not drain cleanly", zap.Error(err))
		}
	}()

	manager := review.NewManager(videoStore, dispatcher, logger, cfg.PageSize)
	notifier := notify.New(cfg.NotifyWebhookURL)

	authSvc, err := auth.NewService(cfg.JWTSecret, cfg.ReviewerEmail, cfg.ReviewerPassword)
	if err != nil {
		logger.Fatal("Failed to set up auth", zap.Error(err))
	}

	// Set up Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		authHandler := auth.NewHandler(authSvc)
		authHandler.RegisterRoutes(api.Group("/auth"))

		// Video review routes (protected)
		videosHandler := videos.NewHandler(manager, dispatcher, notifier, logger)
		videosHandler.RegisterRoutes(api.Group("", authSvc.Middleware()))
	}

	logger.Info("Starting ReelView server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server exited", zap.Error(err))
	}
}
