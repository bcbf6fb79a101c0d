package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/studyhall-app/studyhall-service/internal/auth"
	"github.com/studyhall-app/studyhall-service/internal/cache"
	"github.com/studyhall-app/studyhall-service/internal/config"
	"github.com/studyhall-app/studyhall-service/internal/events"
	"github.com/studyhall-app/studyhall-service/internal/handlers"
	"github.com/studyhall-app/studyhall-service/internal/realtime"
	"github.com/studyhall-app/studyhall-service/internal/services"
	"github.com/studyhall-app/studyhall-service/internal/utils"
	"github.com/studyhall-app/studyhall-service/internal/validator"
	"github.com/studyhall-app/studyhall-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize storage; degrades to the in-memory store when the backend
	// is unreachable
	ctx := context.Background()
	repo := pkg.InitRepository(ctx, cfg, slogLogger)

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis: %v", err)
		}
	}

	// Event bus and realtime hub
	bus := events.NewBus(slogLogger)
	publisher := events.NewPublisher(bus, slogLogger)

	// Initialize validator and token manager
	validator := validator.New()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	// Initialize services
	serviceManager := services.NewServiceManager(services.Dependencies{
		Repo:      repo,
		Tokens:    tokens,
		Publisher: publisher,
		ExamCache: cache.NewHelper(redisClient, "exam:"),
		Logger:    slogLogger,
		Validator: validator,
	})

	// Hub joins are gated on chat membership
	hub := realtime.NewHub(serviceManager.PrivateChat(), slogLogger)

	bridgeCtx, stopBridge := context.WithCancel(ctx)
	bridge := realtime.NewBridge(bus, hub, slogLogger)
	go func() {
		if err := bridge.Run(bridgeCtx); err != nil {
			slogLogger.Error("event bridge stopped", "error", err)
		}
	}()

	// Seed exams from the configured workbook
	if cfg.ExamSeedPath != "" {
		importer := services.NewExamImporter(repo, slogLogger)
		n, err := importer.ImportFile(ctx, cfg.ExamSeedPath)
		if err != nil {
			log.Printf("Warning: exam seeding failed: %v", err)
		} else {
			slogLogger.Info("exams seeded", "count", n, "path", cfg.ExamSeedPath)
		}
	}

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, tokens, hub, validator, logger, repo)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Stop realtime delivery before closing the bus
	hub.Stop()
	stopBridge()
	if err := bus.Close(); err != nil {
		log.Printf("Failed to close event bus: %v", err)
	}

	if err := serviceManager.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}
