// File: baturite/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"baturite/config"
	"baturite/database"
	contactRepo "baturite/database/repository/contact"
	"baturite/handlers"
	"baturite/middleware"
	"baturite/routes"
	"baturite/services/assistant"
	"baturite/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	contacts := contactRepo.NewMongoContactRepo()

	// services.
	historyStore := assistant.NewRedisHistoryStore(
		utils.GetHistoryCacheClient(),
		time.Duration(config.AppConfig.AssistantHistoryTTLMin)*time.Minute,
	)
	if config.AppConfig.GeminiAPIKey == "" {
		logger.Sugar().Warn("main: GEMINI_API_KEY not set, assistant will run in unavailable mode")
	}
	assistantSvc := assistant.NewDefaultAssistantService(
		historyStore,
		assistant.GeminiFactory(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel),
		time.Duration(config.AppConfig.AssistantTurnTimeoutSec)*time.Second,
	)

	assistantHandler := handlers.NewAssistantHandler(assistantSvc)
	contactHandler := handlers.NewContactHandler(contacts)

	// Register routes.
	routes.RegisterRoutes(router, assistantHandler, contactHandler)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetHistoryCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
