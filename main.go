// File: rescuehub/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rescuehub/config"
	"rescuehub/cron"
	"rescuehub/database"
	incidentRepo "rescuehub/database/repository/incident"
	"rescuehub/handlers"
	"rescuehub/routes"
	ai "rescuehub/services/intelligence"
	"rescuehub/services/memory"
	"rescuehub/services/notification"
	"rescuehub/services/session"
	"rescuehub/services/triage"
	"rescuehub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	incidents := incidentRepo.NewMongoIncidentRepo()

	// services.
	gemini := ai.NewGeminiClient(config.AppConfig.GeminiAPIKey)
	judgment := ai.NewGeminiJudgmentService(gemini)

	recallColl := database.MongoClient.Database("rescuehub").Collection("recall_entries")
	recall := memory.NewIndex(gemini, recallColl)
	if err := recall.Load(context.Background()); err != nil {
		logger.Sugar().Warnf("main: failed to load recall entries: %v", err)
	}

	orchestrator := triage.NewOrchestrator(judgment, recall, nil, logger)

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	sessionStore := session.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL)

	notifier := notification.NewFCMNotifier()
	cron.InitIncidentWorker(incidents, notifier)
	queueClient := cron.NewQueueClient()
	defer queueClient.Close()

	utils.StartHealthMonitor([]*redis.Client{utils.GetSessionCacheClient()}, database.MongoClient)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Triage: &handlers.TriageHandlers{
			Store:        sessionStore,
			Orchestrator: orchestrator,
			Queue:        queueClient,
		},
		Incidents: &handlers.IncidentHandlers{
			Repo: incidents,
		},
		TranscribeHandler: handlers.TranscribeHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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
