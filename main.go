package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coachflow/config"
	"coachflow/cron"
	"coachflow/database"
	bookingRepoPkg "coachflow/database/repository/booking"
	clientRepoPkg "coachflow/database/repository/client"
	coachRepoPkg "coachflow/database/repository/coach"
	suggestionRepoPkg "coachflow/database/repository/suggestion"
	"coachflow/handlers"
	"coachflow/middleware"
	"coachflow/routes"
	"coachflow/services/availability"
	"coachflow/services/notification"
	"coachflow/services/optimizer"
	"coachflow/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	clientRepo := clientRepoPkg.NewMongoClientRepo()
	coachRepo := coachRepoPkg.NewMongoCoachRepo()
	suggestionRepo := suggestionRepoPkg.NewMongoSuggestionRepo()

	// services.
	checker := &availability.DefaultChecker{
		BookingRepo:   bookingRepo,
		CoachRepo:     coachRepo,
		DayEndMinutes: config.AppConfig.DayEndMinutes,
	}
	notifier := notification.NewFCMNotificationService(coachRepo)

	optimizerService := optimizer.NewDefaultGapOptimizerService(
		bookingRepo,
		clientRepo,
		suggestionRepo,
		checker,
		notifier,
		utils.GetCacheClient(),
	)

	optimizerHandler := handlers.NewOptimizerHandler(optimizerService)
	routes.RegisterRoutes(router, optimizerHandler, coachRepo)

	// Background worker: hourly expire sweep + nightly analysis scan.
	cron.InitOptimizerWorker(optimizerService, coachRepo)

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
