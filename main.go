package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clipbook/config"
	"clipbook/cron"
	"clipbook/database"
	calendarRepo "clipbook/database/repository/calendar"
	resourceRepo "clipbook/database/repository/resource"
	serviceRepo "clipbook/database/repository/service"
	"clipbook/handlers"
	"clipbook/middleware"
	"clipbook/routes"
	"clipbook/services/calendar"
	"clipbook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	calRepo := calendarRepo.NewMongoCalendarRepo()
	svcRepo := serviceRepo.NewMongoServiceRepo()
	resRepo := resourceRepo.NewMongoResourceRepo()

	// services.
	calendarService := &calendar.DefaultCalendarService{
		Repo:       calRepo,
		Services:   svcRepo,
		Cache:      utils.GetCacheClient(),
		Location:   config.Location(),
		WindowDays: config.AppConfig.WindowDays,
	}

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		Booking:  handlers.NewBookingHandler(calendarService, logger),
		Calendar: handlers.NewCalendarHandler(calendarService, logger),
		Resource: handlers.NewResourceHandler(resRepo, calendarService, logger),
		Services: handlers.NewServicesHandler(svcRepo, logger),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Daily rolling-window maintenance.
	windowJob := cron.StartWindowMaintainer(calendarService, config.Location())
	defer windowJob.Stop()

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
