// File: portflow/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portflow/config"
	"portflow/cron"
	"portflow/database"
	auditRepoPkg "portflow/database/repository/audit"
	bookingRepoPkg "portflow/database/repository/booking"
	fleetRepoPkg "portflow/database/repository/fleet"
	notifRepoPkg "portflow/database/repository/notification"
	qrRepoPkg "portflow/database/repository/qrcode"
	registryRepoPkg "portflow/database/repository/registry"
	userRepoPkg "portflow/database/repository/user"
	"portflow/handlers"
	"portflow/middleware"
	"portflow/routes"
	auditSvc "portflow/services/audit"
	"portflow/services/booking"
	"portflow/services/dashboard"
	"portflow/services/exception"
	"portflow/services/fleet"
	"portflow/services/notification"
	"portflow/services/qrcode"
	"portflow/services/registry"
	"portflow/services/user"
	"portflow/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	registryRepo := registryRepoPkg.NewMongoRegistryRepo()
	fleetRepo := fleetRepoPkg.NewMongoFleetRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	qrRepo := qrRepoPkg.NewMongoQRCodeRepo()
	auditRepo := auditRepoPkg.NewMongoAuditRepo()
	notifRepo := notifRepoPkg.NewMongoNotificationRepo()

	// services.
	auditRecorder := &auditSvc.DefaultRecorder{Repo: auditRepo}

	asynqClient := cron.NewAsynqClient()
	defer asynqClient.Close()

	notificationService := &notification.DefaultNotificationService{
		Repo:         notifRepo,
		Fleet:        fleetRepo,
		AsynqClient:  asynqClient,
		ReminderLead: time.Duration(config.AppConfig.ReminderLeadMin) * time.Minute,
	}

	userService := &user.DefaultUserService{
		Repo:  userRepo,
		Audit: auditRecorder,
	}
	registryService := &registry.DefaultRegistryService{
		Repo:  registryRepo,
		Audit: auditRecorder,
	}
	fleetService := &fleet.DefaultFleetService{
		Repo:  fleetRepo,
		Users: userRepo,
		Audit: auditRecorder,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:     bookingRepo,
		Registry: registryRepo,
		Fleet:    fleetRepo,
		Audit:    auditRecorder,
		Events:   notificationService,
	}
	detectorService := &exception.DefaultDetectorService{
		Repo:        bookingRepo,
		Registry:    registryRepo,
		StaleWindow: time.Duration(config.AppConfig.StalePendingWindowMin) * time.Minute,
	}
	qrService := &qrcode.DefaultQRService{
		Repo:     qrRepo,
		Bookings: bookingService,
		Registry: registryRepo,
		Fleet:    fleetRepo,
		Users:    userRepo,
		Audit:    auditRecorder,
		Grace:    time.Duration(config.AppConfig.QRGraceMin) * time.Minute,
	}
	dashboardService := &dashboard.DefaultDashboardService{
		Bookings:  bookingRepo,
		Fleet:     fleetRepo,
		Registry:  registryRepo,
		Exception: detectorService,
	}

	// Background reminder worker.
	cron.InitReminderWorker(notificationService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:          handlers.NewAuthHandler(userService),
		Bookings:      handlers.NewBookingHandler(bookingService, fleetService),
		QR:            handlers.NewQRHandler(qrService),
		Exceptions:    handlers.NewExceptionHandler(detectorService),
		Registry:      handlers.NewRegistryHandler(registryService),
		Fleet:         handlers.NewFleetHandler(fleetService),
		Dashboards:    handlers.NewDashboardHandler(dashboardService, fleetService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Audit:         handlers.NewAuditHandler(auditRecorder),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "3001"
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
