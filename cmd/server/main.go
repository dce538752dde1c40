package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventdeck/config"
	"eventdeck/internal/adapters/email"
	delivery "eventdeck/internal/delivery/http"
	"eventdeck/internal/delivery/http/controllers"
	"eventdeck/internal/delivery/http/middleware"
	"eventdeck/internal/repository/mongodb"
	"eventdeck/internal/services"
)

const (
	serviceTimeout  = 10 * time.Second
	startupTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title EventDeck API
// @version 1.0
// @description Event management API with booking support.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger config depends on the environment, so fall back to stderr.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := config.NewLogger(cfg)
	logger.Info("starting server", "environment", cfg.Environment, "port", cfg.Port)

	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	provider := mongodb.NewProvider(cfg.MongoURI)
	db, err := provider.Database(startupCtx, cfg.MongoDatabase)
	if err != nil {
		logger.Error("failed to connect to mongodb", "err", err)
		os.Exit(1)
	}
	if err := mongodb.EnsureIndexes(startupCtx, db); err != nil {
		logger.Error("failed to ensure indexes", "err", err)
		os.Exit(1)
	}

	eventRepo := mongodb.NewEventRepository(db)
	bookingRepo := mongodb.NewBookingRepository(db, eventRepo)

	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.SESRegion,
			AccessKeyID:     cfg.Email.AccessKeyID,
			SecretAccessKey: cfg.Email.SecretAccessKey,
		},
	}, logger)
	renderer := email.NewTemplateRenderer()
	emailService := services.NewEmailService(mailer, renderer)

	eventService := services.NewEventService(eventRepo, serviceTimeout)
	bookingService := services.NewBookingService(bookingRepo, eventRepo, emailService, logger, serviceTimeout)

	eventController := controllers.NewEventController(logger, eventService)
	bookingController := controllers.NewBookingController(logger, bookingService)

	mux := delivery.NewRouter(eventController, bookingController)
	handler := middleware.Logging(logger, middleware.CORS(cfg.AllowedOrigins, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "err", err)
		}
		if err := provider.Disconnect(shutdownCtx); err != nil {
			logger.Warn("mongodb disconnect failed", "err", err)
		}
	}

	logger.Info("server stopped")
}
