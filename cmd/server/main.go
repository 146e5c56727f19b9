package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "carrental-client/internal/api/http"
	"carrental-client/internal/apiclient"
	"carrental-client/internal/appstate"
	"carrental-client/internal/config"
	"carrental-client/internal/domain"
	"carrental-client/internal/jobs"
	"carrental-client/internal/logger"
	"carrental-client/internal/query"
	"carrental-client/internal/scheduler"
	"carrental-client/internal/security"
	"carrental-client/internal/service"
	"carrental-client/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting car rental client...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Backend configuration", "base_url", cfg.API.BaseURL, "default_currency", cfg.API.DefaultCurrency)

	// Session and API client factory
	session := security.NewTokenSession(cfg.Session.AccessToken, cfg.Session.IDToken, cfg.Session.TokenSecret)
	if _, err := session.AccessToken(context.Background()); err != nil {
		logger.Warn("No usable session at startup, backend views will answer 401 until sign-in", "error", err)
	}
	// no client-side timeout, a hung backend shows as loading
	factory := apiclient.NewFactory(cfg.API.BaseURL, &http.Client{}, session)
	backend := service.NewFactoryBackend(factory)

	// Query cache and app state
	cache := query.NewClient(query.WithStaleTime(cfg.StaleTime()))
	selector := appstate.NewCurrencySelector(domain.Currency(cfg.API.DefaultCurrency))

	// Preference storage
	store, err := storage.NewFromConfig(cfg.Preferences)
	if err != nil {
		logger.Error("Failed to initialize preference storage", "error", err)
		log.Fatalf("Failed to initialize preference storage: %v", err)
	}
	defer store.Close()
	logger.Info("Preference storage ready", "type", cfg.Preferences.Type)

	// Initialize Services
	carSvc := service.NewCarService(backend, cache, selector)
	bookingSvc := service.NewBookingService(backend, cache, carSvc, selector, time.Now)
	themeSvc := service.NewThemeService(store, cfg.Preferences.PrefersDark)

	// Cache maintenance
	jobRunner := jobs.NewJobRunner(cache, session, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()

	// HTTP server
	api := httpapi.NewServer(carSvc, bookingSvc, themeSvc, selector, session)
	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           api,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	api.Close()
	cronScheduler.Stop()
	logger.Info("Stopped. Goodbye!")
}
