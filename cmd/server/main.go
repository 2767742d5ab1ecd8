package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tesfafund/api/internal/config"
	"github.com/tesfafund/api/internal/database"
	"github.com/tesfafund/api/internal/handler"
	"github.com/tesfafund/api/internal/middleware"
	"github.com/tesfafund/api/internal/repository"
	"github.com/tesfafund/api/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Server.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("namespace", cfg.Database.Namespace),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize repositories
	recipientRepo := repository.NewRecipientRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	donationRepo := repository.NewDonationRepository(db)

	// Campaign event streams
	eventHub := service.NewEventHub(cfg.Server.EventHeartbeat)

	// Initialize services. Recipient deletion consults campaigns, and
	// campaign writes consult recipients, so the finder is wired afterwards.
	recipientService := service.NewRecipientService(service.RecipientServiceConfig{
		RecipientRepo: recipientRepo,
		BcryptCost:    cfg.Security.BcryptCost,
	})
	campaignService := service.NewCampaignService(service.CampaignServiceConfig{
		CampaignRepo: campaignRepo,
		Recipients:   recipientService,
		Events:       eventHub,
	})
	recipientService.SetCampaignFinder(campaignService)

	donationService := service.NewDonationService(service.DonationServiceConfig{
		DonationRepo: donationRepo,
		Campaigns:    campaignService,
	})
	progressService := service.NewProgressService(service.ProgressServiceConfig{
		Campaigns: campaignService,
		Donations: donationService,
		Events:    eventHub,
	})
	donationService.SetNotifier(progressService)

	// Initialize middleware state
	idempotencyStore := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{
		TTL:     cfg.Idempotency.TTL,
		Cleanup: cfg.Idempotency.Cleanup,
	})
	defer idempotencyStore.Stop()

	globals := []func(http.Handler) http.Handler{
		chimw.RealIP,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
	}
	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
			Rate:   cfg.RateLimit.Rate,
			Burst:  cfg.RateLimit.Burst,
			Window: cfg.RateLimit.Window,
		})
		defer rateLimiter.Stop()
		globals = append(globals, middleware.RateLimit(rateLimiter))
	}
	globals = append(globals,
		middleware.Idempotency(idempotencyStore),
		middleware.Compress,
	)

	// Create router and register routes
	router := handler.NewRouter(handler.Handlers{
		Health:     handler.NewHealthHandler(db),
		Recipients: handler.NewRecipientHandler(recipientService),
		Campaigns:  handler.NewCampaignHandler(campaignService, progressService),
		Donations:  handler.NewDonationHandler(donationService),
		Events:     handler.NewEventsHandler(eventHub, campaignService),
	}, globals...)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Open event streams would otherwise hold Shutdown until its timeout
	eventHub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
