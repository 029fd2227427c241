package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/torneos/esports-api/config"
	"github.com/torneos/esports-api/db"
	"github.com/torneos/esports-api/handlers"
	"github.com/torneos/esports-api/live"
	"github.com/torneos/esports-api/middleware"
	"github.com/torneos/esports-api/repositories"
	api "github.com/torneos/esports-api/routes"
	"github.com/torneos/esports-api/services"
	"github.com/torneos/esports-api/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	liveHub := live.NewHub(logger)
	go liveHub.Run()
	logger.Info("live match feed hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	gameRepo := repositories.NewPostgresGameRepository(dbConn)
	adminGameRepo := repositories.NewPostgresAdminGameRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	teamPlayerRepo := repositories.NewPostgresTeamPlayerRepository(dbConn)
	inscriptionRepo := repositories.NewPostgresInscriptionRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	participantRepo := repositories.NewPostgresParticipantRepository(dbConn)
	transmissionRepo := repositories.NewPostgresTransmissionRepository(dbConn)
	mediaRepo := repositories.NewPostgresMediaRepository(dbConn)
	contactRepo := repositories.NewPostgresContactRepository(dbConn)
	logger.Info("repositories initialized")

	// The superadmin account is reconciled on every boot so the credentials
	// in the environment are always the ones that work.
	if err := services.EnsureSuperadmin(context.Background(), userRepo, logger, cfg.SuperadminUsername, cfg.SuperadminPassword); err != nil {
		logger.Error("failed to ensure superadmin account", slog.Any("error", err))
		os.Exit(1)
	}

	authorizer := services.NewAuthorizer(adminGameRepo)

	authService := services.NewAuthService(userRepo)
	adminService := services.NewAdminService(userRepo, gameRepo, adminGameRepo, authorizer)
	gameService := services.NewGameService(gameRepo, uploader, authorizer)
	registrationService := services.NewRegistrationService(teamRepo, inscriptionRepo, teamPlayerRepo, userRepo, gameRepo, uploader, authorizer)
	tournamentService := services.NewTournamentService(tournamentRepo, gameRepo, matchRepo, participantRepo, authorizer)
	matchService := services.NewMatchService(matchRepo, participantRepo, tournamentRepo, authorizer, liveHub)
	transmissionService := services.NewTransmissionService(transmissionRepo, authorizer)
	mediaService := services.NewMediaService(mediaRepo, uploader, authorizer)
	contactService := services.NewContactService(contactRepo, authorizer)
	logger.Info("services initialized")

	authenticator := middleware.NewAuthenticator(cfg.JWTSecretKey)

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	adminHandler := handlers.NewAdminHandler(adminService)
	gameHandler := handlers.NewGameHandler(gameService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	matchHandler := handlers.NewMatchHandler(matchService)
	transmissionHandler := handlers.NewTransmissionHandler(transmissionService)
	mediaHandler := handlers.NewMediaHandler(mediaService)
	contactHandler := handlers.NewContactHandler(contactService)
	matchFeedHandler := handlers.NewMatchFeedHandler(liveHub)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		authenticator,
		authHandler,
		adminHandler,
		gameHandler,
		registrationHandler,
		tournamentHandler,
		matchHandler,
		transmissionHandler,
		mediaHandler,
		contactHandler,
		matchFeedHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
