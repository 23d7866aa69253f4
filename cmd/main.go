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

	"github.com/gmfurlan/bolao-backend/config"
	"github.com/gmfurlan/bolao-backend/db"
	"github.com/gmfurlan/bolao-backend/handlers"
	"github.com/gmfurlan/bolao-backend/repositories"
	"github.com/gmfurlan/bolao-backend/routes"
	"github.com/gmfurlan/bolao-backend/services"
	"github.com/gmfurlan/bolao-backend/storage"
	"github.com/go-chi/chi/v5"
)

const (
	dbConnectTimeout = 5 * time.Second
	shutdownTimeout  = 15 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	database, err := db.Connect(cfg.DatabaseURL, dbConnectTimeout)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer database.Close()
	logger.Info("database connection established")

	var flagUploader storage.FileUploader
	if cfg.FlagStorageEnabled() {
		flagUploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("flag storage enabled", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Warn("flag storage disabled: R2 configuration incomplete")
	}

	// Repositories
	userRepo := repositories.NewPostgresUserRepository(database)
	teamRepo := repositories.NewPostgresTeamRepository(database)
	groupRepo := repositories.NewPostgresGroupRepository(database)
	matchRepo := repositories.NewPostgresMatchRepository(database)
	matchPredictionRepo := repositories.NewPostgresMatchPredictionRepository(database)
	groupPredictionRepo := repositories.NewPostgresGroupPredictionRepository(database)
	finalPredictionRepo := repositories.NewPostgresFinalPredictionRepository(database)
	groupResultRepo := repositories.NewPostgresGroupResultRepository(database)
	tournamentResultRepo := repositories.NewPostgresTournamentResultRepository(database)
	ledgerRepo := repositories.NewPostgresLedgerRepository(database)

	// Services
	scoringService := services.NewScoringService(
		matchRepo,
		matchPredictionRepo,
		groupResultRepo,
		groupPredictionRepo,
		tournamentResultRepo,
		finalPredictionRepo,
		ledgerRepo,
		logger,
	)
	rankingService := services.NewRankingService(
		userRepo,
		matchRepo,
		matchPredictionRepo,
		groupResultRepo,
		groupPredictionRepo,
		tournamentResultRepo,
		finalPredictionRepo,
	)
	authService := services.NewAuthService(userRepo)
	teamService := services.NewTeamService(teamRepo, flagUploader)
	groupService := services.NewGroupService(groupRepo, groupResultRepo, scoringService)
	matchService := services.NewMatchService(matchRepo, scoringService)
	tournamentService := services.NewTournamentService(tournamentResultRepo, scoringService)
	predictionService := services.NewPredictionService(
		matchRepo,
		groupRepo,
		matchPredictionRepo,
		groupPredictionRepo,
		finalPredictionRepo,
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	teamHandler := handlers.NewTeamHandler(teamService)
	groupHandler := handlers.NewGroupHandler(groupService)
	matchHandler := handlers.NewMatchHandler(matchService)
	predictionHandler := handlers.NewPredictionHandler(predictionService)
	rankingHandler := handlers.NewRankingHandler(rankingService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)

	router := chi.NewRouter()
	routes.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		teamHandler,
		groupHandler,
		matchHandler,
		predictionHandler,
		rankingHandler,
		tournamentHandler,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.Int("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
