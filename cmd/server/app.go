package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tranqv/storefront-api/internal/config"
	"github.com/tranqv/storefront-api/internal/platform/logger"
	"github.com/tranqv/storefront-api/internal/platform/minio"
	"github.com/tranqv/storefront-api/internal/platform/mongo"
	"github.com/tranqv/storefront-api/internal/service/auth"
	"github.com/tranqv/storefront-api/internal/service/catalog"
	"github.com/tranqv/storefront-api/internal/service/user"
)

// application holds the shared dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	db *mongo.Mongo

	tokenService   auth.TokenService
	authService    *auth.Service
	catalogService *catalog.Service
	userService    *user.Service
}

// initializeApp loads configuration, connects the backing stores and
// builds the service layer.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server)
	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := mongo.New(ctx, cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	media, err := minio.New(ctx, cfg.Media)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to media storage: %w", err)
	}

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	return &application{
		config:         cfg,
		logger:         log,
		db:             db,
		tokenService:   tokenService,
		authService:    auth.NewService(db, tokenService, auth.NewBcryptHasher()),
		catalogService: catalog.NewService(db.Products(), db.Categories(), media),
		userService:    user.NewService(db),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup(ctx context.Context) {
	if err := app.db.Close(ctx); err != nil {
		app.logger.Error("failed to close mongodb connection", "error", err)
	}
}
