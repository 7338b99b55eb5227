package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dermocheck/backend/internal/api"
	consultapi "github.com/dermocheck/backend/internal/api/consult"
	finderapi "github.com/dermocheck/backend/internal/api/finder"
	profileapi "github.com/dermocheck/backend/internal/api/profile"
	"github.com/dermocheck/backend/internal/config"
	"github.com/dermocheck/backend/internal/integration/gemini"
	"github.com/dermocheck/backend/internal/integration/places"
	"github.com/dermocheck/backend/internal/pkg/validator"
	"github.com/dermocheck/backend/internal/repository"
	"github.com/dermocheck/backend/internal/telegram"
	"github.com/dermocheck/backend/internal/telegram/state"
	consultuc "github.com/dermocheck/backend/internal/usecase/consult"
	finderuc "github.com/dermocheck/backend/internal/usecase/finder"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db)
	logger.Info("Repositories initialized")

	// Initialize external service connectors (with mock support)
	generator, placesConn, err := setupConnectors(ctx, cfg, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	// Initialize validators
	imageValidator := validator.NewImageValidator(cfg.ImageUploadCfg)
	logger.Info("Validators initialized")

	// Initialize use cases
	consultUC := consultuc.NewUsecase(cfg.ConsultCfg, generator, profileRepo, logger)
	finderUC := finderuc.NewUsecase(placesConn, logger)
	logger.Info("Use cases initialized")

	// Setup API handlers
	consultHandler := consultapi.NewHandler(consultUC, imageValidator)
	profileHandler := profileapi.NewHandler(consultUC)
	finderHandler := finderapi.NewHandler(finderUC)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(consultHandler, profileHandler, finderHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	// Setup database connection for the profile store
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	profileRepo := repository.NewProfileRepository(db)

	generator, placesConn, err := setupConnectors(ctx, cfg, logger)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	consultUC := consultuc.NewUsecase(cfg.ConsultCfg, generator, profileRepo, logger)
	finderUC := finderuc.NewUsecase(placesConn, logger)
	logger.Info("Use cases initialized")

	// Initialize Telegram bot
	bot, err := telegram.NewBot(&cfg.TelegramCfg, state.NewMemoryStorage(), consultUC, finderUC, logger)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}

// setupConnectors builds the model connectors, swapping in mocks for
// local development.
func setupConnectors(ctx context.Context, cfg *config.Config, logger *zap.Logger) (consultuc.Generator, finderuc.PlacesConnector, error) {
	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		return gemini.NewMockConnector(logger), places.NewMockConnector(logger), nil
	}

	logger.Info("Using real connectors for external services")
	generator, err := gemini.NewConnector(ctx, cfg.GeminiCfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create gemini connector: %w", err)
	}

	placesConn, err := places.NewConnector(ctx, cfg.GeminiCfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create places connector: %w", err)
	}

	return generator, placesConn, nil
}
