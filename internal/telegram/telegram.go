package telegram

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dermocheck/backend/internal/config"
	"github.com/dermocheck/backend/internal/telegram/bot"
	"github.com/dermocheck/backend/internal/telegram/handlers"
	"github.com/dermocheck/backend/internal/telegram/keyboard"
	"github.com/dermocheck/backend/internal/telegram/state"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	storage state.Storage,
	consultUC handlers.ConsultUsecase,
	finderUC handlers.FinderUsecase,
	logger *zap.Logger,
) (Bot, error) {
	stateManager := state.NewManager(storage)

	b, err := bot.New(cfg, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	handler := handlers.NewConsultationHandler(
		b.API(),
		stateManager,
		consultUC,
		finderUC,
		keyboard.NewBuilder(),
		logger,
	)
	b.SetHandler(handler)

	logger.Info("telegram bot initialized successfully")

	return b, nil
}
