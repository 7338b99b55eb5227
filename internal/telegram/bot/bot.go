package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/dermocheck/backend/internal/config"
	"github.com/dermocheck/backend/internal/telegram/handlers"
	"github.com/dermocheck/backend/internal/telegram/middleware"
	"github.com/dermocheck/backend/internal/telegram/render"
)

// Bot represents the Telegram bot
type Bot struct {
	api         *tgbotapi.BotAPI
	cfg         *config.TelegramConfig
	handler     *handlers.ConsultationHandler
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// New creates a new Telegram bot
func New(
	cfg *config.TelegramConfig,
	handler *handlers.ConsultationHandler,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	bot := &Bot{
		api:      api,
		cfg:      cfg,
		handler:  handler,
		logger:   logger,
		stopChan: make(chan struct{}),
	}

	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(logger, api)
	bot.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		api,
	)

	return bot, nil
}

// API exposes the underlying bot API for handler construction.
func (b *Bot) API() *tgbotapi.BotAPI {
	return b.api
}

// SetHandler attaches the consultation handler after construction.
func (b *Bot) SetHandler(handler *handlers.ConsultationHandler) {
	b.handler = handler
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	updates := b.api.GetUpdatesChan(u)
	b.updatesChan = updates

	ctx = ctxzap.ToContext(ctx, b.logger)

	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates
func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update := <-b.updatesChan:
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware processes update through middleware chain
func (b *Bot) handleUpdateWithMiddleware(update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(u3)
			})
		})
	})
}

// handleUpdate routes update to the consultation handler
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := ctxzap.ToContext(context.Background(), b.logger)

	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message != nil {
		b.handleMessage(ctx, update.Message)
		return
	}
}

// handleMessage handles incoming messages
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	msg := handlers.FromMessage(message)

	var err error
	if len(msg.Photos) > 0 {
		err = b.handler.HandlePhotos(ctx, msg)
	} else if msg.Text != "" {
		err = b.handler.HandleText(ctx, msg)
	} else {
		b.sendError(message.Chat.ID, "Je ne peux traiter que du texte et des photos.")
		return
	}

	if err != nil {
		ctxzap.Error(ctx, "message handler error",
			zap.Error(err),
			zap.Int64("user_id", msg.UserID),
		)
		b.sendError(message.Chat.ID, render.ErrGeneric)
	}
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()

	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("user_id", message.From.ID),
	)

	msg := handlers.FromMessage(message)

	var err error
	switch command {
	case "start":
		err = b.handler.HandleStart(ctx, msg)
	case "help":
		b.sendError(message.Chat.ID, render.MsgHelp)
	case "cancel":
		err = b.handler.Cancel(ctx, msg)
	case "dermatologues":
		err = b.handler.HandleFind(ctx, msg, message.CommandArguments())
	default:
		b.sendError(message.Chat.ID, "❌ Commande inconnue. Utilisez /help.")
	}

	if err != nil {
		ctxzap.Error(ctx, "command handler error",
			zap.Error(err),
			zap.String("command", command),
		)
		b.sendError(message.Chat.ID, render.ErrGeneric)
	}
}

// handleCallbackQuery handles callback button clicks
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	msg := handlers.FromCallback(query)

	// Answer immediately so Telegram does not mark the press as stale;
	// the actual turn may take seconds.
	b.answerCallback(query.ID, "")

	if err := b.handler.HandleCallback(ctx, msg); err != nil {
		ctxzap.Error(ctx, "callback handler error",
			zap.Error(err),
			zap.Int64("user_id", msg.UserID),
		)
		b.sendError(msg.ChatID, render.ErrGeneric)
	}
}

// sendError sends an error message
func (b *Bot) sendError(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send error message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// answerCallback answers a callback query
func (b *Bot) answerCallback(callbackID string, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		b.logger.Error("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}
