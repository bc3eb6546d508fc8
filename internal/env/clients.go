package environment

import (
	"context"
	"log/slog"
	"time"

	"flowershop-bot/internal/config"
	"flowershop-bot/internal/infra/database"
	"flowershop-bot/internal/infra/telegram"
	"flowershop-bot/internal/metrics"
)

type Clients struct {
	DB          *database.DB
	TelegramBot *telegram.Client
}

func newClients(ctx context.Context, cfg config.Config, logger *slog.Logger, m *metrics.Metrics) (*Clients, error) {
	db, err := provideDB(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Clients{
		DB:          db,
		TelegramBot: provideTelegramBot(cfg, logger, m),
	}, nil
}

func provideDB(ctx context.Context, cfg config.Config, logger *slog.Logger) (*database.DB, error) {
	maxLifetimeStr := cfg.DB.MaxLifetime
	if maxLifetimeStr == "" {
		maxLifetimeStr = "5m"
	}
	maxLifetime, err := time.ParseDuration(maxLifetimeStr)
	if err != nil {
		return nil, err
	}

	opts := []database.Option{
		database.WithDriver(cfg.DB.Driver),
		database.WithDSN(cfg.DB.DSN),
		database.WithMaxOpenConns(cfg.DB.MaxOpenConns),
		database.WithMaxIdleConns(cfg.DB.MaxIdleConns),
		database.WithConnMaxLifetime(maxLifetime),
	}

	db, err := database.New(ctx, opts...)
	if db == nil {
		return nil, err
	}
	if err != nil {
		// Хранилище недоступно: бот работает, зависящая от базы логика деградирует
		logger.Warn("База данных недоступна", slog.String("driver", cfg.DB.Driver), slog.Any("error", err))
	}
	return db, nil
}

func provideTelegramBot(cfg config.Config, logger *slog.Logger, m *metrics.Metrics) *telegram.Client {
	logger = logger.With("component", "telegram")
	hook := telegram.WithErrorHook(m.OutboundError)

	if !cfg.Telegram.BotConfigured() {
		logger.Warn("TELEGRAM_BOT_TOKEN не задан, исходящие сообщения отключены")
		return telegram.NewDisabledClient(logger, hook)
	}

	client, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.RateLimit, logger, hook)
	if err != nil {
		logger.Error("Не удалось подключиться к Telegram, исходящие сообщения отключены", slog.Any("error", err))
		return telegram.NewDisabledClient(logger, hook)
	}
	return client
}
