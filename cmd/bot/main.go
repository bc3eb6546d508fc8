package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	environment "flowershop-bot/internal/env"
	"flowershop-bot/internal/telegram"
)

func main() {
	ctx := context.Background()

	env, err := environment.Setup(ctx)
	if err != nil {
		log.Fatalf("Failed to setup environment: %v", err)
	}

	logger := env.Logger
	logger.Info("Starting flowershop-bot",
		slog.Bool("bot_configured", env.Clients.TelegramBot.Configured()),
		slog.Bool("admin_configured", env.Config.Telegram.AdminConfigured()))

	if env.Servers.HTTP.Observability != nil {
		go serve(logger, "observability", env.Servers.HTTP.Observability)
	}
	go serve(logger, "api", env.Servers.HTTP.API)

	startTelegramBot(env)

	if err := env.Services.WorkerManager.Start(); err != nil {
		logger.Error("Failed to start workers", slog.Any("error", err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Bot started", slog.String("addr", env.Servers.HTTP.API.Addr))
	<-quit

	logger.Info("Shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), env.Config.ShutdownDuration)
	defer cancel()

	env.Services.WorkerManager.Stop()

	if err := env.Servers.HTTP.API.Shutdown(shutdownCtx); err != nil {
		logger.Error("API server shutdown error", slog.Any("error", err))
	}
	if env.Servers.HTTP.Observability != nil {
		if err := env.Servers.HTTP.Observability.Shutdown(shutdownCtx); err != nil {
			logger.Error("Observability server shutdown error", slog.Any("error", err))
		}
	}

	for _, closer := range env.Closers {
		closer()
	}

	logger.Info("Application stopped")
}

func serve(logger *slog.Logger, name string, server *http.Server) {
	logger.Info("Starting HTTP server", slog.String("name", name), slog.String("addr", server.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("HTTP server error", slog.String("name", name), slog.Any("error", err))
	}
}

// startTelegramBot настраивает меню команд и вебхук. Ошибки не фатальны:
// без бота API продолжает принимать заказы.
func startTelegramBot(env *environment.Env) {
	logger := env.Logger
	bot := env.Clients.TelegramBot

	if !bot.Configured() {
		logger.Warn("Telegram bot не настроен, вебхук и команды пропущены")
		return
	}

	if err := env.Services.TelegramRouter.SetupBotCommands(); err != nil {
		logger.Error("Failed to setup bot commands", slog.Any("error", err))
	} else {
		logger.Info("Bot commands set up successfully")
	}

	webhookURL := env.Config.Telegram.WebhookURL
	if webhookURL == "" {
		logger.Info("TELEGRAM_WEBHOOK_URL не задан, вебхук настраивается через /api/setup-webhook")
		return
	}

	if _, err := telegram.EnsureWebhook(bot, webhookURL, logger); err != nil {
		logger.Error("Failed to setup webhook", slog.Any("error", err))
	}
}
