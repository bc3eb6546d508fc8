package environment

import (
	"context"
	"log/slog"
	"net/http"

	"flowershop-bot/internal/api"
	"flowershop-bot/internal/config"
)

type Servers struct {
	HTTP struct {
		Observability *http.Server
		API           *http.Server
	}
}

func newServers(ctx context.Context, cfg config.Config, logger *slog.Logger, clients *Clients, services *Services) *Servers {
	var servers Servers

	handlers := api.NewHandlers(
		cfg,
		services.Intake,
		services.Notifier,
		services.PhotoPrompt,
		services.Broadcasts,
		services.TelegramRouter,
		clients.TelegramBot,
		logger.With("component", "api"),
	)

	servers.HTTP.API = &http.Server{
		Addr:              cfg.APIAddr(),
		Handler:           api.NewRouter(handlers),
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
	}
	servers.HTTP.Observability = initObservability(ctx, logger.WithGroup("http"), clients.DB, cfg)

	return &servers
}
