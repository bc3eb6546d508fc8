package environment

import (
	"context"
	"fmt"
	"log/slog"

	"flowershop-bot/internal/config"
	"flowershop-bot/internal/metrics"
	"flowershop-bot/internal/telegram/pending"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sethvargo/go-envconfig"
)

type closer func()

type Env struct {
	Config   *config.Config
	Logger   *slog.Logger
	Servers  *Servers
	Clients  *Clients
	Services *Services

	Closers []closer
}

func Setup(ctx context.Context) (*Env, error) {
	// .env может отсутствовать
	_ = godotenv.Load()

	var cfg config.Config
	err := envconfig.Process(ctx, &cfg)
	if err != nil {
		return nil, fmt.Errorf("env processing: %w", err)
	}

	var e Env

	logger := initLogger(cfg)

	registry := pending.NewRegistry()
	m, err := metrics.New(prometheus.DefaultRegisterer, registry.Len)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	clients, err := newClients(ctx, cfg, logger, m)
	if err != nil {
		return nil, fmt.Errorf("newClients: %w", err)
	}

	services, err := newServices(ctx, clients, &cfg, registry, m, logger)
	if err != nil {
		return nil, fmt.Errorf("newServices: %w", err)
	}

	servers := newServers(ctx, cfg, logger, clients, services)

	e.Servers = servers
	e.Config = &cfg
	e.Logger = logger
	e.Clients = clients
	e.Services = services
	e.Closers = []closer{
		clients.TelegramBot.Stop,
		func() {
			if err := clients.DB.Close(); err != nil {
				logger.Error("Failed to close database", slog.Any("error", err))
			}
		},
	}

	return &e, nil
}
