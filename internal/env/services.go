package environment

import (
	"context"
	"log/slog"
	"time"

	"flowershop-bot/internal/config"
	"flowershop-bot/internal/localization"
	"flowershop-bot/internal/metrics"
	"flowershop-bot/internal/storage"
	"flowershop-bot/internal/stories/broadcast"
	"flowershop-bot/internal/stories/cashback"
	"flowershop-bot/internal/stories/customers"
	"flowershop-bot/internal/stories/orders"
	"flowershop-bot/internal/stories/stats"
	"flowershop-bot/internal/telegram"
	"flowershop-bot/internal/telegram/cmds"
	"flowershop-bot/internal/telegram/dispatch"
	"flowershop-bot/internal/telegram/pending"
	"flowershop-bot/internal/workers"
	"flowershop-bot/internal/workers/dailyreport"

	"github.com/pkg/errors"
)

type Services struct {
	TelegramRouter *telegram.Router
	Intake         *telegram.Intake
	Notifier       *telegram.Notifier
	PhotoPrompt    *telegram.PhotoPrompt
	Broadcasts     *telegram.Broadcasts
	WorkerManager  *workers.Manager
}

func newServices(
	ctx context.Context,
	clients *Clients,
	cfg *config.Config,
	registry *pending.Registry,
	m *metrics.Metrics,
	logger *slog.Logger,
) (*Services, error) {
	var s Services

	location := loadLocation(cfg.Timezone, logger)

	storageImpl := storage.New(clients.DB.DB, clients.DB.Driver(), cfg.TablePrefix())
	if cfg.DB.Migrate {
		if err := storageImpl.Migrate(ctx); err != nil {
			// База могла быть недоступна при старте, это не фатально
			logger.Warn("Не удалось применить схему БД", slog.Any("error", err))
		}
	}

	i18n, err := localization.NewService()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load translations")
	}

	customerService := customers.NewService(storageImpl, logger.With("component", "customers"))
	orderService := orders.NewService(storageImpl, logger.With("component", "orders"))
	cashbackService := cashback.NewService(storageImpl, orderService, logger.With("component", "cashback"))
	statsService := stats.NewService(storageImpl, location)

	adminChecker := telegram.NewAdminChecker(cfg.Telegram)
	bot := clients.TelegramBot

	engine := broadcast.NewService(
		telegram.NewBroadcastSender(bot),
		cfg.Broadcast.Delay,
		logger.With("component", "broadcast"),
		broadcast.WithObserver(m.BroadcastOutcome),
	)
	s.Broadcasts = telegram.NewBroadcasts(bot, customerService, engine, adminChecker, logger.With("component", "broadcast"))

	statsCommand := cmds.NewStatsCommand(bot, statsService)
	exportCommand := cmds.NewExportCommand(bot, storageImpl, location)

	routes := make([]string, 0, len(dispatch.Routes))
	for _, route := range dispatch.Routes {
		routes = append(routes, string(route))
	}
	m.InitRoutes(routes)

	s.TelegramRouter = telegram.NewRouter(
		bot,
		registry,
		adminChecker,
		customerService,
		orderService,
		i18n,
		s.Broadcasts,
		statsCommand,
		exportCommand,
		telegram.AppLinks{ClientURL: cfg.Apps.ClientURL, AdminURL: cfg.Apps.AdminURL},
		logger.With("component", "router"),
		telegram.WithRouteObserver(func(route dispatch.Route) {
			m.ObserveRoute(string(route))
		}),
	)

	s.Intake = telegram.NewIntake(
		bot,
		registry,
		adminChecker,
		customerService,
		i18n,
		location,
		cfg.Payment.QREnabled,
		logger.With("component", "intake"),
	)
	s.Notifier = telegram.NewNotifier(bot, i18n, cashbackService, logger.With("component", "notifier"))
	s.PhotoPrompt = telegram.NewPhotoPrompt(bot, registry, adminChecker, i18n, logger.With("component", "photo_prompt"))

	reportWorker := dailyreport.NewWorker(
		statsCommand,
		adminChecker.OperatorID(),
		cfg.Report.Cron,
		location,
		logger.With("component", "daily_report"),
	)
	s.WorkerManager = workers.NewManager(logger.With("component", "workers"), reportWorker)

	return &s, nil
}

func loadLocation(name string, logger *slog.Logger) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("Неизвестная таймзона, используется UTC", slog.String("timezone", name), slog.Any("error", err))
		return time.UTC
	}
	return location
}
