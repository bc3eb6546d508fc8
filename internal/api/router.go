package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"flowershop-bot/internal/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const maxBodySize = 1 << 20

type Handlers struct {
	cfg         config.Config
	intake      orderIntake
	notifier    statusNotifier
	photoPrompt photoPrompter
	broadcasts  broadcaster
	updates     updateHandler
	bot         botGateway
	logger      *slog.Logger
}

func NewHandlers(
	cfg config.Config,
	intake orderIntake,
	notifier statusNotifier,
	photoPrompt photoPrompter,
	broadcasts broadcaster,
	updates updateHandler,
	bot botGateway,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		cfg:         cfg,
		intake:      intake,
		notifier:    notifier,
		photoPrompt: photoPrompt,
		broadcasts:  broadcasts,
		updates:     updates,
		bot:         bot,
		logger:      logger,
	}
}

// NewRouter собирает HTTP API: вебхук Telegram, эндпоинты веб-приложений и статику
func NewRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/webhook", h.Webhook)
	if token := h.cfg.Telegram.BotToken; token != "" {
		r.Post("/bot"+token, h.Webhook)
	}
	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/send-order", h.SendOrder)
		r.Post("/notify-status", h.NotifyStatus)
		r.Post("/send-photo-prompt", h.SendPhotoPrompt)
		r.Post("/send-broadcast", h.SendBroadcast)
		r.Post("/setup-webhook", h.SetupWebhook)
		r.Get("/setup-menu-button", h.SetupMenuButton)
		r.Get("/config", h.Config)
		r.Get("/health", h.APIHealth)
	})

	if dir := h.cfg.HTTP.StaticDir; dir != "" {
		FileServer(r, "/", http.Dir(dir))
	}

	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("path", maskToken(r.URL.Path)),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}

// maskToken скрывает токен бота в пути /bot<token>
func maskToken(path string) string {
	if strings.HasPrefix(path, "/bot") && len(path) > len("/bot") {
		return "/bot***"
	}
	return path
}
