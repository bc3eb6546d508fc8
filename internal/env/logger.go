package environment

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"flowershop-bot/internal/config"
)

func initLogger(cfg config.Config) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

// newLogger пишет текстом при ENV=local и JSON в остальных окружениях
func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Logger.Level)}

	var handler slog.Handler
	if cfg.Env == "local" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler).With("project", cfg.ProjectType)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
