package environment

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"time"

	"flowershop-bot/internal/config"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const readinessTimeout = 2 * time.Second

type pinger interface {
	PingContext(ctx context.Context) error
}

func initObservability(
	_ context.Context,
	logger *slog.Logger,
	db pinger,
	cfg config.Config,
) *http.Server {
	return &http.Server{
		Handler:           observabilityMux(logger, db),
		Addr:              cfg.Observability.ADDR(),
		ReadTimeout:       cfg.Observability.ReadTimeout,
		WriteTimeout:      cfg.Observability.WriteTimeout,
		IdleTimeout:       cfg.Observability.IdleTimeout,
		ReadHeaderTimeout: cfg.Observability.ReadTimeout,
	}
}

func observabilityMux(logger *slog.Logger, db pinger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	})

	// readyz проверяет только хранилище: без бота сервис всё равно принимает заказы
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.Warn("Readiness check failed", slog.Any("error", err))
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, "database unavailable")
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Ready")
	})

	return mux
}
