package dailyreport

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const runTimeout = time.Minute

// Worker по расписанию отправляет оператору сводную статистику
type Worker struct {
	reporter   Reporter
	operatorID int64
	schedule   string
	logger     *slog.Logger
	cron       *cron.Cron
}

func NewWorker(reporter Reporter, operatorID int64, schedule string, location *time.Location, logger *slog.Logger) *Worker {
	if location == nil {
		location = time.UTC
	}
	return &Worker{
		reporter:   reporter,
		operatorID: operatorID,
		schedule:   schedule,
		logger:     logger,
		cron:       cron.New(cron.WithLocation(location)),
	}
}

func (w *Worker) Name() string {
	return "daily_report"
}

// Start ничего не планирует, если расписание пустое или оператор не задан
func (w *Worker) Start() error {
	if w.schedule == "" || w.operatorID == 0 {
		w.logger.Info("Ежедневный отчёт отключён",
			"schedule", w.schedule,
			"operator_configured", w.operatorID != 0)
		return nil
	}

	_, err := w.cron.AddFunc(w.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		if err := w.run(ctx); err != nil {
			w.logger.Error("Ежедневный отчёт не отправлен", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule daily report %q: %w", w.schedule, err)
	}

	w.cron.Start()
	return nil
}

func (w *Worker) Stop() {
	<-w.cron.Stop().Done()
}

func (w *Worker) run(ctx context.Context) error {
	w.logger.Info("Отправка ежедневного отчёта", "operator_id", w.operatorID)
	return w.reporter.Execute(ctx, w.operatorID)
}
