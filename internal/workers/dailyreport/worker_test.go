package dailyreport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

type fakeReporter struct {
	chats []int64
	err   error
}

func (f *fakeReporter) Execute(_ context.Context, chatID int64) error {
	f.chats = append(f.chats, chatID)
	return f.err
}

func newTestWorker(reporter Reporter, operatorID int64, schedule string) *Worker {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	location, _ := time.LoadLocation("Asia/Almaty")
	return NewWorker(reporter, operatorID, schedule, location, logger)
}

func TestRunSendsReportToOperator(t *testing.T) {
	reporter := &fakeReporter{}
	w := newTestWorker(reporter, 100, "0 21 * * *")

	if err := w.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(reporter.chats) != 1 || reporter.chats[0] != 100 {
		t.Errorf("reports sent to %v, want [100]", reporter.chats)
	}

	reporter.err = errors.New("telegram down")
	if err := w.run(context.Background()); err == nil {
		t.Error("run should return reporter error")
	}
}

func TestStart(t *testing.T) {
	tests := []struct {
		name        string
		operatorID  int64
		schedule    string
		wantErr     bool
		wantEntries int
	}{
		{name: "scheduled", operatorID: 100, schedule: "0 21 * * *", wantEntries: 1},
		{name: "empty schedule disables", operatorID: 100, schedule: "", wantEntries: 0},
		{name: "no operator disables", operatorID: 0, schedule: "0 21 * * *", wantEntries: 0},
		{name: "invalid schedule", operatorID: 100, schedule: "every evening", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorker(&fakeReporter{}, tt.operatorID, tt.schedule)

			err := w.Start()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Start() error = %v, wantErr %v", err, tt.wantErr)
			}
			defer w.Stop()

			if got := len(w.cron.Entries()); !tt.wantErr && got != tt.wantEntries {
				t.Errorf("entries = %d, want %d", got, tt.wantEntries)
			}
		})
	}
}
