package workers

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"
)

type fakeWorker struct {
	name     string
	startErr error
	journal  *[]string
}

func (w *fakeWorker) Start() error {
	if w.startErr != nil {
		return w.startErr
	}
	*w.journal = append(*w.journal, "start "+w.name)
	return nil
}

func (w *fakeWorker) Stop() {
	*w.journal = append(*w.journal, "stop "+w.name)
}

func (w *fakeWorker) Name() string { return w.name }

func TestManager(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name        string
		failOn      string
		wantErr     bool
		wantJournal []string
	}{
		{
			name:        "start and stop in reverse order",
			wantJournal: []string{"start a", "start b", "start c", "stop c", "stop b", "stop a"},
		},
		{
			name:        "failed start rolls back started workers",
			failOn:      "c",
			wantErr:     true,
			wantJournal: []string{"start a", "start b", "stop b", "stop a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var journal []string
			var list []Worker
			for _, name := range []string{"a", "b", "c"} {
				w := &fakeWorker{name: name, journal: &journal}
				if name == tt.failOn {
					w.startErr = errors.New("boom")
				}
				list = append(list, w)
			}

			m := NewManager(logger, list...)
			err := m.Start()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Start() error = %v, wantErr %v", err, tt.wantErr)
			}
			m.Stop()

			if !reflect.DeepEqual(journal, tt.wantJournal) {
				t.Errorf("journal = %v, want %v", journal, tt.wantJournal)
			}
		})
	}
}
