package broadcast

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

type recordingSender struct {
	sent   map[int64]Content
	failOn map[int64]bool
}

func (s *recordingSender) SendContent(_ context.Context, chatID int64, c Content) error {
	if s.failOn[chatID] {
		return errors.New("chat not found")
	}
	s.sent[chatID] = c
	return nil
}

func TestSplitVariants(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantRu string
		wantKk string
	}{
		{name: "two variants", input: "Скидки!\n---\nЖеңілдіктер!", wantRu: "Скидки!", wantKk: "Жеңілдіктер!"},
		{name: "separator with spaces", input: "Привет\r\n  ---  \r\nСәлем", wantRu: "Привет", wantKk: "Сәлем"},
		{name: "no separator", input: "Только русский", wantRu: "Только русский", wantKk: "Только русский"},
		{name: "dashes inside a line are text", input: "a --- b", wantRu: "a --- b", wantKk: "a --- b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := SplitVariants(tt.input)
			if v.Ru.Text != tt.wantRu || v.Kk.Text != tt.wantKk {
				t.Errorf("SplitVariants(%q) = (%q, %q), want (%q, %q)",
					tt.input, v.Ru.Text, v.Kk.Text, tt.wantRu, tt.wantKk)
			}
		})
	}
}

func TestVariantsFor(t *testing.T) {
	v := TextVariants("Привет", "Сәлем")
	for code, want := range map[string]string{"kk": "Сәлем", "KK": "Сәлем", " kk": "Сәлем", "ru": "Привет", "en": "Привет", "": "Привет"} {
		if got := v.For(code).Text; got != want {
			t.Errorf("For(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestSendSkipsRecipientsWithoutChat(t *testing.T) {
	sender := &recordingSender{sent: map[int64]Content{}, failOn: map[int64]bool{3: true}}

	var sleeps []time.Duration
	outcomes := map[string]int{}
	svc := NewService(sender, 50*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithSleep(func(d time.Duration) { sleeps = append(sleeps, d) }),
		WithObserver(func(o string) { outcomes[o]++ }),
	)

	recipients := []Recipient{
		{ChatID: 1, LanguageCode: "kk"},
		{ChatID: 0, LanguageCode: "ru"},
		{ChatID: 2, LanguageCode: "en"},
		{ChatID: 3},
		{ChatID: 0},
		{ChatID: 4, LanguageCode: "ru"},
	}

	res := svc.Send(context.Background(), recipients, TextVariants("Привет", "Сәлем"))

	// N=6, K=2 без чата, 1 ошибка
	if res.Total != 6 || res.Skipped != 2 || res.Errors != 1 || res.Sent != 3 {
		t.Fatalf("result = %+v", res)
	}
	if res.Sent != res.Total-res.Skipped-res.Errors {
		t.Errorf("sent must equal total-skipped-errors")
	}
	if sender.sent[1].Text != "Сәлем" {
		t.Errorf("kk recipient got %q", sender.sent[1].Text)
	}
	if sender.sent[2].Text != "Привет" || sender.sent[4].Text != "Привет" {
		t.Error("non-kk recipients must get russian text")
	}
	if outcomes[OutcomeSent] != 3 || outcomes[OutcomeError] != 1 || outcomes[OutcomeSkipped] != 2 {
		t.Errorf("outcomes = %v", outcomes)
	}
	if len(sleeps) != 3 {
		t.Errorf("sleeps = %d, want 3", len(sleeps))
	}
}

func TestSendStopsOnCancelledContext(t *testing.T) {
	sender := &recordingSender{sent: map[int64]Content{}}
	svc := NewService(sender, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := svc.Send(ctx, []Recipient{{ChatID: 1}, {ChatID: 2}}, Same(Content{Text: "x"}))
	if res.Sent != 0 || len(sender.sent) != 0 {
		t.Errorf("nothing must be sent after cancel: %+v", res)
	}
}
