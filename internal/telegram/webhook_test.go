package telegram

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeWebhookGateway struct {
	current string
	infoErr error
	setResp *tgbotapi.APIResponse
	setErr  error
	setURLs []string
}

func (f *fakeWebhookGateway) GetWebhookInfo() (tgbotapi.WebhookInfo, error) {
	return tgbotapi.WebhookInfo{URL: f.current}, f.infoErr
}

func (f *fakeWebhookGateway) SetWebhook(url string) (*tgbotapi.APIResponse, error) {
	f.setURLs = append(f.setURLs, url)
	if f.setErr != nil {
		return nil, f.setErr
	}
	if f.setResp != nil {
		return f.setResp, nil
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func TestEnsureWebhook(t *testing.T) {
	const url = "https://shop.example.com/webhook"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name        string
		gw          *fakeWebhookGateway
		wantChanged bool
		wantErr     bool
		wantSets    int
	}{
		{name: "already registered", gw: &fakeWebhookGateway{current: url}},
		{name: "different url", gw: &fakeWebhookGateway{current: "https://old.example.com/webhook"}, wantChanged: true, wantSets: 1},
		{name: "no webhook yet", gw: &fakeWebhookGateway{}, wantChanged: true, wantSets: 1},
		{name: "info failure", gw: &fakeWebhookGateway{infoErr: errors.New("timeout")}, wantErr: true},
		{name: "set failure", gw: &fakeWebhookGateway{setErr: errors.New("timeout")}, wantErr: true, wantSets: 1},
		{
			name:     "telegram rejects url",
			gw:       &fakeWebhookGateway{setResp: &tgbotapi.APIResponse{Ok: false, Description: "bad webhook"}},
			wantErr:  true,
			wantSets: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed, err := EnsureWebhook(tt.gw, url, logger)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if len(tt.gw.setURLs) != tt.wantSets {
				t.Errorf("SetWebhook called %d times, want %d", len(tt.gw.setURLs), tt.wantSets)
			}
		})
	}
}
