package telegram

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestDisabledClient(t *testing.T) {
	var failed []string
	c := NewDisabledClient(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithErrorHook(func(method string) { failed = append(failed, method) }),
	)
	defer c.Stop()

	if c.Configured() {
		t.Fatal("client without token must not be configured")
	}

	calls := []struct {
		name string
		call func() error
	}{
		{name: "send", call: func() error {
			_, err := c.Send(tgbotapi.NewMessage(1, "hi"))
			return err
		}},
		{name: "request", call: func() error {
			_, err := c.Request(tgbotapi.NewCallback("cb", ""))
			return err
		}},
		{name: "set webhook", call: func() error {
			_, err := c.SetWebhook("https://shop.example.com/webhook")
			return err
		}},
		{name: "webhook info", call: func() error {
			_, err := c.GetWebhookInfo()
			return err
		}},
		{name: "menu button", call: func() error {
			_, err := c.SetMenuButton("🌸", "https://shop.example.com")
			return err
		}},
	}

	for _, tt := range calls {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, ErrBotNotConfigured) {
				t.Errorf("err = %v, want ErrBotNotConfigured", err)
			}
		})
	}

	if len(failed) != len(calls) {
		t.Errorf("error hook called %d times, want %d: %v", len(failed), len(calls), failed)
	}
}
