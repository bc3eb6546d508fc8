package telegram

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"flowershop-bot/internal/stories/broadcast"
)

func TestBroadcastSenderParseMode(t *testing.T) {
	tests := []struct {
		name      string
		content   broadcast.Content
		wantText  string
		wantParse string
	}{
		{
			name:      "text is html",
			content:   broadcast.Content{Text: "<b>Скидки</b>"},
			wantText:  "<b>Скидки</b>",
			wantParse: tgbotapi.ModeHTML,
		},
		{
			name:     "photo caption is plain",
			content:  broadcast.Content{PhotoFileID: "p", Caption: "розы < 5000 ₸"},
			wantText: "розы < 5000 ₸",
		},
		{
			name:     "video caption is plain",
			content:  broadcast.Content{VideoFileID: "v", Caption: "a & b"},
			wantText: "a & b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bot := &MockBotApi{}
			if err := NewBroadcastSender(bot).SendContent(context.Background(), 7, tt.content); err != nil {
				t.Fatalf("SendContent() error = %v", err)
			}
			if len(bot.SentMessages) != 1 {
				t.Fatalf("sent %d messages", len(bot.SentMessages))
			}

			var text, parseMode string
			switch v := bot.SentMessages[0].(type) {
			case tgbotapi.MessageConfig:
				text, parseMode = v.Text, v.ParseMode
			case tgbotapi.PhotoConfig:
				text, parseMode = v.Caption, v.ParseMode
			case tgbotapi.VideoConfig:
				text, parseMode = v.Caption, v.ParseMode
			default:
				t.Fatalf("unexpected message %T", v)
			}
			if text != tt.wantText || parseMode != tt.wantParse {
				t.Errorf("sent (%q, %q), want (%q, %q)", text, parseMode, tt.wantText, tt.wantParse)
			}
		})
	}
}
