package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"flowershop-bot/internal/config"
	"flowershop-bot/internal/telegram/pending"
)

func TestPhotoPromptRequest(t *testing.T) {
	f := newFixture(t)

	err := f.prompt.Request(context.Background(), PhotoPromptRequest{
		OrderID: "A1", TelegramUserID: testCustomerID, PhotoType: pending.PhotoBouquet,
	})
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}

	v, ok := f.registry.Get(pending.PhotoKey(testOperatorID, "A1", pending.PhotoBouquet))
	if !ok {
		t.Fatal("photo request is not registered")
	}
	req := v.(pending.PhotoRequest)
	if req.CustomerChatID != testCustomerID || req.PromptMessageID != 1001 {
		t.Errorf("request = %+v", req)
	}

	sent := f.bot.SentTo(testOperatorID)
	if len(sent) != 1 {
		t.Fatalf("sent %d messages", len(sent))
	}
	markup := sent[0].Markup.(tgbotapi.InlineKeyboardMarkup)
	if data := markup.InlineKeyboard[0][0].CallbackData; data == nil || *data != "cancel_photo_A1_bouquet" {
		t.Errorf("cancel button = %v", data)
	}
}

func TestPhotoPromptValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     PhotoPromptRequest
		admin   int64
		wantErr error
	}{
		{name: "unknown type", req: PhotoPromptRequest{OrderID: "A1", TelegramUserID: 1, PhotoType: "selfie"}, admin: testOperatorID, wantErr: ErrInvalidPhotoPrompt},
		{name: "no customer", req: PhotoPromptRequest{OrderID: "A1", PhotoType: pending.PhotoBouquet}, admin: testOperatorID, wantErr: ErrInvalidPhotoPrompt},
		{name: "no operator", req: PhotoPromptRequest{OrderID: "A1", TelegramUserID: 1, PhotoType: pending.PhotoBouquet}, wantErr: ErrOperatorNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.prompt.admin = NewAdminChecker(config.TelegramConfig{AdminID: tt.admin})

			err := f.prompt.Request(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if f.registry.Len() != 0 {
				t.Error("nothing must be registered")
			}
		})
	}
}
