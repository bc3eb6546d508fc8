package api

import (
	"context"

	"flowershop-bot/internal/stories/broadcast"
	"flowershop-bot/internal/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type orderIntake interface {
	Submit(ctx context.Context, req telegram.OrderRequest) error
}

type statusNotifier interface {
	NotifyStatus(ctx context.Context, req telegram.StatusRequest) error
}

type photoPrompter interface {
	Request(ctx context.Context, req telegram.PhotoPromptRequest) error
}

type broadcaster interface {
	Run(ctx context.Context, recipients []broadcast.Recipient, variants broadcast.Variants) (broadcast.Result, error)
}

type updateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update)
}

type botGateway interface {
	Configured() bool
	SetWebhook(url string) (*tgbotapi.APIResponse, error)
	SetMenuButton(text, url string) (*tgbotapi.APIResponse, error)
}
