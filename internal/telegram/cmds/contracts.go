package cmds

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"flowershop-bot/internal/stories/orders"
	"flowershop-bot/internal/stories/stats"
)

type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type statsService interface {
	Report(ctx context.Context) (*stats.Report, error)
}

type ordersLister interface {
	ListOrders(ctx context.Context) ([]*orders.Order, error)
}
