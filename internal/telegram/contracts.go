package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"flowershop-bot/internal/stories/broadcast"
	"flowershop-bot/internal/stories/cashback"
	"flowershop-bot/internal/stories/customers"
	"flowershop-bot/internal/stories/orders"
)

type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type translator interface {
	Get(lang, key string, params map[string]interface{}) string
	Bilingual(key string, params map[string]interface{}) string
}

type customerService interface {
	EnsureCustomer(ctx context.Context, customer customers.Customer) (bool, error)
	Language(ctx context.Context, telegramUserID int64) string
	ListCustomers(ctx context.Context) ([]*customers.Customer, error)
}

type orderService interface {
	GetOrder(ctx context.Context, id string) (*orders.Order, error)
	ConfirmPayment(ctx context.Context, orderID string) (*orders.ConfirmResult, error)
}

type cashbackService interface {
	CreditForOrder(ctx context.Context, telegramUserID int64, orderID string) (*cashback.CreditResult, error)
}

type broadcastService interface {
	Send(ctx context.Context, recipients []broadcast.Recipient, variants broadcast.Variants) broadcast.Result
}

type operatorCommand interface {
	Execute(ctx context.Context, chatID int64) error
}

type statsCommand interface {
	operatorCommand
	Refresh(ctx context.Context, chatID int64, messageID int) error
}
