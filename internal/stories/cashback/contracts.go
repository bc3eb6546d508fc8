package cashback

import (
	"context"

	"flowershop-bot/internal/stories/orders"
)

type Storage interface {
	// CreditCashback в одной транзакции создаёт клиента при необходимости,
	// увеличивает баланс и число заказов и пишет запись в журнал.
	// Повторное начисление по тому же заказу ничего не меняет.
	CreditCashback(ctx context.Context, params CreditParams) (*CreditResult, error)
}

type OrderReader interface {
	GetOrder(ctx context.Context, id string) (*orders.Order, error)
}
