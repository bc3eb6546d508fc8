package stats

import (
	"context"

	"flowershop-bot/internal/stories/orders"
)

type Storage interface {
	ListOrders(ctx context.Context) ([]*orders.Order, error)
	CountCustomers(ctx context.Context) (int, error)
	ListProducts(ctx context.Context) ([]*orders.Product, error)
}
