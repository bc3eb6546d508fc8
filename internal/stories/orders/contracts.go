package orders

import "context"

type Repository interface {
	GetOrder(ctx context.Context, id string) (*Order, error)
	// ConfirmOrderPayment атомарно выставляет payment_confirmed и статус.
	// Возвращает false, если оплата уже была подтверждена.
	ConfirmOrderPayment(ctx context.Context, id string, status Status) (bool, error)
	GetProduct(ctx context.Context, criteria ProductCriteria) (*Product, error)
	UpdateProductStock(ctx context.Context, id int64, stock int, available bool) error
}
