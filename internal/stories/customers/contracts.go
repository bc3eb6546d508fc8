package customers

import "context"

type Storage interface {
	GetCustomer(ctx context.Context, telegramUserID int64) (*Customer, error)
	// CreateCustomer не перезаписывает существующую запись, created=false если клиент уже был
	CreateCustomer(ctx context.Context, customer Customer) (created bool, err error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
}
