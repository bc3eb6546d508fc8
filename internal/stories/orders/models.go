package orders

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Statuses перечисляет статусы в порядке жизненного цикла заказа
var Statuses = []Status{StatusPending, StatusProcessing, StatusReady, StatusDelivered, StatusCancelled}

func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

var ErrOrderNotFound = errors.New("order not found")

type Item struct {
	ProductID *int64 `json:"product_id,omitempty"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

func (i Item) Sum() int64 {
	return i.Price * int64(i.Quantity)
}

type Order struct {
	ID               string
	Status           Status
	Total            int64
	Items            []Item
	TelegramUserID   *int64
	CustomerName     string
	CustomerPhone    string
	PaymentConfirmed bool
	CreatedAt        time.Time
}

type Product struct {
	ID        int64
	Name      string
	Stock     int
	Available bool
}

// Критерии поиска товара: по ID, либо по названию
type ProductCriteria struct {
	ID   *int64
	Name *string
}

// ConfirmResult - итог подтверждения оплаты
type ConfirmResult struct {
	Order *Order
	// FirstConfirmation ложно, если оплата уже была подтверждена ранее (повтор callback)
	FirstConfirmation bool
	StockUpdates      []StockUpdate
}

type StockUpdate struct {
	ProductID int64
	Name      string
	Before    int
	After     int
	Available bool
}

// NextStock списывает quantity со склада, не опускаясь ниже нуля.
// Товар с нулевым остатком скрывается.
func NextStock(stock, quantity int) (int, bool) {
	next := stock - quantity
	if next < 0 {
		next = 0
	}
	return next, next > 0
}
