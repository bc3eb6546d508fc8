package stats

import (
	"time"

	"flowershop-bot/internal/stories/orders"
)

const topProductsLimit = 3

type Period struct {
	Orders  int
	Revenue int64
}

type ProductSales struct {
	Name     string
	Quantity int
	Revenue  int64
}

type Report struct {
	TotalRevenue      int64
	TotalOrders       int
	AverageCheck      int64
	Customers         int
	Products          int
	AvailableProducts int

	Today Period
	Week  Period
	Month Period

	ByStatus    map[orders.Status]int
	TopProducts []ProductSales

	GeneratedAt time.Time
}

type Input struct {
	Orders    []*orders.Order
	Customers int
	Products  []*orders.Product
}
