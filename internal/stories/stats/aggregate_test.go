package stats

import (
	"testing"
	"time"

	"flowershop-bot/internal/stories/orders"
)

func TestAggregate(t *testing.T) {
	almaty := time.FixedZone("Asia/Almaty", 5*60*60)
	// 10:00 по Алматы
	now := time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC)

	list := []*orders.Order{
		{
			ID: "1", Status: orders.StatusDelivered, Total: 10000,
			CreatedAt: time.Date(2025, 3, 10, 1, 0, 0, 0, almaty),
			Items:     []orders.Item{{Name: "Розы", Quantity: 5, Price: 2000}},
		},
		{
			// вчера вечером по Алматы
			ID: "2", Status: orders.StatusPending, Total: 3000,
			CreatedAt: time.Date(2025, 3, 9, 23, 30, 0, 0, almaty),
			Items:     []orders.Item{{Name: "Тюльпаны", Quantity: 3, Price: 1000}},
		},
		{
			ID: "3", Status: orders.StatusCancelled, Total: 2001,
			CreatedAt: now.AddDate(0, 0, -10),
			Items: []orders.Item{
				{Name: "Пионы", Quantity: 1, Price: 2001},
				{Name: "Тюльпаны", Quantity: 4, Price: 0},
			},
		},
		{
			ID: "4", Status: orders.StatusProcessing, Total: 500,
			CreatedAt: now.AddDate(0, 0, -40),
			Items:     []orders.Item{{Name: "Открытка", Quantity: 1, Price: 500}},
		},
	}
	products := []*orders.Product{
		{ID: 1, Name: "Розы", Available: true},
		{ID: 2, Name: "Тюльпаны", Available: false},
	}

	r := Aggregate(Input{Orders: list, Customers: 3, Products: products}, now, almaty)

	if r.TotalOrders != 4 || r.TotalRevenue != 15501 {
		t.Errorf("totals = (%d, %d), want (4, 15501)", r.TotalOrders, r.TotalRevenue)
	}
	if r.AverageCheck != 3875 {
		t.Errorf("average = %d, want 3875", r.AverageCheck)
	}
	if r.Customers != 3 || r.Products != 2 || r.AvailableProducts != 1 {
		t.Errorf("counts = %d/%d/%d", r.Customers, r.Products, r.AvailableProducts)
	}
	if r.Today != (Period{Orders: 1, Revenue: 10000}) {
		t.Errorf("today = %+v", r.Today)
	}
	if r.Week != (Period{Orders: 2, Revenue: 13000}) {
		t.Errorf("week = %+v", r.Week)
	}
	if r.Month != (Period{Orders: 3, Revenue: 15001}) {
		t.Errorf("month = %+v", r.Month)
	}

	wantStatus := map[orders.Status]int{
		orders.StatusPending:    1,
		orders.StatusProcessing: 1,
		orders.StatusReady:      0,
		orders.StatusDelivered:  1,
		orders.StatusCancelled:  1,
	}
	for st, n := range wantStatus {
		if r.ByStatus[st] != n {
			t.Errorf("status %s = %d, want %d", st, r.ByStatus[st], n)
		}
	}

	wantTop := []ProductSales{
		{Name: "Тюльпаны", Quantity: 7, Revenue: 3000},
		{Name: "Розы", Quantity: 5, Revenue: 10000},
		{Name: "Пионы", Quantity: 1, Revenue: 2001},
	}
	if len(r.TopProducts) != len(wantTop) {
		t.Fatalf("top products = %+v", r.TopProducts)
	}
	for i := range wantTop {
		if r.TopProducts[i] != wantTop[i] {
			t.Errorf("top[%d] = %+v, want %+v", i, r.TopProducts[i], wantTop[i])
		}
	}
}

func TestAggregateEmpty(t *testing.T) {
	r := Aggregate(Input{}, time.Now(), nil)
	if r.AverageCheck != 0 || len(r.TopProducts) != 0 {
		t.Errorf("empty report = %+v", r)
	}
}
