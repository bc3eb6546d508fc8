package stats

import (
	"math"
	"sort"
	"time"

	"github.com/samber/lo"

	"flowershop-bot/internal/stories/orders"
)

// Aggregate строит отчёт по заказам. День отсчитывается от полуночи в loc,
// неделя и месяц - последние 7 и 30 суток от now.
func Aggregate(in Input, now time.Time, loc *time.Location) Report {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	report := Report{
		TotalOrders: len(in.Orders),
		Customers:   in.Customers,
		Products:    len(in.Products),
		AvailableProducts: lo.CountBy(in.Products, func(p *orders.Product) bool {
			return p.Available
		}),
		ByStatus:    make(map[orders.Status]int, len(orders.Statuses)),
		GeneratedAt: local,
	}

	report.TotalRevenue = revenue(in.Orders)
	if report.TotalOrders > 0 {
		report.AverageCheck = int64(math.Round(float64(report.TotalRevenue) / float64(report.TotalOrders)))
	}

	report.Today = period(in.Orders, midnight)
	report.Week = period(in.Orders, now.AddDate(0, 0, -7))
	report.Month = period(in.Orders, now.AddDate(0, 0, -30))

	for _, st := range orders.Statuses {
		report.ByStatus[st] = 0
	}
	for _, o := range in.Orders {
		report.ByStatus[o.Status]++
	}

	report.TopProducts = topProducts(in.Orders, topProductsLimit)
	return report
}

func revenue(list []*orders.Order) int64 {
	return lo.SumBy(list, func(o *orders.Order) int64 { return o.Total })
}

func period(list []*orders.Order, since time.Time) Period {
	inPeriod := lo.Filter(list, func(o *orders.Order, _ int) bool {
		return !o.CreatedAt.Before(since)
	})
	return Period{Orders: len(inPeriod), Revenue: revenue(inPeriod)}
}

func topProducts(list []*orders.Order, limit int) []ProductSales {
	sales := make(map[string]*ProductSales)
	var names []string
	for _, o := range list {
		for _, item := range o.Items {
			ps, ok := sales[item.Name]
			if !ok {
				ps = &ProductSales{Name: item.Name}
				sales[item.Name] = ps
				names = append(names, item.Name)
			}
			ps.Quantity += item.Quantity
			ps.Revenue += item.Sum()
		}
	}

	result := lo.Map(names, func(name string, _ int) ProductSales { return *sales[name] })
	// при равенстве сохраняется порядок первого появления
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Quantity > result[j].Quantity
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}
