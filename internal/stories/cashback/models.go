package cashback

import "time"

const (
	// Percent - доля кэшбэка от суммы доставленного заказа
	Percent = 5

	TypeEarned = "earned"
)

type Transaction struct {
	ID             int64
	TelegramUserID int64
	OrderID        string
	Type           string
	Amount         int64
	BalanceAfter   int64
	CreatedAt      time.Time
}

type CreditParams struct {
	TelegramUserID int64
	OrderID        string
	Amount         int64
}

type CreditResult struct {
	// Applied ложно, если кэшбэк за этот заказ уже был начислен
	Applied      bool
	Amount       int64
	BalanceAfter int64
}

// Compute считает кэшбэк с округлением вниз до целого тенге
func Compute(total int64) int64 {
	if total <= 0 {
		return 0
	}
	return total * Percent / 100
}
