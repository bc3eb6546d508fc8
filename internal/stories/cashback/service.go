package cashback

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"flowershop-bot/internal/stories/orders"
)

type Service struct {
	storage Storage
	orders  OrderReader
	logger  *slog.Logger
}

func NewService(storage Storage, orders OrderReader, logger *slog.Logger) *Service {
	return &Service{storage: storage, orders: orders, logger: logger}
}

// CreditForOrder начисляет кэшбэк за доставленный заказ
func (s *Service) CreditForOrder(ctx context.Context, telegramUserID int64, orderID string) (*CreditResult, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "get order")
	}
	if order == nil {
		return nil, orders.ErrOrderNotFound
	}

	if order.Total <= 0 {
		return &CreditResult{}, nil
	}

	// доставка засчитывается клиенту даже при нулевом кэшбэке
	amount := Compute(order.Total)
	result, err := s.storage.CreditCashback(ctx, CreditParams{
		TelegramUserID: telegramUserID,
		OrderID:        orderID,
		Amount:         amount,
	})
	if err != nil {
		return nil, errors.Wrap(err, "credit cashback")
	}

	if result.Applied {
		s.logger.Info("Начислен кэшбэк",
			"telegram_user_id", telegramUserID,
			"order_id", orderID,
			"amount", amount,
			"balance", result.BalanceAfter)
	}
	return result, nil
}
