package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"

	"flowershop-bot/internal/stories/orders"
)

var (
	ErrInvalidStatusRequest = errors.New("userId, status and orderNumber are required")
	ErrUnknownStatus        = errors.New("unknown order status")
)

type StatusRequest struct {
	UserID      int64
	Status      string
	OrderNumber string
	ShopPhone   string
	// OrderID нужен для начисления кэшбека при доставке
	OrderID string
}

// Notifier сообщает клиенту о смене статуса заказа и начисляет кэшбек при доставке
type Notifier struct {
	bot      botAPI
	i18n     translator
	cashback cashbackService
	logger   *slog.Logger
}

func NewNotifier(bot botAPI, i18n translator, cashback cashbackService, logger *slog.Logger) *Notifier {
	return &Notifier{
		bot:      bot,
		i18n:     i18n,
		cashback: cashback,
		logger:   logger,
	}
}

func (n *Notifier) NotifyStatus(ctx context.Context, req StatusRequest) error {
	if req.UserID == 0 || req.Status == "" || req.OrderNumber == "" {
		return ErrInvalidStatusRequest
	}

	status := orders.Status(req.Status)
	if !status.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownStatus, req.Status)
	}

	contact := ""
	if req.ShopPhone != "" {
		contact = ": " + html.EscapeString(req.ShopPhone)
	}
	text := n.i18n.Bilingual("status."+string(status), map[string]interface{}{
		"order":   html.EscapeString(req.OrderNumber),
		"contact": contact,
	})

	if status == orders.StatusDelivered && req.OrderID != "" {
		text += n.cashbackNote(ctx, req)
	}

	if err := sendHTML(n.bot, req.UserID, text); err != nil {
		return fmt.Errorf("send status notification: %w", err)
	}
	return nil
}

// cashbackNote начисляет кэшбек и возвращает приписку к уведомлению.
// Ошибка начисления не мешает отправить уведомление.
func (n *Notifier) cashbackNote(ctx context.Context, req StatusRequest) string {
	result, err := n.cashback.CreditForOrder(ctx, req.UserID, req.OrderID)
	if err != nil {
		n.logger.Error("Ошибка начисления кэшбека",
			"order_id", req.OrderID,
			"telegram_user_id", req.UserID,
			"error", err)
		return ""
	}
	if !result.Applied || result.Amount <= 0 {
		return ""
	}

	n.logger.Info("Кэшбек начислен",
		"order_id", req.OrderID,
		"amount", result.Amount,
		"balance", result.BalanceAfter)
	return "\n\n" + n.i18n.Bilingual("cashback.earned", map[string]interface{}{"amount": result.Amount})
}
