package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	qrcode "github.com/skip2/go-qrcode"

	"flowershop-bot/internal/localization"
	"flowershop-bot/internal/telegram/pending"
)

var ErrInvalidOrder = errors.New("invalid order")

const (
	DeliveryTypeDelivery = "delivery"
	DeliveryTypePickup   = "pickup"

	summarySeparator = "━━━━━━━━━━━━━━━━━━━━"
	qrSize           = 256
)

type OrderItem struct {
	Name     string
	Quantity int
	Price    int64
}

// OrderRequest - заказ, оформленный в веб-приложении магазина
type OrderRequest struct {
	OrderID          string
	Date             string
	CustomerName     string
	CustomerPhone    string
	CustomerComment  string
	DeliveryType     string
	DeliveryAddress  string
	DeliveryDate     string
	DeliveryTime     string
	TelegramUserID   int64
	TelegramUsername string
	Items            []OrderItem
	Subtotal         int64
	CashbackUsed     int64
	Total            int64
	PaymentEnabled   bool
	KaspiPhone       string
	KaspiLink        string
}

func (r OrderRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.OrderID) == "":
		return fmt.Errorf("%w: orderId is required", ErrInvalidOrder)
	case len(r.Items) == 0:
		return fmt.Errorf("%w: items are required", ErrInvalidOrder)
	case r.Total <= 0:
		return fmt.Errorf("%w: total must be positive", ErrInvalidOrder)
	}
	return nil
}

// Intake уведомляет оператора о новом заказе и просит клиента оплатить его
type Intake struct {
	bot       botAPI
	registry  pending.Store
	admin     *AdminChecker
	customers customerService
	i18n      translator
	location  *time.Location
	qrEnabled bool
	logger    *slog.Logger
}

func NewIntake(
	bot botAPI,
	registry pending.Store,
	admin *AdminChecker,
	customers customerService,
	i18n translator,
	location *time.Location,
	qrEnabled bool,
	logger *slog.Logger,
) *Intake {
	if location == nil {
		location = time.UTC
	}
	return &Intake{
		bot:       bot,
		registry:  registry,
		admin:     admin,
		customers: customers,
		i18n:      i18n,
		location:  location,
		qrEnabled: qrEnabled,
		logger:    logger,
	}
}

// Submit отправляет сводку оператору и, при онлайн-оплате, реквизиты клиенту.
// Статус заказа не меняется.
func (i *Intake) Submit(ctx context.Context, req OrderRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if !i.admin.Configured() {
		return ErrOperatorNotConfigured
	}

	summary := tgbotapi.NewMessage(i.admin.OperatorID(), i.OperatorSummary(req))
	summary.ParseMode = tgbotapi.ModeHTML
	if _, err := i.bot.Send(summary); err != nil {
		return fmt.Errorf("send order summary: %w", err)
	}

	if !req.PaymentEnabled || req.TelegramUserID == 0 {
		return nil
	}

	if err := i.sendPaymentRequest(ctx, req); err != nil {
		return fmt.Errorf("send payment request: %w", err)
	}

	i.registry.Put(pending.OrderKey(req.OrderID), pending.OrderContext{
		CustomerChatID:   req.TelegramUserID,
		ShortOrderNumber: req.OrderID,
		TotalAmount:      req.Total,
		CustomerName:     req.CustomerName,
	})
	i.registry.Put(pending.WaitingKey(req.TelegramUserID), pending.WaitingReceipt{OrderID: req.OrderID})

	i.logger.Info("Ожидается оплата заказа",
		"order_id", req.OrderID,
		"telegram_user_id", req.TelegramUserID,
		"total", req.Total)
	return nil
}

func (i *Intake) sendPaymentRequest(ctx context.Context, req OrderRequest) error {
	lang := i.customers.Language(ctx, req.TelegramUserID)
	text := i.PaymentText(req)
	keyboard := paymentKeyboard(
		i.i18n.Get(lang, "payment.pay_button", nil),
		req.KaspiLink,
		i.i18n.Get(lang, "payment.confirm_button", nil),
		req.OrderID,
	)

	if i.qrEnabled && req.KaspiLink != "" {
		png, err := qrcode.Encode(req.KaspiLink, qrcode.Medium, qrSize)
		if err == nil {
			photo := tgbotapi.NewPhoto(req.TelegramUserID, tgbotapi.FileBytes{
				Name:  "kaspi_" + req.OrderID + ".png",
				Bytes: png,
			})
			photo.Caption = text
			photo.ParseMode = tgbotapi.ModeHTML
			photo.ReplyMarkup = keyboard
			_, err = i.bot.Send(photo)
			return err
		}
		i.logger.Warn("Не удалось создать QR-код оплаты", "order_id", req.OrderID, "error", err)
	}

	msg := tgbotapi.NewMessage(req.TelegramUserID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = keyboard
	_, err := i.bot.Send(msg)
	return err
}

// PaymentText - реквизиты на русском и казахском в одном сообщении
func (i *Intake) PaymentText(req OrderRequest) string {
	params := map[string]interface{}{
		"order": html.EscapeString(req.OrderID),
		"total": req.Total,
	}

	parts := make([]string, 0, 2)
	for _, lang := range []string{localization.LangRussian, localization.LangKazakh} {
		var b strings.Builder
		b.WriteString(i.i18n.Get(lang, "payment.header", params))
		if req.KaspiPhone != "" {
			fmt.Fprintf(&b, "\n\n📱 <b>Kaspi:</b>\n+7%s", html.EscapeString(req.KaspiPhone))
		}
		b.WriteString("\n\n")
		b.WriteString(i.i18n.Get(lang, "payment.footer", params))
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n\n")
}

// OperatorSummary - сводка нового заказа для оператора
func (i *Intake) OperatorSummary(req OrderRequest) string {
	esc := html.EscapeString
	var b strings.Builder

	b.WriteString("🆕 <b>НОВЫЙ ЗАКАЗ!</b>\n\n")
	fmt.Fprintf(&b, "📋 Заказ #%s\n", esc(req.OrderID))
	fmt.Fprintf(&b, "📅 %s\n\n", esc(i.formatDate(req.Date)))

	b.WriteString("<b>👤 Клиент:</b>\n")
	fmt.Fprintf(&b, "Имя: %s\n", esc(req.CustomerName))
	fmt.Fprintf(&b, "Телефон: +7%s\n", esc(req.CustomerPhone))
	if req.TelegramUsername != "" {
		fmt.Fprintf(&b, "Telegram: @%s\n", esc(req.TelegramUsername))
	}
	if req.TelegramUserID != 0 {
		fmt.Fprintf(&b, "ID: %d\n", req.TelegramUserID)
	}

	if req.DeliveryType == DeliveryTypeDelivery {
		b.WriteString("\n<b>🚚 Доставка:</b>\n")
		fmt.Fprintf(&b, "📍 Адрес: %s\n", esc(req.DeliveryAddress))
		fmt.Fprintf(&b, "📅 Дата: %s\n", esc(req.DeliveryDate))
		fmt.Fprintf(&b, "⏰ Время: %s\n", esc(req.DeliveryTime))
	} else {
		b.WriteString("\n<b>🏪 Самовывоз</b>\n")
	}

	if req.CustomerComment != "" {
		fmt.Fprintf(&b, "\n💬 Комментарий: %s\n", esc(req.CustomerComment))
	}

	b.WriteString("\n<b>💐 Товары:</b>\n")
	for _, item := range req.Items {
		fmt.Fprintf(&b, "• %s x%d = %d ₸\n", esc(item.Name), item.Quantity, item.Price*int64(item.Quantity))
	}

	b.WriteString("\n" + summarySeparator)
	b.WriteString("\n<b>💳 ОПЛАТА:</b>\n")
	if req.CashbackUsed > 0 {
		fmt.Fprintf(&b, "\n<b>Сумма товаров:</b> %d ₸", req.Subtotal)
		fmt.Fprintf(&b, "\n<b>💰 Оплачено кэшбеком:</b> <code>-%d ₸</code>", req.CashbackUsed)
		fmt.Fprintf(&b, "\n<b>💵 К оплате деньгами:</b> <code>%d ₸</code>", req.Total)
		b.WriteString("\n\n✅ Клиент использовал кэшбек")
	} else {
		fmt.Fprintf(&b, "\n<b>💵 К оплате:</b> <code>%d ₸</code>", req.Total)
		b.WriteString("\n\n💰 Кэшбек не использован")
	}
	b.WriteString("\n" + summarySeparator)

	if req.PaymentEnabled {
		b.WriteString("\n\n⏰ <b>Статус:</b> Ожидает оплаты")
	}

	return b.String()
}

// formatDate переводит дату заказа в часовой пояс магазина, нераспознанную оставляет как есть
func (i *Intake) formatDate(raw string) string {
	if raw == "" {
		return time.Now().In(i.location).Format("02.01.2006, 15:04")
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(i.location).Format("02.01.2006, 15:04")
		}
	}
	return raw
}
