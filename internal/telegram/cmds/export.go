package cmds

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"

	"flowershop-bot/internal/stories/orders"
	"flowershop-bot/internal/telegram/messages"
)

const exportSheet = "Заказы"

var exportHeaders = []string{
	"ID", "Дата", "Статус", "Клиент", "Телефон", "Telegram ID", "Товары", "Сумма, ₸", "Оплата подтверждена",
}

var statusTitles = map[orders.Status]string{
	orders.StatusPending:    "Ожидает",
	orders.StatusProcessing: "В работе",
	orders.StatusReady:      "Готов",
	orders.StatusDelivered:  "Доставлен",
	orders.StatusCancelled:  "Отменён",
}

type ExportCommand struct {
	bot      botAPI
	orders   ordersLister
	location *time.Location
	now      func() time.Time
}

func NewExportCommand(bot botAPI, orders ordersLister, location *time.Location) *ExportCommand {
	if location == nil {
		location = time.UTC
	}
	return &ExportCommand{
		bot:      bot,
		orders:   orders,
		location: location,
		now:      time.Now,
	}
}

func (c *ExportCommand) Execute(ctx context.Context, chatID int64) error {
	list, err := c.orders.ListOrders(ctx)
	if err != nil {
		_, _ = c.bot.Send(tgbotapi.NewMessage(chatID, messages.ExportError))
		return fmt.Errorf("list orders: %w", err)
	}

	data, err := c.Build(list)
	if err != nil {
		_, _ = c.bot.Send(tgbotapi.NewMessage(chatID, messages.ExportError))
		return fmt.Errorf("build xlsx: %w", err)
	}

	name := fmt.Sprintf("orders_%s.xlsx", c.now().In(c.location).Format("2006-01-02"))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = fmt.Sprintf("%s: %d", messages.ExportCaption, len(list))
	_, err = c.bot.Send(doc)
	return err
}

// Build собирает xlsx со всеми заказами
func (c *ExportCommand) Build(list []*orders.Order) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, header)
	}

	for i, o := range list {
		row := i + 2
		values := []interface{}{
			o.ID,
			o.CreatedAt.In(c.location).Format("02.01.2006 15:04"),
			statusTitle(o.Status),
			o.CustomerName,
			o.CustomerPhone,
			telegramID(o.TelegramUserID),
			itemsSummary(o.Items),
			o.Total,
			yesNo(o.PaymentConfirmed),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 14)
	_ = f.SetColWidth(exportSheet, "G", "G", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func statusTitle(s orders.Status) string {
	if t, ok := statusTitles[s]; ok {
		return t
	}
	return string(s)
}

func telegramID(id *int64) string {
	if id == nil {
		return ""
	}
	return fmt.Sprint(*id)
}

func itemsSummary(items []orders.Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", it.Name, it.Quantity))
	}
	return strings.Join(parts, ", ")
}

func yesNo(v bool) string {
	if v {
		return "да"
	}
	return "нет"
}
