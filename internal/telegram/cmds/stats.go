package cmds

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"flowershop-bot/internal/stories/orders"
	"flowershop-bot/internal/stories/stats"
	"flowershop-bot/internal/telegram/messages"
)

const (
	StatsRefreshCallback = "stats_refresh"
	separator            = "━━━━━━━━━━━━━━━━━━━━"
)

type StatsCommand struct {
	bot   botAPI
	stats statsService
}

func NewStatsCommand(bot botAPI, stats statsService) *StatsCommand {
	return &StatsCommand{
		bot:   bot,
		stats: stats,
	}
}

func (c *StatsCommand) Execute(ctx context.Context, chatID int64) error {
	report, err := c.stats.Report(ctx)
	if err != nil {
		_, _ = c.bot.Send(tgbotapi.NewMessage(chatID, messages.StatsError))
		return fmt.Errorf("get statistics: %w", err)
	}

	msg := tgbotapi.NewMessage(chatID, FormatReport(report))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = refreshKeyboard()
	_, err = c.bot.Send(msg)
	return err
}

func (c *StatsCommand) Refresh(ctx context.Context, chatID int64, messageID int) error {
	report, err := c.stats.Report(ctx)
	if err != nil {
		return fmt.Errorf("get statistics: %w", err)
	}

	keyboard := refreshKeyboard()
	edit := tgbotapi.NewEditMessageText(chatID, messageID, FormatReport(report))
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = &keyboard
	_, err = c.bot.Request(edit)
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		return nil
	}
	return err
}

func refreshKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Обновить", StatsRefreshCallback),
		),
	)
}

// FormatReport форматирует отчёт для оператора в HTML
func FormatReport(r *stats.Report) string {
	var text strings.Builder

	text.WriteString("📊 <b>СТАТИСТИКА ЦВЕТОЧНОЙ ЛАВКИ</b>\n\n")

	text.WriteString(separator + "\n📈 <b>ОБЩАЯ СТАТИСТИКА</b>\n\n")
	text.WriteString(fmt.Sprintf("💰 Общий доход: <b>%d ₸</b>\n", r.TotalRevenue))
	text.WriteString(fmt.Sprintf("📦 Всего заказов: <b>%d</b>\n", r.TotalOrders))
	text.WriteString(fmt.Sprintf("💵 Средний чек: <b>%d ₸</b>\n", r.AverageCheck))
	text.WriteString(fmt.Sprintf("👥 Клиентов: <b>%d</b>\n", r.Customers))
	text.WriteString(fmt.Sprintf("🌸 Товаров: <b>%d</b> (в наличии: %d)\n\n", r.Products, r.AvailableProducts))

	writePeriod(&text, "ЗА СЕГОДНЯ", r.Today)
	writePeriod(&text, "ЗА НЕДЕЛЮ", r.Week)
	writePeriod(&text, "ЗА МЕСЯЦ", r.Month)

	text.WriteString(separator + "\n📋 <b>СТАТУСЫ ЗАКАЗОВ</b>\n\n")
	text.WriteString(fmt.Sprintf("⏰ Ожидают: <b>%d</b>\n", r.ByStatus[orders.StatusPending]))
	text.WriteString(fmt.Sprintf("👨‍🍳 В работе: <b>%d</b>\n", r.ByStatus[orders.StatusProcessing]))
	text.WriteString(fmt.Sprintf("✅ Готовы: <b>%d</b>\n", r.ByStatus[orders.StatusReady]))
	text.WriteString(fmt.Sprintf("🎉 Доставлено: <b>%d</b>\n", r.ByStatus[orders.StatusDelivered]))
	text.WriteString(fmt.Sprintf("❌ Отменено: <b>%d</b>\n\n", r.ByStatus[orders.StatusCancelled]))

	if len(r.TopProducts) > 0 {
		text.WriteString(separator + "\n🏆 <b>ТОП-3 ТОВАРОВ</b>\n\n")
		for i, p := range r.TopProducts {
			text.WriteString(fmt.Sprintf("%d. %s: %d шт (%d ₸)\n", i+1, p.Name, p.Quantity, p.Revenue))
		}
		text.WriteString("\n")
	}

	text.WriteString(separator + "\n")
	text.WriteString(fmt.Sprintf("🕐 Обновлено: %s", r.GeneratedAt.Format("02.01.2006, 15:04:05")))

	return text.String()
}

func writePeriod(text *strings.Builder, title string, p stats.Period) {
	text.WriteString(separator + "\n📅 <b>" + title + "</b>\n\n")
	text.WriteString(fmt.Sprintf("📦 Заказов: <b>%d</b>\n", p.Orders))
	text.WriteString(fmt.Sprintf("💰 Доход: <b>%d ₸</b>\n\n", p.Revenue))
}
