package messages

import (
	"fmt"
	"strings"
)

// Общие
const (
	Error         = "❌ Ошибка. Пожалуйста, попробуйте позже."
	Cancelled     = "❌ Отменено"
	NoRights      = "⛔ Нет прав"
	UnknownAction = "Неизвестное действие"
)

// Кнопки оператора
const (
	ButtonAdminPanel = "⚙️ Админ-панель"
	ButtonStats      = "📊 Статистика"
	ButtonBroadcast  = "📢 Рассылка"
	ButtonExport     = "📥 Экспорт"
	ButtonConfirm    = "✅ Подтвердить"
	ButtonReject     = "❌ Отклонить"
	ButtonCancel     = "❌ Отменить"
)

// Команды
const (
	CommandStart     = "/start"
	CommandStats     = "/stats"
	CommandBroadcast = "/broadcast"
	CommandExport    = "/export"
	CommandCancel    = "/cancel"
)

// Оплата
const (
	PaymentConfirmedAnswer = "✅ Оплата подтверждена!"
	PaymentRejectedAnswer  = "❌ Чек отклонён"
	PaymentConfirmedMark   = "\n\n✅ <b>ОПЛАТА ПОДТВЕРЖДЕНА</b>"
	PaymentRejectedMark    = "\n\n❌ <b>ЧЕК ОТКЛОНЁН</b>"
)

// Фото
const (
	PhotoSent           = "✅ Фото отправлено клиенту!"
	PhotoSendError      = "❌ Ошибка отправки фото клиенту!"
	PhotoPromptCanceled = "❌ Отправка фото отменена"
)

// Рассылка
const (
	BroadcastStart = `📢 <b>Рассылка сообщений</b>

Отправьте сообщение, которое хотите разослать всем клиентам.

Поддерживаются:
• Текст
• Фото с подписью
• Видео с подписью

Сообщение будет отправлено всем клиентам из базы данных.

Нажмите /cancel чтобы отменить.`
	BroadcastCancelled   = "❌ Рассылка отменена"
	BroadcastEmpty       = "❌ Отправьте непустое сообщение или нажмите /cancel для отмены"
	BroadcastNoCustomers = "❌ Нет клиентов в базе данных"
	BroadcastStarted     = "⏳ Рассылка запущена, отчёт придёт по завершении"
)

// Статистика и выгрузка
const (
	StatsError     = "❌ Ошибка получения статистики"
	StatsRefreshed = "✅ Обновлено"
	ExportError    = "❌ Ошибка выгрузки заказов"
	ExportCaption  = "📥 Выгрузка заказов"
)

// BroadcastReport - итог рассылки для оператора
func BroadcastReport(sent, errors, skipped, total int) string {
	var b strings.Builder
	b.WriteString("✅ <b>Рассылка завершена!</b>\n\n📊 Статистика:\n")
	fmt.Fprintf(&b, "✅ Отправлено: %d\n", sent)
	fmt.Fprintf(&b, "❌ Ошибок: %d\n", errors)
	if skipped > 0 {
		fmt.Fprintf(&b, "⏭ Пропущено: %d\n", skipped)
	}
	fmt.Fprintf(&b, "📧 Всего клиентов: %d", total)
	return b.String()
}

// ReceiptCaption - подпись к чеку, пересланному оператору
func ReceiptCaption(orderNumber, customerName string, total int64, customerID int64) string {
	var b strings.Builder
	b.WriteString("📸 <b>ЧЕК ОБ ОПЛАТЕ</b>\n\n")
	fmt.Fprintf(&b, "📋 Заказ #%s\n", orderNumber)
	if customerName != "" {
		fmt.Fprintf(&b, "👤 %s\n", customerName)
	}
	fmt.Fprintf(&b, "💰 %d ₸\n", total)
	fmt.Fprintf(&b, "ID: %d", customerID)
	return b.String()
}

// AmbiguousPhoto просит оператора ответить фото на нужный запрос
func AmbiguousPhoto(orderIDs []string) string {
	var b strings.Builder
	b.WriteString("⚠️ <b>Несколько заказов ждут фото</b>\n\n")
	for _, id := range orderIDs {
		fmt.Fprintf(&b, "• Заказ #%s\n", id)
	}
	b.WriteString("\nОтветьте фото на сообщение с запросом нужного заказа или укажите номер заказа в подписи.")
	return b.String()
}

func PhotoSendFailed(err error) string {
	return PhotoSendError + "\n\n" + err.Error()
}
