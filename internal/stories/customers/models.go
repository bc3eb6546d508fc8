package customers

import (
	"time"

	"flowershop-bot/internal/localization"
)

const (
	LanguageRussian = localization.LangRussian
	LanguageKazakh  = localization.LangKazakh
)

type Customer struct {
	TelegramUserID  int64
	Username        string
	FirstName       string
	LanguageCode    string
	CashbackBalance int64
	TotalOrders     int
	CreatedAt       time.Time
}

// Language возвращает язык уведомлений клиента: kk или ru по умолчанию
func (c *Customer) Language() string {
	if c == nil {
		return LanguageRussian
	}
	return localization.Normalize(c.LanguageCode)
}
