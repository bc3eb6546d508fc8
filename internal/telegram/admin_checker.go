package telegram

import (
	"flowershop-bot/internal/config"
)

// AdminChecker проверяет является ли пользователь оператором магазина
type AdminChecker struct {
	adminID int64
}

// NewAdminChecker создает новый проверялка админов
func NewAdminChecker(cfg config.TelegramConfig) *AdminChecker {
	return &AdminChecker{
		adminID: cfg.AdminID,
	}
}

// IsAdmin проверяет является ли пользователь с данным Telegram ID оператором
func (a *AdminChecker) IsAdmin(telegramID int64) bool {
	return a.adminID != 0 && a.adminID == telegramID
}

// OperatorID возвращает чат оператора, 0 если не настроен
func (a *AdminChecker) OperatorID() int64 {
	return a.adminID
}

func (a *AdminChecker) Configured() bool {
	return a.adminID != 0
}
