package telegram

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type webhookGateway interface {
	GetWebhookInfo() (tgbotapi.WebhookInfo, error)
	SetWebhook(url string) (*tgbotapi.APIResponse, error)
}

// EnsureWebhook регистрирует вебхук, только если в Telegram записан другой адрес.
// Возвращает true, если адрес был изменён.
func EnsureWebhook(gw webhookGateway, url string, logger *slog.Logger) (bool, error) {
	info, err := gw.GetWebhookInfo()
	if err != nil {
		return false, fmt.Errorf("get webhook info: %w", err)
	}

	if info.URL == url {
		logger.Info("Вебхук уже установлен", slog.String("url", url))
		return false, nil
	}

	resp, err := gw.SetWebhook(url)
	if err != nil {
		return false, fmt.Errorf("set webhook: %w", err)
	}
	if resp != nil && !resp.Ok {
		return false, fmt.Errorf("set webhook: %s", resp.Description)
	}

	logger.Info("Вебхук установлен",
		slog.String("url", url),
		slog.String("previous", info.URL))
	return true, nil
}
