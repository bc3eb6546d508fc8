package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"flowershop-bot/internal/telegram/messages"
	"flowershop-bot/internal/telegram/pending"
)

var ErrInvalidPhotoPrompt = errors.New("orderId, telegramUserId and photoType (bouquet|delivery) are required")

type PhotoPromptRequest struct {
	OrderID        string
	TelegramUserID int64
	PhotoType      string
}

// PhotoPrompt просит оператора прислать фото букета или доставки для клиента
type PhotoPrompt struct {
	bot      botAPI
	registry pending.Store
	admin    *AdminChecker
	i18n     translator
	logger   *slog.Logger
}

func NewPhotoPrompt(bot botAPI, registry pending.Store, admin *AdminChecker, i18n translator, logger *slog.Logger) *PhotoPrompt {
	return &PhotoPrompt{
		bot:      bot,
		registry: registry,
		admin:    admin,
		i18n:     i18n,
		logger:   logger,
	}
}

func (p *PhotoPrompt) Request(_ context.Context, req PhotoPromptRequest) error {
	if req.OrderID == "" || req.TelegramUserID == 0 || !pending.ValidPhotoType(req.PhotoType) {
		return ErrInvalidPhotoPrompt
	}
	if !p.admin.Configured() {
		return ErrOperatorNotConfigured
	}
	adminID := p.admin.OperatorID()

	msg := tgbotapi.NewMessage(adminID, p.i18n.Bilingual("photo_prompt."+req.PhotoType, map[string]interface{}{
		"order": html.EscapeString(req.OrderID),
	}))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = singleCallbackKeyboard(messages.ButtonCancel, fmt.Sprintf("cancel_photo_%s_%s", req.OrderID, req.PhotoType))

	sent, err := p.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("send photo prompt: %w", err)
	}

	p.registry.Put(pending.PhotoKey(adminID, req.OrderID, req.PhotoType), pending.PhotoRequest{
		OrderID:         req.OrderID,
		CustomerChatID:  req.TelegramUserID,
		PhotoType:       req.PhotoType,
		PromptMessageID: sent.MessageID,
	})

	p.logger.Info("Ожидается фото от оператора",
		"order_id", req.OrderID,
		"photo_type", req.PhotoType)
	return nil
}
