package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"flowershop-bot/internal/stories/broadcast"
	"flowershop-bot/internal/telegram/messages"
)

var (
	ErrEmptyBroadcast = errors.New("broadcast message is empty")
	ErrNoRecipients   = errors.New("no broadcast recipients")
)

// BroadcastSender отправляет одно сообщение рассылки через Telegram
type BroadcastSender struct {
	bot botAPI
}

func NewBroadcastSender(bot botAPI) *BroadcastSender {
	return &BroadcastSender{bot: bot}
}

func (s *BroadcastSender) SendContent(_ context.Context, chatID int64, content broadcast.Content) error {
	var msg tgbotapi.Chattable

	// подписи к фото и видео уходят как есть, HTML разбирается только в тексте
	switch {
	case content.PhotoFileID != "":
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(content.PhotoFileID))
		photo.Caption = content.Caption
		msg = photo
	case content.VideoFileID != "":
		video := tgbotapi.NewVideo(chatID, tgbotapi.FileID(content.VideoFileID))
		video.Caption = content.Caption
		msg = video
	default:
		text := tgbotapi.NewMessage(chatID, content.Text)
		text.ParseMode = tgbotapi.ModeHTML
		msg = text
	}

	_, err := s.bot.Send(msg)
	return err
}

// Broadcasts запускает рассылки из режима оператора и из HTTP API
type Broadcasts struct {
	bot       botAPI
	customers customerService
	engine    broadcastService
	admin     *AdminChecker
	spawn     func(func())
	logger    *slog.Logger
}

func NewBroadcasts(
	bot botAPI,
	customers customerService,
	engine broadcastService,
	admin *AdminChecker,
	logger *slog.Logger,
) *Broadcasts {
	return &Broadcasts{
		bot:       bot,
		customers: customers,
		engine:    engine,
		admin:     admin,
		spawn:     func(fn func()) { go fn() },
		logger:    logger,
	}
}

// Launch рассылает захваченное сообщение оператора всем клиентам в фоне.
// Отчёт приходит оператору по завершении.
func (b *Broadcasts) Launch(ctx context.Context, operatorChatID int64, content broadcast.Content) error {
	list, err := b.customers.ListCustomers(ctx)
	if err != nil {
		return fmt.Errorf("list customers: %w", err)
	}

	recipients := broadcast.RecipientsFromCustomers(list)
	if len(recipients) == 0 {
		return b.sendHTML(operatorChatID, messages.BroadcastNoCustomers)
	}

	if err := b.sendHTML(operatorChatID, messages.BroadcastStarted); err != nil {
		b.logger.Warn("Не удалось отправить уведомление о старте рассылки", "error", err)
	}

	runCtx := context.WithoutCancel(ctx)
	b.spawn(func() {
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("Panic в рассылке", "panic", r)
			}
		}()
		result := b.engine.Send(runCtx, recipients, broadcast.Same(content))
		b.report(operatorChatID, result)
	})
	return nil
}

// Run выполняет рассылку синхронно. recipients == nil - всем клиентам из базы.
func (b *Broadcasts) Run(ctx context.Context, recipients []broadcast.Recipient, variants broadcast.Variants) (broadcast.Result, error) {
	if variants.Ru.Empty() && variants.Kk.Empty() {
		return broadcast.Result{}, ErrEmptyBroadcast
	}

	if recipients == nil {
		list, err := b.customers.ListCustomers(ctx)
		if err != nil {
			return broadcast.Result{}, fmt.Errorf("list customers: %w", err)
		}
		recipients = broadcast.RecipientsFromCustomers(list)
	}
	if len(recipients) == 0 {
		return broadcast.Result{}, ErrNoRecipients
	}

	result := b.engine.Send(ctx, recipients, variants)
	if b.admin.Configured() {
		b.report(b.admin.OperatorID(), result)
	}
	return result, nil
}

func (b *Broadcasts) report(chatID int64, result broadcast.Result) {
	text := messages.BroadcastReport(result.Sent, result.Errors, result.Skipped, result.Total)
	if err := b.sendHTML(chatID, text); err != nil {
		b.logger.Warn("Не удалось отправить отчёт о рассылке", "error", err)
	}
}

func (b *Broadcasts) sendHTML(chatID int64, text string) error {
	return sendHTML(b.bot, chatID, text)
}
