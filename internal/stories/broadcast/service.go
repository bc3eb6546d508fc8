package broadcast

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"flowershop-bot/internal/stories/customers"
)

type Option func(*Service)

// WithObserver вызывается на каждого получателя с исходом отправки
func WithObserver(fn func(outcome string)) Option {
	return func(s *Service) {
		s.observe = fn
	}
}

// WithSleep подменяет паузу между сообщениями
func WithSleep(fn func(time.Duration)) Option {
	return func(s *Service) {
		s.sleep = fn
	}
}

type Service struct {
	sender  Sender
	delay   time.Duration
	logger  *slog.Logger
	sleep   func(time.Duration)
	observe func(string)
}

func NewService(sender Sender, delay time.Duration, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		sender:  sender,
		delay:   delay,
		logger:  logger,
		sleep:   time.Sleep,
		observe: func(string) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send рассылает сообщение получателям по очереди с фиксированной паузой.
// Ошибка отдельного получателя не прерывает рассылку.
func (s *Service) Send(ctx context.Context, recipients []Recipient, variants Variants) Result {
	result := Result{RunID: uuid.New(), Total: len(recipients)}
	log := s.logger.With("run_id", result.RunID.String())
	log.Info("Рассылка запущена", "recipients", len(recipients))

	for i, r := range recipients {
		if ctx.Err() != nil {
			log.Warn("Рассылка прервана", "processed", i)
			break
		}

		if r.ChatID == 0 {
			result.Skipped++
			s.observe(OutcomeSkipped)
			continue
		}

		content := variants.For(r.LanguageCode)
		if err := s.sender.SendContent(ctx, r.ChatID, content); err != nil {
			result.Errors++
			s.observe(OutcomeError)
			log.Warn("Ошибка отправки рассылки", "chat_id", r.ChatID, "error", err)
		} else {
			result.Sent++
			s.observe(OutcomeSent)
		}

		if s.delay > 0 && i < len(recipients)-1 {
			s.sleep(s.delay)
		}
	}

	log.Info("Рассылка завершена",
		"sent", result.Sent,
		"errors", result.Errors,
		"skipped", result.Skipped)
	return result
}

// RecipientsFromCustomers превращает клиентов из базы в получателей рассылки
func RecipientsFromCustomers(list []*customers.Customer) []Recipient {
	return lo.Map(list, func(c *customers.Customer, _ int) Recipient {
		return Recipient{ChatID: c.TelegramUserID, LanguageCode: c.LanguageCode}
	})
}
