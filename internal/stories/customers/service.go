package customers

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
)

type Service struct {
	storage Storage
	logger  *slog.Logger
}

func NewService(storage Storage, logger *slog.Logger) *Service {
	return &Service{storage: storage, logger: logger}
}

// EnsureCustomer создаёт клиента при первом обращении. Существующая запись не меняется.
func (s *Service) EnsureCustomer(ctx context.Context, customer Customer) (bool, error) {
	existing, err := s.storage.GetCustomer(ctx, customer.TelegramUserID)
	if err != nil {
		return false, errors.Wrap(err, "get customer")
	}
	if existing != nil {
		return false, nil
	}

	created, err := s.storage.CreateCustomer(ctx, customer)
	if err != nil {
		return false, errors.Wrap(err, "create customer")
	}
	if created {
		s.logger.Info("Новый клиент",
			"telegram_user_id", customer.TelegramUserID,
			"username", customer.Username)
	}
	return created, nil
}

func (s *Service) GetCustomer(ctx context.Context, telegramUserID int64) (*Customer, error) {
	customer, err := s.storage.GetCustomer(ctx, telegramUserID)
	if err != nil {
		return nil, errors.Wrap(err, "get customer")
	}
	return customer, nil
}

// Language возвращает сохранённый язык клиента. Ошибка хранилища даёт русский язык.
func (s *Service) Language(ctx context.Context, telegramUserID int64) string {
	customer, err := s.storage.GetCustomer(ctx, telegramUserID)
	if err != nil {
		s.logger.Warn("Не удалось получить язык клиента",
			"telegram_user_id", telegramUserID,
			"error", err)
		return LanguageRussian
	}
	return customer.Language()
}

func (s *Service) ListCustomers(ctx context.Context) ([]*Customer, error) {
	list, err := s.storage.ListCustomers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list customers")
	}
	return list, nil
}
