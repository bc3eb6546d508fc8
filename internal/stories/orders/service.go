package orders

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetOrder(ctx context.Context, id string) (*Order, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get order")
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ConfirmPayment переводит заказ в работу и списывает остатки.
// Остатки списываются только при первом подтверждении, повторы ничего не меняют.
func (s *Service) ConfirmPayment(ctx context.Context, orderID string) (*ConfirmResult, error) {
	first, err := s.repo.ConfirmOrderPayment(ctx, orderID, StatusProcessing)
	if err != nil {
		return nil, errors.Wrap(err, "confirm order payment")
	}

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	result := &ConfirmResult{Order: order, FirstConfirmation: first}
	if !first {
		s.logger.Info("Оплата уже подтверждена, остатки не списываются", "order_id", orderID)
		return result, nil
	}

	// Каждая позиция списывается отдельно: ошибка по одной не отменяет остальные
	for _, item := range order.Items {
		update, err := s.decrementStock(ctx, item)
		if err != nil {
			s.logger.Error("Не удалось списать остаток",
				"order_id", orderID,
				"item", item.Name,
				"error", err)
			continue
		}
		if update != nil {
			result.StockUpdates = append(result.StockUpdates, *update)
		}
	}

	return result, nil
}

func (s *Service) decrementStock(ctx context.Context, item Item) (*StockUpdate, error) {
	criteria := ProductCriteria{ID: item.ProductID}
	if item.ProductID == nil {
		name := item.Name
		criteria.Name = &name
	}

	product, err := s.repo.GetProduct(ctx, criteria)
	if err != nil {
		return nil, errors.Wrap(err, "get product")
	}
	if product == nil {
		return nil, nil
	}

	stock, available := NextStock(product.Stock, item.Quantity)
	if err := s.repo.UpdateProductStock(ctx, product.ID, stock, available); err != nil {
		return nil, errors.Wrap(err, "update product stock")
	}

	return &StockUpdate{
		ProductID: product.ID,
		Name:      product.Name,
		Before:    product.Stock,
		After:     stock,
		Available: available,
	}, nil
}
