package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"flowershop-bot/internal/stories/orders"
)

var orderRowFields = fields(orderRow{})

type orderRow struct {
	ID               string        `db:"id"`
	Status           string        `db:"status"`
	Total            int64         `db:"total"`
	Items            itemsColumn   `db:"items"`
	TelegramUserID   sql.NullInt64 `db:"telegram_user_id"`
	CustomerName     string        `db:"customer_name"`
	CustomerPhone    string        `db:"customer_phone"`
	PaymentConfirmed bool          `db:"payment_confirmed"`
	CreatedAt        time.Time     `db:"created_at"`
}

func (r orderRow) ToModel() *orders.Order {
	o := &orders.Order{
		ID:               r.ID,
		Status:           orders.Status(r.Status),
		Total:            r.Total,
		Items:            []orders.Item(r.Items),
		CustomerName:     r.CustomerName,
		CustomerPhone:    r.CustomerPhone,
		PaymentConfirmed: r.PaymentConfirmed,
		CreatedAt:        r.CreatedAt,
	}
	if r.TelegramUserID.Valid {
		id := r.TelegramUserID.Int64
		o.TelegramUserID = &id
	}
	return o
}

// CreateOrder пишет заказ. В проде заказы создаёт витрина, метод нужен импорту и тестам.
func (s *storageImpl) CreateOrder(ctx context.Context, order orders.Order) error {
	createdAt := order.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	status := order.Status
	if status == "" {
		status = orders.StatusPending
	}

	var tgID sql.NullInt64
	if order.TelegramUserID != nil {
		tgID = sql.NullInt64{Int64: *order.TelegramUserID, Valid: true}
	}

	q, args, err := s.stmpBuilder().
		Insert(s.table(ordersBase)).
		SetMap(map[string]interface{}{
			"id":                order.ID,
			"status":            string(status),
			"total":             order.Total,
			"items":             itemsColumn(order.Items),
			"telegram_user_id":  tgID,
			"customer_name":     order.CustomerName,
			"customer_phone":    order.CustomerPhone,
			"payment_confirmed": order.PaymentConfirmed,
			"created_at":        createdAt,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}
	return nil
}

func (s *storageImpl) GetOrder(ctx context.Context, id string) (*orders.Order, error) {
	q, args, err := s.stmpBuilder().
		Select(orderRowFields).
		From(s.table(ordersBase)).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var row orderRow
	if err := s.db.GetContext(ctx, &row, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext: %w", err)
	}
	return row.ToModel(), nil
}

func (s *storageImpl) ListOrders(ctx context.Context) ([]*orders.Order, error) {
	q, args, err := s.stmpBuilder().
		Select(orderRowFields).
		From(s.table(ordersBase)).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var rows []orderRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}

	result := make([]*orders.Order, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.ToModel())
	}
	return result, nil
}

// ConfirmOrderPayment меняет флаг только если оплата ещё не подтверждена
func (s *storageImpl) ConfirmOrderPayment(ctx context.Context, id string, status orders.Status) (bool, error) {
	q, args, err := s.stmpBuilder().
		Update(s.table(ordersBase)).
		Set("status", string(status)).
		Set("payment_confirmed", true).
		Where(sq.Eq{"id": id, "payment_confirmed": false}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build sql query: %w", err)
	}

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, fmt.Errorf("db.ExecContext: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("result.RowsAffected: %w", err)
	}
	return n > 0, nil
}
