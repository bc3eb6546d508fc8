package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"flowershop-bot/internal/stories/customers"
)

var customerRowFields = fields(customerRow{})

type customerRow struct {
	TelegramUserID  int64          `db:"telegram_user_id"`
	Username        sql.NullString `db:"telegram_username"`
	FirstName       sql.NullString `db:"first_name"`
	LanguageCode    sql.NullString `db:"language_code"`
	CashbackBalance int64          `db:"cashback_balance"`
	TotalOrders     int            `db:"total_orders"`
	CreatedAt       time.Time      `db:"created_at"`
}

func (r customerRow) ToModel() *customers.Customer {
	return &customers.Customer{
		TelegramUserID:  r.TelegramUserID,
		Username:        r.Username.String,
		FirstName:       r.FirstName.String,
		LanguageCode:    r.LanguageCode.String,
		CashbackBalance: r.CashbackBalance,
		TotalOrders:     r.TotalOrders,
		CreatedAt:       r.CreatedAt,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// sqlExecer - общий интерфейс *sqlx.DB и *sqlx.Tx для вставки клиента
type sqlExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *storageImpl) insertCustomer(ctx context.Context, exec sqlExecer, c customers.Customer) (bool, error) {
	q, args, err := s.stmpBuilder().
		Insert(s.table(customersBase)).
		SetMap(map[string]interface{}{
			"telegram_user_id":  c.TelegramUserID,
			"telegram_username": nullString(c.Username),
			"first_name":        nullString(c.FirstName),
			"language_code":     nullString(c.LanguageCode),
			"cashback_balance":  c.CashbackBalance,
			"total_orders":      c.TotalOrders,
			"created_at":        s.now(),
		}).
		Suffix("ON CONFLICT (telegram_user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build sql query: %w", err)
	}

	res, err := exec.ExecContext(ctx, q, args...)
	if err != nil {
		return false, fmt.Errorf("db.ExecContext: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("result.RowsAffected: %w", err)
	}
	return n > 0, nil
}

func (s *storageImpl) CreateCustomer(ctx context.Context, c customers.Customer) (bool, error) {
	return s.insertCustomer(ctx, s.db, c)
}

func (s *storageImpl) GetCustomer(ctx context.Context, telegramUserID int64) (*customers.Customer, error) {
	q, args, err := s.stmpBuilder().
		Select(customerRowFields).
		From(s.table(customersBase)).
		Where(sq.Eq{"telegram_user_id": telegramUserID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var row customerRow
	if err := s.db.GetContext(ctx, &row, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext: %w", err)
	}
	return row.ToModel(), nil
}

func (s *storageImpl) ListCustomers(ctx context.Context) ([]*customers.Customer, error) {
	q, args, err := s.stmpBuilder().
		Select(customerRowFields).
		From(s.table(customersBase)).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var rows []customerRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}

	result := make([]*customers.Customer, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.ToModel())
	}
	return result, nil
}

func (s *storageImpl) CountCustomers(ctx context.Context) (int, error) {
	q, args, err := s.stmpBuilder().
		Select("COUNT(*)").
		From(s.table(customersBase)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sql query: %w", err)
	}

	var count int
	if err := s.db.GetContext(ctx, &count, q, args...); err != nil {
		return 0, fmt.Errorf("db.GetContext: %w", err)
	}
	return count, nil
}
