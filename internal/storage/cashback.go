package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"flowershop-bot/internal/stories/cashback"
	"flowershop-bot/internal/stories/customers"
)

var transactionRowFields = fields(transactionRow{})

type transactionRow struct {
	ID             int64  `db:"id"`
	TelegramUserID int64  `db:"telegram_user_id"`
	OrderID        string `db:"order_id"`
	Type           string `db:"type"`
	Amount         int64  `db:"amount"`
	BalanceAfter   int64  `db:"balance_after"`
}

func (r transactionRow) ToModel() *cashback.Transaction {
	return &cashback.Transaction{
		ID:             r.ID,
		TelegramUserID: r.TelegramUserID,
		OrderID:        r.OrderID,
		Type:           r.Type,
		Amount:         r.Amount,
		BalanceAfter:   r.BalanceAfter,
	}
}

// CreditCashback начисляет кэшбэк за заказ не более одного раза
func (s *storageImpl) CreditCashback(ctx context.Context, p cashback.CreditParams) (*cashback.CreditResult, error) {
	var result cashback.CreditResult

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		exists, err := s.transactionExists(ctx, tx, p.OrderID, cashback.TypeEarned)
		if err != nil {
			return err
		}
		if exists {
			balance, err := s.balance(ctx, tx, p.TelegramUserID)
			if err != nil {
				return err
			}
			result = cashback.CreditResult{Applied: false, BalanceAfter: balance}
			return nil
		}

		if _, err := s.insertCustomer(ctx, tx, customers.Customer{TelegramUserID: p.TelegramUserID}); err != nil {
			return err
		}

		q, args, err := s.stmpBuilder().
			Update(s.table(customersBase)).
			Set("cashback_balance", sq.Expr("cashback_balance + ?", p.Amount)).
			Set("total_orders", sq.Expr("total_orders + 1")).
			Where(sq.Eq{"telegram_user_id": p.TelegramUserID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build sql query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("tx.ExecContext: %w", err)
		}

		balance, err := s.balance(ctx, tx, p.TelegramUserID)
		if err != nil {
			return err
		}

		q, args, err = s.stmpBuilder().
			Insert(s.table(transactionsBase)).
			SetMap(map[string]interface{}{
				"telegram_user_id": p.TelegramUserID,
				"order_id":         p.OrderID,
				"type":             cashback.TypeEarned,
				"amount":           p.Amount,
				"balance_after":    balance,
				"created_at":       s.now(),
			}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build sql query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("tx.ExecContext: %w", err)
		}

		result = cashback.CreditResult{Applied: true, Amount: p.Amount, BalanceAfter: balance}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *storageImpl) transactionExists(ctx context.Context, tx *sqlx.Tx, orderID, txType string) (bool, error) {
	q, args, err := s.stmpBuilder().
		Select("COUNT(*)").
		From(s.table(transactionsBase)).
		Where(sq.Eq{"order_id": orderID, "type": txType}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build sql query: %w", err)
	}

	var count int
	if err := tx.GetContext(ctx, &count, q, args...); err != nil {
		return false, fmt.Errorf("tx.GetContext: %w", err)
	}
	return count > 0, nil
}

func (s *storageImpl) balance(ctx context.Context, tx *sqlx.Tx, telegramUserID int64) (int64, error) {
	q, args, err := s.stmpBuilder().
		Select("cashback_balance").
		From(s.table(customersBase)).
		Where(sq.Eq{"telegram_user_id": telegramUserID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sql query: %w", err)
	}

	var balance int64
	if err := tx.GetContext(ctx, &balance, q, args...); err != nil {
		return 0, fmt.Errorf("tx.GetContext: %w", err)
	}
	return balance, nil
}

func (s *storageImpl) ListCashbackTransactions(ctx context.Context, telegramUserID int64) ([]*cashback.Transaction, error) {
	q, args, err := s.stmpBuilder().
		Select(transactionRowFields).
		From(s.table(transactionsBase)).
		Where(sq.Eq{"telegram_user_id": telegramUserID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var rows []transactionRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}

	result := make([]*cashback.Transaction, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.ToModel())
	}
	return result, nil
}
