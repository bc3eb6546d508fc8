package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func (s *storageImpl) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("db transaction error: %v, rollback error: %w", err, rbErr)
		}
		return fmt.Errorf("db transaction error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("db commit transaction: %w", err)
	}
	return nil
}
