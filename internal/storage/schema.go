package storage

import (
	"context"
	"fmt"
	"strings"
)

var schemaTemplates = []string{
	`CREATE TABLE IF NOT EXISTS {{orders}} (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL DEFAULT 'pending',
		total BIGINT NOT NULL DEFAULT 0,
		items {{json}} NOT NULL,
		telegram_user_id BIGINT,
		customer_name TEXT NOT NULL DEFAULT '',
		customer_phone TEXT NOT NULL DEFAULT '',
		payment_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS {{customers}} (
		id {{serial}},
		telegram_user_id BIGINT NOT NULL UNIQUE,
		telegram_username TEXT,
		first_name TEXT,
		language_code TEXT,
		cashback_balance BIGINT NOT NULL DEFAULT 0,
		total_orders INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS {{products}} (
		id {{serial}},
		name TEXT NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0,
		available BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS {{cashback_transactions}} (
		id {{serial}},
		telegram_user_id BIGINT NOT NULL,
		order_id TEXT NOT NULL,
		type TEXT NOT NULL,
		amount BIGINT NOT NULL,
		balance_after BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (order_id, type)
	)`,
}

// Migrate создаёт таблицы, если их ещё нет
func (s *storageImpl) Migrate(ctx context.Context) error {
	serial, jsonType := "INTEGER PRIMARY KEY AUTOINCREMENT", "TEXT"
	if s.driver == driverPostgres {
		serial, jsonType = "BIGSERIAL PRIMARY KEY", "JSONB"
	}

	r := strings.NewReplacer(
		"{{orders}}", s.table(ordersBase),
		"{{customers}}", s.table(customersBase),
		"{{products}}", s.table(productsBase),
		"{{cashback_transactions}}", s.table(transactionsBase),
		"{{serial}}", serial,
		"{{json}}", jsonType,
	)

	for _, tmpl := range schemaTemplates {
		if _, err := s.db.ExecContext(ctx, r.Replace(tmpl)); err != nil {
			return fmt.Errorf("db.ExecContext: %w", err)
		}
	}
	return nil
}
