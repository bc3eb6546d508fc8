package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"flowershop-bot/internal/stories/orders"
)

var productRowFields = fields(productRow{})

type productRow struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Stock     int    `db:"stock"`
	Available bool   `db:"available"`
}

func (r productRow) ToModel() *orders.Product {
	return &orders.Product{
		ID:        r.ID,
		Name:      r.Name,
		Stock:     r.Stock,
		Available: r.Available,
	}
}

func (s *storageImpl) CreateProduct(ctx context.Context, p orders.Product) (*orders.Product, error) {
	q, args, err := s.stmpBuilder().
		Insert(s.table(productsBase)).
		SetMap(map[string]interface{}{
			"name":      p.Name,
			"stock":     p.Stock,
			"available": p.Available,
		}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var id int64
	if err := s.db.QueryRowxContext(ctx, q, args...).Scan(&id); err != nil {
		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	return s.GetProduct(ctx, orders.ProductCriteria{ID: &id})
}

func (s *storageImpl) GetProduct(ctx context.Context, criteria orders.ProductCriteria) (*orders.Product, error) {
	query := s.stmpBuilder().
		Select(productRowFields).
		From(s.table(productsBase)).
		OrderBy("id").
		Limit(1)

	switch {
	case criteria.ID != nil:
		query = query.Where(sq.Eq{"id": *criteria.ID})
	case criteria.Name != nil:
		query = query.Where(sq.Eq{"name": *criteria.Name})
	default:
		return nil, nil
	}

	q, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var row productRow
	if err := s.db.GetContext(ctx, &row, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext: %w", err)
	}
	return row.ToModel(), nil
}

func (s *storageImpl) ListProducts(ctx context.Context) ([]*orders.Product, error) {
	q, args, err := s.stmpBuilder().
		Select(productRowFields).
		From(s.table(productsBase)).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var rows []productRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}

	result := make([]*orders.Product, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.ToModel())
	}
	return result, nil
}

func (s *storageImpl) UpdateProductStock(ctx context.Context, id int64, stock int, available bool) error {
	q, args, err := s.stmpBuilder().
		Update(s.table(productsBase)).
		Set("stock", stock).
		Set("available", available).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}
	return nil
}
