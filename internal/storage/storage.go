package storage

import (
	"reflect"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

const (
	driverPostgres = "postgres"

	ordersBase       = "orders"
	customersBase    = "customers"
	productsBase     = "products"
	transactionsBase = "cashback_transactions"
)

type storageImpl struct {
	db     *sqlx.DB
	driver string
	prefix string
	now    func() time.Time
}

// New создаёт хранилище поверх открытого пула. prefix добавляется к именам всех таблиц.
func New(db *sqlx.DB, driver, prefix string) *storageImpl {
	return &storageImpl{
		db:     db,
		driver: driver,
		prefix: prefix,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *storageImpl) stmpBuilder() sq.StatementBuilderType {
	if s.driver == driverPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

func (s *storageImpl) table(base string) string {
	return s.prefix + base
}

// Fields возвращает список всех полей структуры, которые есть в БД.
func fields(data any) string {
	r := reflect.TypeOf(data)
	cols := make([]string, 0, r.NumField())
	for i := 0; i < r.NumField(); i++ {
		if tag := r.Field(i).Tag.Get("db"); tag != "" {
			cols = append(cols, tag)
		}
	}
	return strings.Join(cols, ",")
}
