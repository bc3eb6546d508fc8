package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

var (
	defaultConnTimeout     = 10 * time.Second
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5 * time.Minute
)

type config struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnTimeout     time.Duration
}

type Option func(*config)

func WithDriver(driver string) Option {
	return func(c *config) {
		c.Driver = driver
	}
}

func WithDSN(dsn string) Option {
	return func(c *config) {
		c.DSN = dsn
	}
}

func WithMaxOpenConns(maxOpen int) Option {
	return func(c *config) {
		if maxOpen > 0 {
			c.MaxOpenConns = maxOpen
		}
	}
}

func WithMaxIdleConns(maxIdle int) Option {
	return func(c *config) {
		if maxIdle > 0 {
			c.MaxIdleConns = maxIdle
		}
	}
}

func WithConnMaxLifetime(lifetime time.Duration) Option {
	return func(c *config) {
		c.ConnMaxLifetime = lifetime
	}
}

func WithConnTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.ConnTimeout = timeout
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		Driver:          DriverSQLite,
		DSN:             ":memory:",
		MaxOpenConns:    defaultMaxOpenConns,
		MaxIdleConns:    defaultMaxIdleConns,
		ConnMaxLifetime: defaultConnMaxLifetime,
		ConnTimeout:     defaultConnTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

type DB struct {
	*sqlx.DB
	driver string
}

// Open открывает пул соединений без проверки доступности хранилища.
func Open(opts ...Option) (*DB, error) {
	cfg := newConfig(opts...)

	switch cfg.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return &DB{DB: db, driver: cfg.Driver}, nil
}

// New открывает пул и проверяет соединение. При ошибке ping пул всё равно
// возвращается вместе с ошибкой, чтобы вызывающий мог работать в деградированном режиме.
func New(ctx context.Context, opts ...Option) (*DB, error) {
	cfg := newConfig(opts...)

	db, err := Open(opts...)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return db, fmt.Errorf("failed to ping %s database: %w", cfg.Driver, err)
	}

	return db, nil
}

func (d *DB) Driver() string {
	return d.driver
}

func (d *DB) Close() error {
	return d.DB.Close()
}
