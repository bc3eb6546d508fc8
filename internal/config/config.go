package config

import (
	"fmt"
	"time"
)

type Config struct {
	Env              string                  `env:"ENV,default=local"`
	ProjectType      string                  `env:"PROJECT_TYPE,default=flowers"`
	Timezone         string                  `env:"TIMEZONE,default=Asia/Almaty"`
	Logger           LoggerConfig            `env:",prefix=LOGGER_"`
	Observability    ObservabilityHTTPConfig `env:",prefix=OBSERVABILITY_"`
	HTTP             HTTPServerConfig        `env:",prefix=HTTP_"`
	Port             uint16                  `env:"PORT,default=3000"`
	ShutdownDuration time.Duration           `env:"SHUTDOWN_DURATION,default=30s"`
	DB               DBConfig                `env:",prefix=DB_"`
	Store            StoreConfig             `env:",prefix=STORE_"`
	Telegram         TelegramConfig          `env:",prefix=TELEGRAM_"`
	Apps             AppsConfig              `env:",prefix=APP_"`
	Broadcast        BroadcastConfig         `env:",prefix=BROADCAST_"`
	Payment          PaymentConfig           `env:",prefix=PAYMENT_"`
	Report           ReportConfig            `env:",prefix=REPORT_"`
}

// TelegramConfig не содержит required-полей: без токена сервис работает в деградированном режиме.
type TelegramConfig struct {
	BotToken    string        `env:"BOT_TOKEN"`
	BotUsername string        `env:"BOT_USERNAME"`
	AdminID     int64         `env:"ADMIN_ID"`
	WebhookURL  string        `env:"WEBHOOK_URL"`
	Timeout     time.Duration `env:"TIMEOUT,default=30s"`
	RateLimit   float64       `env:"RATE_LIMIT,default=25"`
}

func (t TelegramConfig) BotConfigured() bool {
	return t.BotToken != ""
}

func (t TelegramConfig) AdminConfigured() bool {
	return t.AdminID != 0
}

type DBConfig struct {
	Driver       string `env:"DRIVER,default=sqlite3"`
	DSN          string `env:"DSN,default=./data/flowershop.db"`
	MaxOpenConns int    `env:"MAX_OPEN_CONNS,default=25"`
	MaxIdleConns int    `env:"MAX_IDLE_CONNS,default=5"`
	MaxLifetime  string `env:"MAX_LIFETIME,default=5m"`
	Migrate      bool   `env:"MIGRATE,default=true"`
}

// StoreConfig - публичные реквизиты хранилища, которые отдаются веб-приложениям.
type StoreConfig struct {
	URL string `env:"URL"`
	Key string `env:"KEY"`
}

func (s StoreConfig) Configured() bool {
	return s.URL != "" && s.Key != ""
}

type AppsConfig struct {
	ClientURL string `env:"CLIENT_URL,default=https://flowershop-6jdk.onrender.com"`
	AdminURL  string `env:"ADMIN_URL,default=https://flowershop-6jdk.onrender.com/admin.html"`
}

type BroadcastConfig struct {
	Delay time.Duration `env:"DELAY,default=50ms"`
}

type PaymentConfig struct {
	QREnabled bool `env:"QR_ENABLED,default=false"`
}

type ReportConfig struct {
	Cron string `env:"CRON,default=0 21 * * *"`
}

type LoggerConfig struct {
	Level string `env:"LEVEL,default=debug"`
}

type HTTPServerConfig struct {
	Host         string        `env:"HOST,default=0.0.0.0"`
	StaticDir    string        `env:"STATIC_DIR,default=./public"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=60s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT,default=2m"`
}

func (c Config) APIAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.Port)
}

type ObservabilityHTTPConfig struct {
	Host         string        `env:"HOST,default=127.0.0.1"`
	Port         uint16        `env:"PORT,default=8383"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT,default=1m"`
}

func (a ObservabilityHTTPConfig) ADDR() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// ProjectFlowers - единственный тип проекта с отдельными таблицами в общем хранилище
const ProjectFlowers = "flowers"

// TablePrefix возвращает префикс имён таблиц: flowers_ для цветочного магазина,
// остальные проекты работают с таблицами без префикса.
func (c Config) TablePrefix() string {
	if c.ProjectType == ProjectFlowers {
		return ProjectFlowers + "_"
	}
	return ""
}
