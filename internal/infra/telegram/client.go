package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// ErrBotNotConfigured возвращается всеми исходящими вызовами, если токен бота не задан.
var ErrBotNotConfigured = errors.New("telegram bot is not configured")

type Client struct {
	api     *tgbotapi.BotAPI
	logger  *slog.Logger
	limiter *rate.Limiter
	onError func(method string)
	ctx     context.Context
	cancel  context.CancelFunc
}

type Option func(*Client)

// WithErrorHook вызывается на каждую неудачную исходящую операцию (для метрик).
func WithErrorHook(hook func(method string)) Option {
	return func(c *Client) {
		c.onError = hook
	}
}

func NewClient(token string, rps float64, logger *slog.Logger, opts ...Option) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("создание telegram бота: %w", err)
	}

	c := newClient(bot, rps, logger, opts...)
	c.logger.Info("Telegram бот авторизован", slog.String("username", bot.Self.UserName))
	return c, nil
}

// NewDisabledClient создает клиент без токена: все вызовы возвращают ErrBotNotConfigured.
func NewDisabledClient(logger *slog.Logger, opts ...Option) *Client {
	return newClient(nil, 1, logger, opts...)
}

func newClient(api *tgbotapi.BotAPI, rps float64, logger *slog.Logger, opts ...Option) *Client {
	if rps <= 0 {
		rps = 25
	}
	ctx, cancel := context.WithCancel(context.Background())

	c := &Client{
		api:     api,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		onError: func(string) {},
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Configured() bool {
	return c.api != nil
}

// Stop прерывает ожидающие в лимитере вызовы
func (c *Client) Stop() {
	c.cancel()
}

// Send отправляет любое сообщение с rate limiting
func (c *Client) Send(chattable tgbotapi.Chattable) (tgbotapi.Message, error) {
	method := methodName(chattable)
	if err := c.wait(method); err != nil {
		return tgbotapi.Message{}, err
	}

	message, err := c.api.Send(chattable)
	if err != nil {
		c.fail(method, err)
		return tgbotapi.Message{}, fmt.Errorf("отправка %s: %w", method, err)
	}

	return message, nil
}

// Request отправляет запрос к API, ответ которого не является сообщением
func (c *Client) Request(chattable tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	method := methodName(chattable)
	if err := c.wait(method); err != nil {
		return nil, err
	}

	resp, err := c.api.Request(chattable)
	if err != nil {
		c.fail(method, err)
		return nil, fmt.Errorf("запрос %s: %w", method, err)
	}

	return resp, nil
}

// SetWebhook регистрирует адрес вебхука
func (c *Client) SetWebhook(url string) (*tgbotapi.APIResponse, error) {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return nil, fmt.Errorf("parse webhook url: %w", err)
	}
	return c.Request(wh)
}

func (c *Client) GetWebhookInfo() (tgbotapi.WebhookInfo, error) {
	if err := c.wait("getWebhookInfo"); err != nil {
		return tgbotapi.WebhookInfo{}, err
	}

	info, err := c.api.GetWebhookInfo()
	if err != nil {
		c.fail("getWebhookInfo", err)
		return tgbotapi.WebhookInfo{}, fmt.Errorf("getWebhookInfo: %w", err)
	}
	return info, nil
}

type menuButton struct {
	Type   string      `json:"type"`
	Text   string      `json:"text"`
	WebApp *webAppInfo `json:"web_app"`
}

type webAppInfo struct {
	URL string `json:"url"`
}

// SetMenuButton устанавливает кнопку меню с веб-приложением для всех чатов.
// В v5.5.1 нет конфигурации setChatMenuButton, поэтому запрос собирается вручную.
func (c *Client) SetMenuButton(text, url string) (*tgbotapi.APIResponse, error) {
	const method = "setChatMenuButton"
	if err := c.wait(method); err != nil {
		return nil, err
	}

	params := make(tgbotapi.Params)
	if err := params.AddInterface("menu_button", menuButton{
		Type:   "web_app",
		Text:   text,
		WebApp: &webAppInfo{URL: url},
	}); err != nil {
		return nil, fmt.Errorf("encode menu button: %w", err)
	}

	resp, err := c.api.MakeRequest(method, params)
	if err != nil {
		c.fail(method, err)
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return resp, nil
}

func (c *Client) wait(method string) error {
	if c.api == nil {
		c.onError(method)
		return ErrBotNotConfigured
	}
	if err := c.limiter.Wait(c.ctx); err != nil {
		return fmt.Errorf("rate limiting: %w", err)
	}
	return nil
}

func (c *Client) fail(method string, err error) {
	c.onError(method)
	c.logger.Error("ошибка запроса к Telegram API",
		slog.String("method", method),
		slog.Any("error", err))
}

func methodName(chattable tgbotapi.Chattable) string {
	return fmt.Sprintf("%T", chattable)
}
