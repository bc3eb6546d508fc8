package telegram

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"flowershop-bot/internal/config"
	"flowershop-bot/internal/localization"
	"flowershop-bot/internal/stories/broadcast"
	"flowershop-bot/internal/stories/cashback"
	"flowershop-bot/internal/stories/customers"
	"flowershop-bot/internal/stories/orders"
	"flowershop-bot/internal/telegram/pending"
)

const (
	testOperatorID = int64(100)
	testCustomerID = int64(200)
)

// MockBotApi - мок Telegram Bot API
type MockBotApi struct {
	mu           sync.Mutex
	SentMessages []tgbotapi.Chattable
	Requests     []tgbotapi.Chattable
	// SendErr, если задан, возвращается из Send для подходящих сообщений
	SendErr func(c tgbotapi.Chattable) error
}

func (m *MockBotApi) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SendErr != nil {
		if err := m.SendErr(c); err != nil {
			return tgbotapi.Message{}, err
		}
	}
	m.SentMessages = append(m.SentMessages, c)
	return tgbotapi.Message{MessageID: 1000 + len(m.SentMessages)}, nil
}

func (m *MockBotApi) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

type sentMessage struct {
	ChatID int64
	Text   string
	Markup interface{}
	Photo  bool
}

// Sent возвращает отправленные сообщения в упрощённом виде
func (m *MockBotApi) Sent() []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]sentMessage, 0, len(m.SentMessages))
	for _, c := range m.SentMessages {
		switch v := c.(type) {
		case tgbotapi.MessageConfig:
			result = append(result, sentMessage{ChatID: v.ChatID, Text: v.Text, Markup: v.ReplyMarkup})
		case tgbotapi.PhotoConfig:
			result = append(result, sentMessage{ChatID: v.ChatID, Text: v.Caption, Markup: v.ReplyMarkup, Photo: true})
		case tgbotapi.VideoConfig:
			result = append(result, sentMessage{ChatID: v.ChatID, Text: v.Caption, Markup: v.ReplyMarkup})
		}
	}
	return result
}

func (m *MockBotApi) SentTo(chatID int64) []sentMessage {
	var result []sentMessage
	for _, s := range m.Sent() {
		if s.ChatID == chatID {
			result = append(result, s)
		}
	}
	return result
}

func (m *MockBotApi) CallbackAnswers() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []string
	for _, c := range m.Requests {
		if cb, ok := c.(tgbotapi.CallbackConfig); ok {
			result = append(result, cb.Text)
		}
	}
	return result
}

// MockCustomerService - мок сервиса клиентов
type MockCustomerService struct {
	mu        sync.Mutex
	Customers []*customers.Customer
	ListErr   error
}

func (m *MockCustomerService) EnsureCustomer(_ context.Context, c customers.Customer) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.Customers {
		if existing.TelegramUserID == c.TelegramUserID {
			return false, nil
		}
	}
	m.Customers = append(m.Customers, &c)
	return true, nil
}

func (m *MockCustomerService) Language(_ context.Context, telegramUserID int64) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.Customers {
		if c.TelegramUserID == telegramUserID {
			return c.Language()
		}
	}
	return customers.LanguageRussian
}

func (m *MockCustomerService) ListCustomers(context.Context) ([]*customers.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Customers, m.ListErr
}

// MockOrderService - мок заказов: считает подтверждения и списания
type MockOrderService struct {
	mu              sync.Mutex
	Orders          map[string]*orders.Order
	ConfirmCalls    int
	StockDecrements int
}

func (m *MockOrderService) GetOrder(_ context.Context, id string) (*orders.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.Orders[id]
	if !ok {
		return nil, orders.ErrOrderNotFound
	}
	return o, nil
}

func (m *MockOrderService) ConfirmPayment(_ context.Context, orderID string) (*orders.ConfirmResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ConfirmCalls++
	o, ok := m.Orders[orderID]
	if !ok {
		return nil, orders.ErrOrderNotFound
	}
	first := !o.PaymentConfirmed
	o.PaymentConfirmed = true
	o.Status = orders.StatusProcessing
	if first {
		m.StockDecrements += len(o.Items)
	}
	return &orders.ConfirmResult{Order: o, FirstConfirmation: first}, nil
}

// MockCashbackService - мок кэшбека: не больше одного начисления на заказ
type MockCashbackService struct {
	mu       sync.Mutex
	Totals   map[string]int64
	Credited map[string]bool
	Balance  int64
	Err      error
}

func (m *MockCashbackService) CreditForOrder(_ context.Context, _ int64, orderID string) (*cashback.CreditResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Credited == nil {
		m.Credited = map[string]bool{}
	}
	if m.Credited[orderID] {
		return &cashback.CreditResult{Applied: false, BalanceAfter: m.Balance}, nil
	}
	amount := cashback.Compute(m.Totals[orderID])
	m.Credited[orderID] = true
	m.Balance += amount
	return &cashback.CreditResult{Applied: true, Amount: amount, BalanceAfter: m.Balance}, nil
}

type MockCommand struct {
	Executed  int
	Refreshed int
}

func (m *MockCommand) Execute(context.Context, int64) error {
	m.Executed++
	return nil
}

func (m *MockCommand) Refresh(context.Context, int64, int) error {
	m.Refreshed++
	return nil
}

type fixture struct {
	bot        *MockBotApi
	registry   *pending.Registry
	admin      *AdminChecker
	customers  *MockCustomerService
	orders     *MockOrderService
	cashback   *MockCashbackService
	stats      *MockCommand
	export     *MockCommand
	i18n       *localization.Service
	broadcasts *Broadcasts
	router     *Router
	intake     *Intake
	notifier   *Notifier
	prompt     *PhotoPrompt
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	i18n, err := localization.NewService()
	if err != nil {
		t.Fatalf("localization: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &fixture{
		bot:       &MockBotApi{},
		registry:  pending.NewRegistry(),
		admin:     NewAdminChecker(config.TelegramConfig{AdminID: testOperatorID}),
		customers: &MockCustomerService{},
		orders:    &MockOrderService{Orders: map[string]*orders.Order{}},
		cashback:  &MockCashbackService{Totals: map[string]int64{}},
		stats:     &MockCommand{},
		export:    &MockCommand{},
		i18n:      i18n,
	}

	engine := broadcast.NewService(NewBroadcastSender(f.bot), 0, logger)
	f.broadcasts = NewBroadcasts(f.bot, f.customers, engine, f.admin, logger)
	f.broadcasts.spawn = func(fn func()) { fn() }

	f.router = NewRouter(
		f.bot, f.registry, f.admin, f.customers, f.orders, i18n, f.broadcasts,
		f.stats, f.export,
		AppLinks{ClientURL: "https://shop.example/", AdminURL: "https://shop.example/admin.html"},
		logger,
	)
	f.intake = NewIntake(f.bot, f.registry, f.admin, f.customers, i18n, time.UTC, false, logger)
	f.notifier = NewNotifier(f.bot, i18n, f.cashback, logger)
	f.prompt = NewPhotoPrompt(f.bot, f.registry, f.admin, i18n, logger)
	return f
}

func (f *fixture) route(t *testing.T, update tgbotapi.Update) string {
	t.Helper()
	route, err := f.router.Route(context.Background(), update)
	if err != nil {
		t.Fatalf("Route(update %d) error = %v", update.UpdateID, err)
	}
	return string(route)
}

var errSendFailed = errors.New("telegram: Bad Request: chat not found")

func testUser(id int64, lang string) *tgbotapi.User {
	return &tgbotapi.User{ID: id, FirstName: "Айгерим", UserName: "aigerim", LanguageCode: lang}
}

func textUpdate(updateID int, from int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: updateID,
		Message: &tgbotapi.Message{
			MessageID: updateID,
			From:      testUser(from, "ru"),
			Chat:      &tgbotapi.Chat{ID: from},
			Date:      int(time.Now().Unix()),
			Text:      text,
		},
	}
}

func photoUpdate(updateID int, from int64, caption string) tgbotapi.Update {
	u := textUpdate(updateID, from, "")
	u.Message.Caption = caption
	u.Message.Photo = []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}}
	return u
}

func callbackUpdate(updateID int, from int64, data string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: updateID,
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb",
			From: testUser(from, "ru"),
			Data: data,
			Message: &tgbotapi.Message{
				MessageID: 77,
				Chat:      &tgbotapi.Chat{ID: from},
				Caption:   "📸 ЧЕК ОБ ОПЛАТЕ",
			},
		},
	}
}
