package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	"flowershop-bot/internal/localization"
	"flowershop-bot/internal/stories/broadcast"
	"flowershop-bot/internal/stories/customers"
	"flowershop-bot/internal/telegram/dispatch"
	"flowershop-bot/internal/telegram/messages"
	"flowershop-bot/internal/telegram/pending"
)

var ErrOperatorNotConfigured = errors.New("operator chat is not configured")

type Router struct {
	bot          botAPI
	registry     pending.Store
	adminChecker *AdminChecker
	customers    customerService
	orders       orderService
	i18n         translator
	broadcasts   *Broadcasts
	apps         AppLinks
	updates      *updateWindow
	observe      func(route dispatch.Route)
	logger       *slog.Logger

	// Handlers
	statsCommand  statsCommand
	exportCommand operatorCommand
}

type RouterOption func(*Router)

// WithRouteObserver вызывается с маршрутом каждого обработанного update
func WithRouteObserver(fn func(route dispatch.Route)) RouterOption {
	return func(r *Router) {
		r.observe = fn
	}
}

// WithUpdateWindow задаёт число запоминаемых update_id
func WithUpdateWindow(size int) RouterOption {
	return func(r *Router) {
		r.updates = newUpdateWindow(size)
	}
}

// NewRouter создает новый роутер с зависимостями
func NewRouter(
	bot botAPI,
	registry pending.Store,
	adminChecker *AdminChecker,
	customers customerService,
	orders orderService,
	i18n translator,
	broadcasts *Broadcasts,
	statsCommand statsCommand,
	exportCommand operatorCommand,
	apps AppLinks,
	logger *slog.Logger,
	opts ...RouterOption,
) *Router {
	r := &Router{
		bot:           bot,
		registry:      registry,
		adminChecker:  adminChecker,
		customers:     customers,
		orders:        orders,
		i18n:          i18n,
		broadcasts:    broadcasts,
		apps:          apps,
		updates:       newUpdateWindow(defaultUpdateWindow),
		observe:       func(dispatch.Route) {},
		logger:        logger,
		statsCommand:  statsCommand,
		exportCommand: exportCommand,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HandleUpdate обрабатывает update из вебхука. Ошибки только логируются.
func (r *Router) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	route, err := r.Route(ctx, update)
	if err != nil {
		r.logger.Error("Ошибка обработки update",
			"update_id", update.UpdateID,
			"route", string(route),
			"error", err)
	}
}

// Route выбирает маршрут, применяет изменения реестра и выполняет обработчик
func (r *Router) Route(ctx context.Context, update tgbotapi.Update) (dispatch.Route, error) {
	in, ok := dispatch.FromUpdate(update, r.adminChecker.OperatorID())
	if !ok {
		r.observe(dispatch.RouteIgnore)
		return dispatch.RouteIgnore, nil
	}

	if r.updates.Seen(in.UpdateID) {
		r.logger.Debug("Повторная доставка update", "update_id", in.UpdateID)
		r.observe(dispatch.RouteDuplicate)
		return dispatch.RouteDuplicate, nil
	}

	d := dispatch.Decide(in, r.registry)

	claimed, ok := r.apply(d)
	if !ok {
		// запись уже забрал параллельный update
		r.observe(dispatch.RouteIgnore)
		return dispatch.RouteIgnore, nil
	}

	r.observe(d.Route)
	return d.Route, r.handle(ctx, in, d, claimed)
}

func (r *Router) apply(d dispatch.Decision) (any, bool) {
	var claimed any
	for _, e := range d.Effects {
		switch e.Op {
		case dispatch.OpPut:
			r.registry.Put(e.Key, e.Value)
		case dispatch.OpDelete:
			r.registry.Delete(e.Key)
		case dispatch.OpClaim:
			v, ok := r.registry.Take(e.Key)
			if !ok {
				return nil, false
			}
			claimed = v
		case dispatch.OpClearWaiting:
			pending.ClearWaiting(r.registry, e.Key.ChatID, e.OrderID)
		}
	}
	return claimed, true
}

func (r *Router) handle(ctx context.Context, in dispatch.Input, d dispatch.Decision, claimed any) error {
	switch d.Route {
	case dispatch.RouteBroadcastCancel:
		return r.sendText(in.ChatID, messages.BroadcastCancelled)
	case dispatch.RouteBroadcastEmpty:
		return r.sendText(in.ChatID, messages.BroadcastEmpty)
	case dispatch.RouteBroadcastCapture:
		return r.handleBroadcastCapture(ctx, in)
	case dispatch.RouteBroadcastStart:
		return r.sendHTML(in.ChatID, messages.BroadcastStart)
	case dispatch.RouteStart:
		return r.handleStart(ctx, in)
	case dispatch.RouteDenied:
		return r.sendText(in.ChatID, r.i18n.Get(language(in), "access.denied", nil))
	case dispatch.RouteStats:
		return r.statsCommand.Execute(ctx, in.ChatID)
	case dispatch.RouteStatsRefresh:
		r.answerCallback(in.Callback.ID, messages.StatsRefreshed)
		return r.statsCommand.Refresh(ctx, in.ChatID, in.Callback.MessageID)
	case dispatch.RouteExport:
		return r.exportCommand.Execute(ctx, in.ChatID)
	case dispatch.RouteReceiptRequest:
		return r.handleReceiptRequest(in)
	case dispatch.RouteConfirmPayment:
		return r.handleConfirmPayment(ctx, in, d)
	case dispatch.RouteRejectPayment:
		return r.handleRejectPayment(ctx, in, d)
	case dispatch.RouteCancelPhoto:
		return r.handleCancelPhoto(in)
	case dispatch.RouteCallbackDenied:
		r.answerCallback(in.Callback.ID, messages.NoRights)
		return nil
	case dispatch.RouteUnknownCallback:
		r.answerCallback(in.Callback.ID, "")
		return nil
	case dispatch.RouteOperatorPhoto:
		return r.handleOperatorPhoto(in, claimed)
	case dispatch.RouteAmbiguousPhoto:
		return r.handleAmbiguousPhoto(in, d)
	case dispatch.RouteReceiptPhoto:
		return r.handleReceiptPhoto(ctx, in, claimed)
	}
	return nil
}

func (r *Router) handleStart(ctx context.Context, in dispatch.Input) error {
	lang := language(in)
	isOperator := in.IsOperator

	if _, err := r.customers.EnsureCustomer(ctx, customers.Customer{
		TelegramUserID: in.SenderID,
		Username:       in.Username,
		FirstName:      in.FirstName,
		LanguageCode:   lang,
	}); err != nil {
		// приветствие отправляется и без записи клиента
		r.logger.Warn("Не удалось сохранить клиента", "telegram_user_id", in.SenderID, "error", err)
	}

	name := in.FirstName
	if name == "" {
		name = r.i18n.Get(lang, "welcome.default_name", nil)
	}

	welcome := tgbotapi.NewMessage(in.ChatID, r.i18n.Get(lang, "welcome.text", map[string]interface{}{
		"name": html.EscapeString(name),
	}))
	welcome.ParseMode = tgbotapi.ModeHTML
	welcome.ReplyMarkup = welcomeKeyboard(r.i18n.Get(lang, "welcome.shop_button", nil), r.apps, isOperator)
	if _, err := r.bot.Send(welcome); err != nil {
		return fmt.Errorf("send welcome: %w", err)
	}

	buttons := tgbotapi.NewMessage(in.ChatID, r.i18n.Get(lang, "welcome.use_buttons", nil))
	buttons.ReplyMarkup = mainReplyKeyboard(r.i18n.Get(lang, "welcome.catalog_button", nil), r.apps, isOperator)
	if _, err := r.bot.Send(buttons); err != nil {
		return fmt.Errorf("send reply keyboard: %w", err)
	}
	return nil
}

func (r *Router) handleBroadcastCapture(ctx context.Context, in dispatch.Input) error {
	content := broadcast.Content{Text: in.Text}
	if in.PhotoFileID != "" || in.VideoFileID != "" {
		content = broadcast.Content{
			PhotoFileID: in.PhotoFileID,
			VideoFileID: in.VideoFileID,
			Caption:     in.Caption,
		}
	}

	if err := r.broadcasts.Launch(ctx, in.ChatID, content); err != nil {
		_ = r.sendText(in.ChatID, messages.Error)
		return err
	}
	return nil
}

func (r *Router) handleReceiptRequest(in dispatch.Input) error {
	r.answerCallback(in.Callback.ID, r.i18n.Get(language(in), "receipt.prompt_answer", nil))
	return r.sendHTML(in.ChatID, r.i18n.Bilingual("receipt.prompt", nil))
}

func (r *Router) handleConfirmPayment(ctx context.Context, in dispatch.Input, d dispatch.Decision) error {
	orderID := d.OrderID
	number := orderNumber(d.Order, orderID)

	var customerChatID int64
	if d.Order != nil {
		customerChatID = d.Order.CustomerChatID
	}

	result, err := r.orders.ConfirmPayment(ctx, orderID)
	if err != nil {
		r.logger.Error("Не удалось подтвердить оплату в базе", "order_id", orderID, "error", err)
	} else {
		if result.Order.TelegramUserID != nil {
			dbChatID := *result.Order.TelegramUserID
			if customerChatID == 0 {
				customerChatID = dbChatID
			}
			pending.ClearWaiting(r.registry, dbChatID, orderID)
		}
		for _, u := range result.StockUpdates {
			r.logger.Info("Остаток списан",
				"order_id", orderID,
				"product", u.Name,
				"before", u.Before,
				"after", u.After,
				"available", u.Available)
		}
	}

	if customerChatID != 0 {
		lang := r.customers.Language(ctx, customerChatID)
		text := r.i18n.Get(lang, "payment.confirmed", map[string]interface{}{"order": number})
		if err := r.sendHTML(customerChatID, text); err != nil {
			r.logger.Warn("Не удалось уведомить клиента о подтверждении", "order_id", orderID, "error", err)
		}
	}

	r.answerCallback(in.Callback.ID, messages.PaymentConfirmedAnswer)
	return r.markDecision(in, messages.PaymentConfirmedMark)
}

func (r *Router) handleRejectPayment(ctx context.Context, in dispatch.Input, d dispatch.Decision) error {
	orderID := d.OrderID
	oc := d.Order

	if oc == nil {
		// контекст потерян (рестарт), восстанавливаем из базы
		order, err := r.orders.GetOrder(ctx, orderID)
		switch {
		case err != nil:
			r.logger.Warn("Заказ для отклонения чека не найден", "order_id", orderID, "error", err)
		case order.TelegramUserID != nil:
			oc = &pending.OrderContext{
				CustomerChatID:   *order.TelegramUserID,
				ShortOrderNumber: order.ID,
				TotalAmount:      order.Total,
				CustomerName:     order.CustomerName,
			}
			r.registry.Put(pending.OrderKey(orderID), *oc)
			r.registry.Put(pending.WaitingKey(oc.CustomerChatID), pending.WaitingReceipt{OrderID: orderID})
		}
	}

	if oc != nil {
		lang := r.customers.Language(ctx, oc.CustomerChatID)
		msg := tgbotapi.NewMessage(oc.CustomerChatID, r.i18n.Bilingual("payment.rejected", map[string]interface{}{
			"order": orderNumber(oc, orderID),
		}))
		msg.ParseMode = tgbotapi.ModeHTML
		msg.ReplyMarkup = singleCallbackKeyboard(r.i18n.Get(lang, "payment.resend_button", nil), "receipt_"+orderID)
		if _, err := r.bot.Send(msg); err != nil {
			r.logger.Warn("Не удалось уведомить клиента об отклонении", "order_id", orderID, "error", err)
		}
	}

	r.answerCallback(in.Callback.ID, messages.PaymentRejectedAnswer)
	return r.markDecision(in, messages.PaymentRejectedMark)
}

func (r *Router) handleCancelPhoto(in dispatch.Input) error {
	r.answerCallback(in.Callback.ID, messages.Cancelled)
	if in.Callback.MessageID == 0 {
		return nil
	}
	edit := tgbotapi.NewEditMessageText(in.ChatID, in.Callback.MessageID, messages.PhotoPromptCanceled)
	_, err := r.bot.Request(edit)
	return err
}

func (r *Router) handleOperatorPhoto(in dispatch.Input, claimed any) error {
	req, ok := claimed.(pending.PhotoRequest)
	if !ok {
		return fmt.Errorf("unexpected photo request value %T", claimed)
	}

	photo := tgbotapi.NewPhoto(req.CustomerChatID, tgbotapi.FileID(in.PhotoFileID))
	photo.Caption = r.i18n.Bilingual("photo."+req.PhotoType, map[string]interface{}{"order": req.OrderID})
	photo.ParseMode = tgbotapi.ModeHTML
	if _, err := r.bot.Send(photo); err != nil {
		// оператор может прислать фото ещё раз
		r.registry.Put(pending.PhotoKey(in.SenderID, req.OrderID, req.PhotoType), req)
		_ = r.sendText(in.ChatID, messages.PhotoSendFailed(err))
		return fmt.Errorf("send photo to customer: %w", err)
	}

	return r.sendText(in.ChatID, messages.PhotoSent)
}

func (r *Router) handleAmbiguousPhoto(in dispatch.Input, d dispatch.Decision) error {
	ids := lo.Uniq(lo.Map(d.Candidates, func(c pending.PhotoRequest, _ int) string {
		return html.EscapeString(c.OrderID)
	}))
	return r.sendHTML(in.ChatID, messages.AmbiguousPhoto(ids))
}

func (r *Router) handleReceiptPhoto(ctx context.Context, in dispatch.Input, claimed any) error {
	waiting, ok := claimed.(pending.WaitingReceipt)
	if !ok {
		return fmt.Errorf("unexpected waiting value %T", claimed)
	}
	orderID := waiting.OrderID

	number, name, total := orderID, in.FirstName, int64(0)
	if oc, ok := pending.GetOrderContext(r.registry, orderID); ok {
		number = orderNumber(&oc, orderID)
		total = oc.TotalAmount
		if oc.CustomerName != "" {
			name = oc.CustomerName
		}
	} else if order, err := r.orders.GetOrder(ctx, orderID); err == nil {
		total = order.Total
		if order.CustomerName != "" {
			name = order.CustomerName
		}
	} else {
		r.logger.Warn("Заказ для чека не найден", "order_id", orderID, "error", err)
	}

	restore := func() {
		r.registry.Put(pending.WaitingKey(in.ChatID), waiting)
		_ = r.sendText(in.ChatID, messages.Error)
	}

	if !r.adminChecker.Configured() {
		restore()
		return ErrOperatorNotConfigured
	}

	photo := tgbotapi.NewPhoto(r.adminChecker.OperatorID(), tgbotapi.FileID(in.PhotoFileID))
	photo.Caption = messages.ReceiptCaption(html.EscapeString(number), html.EscapeString(name), total, in.SenderID)
	photo.ParseMode = tgbotapi.ModeHTML
	photo.ReplyMarkup = receiptDecisionKeyboard(orderID)
	if _, err := r.bot.Send(photo); err != nil {
		restore()
		return fmt.Errorf("forward receipt: %w", err)
	}

	return r.sendHTML(in.ChatID, r.i18n.Bilingual("receipt.received", nil))
}

// markDecision дописывает решение оператора в подпись чека и убирает кнопки
func (r *Router) markDecision(in dispatch.Input, mark string) error {
	if in.Callback.MessageID == 0 {
		return nil
	}
	edit := tgbotapi.NewEditMessageCaption(in.ChatID, in.Callback.MessageID, html.EscapeString(in.Callback.Caption)+mark)
	edit.ParseMode = tgbotapi.ModeHTML
	_, err := r.bot.Request(edit)
	return err
}

func (r *Router) answerCallback(callbackID, text string) {
	if _, err := r.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		r.logger.Debug("Не удалось ответить на callback", "error", err)
	}
}

func (r *Router) sendText(chatID int64, text string) error {
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (r *Router) sendHTML(chatID int64, text string) error {
	return sendHTML(r.bot, chatID, text)
}

func sendHTML(bot botAPI, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := bot.Send(msg)
	return err
}

// SetupBotCommands устанавливает команды для меню бота
func (r *Router) SetupBotCommands() error {
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Главное меню",
		},
	}

	if _, err := r.bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		return err
	}

	if r.adminChecker.Configured() {
		r.setupAdminCommands(r.adminChecker.OperatorID())
	}
	return nil
}

// setupAdminCommands устанавливает расширенные команды для оператора
func (r *Router) setupAdminCommands(chatID int64) {
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Главное меню",
		},
		{
			Command:     "stats",
			Description: "Статистика магазина",
		},
		{
			Command:     "broadcast",
			Description: "Рассылка клиентам",
		},
		{
			Command:     "export",
			Description: "Выгрузка заказов в Excel",
		},
		{
			Command:     "cancel",
			Description: "Отменить рассылку",
		},
	}

	scope := tgbotapi.NewBotCommandScopeChat(chatID)
	setCommandsConfig := tgbotapi.SetMyCommandsConfig{
		Commands: commands,
		Scope:    &scope,
	}

	// Игнорируем ошибку, чтобы не блокировать основной поток
	_, _ = r.bot.Request(setCommandsConfig)
}

func language(in dispatch.Input) string {
	return localization.Normalize(in.LanguageCode)
}

func orderNumber(oc *pending.OrderContext, orderID string) string {
	if oc != nil && oc.ShortOrderNumber != "" {
		return oc.ShortOrderNumber
	}
	return orderID
}
