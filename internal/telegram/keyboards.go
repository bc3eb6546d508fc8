package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"flowershop-bot/internal/telegram/messages"
)

// Кнопки web_app отсутствуют в tgbotapi v5.5.1, клавиатуры с ними собираются вручную.
// ReplyMarkup сериализуется в JSON как есть.

type webAppInfo struct {
	URL string `json:"url"`
}

type inlineButton struct {
	Text         string      `json:"text"`
	URL          string      `json:"url,omitempty"`
	CallbackData string      `json:"callback_data,omitempty"`
	WebApp       *webAppInfo `json:"web_app,omitempty"`
}

type inlineKeyboard struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

type replyButton struct {
	Text   string      `json:"text"`
	WebApp *webAppInfo `json:"web_app,omitempty"`
}

type replyKeyboard struct {
	Keyboard       [][]replyButton `json:"keyboard"`
	ResizeKeyboard bool            `json:"resize_keyboard"`
	IsPersistent   bool            `json:"is_persistent,omitempty"`
}

func webAppButton(text, url string) inlineButton {
	return inlineButton{Text: text, WebApp: &webAppInfo{URL: url}}
}

// welcomeKeyboard - вход в магазин, у оператора ещё и в админ-панель
func welcomeKeyboard(shopText string, apps AppLinks, isOperator bool) inlineKeyboard {
	kb := inlineKeyboard{InlineKeyboard: [][]inlineButton{
		{webAppButton(shopText, apps.ClientURL)},
	}}
	if isOperator && apps.AdminURL != "" {
		kb.InlineKeyboard = append(kb.InlineKeyboard, []inlineButton{webAppButton(messages.ButtonAdminPanel, apps.AdminURL)})
	}
	return kb
}

func mainReplyKeyboard(catalogText string, apps AppLinks, isOperator bool) replyKeyboard {
	kb := replyKeyboard{
		Keyboard: [][]replyButton{
			{{Text: catalogText, WebApp: &webAppInfo{URL: apps.ClientURL}}},
		},
		ResizeKeyboard: true,
		IsPersistent:   true,
	}
	if isOperator {
		if apps.AdminURL != "" {
			kb.Keyboard = append(kb.Keyboard, []replyButton{{Text: messages.ButtonAdminPanel, WebApp: &webAppInfo{URL: apps.AdminURL}}})
		}
		kb.Keyboard = append(kb.Keyboard, []replyButton{
			{Text: messages.ButtonStats},
			{Text: messages.ButtonBroadcast},
			{Text: messages.ButtonExport},
		})
	}
	return kb
}

func receiptDecisionKeyboard(orderID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(messages.ButtonConfirm, "confirm_payment_"+orderID),
			tgbotapi.NewInlineKeyboardButtonData(messages.ButtonReject, "reject_payment_"+orderID),
		),
	)
}

func singleCallbackKeyboard(text, data string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(text, data)),
	)
}

// paymentKeyboard - ссылка на Kaspi (если есть) и кнопка отправки чека
func paymentKeyboard(payText, kaspiLink, receiptText, orderID string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if kaspiLink != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(payText, kaspiLink)))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(receiptText, "receipt_"+orderID)))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// AppLinks - адреса веб-приложений магазина
type AppLinks struct {
	ClientURL string
	AdminURL  string
}
