package dispatch

import (
	"strings"
	"unicode"

	"flowershop-bot/internal/telegram/messages"
	"flowershop-bot/internal/telegram/pending"
)

const (
	prefixReceipt        = "receipt_"
	prefixConfirmPayment = "confirm_payment_"
	prefixRejectPayment  = "reject_payment_"
	prefixCancelPhoto    = "cancel_photo_"
	callbackStatsRefresh = "stats_refresh"
)

// Кнопки reply-клавиатуры оператора не попадают в рассылку
var broadcastIgnoredTexts = map[string]bool{
	messages.ButtonBroadcast:  true,
	messages.ButtonStats:      true,
	messages.ButtonAdminPanel: true,
	messages.ButtonExport:     true,
}

// Decide выбирает маршрут для update и изменения реестра. Реестр только читается,
// изменения применяет вызывающий.
//
// Порядок проверок фиксирован: рассылка оператора, /start, команды оператора,
// callback-кнопки, фото.
func Decide(in Input, view pending.Reader) Decision {
	if in.IsMessage() && in.IsOperator && view.Has(pending.BroadcastKey(in.SenderID)) {
		return decideBroadcast(in)
	}

	if in.IsMessage() {
		cmd := command(in.Text)
		switch {
		case strings.HasPrefix(strings.TrimSpace(in.Text), messages.CommandStart):
			return Decision{Route: RouteStart}
		case cmd == messages.CommandStats || cmd == messages.ButtonStats:
			return operatorOnly(in, Decision{Route: RouteStats})
		case cmd == messages.CommandBroadcast || cmd == messages.ButtonBroadcast:
			return operatorOnly(in, Decision{
				Route: RouteBroadcastStart,
				Effects: []Effect{
					Put(pending.BroadcastKey(in.SenderID), pending.BroadcastCompose{StartedAt: in.ReceivedAt}),
				},
			})
		case cmd == messages.CommandExport || cmd == messages.ButtonExport:
			return operatorOnly(in, Decision{Route: RouteExport})
		}
	}

	if in.Callback != nil {
		return decideCallback(in, view)
	}

	if in.PhotoFileID != "" {
		return decidePhoto(in, view)
	}

	return Decision{Route: RouteIgnore}
}

func decideBroadcast(in Input) Decision {
	text := strings.TrimSpace(in.Text)
	key := pending.BroadcastKey(in.SenderID)

	switch {
	case text == messages.CommandCancel:
		return Decision{Route: RouteBroadcastCancel, Effects: []Effect{Delete(key)}}
	case broadcastIgnoredTexts[text]:
		return Decision{Route: RouteBroadcastIgnoreButton}
	case in.PhotoFileID == "" && in.VideoFileID == "" && text == "":
		return Decision{Route: RouteBroadcastEmpty}
	default:
		return Decision{Route: RouteBroadcastCapture, Effects: []Effect{Claim(key)}}
	}
}

func decideCallback(in Input, view pending.Reader) Decision {
	data := in.Callback.Data

	switch {
	case data == callbackStatsRefresh:
		if !in.IsOperator {
			return Decision{Route: RouteCallbackDenied}
		}
		return Decision{Route: RouteStatsRefresh}

	case strings.HasPrefix(data, prefixReceipt):
		orderID := strings.TrimPrefix(data, prefixReceipt)
		if orderID == "" {
			return Decision{Route: RouteUnknownCallback}
		}
		return Decision{
			Route:   RouteReceiptRequest,
			OrderID: orderID,
			Effects: []Effect{
				Put(pending.WaitingKey(in.ChatID), pending.WaitingReceipt{OrderID: orderID}),
			},
		}

	case strings.HasPrefix(data, prefixConfirmPayment):
		orderID := strings.TrimPrefix(data, prefixConfirmPayment)
		if !in.IsOperator {
			return Decision{Route: RouteCallbackDenied, OrderID: orderID}
		}
		d := Decision{
			Route:   RouteConfirmPayment,
			OrderID: orderID,
			Effects: []Effect{Delete(pending.OrderKey(orderID))},
		}
		if oc, ok := pending.GetOrderContext(view, orderID); ok {
			d.Order = &oc
			d.Effects = append(d.Effects, ClearWaiting(oc.CustomerChatID, orderID))
		}
		return d

	case strings.HasPrefix(data, prefixRejectPayment):
		orderID := strings.TrimPrefix(data, prefixRejectPayment)
		if !in.IsOperator {
			return Decision{Route: RouteCallbackDenied, OrderID: orderID}
		}
		d := Decision{Route: RouteRejectPayment, OrderID: orderID}
		if oc, ok := pending.GetOrderContext(view, orderID); ok {
			d.Order = &oc
			d.Effects = append(d.Effects,
				Put(pending.WaitingKey(oc.CustomerChatID), pending.WaitingReceipt{OrderID: orderID}))
		}
		return d

	case strings.HasPrefix(data, prefixCancelPhoto):
		orderID, photoType, ok := parseCancelPhoto(strings.TrimPrefix(data, prefixCancelPhoto))
		if !ok {
			return Decision{Route: RouteUnknownCallback}
		}
		if !in.IsOperator {
			return Decision{Route: RouteCallbackDenied, OrderID: orderID}
		}
		return Decision{
			Route:     RouteCancelPhoto,
			OrderID:   orderID,
			PhotoType: photoType,
			Effects:   []Effect{Delete(pending.PhotoKey(in.SenderID, orderID, photoType))},
		}
	}

	return Decision{Route: RouteUnknownCallback}
}

func decidePhoto(in Input, view pending.Reader) Decision {
	if in.IsOperator {
		requests := pending.PhotoRequests(view, in.SenderID)
		if len(requests) > 0 {
			req, ok := resolvePhotoRequest(in, requests)
			if !ok {
				return Decision{Route: RouteAmbiguousPhoto, Candidates: requests}
			}
			return Decision{
				Route:     RouteOperatorPhoto,
				OrderID:   req.OrderID,
				PhotoType: req.PhotoType,
				Effects:   []Effect{Claim(pending.PhotoKey(in.SenderID, req.OrderID, req.PhotoType))},
			}
		}
	}

	if w, ok := pending.GetWaiting(view, in.ChatID); ok {
		return Decision{
			Route:   RouteReceiptPhoto,
			OrderID: w.OrderID,
			Effects: []Effect{Claim(pending.WaitingKey(in.ChatID))},
		}
	}

	return Decision{Route: RouteIgnore}
}

// resolvePhotoRequest выбирает запрос фото: ответ на сообщение-запрос,
// номер заказа и/или тип фото в подписи, единственный запрос.
// Ответ на сообщение и номер заказа в подписи обязательны к исполнению:
// если они не совпали ни с одним запросом, фото считается неоднозначным.
func resolvePhotoRequest(in Input, requests []pending.PhotoRequest) (pending.PhotoRequest, bool) {
	if in.ReplyToMessageID != 0 {
		for _, r := range requests {
			if r.PromptMessageID == in.ReplyToMessageID {
				return r, true
			}
		}
		return pending.PhotoRequest{}, false
	}

	caption := strings.ToLower(in.Caption)

	var byOrder []pending.PhotoRequest
	for _, r := range requests {
		if containsToken(caption, strings.ToLower(r.OrderID)) {
			byOrder = append(byOrder, r)
		}
	}
	if len(byOrder) == 0 && mentionsOrder(caption) {
		return pending.PhotoRequest{}, false
	}

	if len(requests) == 1 {
		return requests[0], true
	}
	if caption == "" {
		return pending.PhotoRequest{}, false
	}
	if len(byOrder) == 1 {
		return byOrder[0], true
	}

	// без номера заказа в подписи выбираем только по типу фото
	candidates := byOrder
	if len(candidates) == 0 {
		candidates = requests
	}

	var byType []pending.PhotoRequest
	for _, r := range candidates {
		if mentionsPhotoType(caption, r.PhotoType) {
			byType = append(byType, r)
		}
	}
	if len(byType) == 1 {
		return byType[0], true
	}

	return pending.PhotoRequest{}, false
}

var orderWords = []string{"заказ", "order", "тапсырыс"}

// mentionsOrder сообщает, что в подписи есть номер заказа: "#A", "№12",
// слово с цифрами или слово после "заказ".
func mentionsOrder(caption string) bool {
	words := strings.Fields(caption)
	for i, w := range words {
		if (strings.HasPrefix(w, "#") || strings.HasPrefix(w, "№")) && strings.TrimLeft(trimPunct(w), "#№") != "" {
			return true
		}
		if strings.IndexFunc(w, unicode.IsDigit) >= 0 {
			return true
		}
		if i+1 < len(words) && isOrderWord(w) {
			next := trimPunct(words[i+1])
			if next != "" && !isPhotoTypeWord(next) {
				return true
			}
		}
	}
	return false
}

func isOrderWord(w string) bool {
	w = trimPunct(w)
	for _, o := range orderWords {
		if strings.HasPrefix(w, o) {
			return true
		}
	}
	return false
}

func isPhotoTypeWord(w string) bool {
	for _, words := range photoTypeWords {
		for _, t := range words {
			if strings.HasPrefix(w, t) {
				return true
			}
		}
	}
	return false
}

func trimPunct(w string) string {
	return strings.TrimFunc(w, func(r rune) bool {
		return unicode.IsPunct(r) && r != '#' && r != '№'
	})
}

var photoTypeWords = map[string][]string{
	pending.PhotoBouquet:  {"bouquet", "букет", "шоқ"},
	pending.PhotoDelivery: {"delivery", "доставк", "жеткіз"},
}

func mentionsPhotoType(caption, photoType string) bool {
	for _, w := range photoTypeWords[photoType] {
		if strings.Contains(caption, w) {
			return true
		}
	}
	return false
}

// containsToken ищет id заказа как отдельное слово, чтобы "12" не совпадало с "123"
func containsToken(text, token string) bool {
	if token == "" {
		return false
	}
	for _, f := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '\n' || r == '\t' || r == '#' || r == ',' || r == '.' || r == ':' || r == '№'
	}) {
		if f == token {
			return true
		}
	}
	return false
}

// parseCancelPhoto разбирает "<orderId>_<type>". Тип берётся после последнего "_",
// поэтому id заказа может содержать подчёркивания.
func parseCancelPhoto(s string) (orderID, photoType string, ok bool) {
	i := strings.LastIndex(s, "_")
	if i <= 0 || i == len(s)-1 {
		return "", "", false
	}
	orderID, photoType = s[:i], s[i+1:]
	if !pending.ValidPhotoType(photoType) {
		return "", "", false
	}
	return orderID, photoType, true
}

// command нормализует текст команды: обрезает пробелы и суффикс @botname
func command(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return text
	}
	if i := strings.IndexAny(text, " \n"); i > 0 {
		text = text[:i]
	}
	if i := strings.Index(text, "@"); i > 0 {
		text = text[:i]
	}
	return text
}

func operatorOnly(in Input, d Decision) Decision {
	if !in.IsOperator {
		return Decision{Route: RouteDenied}
	}
	return d
}
