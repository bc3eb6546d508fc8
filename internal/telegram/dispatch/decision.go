package dispatch

import (
	"flowershop-bot/internal/telegram/pending"
)

type Route string

const (
	RouteIgnore                Route = "ignore"
	RouteDuplicate             Route = "duplicate"
	RouteBroadcastCancel       Route = "broadcast_cancel"
	RouteBroadcastIgnoreButton Route = "broadcast_ignore_button"
	RouteBroadcastEmpty        Route = "broadcast_empty"
	RouteBroadcastCapture      Route = "broadcast_capture"
	RouteStart                 Route = "start"
	RouteDenied                Route = "denied"
	RouteStats                 Route = "stats"
	RouteStatsRefresh          Route = "stats_refresh"
	RouteBroadcastStart        Route = "broadcast_start"
	RouteExport                Route = "export"
	RouteReceiptRequest        Route = "receipt_request"
	RouteConfirmPayment        Route = "confirm_payment"
	RouteRejectPayment         Route = "reject_payment"
	RouteCancelPhoto           Route = "cancel_photo"
	RouteCallbackDenied        Route = "callback_denied"
	RouteUnknownCallback       Route = "unknown_callback"
	RouteOperatorPhoto         Route = "operator_photo"
	RouteAmbiguousPhoto        Route = "ambiguous_photo"
	RouteReceiptPhoto          Route = "receipt_photo"
)

// Routes перечисляет все маршруты, используется для меток метрик
var Routes = []Route{
	RouteIgnore, RouteDuplicate, RouteBroadcastCancel, RouteBroadcastIgnoreButton, RouteBroadcastEmpty,
	RouteBroadcastCapture, RouteStart, RouteDenied, RouteStats, RouteStatsRefresh, RouteBroadcastStart,
	RouteExport, RouteReceiptRequest, RouteConfirmPayment, RouteRejectPayment,
	RouteCancelPhoto, RouteCallbackDenied, RouteUnknownCallback, RouteOperatorPhoto,
	RouteAmbiguousPhoto, RouteReceiptPhoto,
}

type Op uint8

const (
	OpPut Op = iota + 1
	OpDelete
	// OpClaim забирает запись через Take. Если записи уже нет, маршрут отменяется.
	OpClaim
	// OpClearWaiting снимает waiting: клиента, только если он указывает на OrderID
	OpClearWaiting
)

type Effect struct {
	Op      Op
	Key     pending.Key
	Value   any
	OrderID string
}

func Put(key pending.Key, value any) Effect {
	return Effect{Op: OpPut, Key: key, Value: value}
}

func Delete(key pending.Key) Effect {
	return Effect{Op: OpDelete, Key: key}
}

func Claim(key pending.Key) Effect {
	return Effect{Op: OpClaim, Key: key}
}

func ClearWaiting(chatID int64, orderID string) Effect {
	return Effect{Op: OpClearWaiting, Key: pending.WaitingKey(chatID), OrderID: orderID}
}

// Decision - результат разбора update: маршрут и изменения реестра ожиданий
type Decision struct {
	Route     Route
	OrderID   string
	PhotoType string
	Effects   []Effect
	// Order - контекст заказа из реестра на момент решения, если он был
	Order *pending.OrderContext
	// Candidates - запросы фото, между которыми не удалось выбрать
	Candidates []pending.PhotoRequest
}

// Claimed возвращает ключ первого OpClaim, если он есть
func (d Decision) Claimed() (pending.Key, bool) {
	for _, e := range d.Effects {
		if e.Op == OpClaim {
			return e.Key, true
		}
	}
	return pending.Key{}, false
}
