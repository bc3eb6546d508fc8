package pending

import (
	"fmt"
	"time"
)

type Kind uint8

const (
	KindOrderContext Kind = iota + 1
	KindWaiting
	KindPhotoRequest
	KindBroadcast
)

func (k Kind) String() string {
	switch k {
	case KindOrderContext:
		return "order"
	case KindWaiting:
		return "waiting"
	case KindPhotoRequest:
		return "photo"
	case KindBroadcast:
		return "broadcast"
	default:
		return "unknown"
	}
}

const (
	PhotoBouquet  = "bouquet"
	PhotoDelivery = "delivery"
)

// ValidPhotoType проверяет тип фото, который оператор отправляет клиенту
func ValidPhotoType(t string) bool {
	return t == PhotoBouquet || t == PhotoDelivery
}

// Key - составной ключ ожидания. Сравнивается целиком, лишние поля для вида пустые.
type Key struct {
	Kind      Kind
	ChatID    int64
	OrderID   string
	PhotoType string
}

func OrderKey(orderID string) Key {
	return Key{Kind: KindOrderContext, OrderID: orderID}
}

func WaitingKey(chatID int64) Key {
	return Key{Kind: KindWaiting, ChatID: chatID}
}

func PhotoKey(adminID int64, orderID, photoType string) Key {
	return Key{Kind: KindPhotoRequest, ChatID: adminID, OrderID: orderID, PhotoType: photoType}
}

func BroadcastKey(adminID int64) Key {
	return Key{Kind: KindBroadcast, ChatID: adminID}
}

func (k Key) String() string {
	switch k.Kind {
	case KindOrderContext:
		return fmt.Sprintf("order:%s", k.OrderID)
	case KindWaiting:
		return fmt.Sprintf("waiting:%d", k.ChatID)
	case KindPhotoRequest:
		return fmt.Sprintf("photo:%d:%s:%s", k.ChatID, k.OrderID, k.PhotoType)
	case KindBroadcast:
		return fmt.Sprintf("broadcast:%d", k.ChatID)
	default:
		return "unknown"
	}
}

// OrderContext - данные заказа, ожидающего чек
type OrderContext struct {
	CustomerChatID   int64
	ShortOrderNumber string
	TotalAmount      int64
	CustomerName     string
}

// WaitingReceipt - следующее фото из чата считается чеком по заказу
type WaitingReceipt struct {
	OrderID string
}

// PhotoRequest - следующее подходящее фото оператора уходит клиенту
type PhotoRequest struct {
	OrderID         string
	CustomerChatID  int64
	PhotoType       string
	PromptMessageID int
}

// BroadcastCompose - оператор набирает рассылку
type BroadcastCompose struct {
	StartedAt time.Time
}

type Entry struct {
	Key   Key
	Value any
}
