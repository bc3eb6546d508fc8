package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"flowershop-bot/internal/stories/broadcast"
	"flowershop-bot/internal/telegram"
)

// flexInt принимает число или строку с числом: веб-приложения шлют оба варианта
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		data = []byte(s)
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("not a number: %s", data)
	}
	if v, err := n.Int64(); err == nil {
		*f = flexInt(v)
		return nil
	}
	v, err := n.Float64()
	if err != nil {
		return fmt.Errorf("not a number: %s", data)
	}
	*f = flexInt(int64(v))
	return nil
}

// flexString принимает строку или число
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("not a string: %s", data)
	}
	*f = flexString(n.String())
	return nil
}

type orderItemPayload struct {
	Name     string  `json:"name"`
	Quantity flexInt `json:"quantity"`
	Price    flexInt `json:"price"`
}

type orderPayload struct {
	OrderID          flexString         `json:"orderId"`
	Date             string             `json:"date"`
	CustomerName     string             `json:"customerName"`
	CustomerPhone    flexString         `json:"customerPhone"`
	CustomerComment  string             `json:"customerComment"`
	DeliveryType     string             `json:"deliveryType"`
	DeliveryAddress  string             `json:"deliveryAddress"`
	DeliveryDate     string             `json:"deliveryDate"`
	DeliveryTime     string             `json:"deliveryTime"`
	TelegramUserID   flexInt            `json:"telegramUserId"`
	TelegramUsername string             `json:"telegramUsername"`
	Items            []orderItemPayload `json:"items"`
	Subtotal         flexInt            `json:"subtotal"`
	CashbackUsed     flexInt            `json:"cashbackUsed"`
	Total            flexInt            `json:"total"`
	PaymentEnabled   bool               `json:"paymentEnabled"`
	KaspiPhone       flexString         `json:"kaspiPhone"`
	KaspiLink        string             `json:"kaspiLink"`
}

func (p orderPayload) toRequest() telegram.OrderRequest {
	items := make([]telegram.OrderItem, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, telegram.OrderItem{
			Name:     it.Name,
			Quantity: int(it.Quantity),
			Price:    int64(it.Price),
		})
	}

	return telegram.OrderRequest{
		OrderID:          string(p.OrderID),
		Date:             p.Date,
		CustomerName:     p.CustomerName,
		CustomerPhone:    string(p.CustomerPhone),
		CustomerComment:  p.CustomerComment,
		DeliveryType:     p.DeliveryType,
		DeliveryAddress:  p.DeliveryAddress,
		DeliveryDate:     p.DeliveryDate,
		DeliveryTime:     p.DeliveryTime,
		TelegramUserID:   int64(p.TelegramUserID),
		TelegramUsername: p.TelegramUsername,
		Items:            items,
		Subtotal:         int64(p.Subtotal),
		CashbackUsed:     int64(p.CashbackUsed),
		Total:            int64(p.Total),
		PaymentEnabled:   p.PaymentEnabled,
		KaspiPhone:       string(p.KaspiPhone),
		KaspiLink:        p.KaspiLink,
	}
}

type statusPayload struct {
	UserID      flexInt    `json:"userId"`
	Status      string     `json:"status"`
	OrderNumber flexString `json:"orderNumber"`
	ShopPhone   string     `json:"shopPhone"`
	OrderID     flexString `json:"orderId"`
}

func (p statusPayload) toRequest() telegram.StatusRequest {
	return telegram.StatusRequest{
		UserID:      int64(p.UserID),
		Status:      p.Status,
		OrderNumber: string(p.OrderNumber),
		ShopPhone:   p.ShopPhone,
		OrderID:     string(p.OrderID),
	}
}

type photoPromptPayload struct {
	OrderID        flexString `json:"orderId"`
	TelegramUserID flexInt    `json:"telegramUserId"`
	PhotoType      string     `json:"photoType"`
}

func (p photoPromptPayload) toRequest() telegram.PhotoPromptRequest {
	return telegram.PhotoPromptRequest{
		OrderID:        string(p.OrderID),
		TelegramUserID: int64(p.TelegramUserID),
		PhotoType:      p.PhotoType,
	}
}

type recipientPayload struct {
	TelegramUserID flexInt `json:"telegramUserId"`
	LanguageCode   string  `json:"languageCode"`
}

type broadcastPayload struct {
	// nil - рассылка всем клиентам из базы
	Recipients *[]recipientPayload `json:"recipients"`
	MessageRu  string              `json:"messageRu"`
	MessageKk  string              `json:"messageKk"`
	Message    string              `json:"message"`
}

func (p broadcastPayload) recipients() []broadcast.Recipient {
	if p.Recipients == nil {
		return nil
	}
	result := make([]broadcast.Recipient, 0, len(*p.Recipients))
	for _, r := range *p.Recipients {
		result = append(result, broadcast.Recipient{
			ChatID:       int64(r.TelegramUserID),
			LanguageCode: r.LanguageCode,
		})
	}
	return result
}

func (p broadcastPayload) variants() broadcast.Variants {
	if strings.TrimSpace(p.MessageRu) != "" || strings.TrimSpace(p.MessageKk) != "" {
		return broadcast.TextVariants(p.MessageRu, p.MessageKk)
	}
	return broadcast.SplitVariants(p.Message)
}
