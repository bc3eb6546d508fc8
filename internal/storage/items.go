package storage

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"flowershop-bot/internal/stories/orders"
)

// itemsColumn хранит позиции заказа как JSON
type itemsColumn []orders.Item

func (c itemsColumn) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]orders.Item(c))
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}
	return string(b), nil
}

func (c *itemsColumn) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*c = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported items type %T", src)
	}

	var items []orders.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("unmarshal items: %w", err)
	}
	*c = items
	return nil
}
