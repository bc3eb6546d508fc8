package pending

// Типизированные помощники поверх Store

func GetOrderContext(s Reader, orderID string) (OrderContext, bool) {
	v, ok := s.Get(OrderKey(orderID))
	if !ok {
		return OrderContext{}, false
	}
	oc, ok := v.(OrderContext)
	return oc, ok
}

func GetWaiting(s Reader, chatID int64) (WaitingReceipt, bool) {
	v, ok := s.Get(WaitingKey(chatID))
	if !ok {
		return WaitingReceipt{}, false
	}
	w, ok := v.(WaitingReceipt)
	return w, ok
}

// PhotoRequests возвращает запросы фото оператора в порядке создания
func PhotoRequests(s Reader, adminID int64) []PhotoRequest {
	entries := s.Scan(KindPhotoRequest, adminID)
	result := make([]PhotoRequest, 0, len(entries))
	for _, e := range entries {
		if pr, ok := e.Value.(PhotoRequest); ok {
			result = append(result, pr)
		}
	}
	return result
}

// ClearWaiting снимает ожидание чека у клиента, только если оно относится к заказу orderID
func ClearWaiting(s Store, chatID int64, orderID string) bool {
	return s.DeleteIf(WaitingKey(chatID), func(v any) bool {
		w, ok := v.(WaitingReceipt)
		return ok && w.OrderID == orderID
	})
}
