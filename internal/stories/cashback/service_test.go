package cashback

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"flowershop-bot/internal/stories/orders"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		total int64
		want  int64
	}{
		{total: 1000, want: 50},
		{total: 999, want: 49},
		{total: 19, want: 0},
		{total: 20, want: 1},
		{total: 0, want: 0},
		{total: -500, want: 0},
	}

	for _, tt := range tests {
		if got := Compute(tt.total); got != tt.want {
			t.Errorf("Compute(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

type fakeOrders map[string]*orders.Order

func (f fakeOrders) GetOrder(_ context.Context, id string) (*orders.Order, error) {
	return f[id], nil
}

type fakeStorage struct {
	credited map[string]bool
	balance  int64
	calls    []CreditParams
}

func (f *fakeStorage) CreditCashback(_ context.Context, p CreditParams) (*CreditResult, error) {
	f.calls = append(f.calls, p)
	if f.credited[p.OrderID] {
		return &CreditResult{Applied: false, BalanceAfter: f.balance}, nil
	}
	f.credited[p.OrderID] = true
	f.balance += p.Amount
	return &CreditResult{Applied: true, Amount: p.Amount, BalanceAfter: f.balance}, nil
}

func TestCreditForOrder(t *testing.T) {
	storage := &fakeStorage{credited: map[string]bool{}}
	svc := NewService(storage, fakeOrders{
		"A1":   {ID: "A1", Total: 999},
		"tiny": {ID: "tiny", Total: 10},
		"free": {ID: "free", Total: 0},
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	res, err := svc.CreditForOrder(context.Background(), 42, "A1")
	if err != nil {
		t.Fatalf("CreditForOrder: %v", err)
	}
	if !res.Applied || res.Amount != 49 || res.BalanceAfter != 49 {
		t.Errorf("first credit = %+v", res)
	}

	res, err = svc.CreditForOrder(context.Background(), 42, "A1")
	if err != nil {
		t.Fatalf("repeat CreditForOrder: %v", err)
	}
	if res.Applied {
		t.Error("repeat credit must not be applied")
	}
	if storage.balance != 49 {
		t.Errorf("balance = %d, want 49", storage.balance)
	}

	res, err = svc.CreditForOrder(context.Background(), 42, "tiny")
	if err != nil {
		t.Fatalf("tiny order: %v", err)
	}
	if !res.Applied || res.Amount != 0 || res.BalanceAfter != 49 {
		t.Errorf("tiny order credit = %+v", res)
	}
	if len(storage.calls) != 3 {
		t.Fatalf("storage calls = %d, want 3", len(storage.calls))
	}
	if last := storage.calls[2]; last.OrderID != "tiny" || last.Amount != 0 || last.TelegramUserID != 42 {
		t.Errorf("tiny order params = %+v", last)
	}

	res, err = svc.CreditForOrder(context.Background(), 42, "free")
	if err != nil {
		t.Fatalf("free order: %v", err)
	}
	if res.Applied || len(storage.calls) != 3 {
		t.Errorf("order without total must not reach storage: %+v, calls %d", res, len(storage.calls))
	}

	if _, err := svc.CreditForOrder(context.Background(), 42, "nope"); err != orders.ErrOrderNotFound {
		t.Errorf("missing order err = %v", err)
	}
}
