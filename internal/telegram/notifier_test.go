package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"

	"flowershop-bot/internal/stories/orders"
)

func TestNotifyStatus(t *testing.T) {
	tests := []struct {
		name         string
		req          StatusRequest
		wantErr      error
		wantContains []string
		wantCashback bool
	}{
		{
			name:         "processing",
			req:          StatusRequest{UserID: testCustomerID, Status: "processing", OrderNumber: "A1"},
			wantContains: []string{"Заказ #A1", "Тапсырыс #A1"},
		},
		{
			name:         "cancelled with shop phone",
			req:          StatusRequest{UserID: testCustomerID, Status: "cancelled", OrderNumber: "A1", ShopPhone: "+77001112233"},
			wantContains: []string{"свяжитесь с нами: +77001112233"},
		},
		{
			name:         "delivered credits cashback",
			req:          StatusRequest{UserID: testCustomerID, Status: "delivered", OrderNumber: "A1", OrderID: "A1"},
			wantContains: []string{"500 ₸"},
			wantCashback: true,
		},
		{
			name:         "delivered without order id",
			req:          StatusRequest{UserID: testCustomerID, Status: "delivered", OrderNumber: "A1"},
			wantContains: []string{"Заказ #A1"},
		},
		{
			name:    "unknown status",
			req:     StatusRequest{UserID: testCustomerID, Status: "lost", OrderNumber: "A1"},
			wantErr: ErrUnknownStatus,
		},
		{
			name:    "missing user",
			req:     StatusRequest{Status: "ready", OrderNumber: "A1"},
			wantErr: ErrInvalidStatusRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.cashback.Totals["A1"] = 10000

			err := f.notifier.NotifyStatus(context.Background(), tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				if len(f.bot.Sent()) != 0 {
					t.Error("nothing must be sent on validation error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NotifyStatus() error = %v", err)
			}

			sent := f.bot.SentTo(testCustomerID)
			if len(sent) != 1 {
				t.Fatalf("sent %d messages, want 1", len(sent))
			}
			for _, w := range tt.wantContains {
				if !strings.Contains(sent[0].Text, w) {
					t.Errorf("message missing %q: %q", w, sent[0].Text)
				}
			}
			if f.cashback.Credited["A1"] != tt.wantCashback {
				t.Errorf("cashback credited = %v, want %v", f.cashback.Credited["A1"], tt.wantCashback)
			}
		})
	}
}

func TestNotifyDeliveredTwiceCreditsOnce(t *testing.T) {
	f := newFixture(t)
	f.cashback.Totals["A1"] = 999
	req := StatusRequest{UserID: testCustomerID, Status: string(orders.StatusDelivered), OrderNumber: "A1", OrderID: "A1"}

	for i := 0; i < 2; i++ {
		if err := f.notifier.NotifyStatus(context.Background(), req); err != nil {
			t.Fatalf("NotifyStatus() error = %v", err)
		}
	}

	if f.cashback.Balance != 49 {
		t.Errorf("balance = %d, want 49", f.cashback.Balance)
	}
	sent := f.bot.SentTo(testCustomerID)
	if len(sent) != 2 {
		t.Fatalf("sent %d messages", len(sent))
	}
	if !strings.Contains(sent[0].Text, "49 ₸") {
		t.Errorf("first message has no cashback: %q", sent[0].Text)
	}
	if strings.Contains(sent[1].Text, "кэшбек") {
		t.Errorf("second message must not announce cashback: %q", sent[1].Text)
	}
}

func TestNotifyCashbackFailureStillNotifies(t *testing.T) {
	f := newFixture(t)
	f.cashback.Err = errors.New("store down")

	err := f.notifier.NotifyStatus(context.Background(), StatusRequest{
		UserID: testCustomerID, Status: "delivered", OrderNumber: "A1", OrderID: "A1",
	})
	if err != nil {
		t.Fatalf("NotifyStatus() error = %v", err)
	}
	if got := len(f.bot.SentTo(testCustomerID)); got != 1 {
		t.Errorf("sent %d messages, want 1", got)
	}
}
