package customers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

type memStorage struct {
	byID map[int64]*Customer
	err  error
}

func (m *memStorage) GetCustomer(_ context.Context, id int64) (*Customer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byID[id], nil
}

func (m *memStorage) CreateCustomer(_ context.Context, c Customer) (bool, error) {
	if _, ok := m.byID[c.TelegramUserID]; ok {
		return false, nil
	}
	m.byID[c.TelegramUserID] = &c
	return true, nil
}

func (m *memStorage) ListCustomers(context.Context) ([]*Customer, error) {
	var out []*Customer
	for _, c := range m.byID {
		out = append(out, c)
	}
	return out, nil
}

func TestEnsureCustomerNeverOverwrites(t *testing.T) {
	storage := &memStorage{byID: map[int64]*Customer{}}
	svc := NewService(storage, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	created, err := svc.EnsureCustomer(ctx, Customer{TelegramUserID: 7, FirstName: "Айгуль", LanguageCode: "kk"})
	if err != nil || !created {
		t.Fatalf("first EnsureCustomer = (%v, %v)", created, err)
	}

	created, err = svc.EnsureCustomer(ctx, Customer{TelegramUserID: 7, FirstName: "Other", LanguageCode: "ru"})
	if err != nil || created {
		t.Fatalf("second EnsureCustomer = (%v, %v)", created, err)
	}

	if got := storage.byID[7]; got.FirstName != "Айгуль" || got.LanguageCode != "kk" {
		t.Errorf("customer overwritten: %+v", got)
	}
}

func TestLanguage(t *testing.T) {
	tests := []struct {
		name    string
		storage *memStorage
		want    string
	}{
		{
			name:    "kazakh customer",
			storage: &memStorage{byID: map[int64]*Customer{1: {TelegramUserID: 1, LanguageCode: "kk"}}},
			want:    LanguageKazakh,
		},
		{
			name:    "language code in upper case with spaces",
			storage: &memStorage{byID: map[int64]*Customer{1: {TelegramUserID: 1, LanguageCode: " KK "}}},
			want:    LanguageKazakh,
		},
		{
			name:    "other language defaults to russian",
			storage: &memStorage{byID: map[int64]*Customer{1: {TelegramUserID: 1, LanguageCode: "en"}}},
			want:    LanguageRussian,
		},
		{
			name:    "unknown customer",
			storage: &memStorage{byID: map[int64]*Customer{}},
			want:    LanguageRussian,
		},
		{
			name:    "storage failure",
			storage: &memStorage{err: errors.New("down")},
			want:    LanguageRussian,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.storage, slog.New(slog.NewTextHandler(io.Discard, nil)))
			if got := svc.Language(context.Background(), 1); got != tt.want {
				t.Errorf("Language() = %q, want %q", got, tt.want)
			}
		})
	}
}
