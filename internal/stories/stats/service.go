package stats

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

type Service struct {
	storage  Storage
	location *time.Location
	now      func() time.Time
}

func NewService(storage Storage, location *time.Location) *Service {
	return &Service{storage: storage, location: location, now: time.Now}
}

func (s *Service) Report(ctx context.Context) (*Report, error) {
	list, err := s.storage.ListOrders(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}

	customers, err := s.storage.CountCustomers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "count customers")
	}

	products, err := s.storage.ListProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}

	report := Aggregate(Input{Orders: list, Customers: customers, Products: products}, s.now(), s.location)
	return &report, nil
}
