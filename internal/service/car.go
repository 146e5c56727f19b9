package service

import (
	"context"
	"fmt"

	"carrental-client/internal/appstate"
	"carrental-client/internal/domain"
	"carrental-client/internal/query"
)

type carService struct {
	backend  Backend
	cache    *query.Client
	currency *appstate.CurrencySelector
}

func NewCarService(backend Backend, cache *query.Client, currency *appstate.CurrencySelector) CarService {
	return &carService{
		backend:  backend,
		cache:    cache,
		currency: currency,
	}
}

// ListCars reads one page of cars. An empty currency means the selected one.
func (s *carService) ListCars(ctx context.Context, params domain.CarListParams) (*domain.Page[domain.Car], error) {
	if params.Currency == "" {
		params.Currency = s.currency.Get()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return query.Fetch(ctx, s.cache, query.CarsKey(params), func(ctx context.Context) (*domain.Page[domain.Car], error) {
		cars, err := s.backend.Cars(ctx)
		if err != nil {
			return nil, err
		}
		return cars.List(ctx, params)
	})
}

// GetCar reads one car priced in currency, or in the selected currency when empty.
func (s *carService) GetCar(ctx context.Context, carID int64, currency domain.Currency) (*domain.Car, error) {
	if carID <= 0 {
		return nil, fmt.Errorf("%w: car id is required", domain.ErrQueryDisabled)
	}
	if currency == "" {
		currency = s.currency.Get()
	}
	if !currency.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCurrency, currency)
	}
	return query.Fetch(ctx, s.cache, query.CarKey(carID, currency), s.carFetcher(carID, currency))
}

func (s *carService) carFetcher(carID int64, currency domain.Currency) query.Fetcher[*domain.Car] {
	return func(ctx context.Context) (*domain.Car, error) {
		cars, err := s.backend.Cars(ctx)
		if err != nil {
			return nil, err
		}
		return cars.Get(ctx, carID, currency)
	}
}
