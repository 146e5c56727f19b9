package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carrental-client/internal/appstate"
	"carrental-client/internal/domain"
	"carrental-client/internal/query"
)

func newCarFixture() (*MockBackend, *MockCarBackend, *query.Client, *appstate.CurrencySelector, CarService) {
	backend := new(MockBackend)
	cars := new(MockCarBackend)
	backend.On("Cars", mock.Anything).Return(cars, nil)
	cache := query.NewClient()
	selector := appstate.NewCurrencySelector(domain.CurrencyUSD)
	return backend, cars, cache, selector, NewCarService(backend, cache, selector)
}

func TestCarService_ListCars(t *testing.T) {
	ctx := context.Background()

	t.Run("Uses the selected currency and caches", func(t *testing.T) {
		_, cars, _, selector, svc := newCarFixture()
		_, err := selector.Set("EUR")
		require.NoError(t, err)

		params := domain.CarListParams{Page: 1, PageSize: 10, Currency: domain.CurrencyEUR}
		page := &domain.Page[domain.Car]{Items: []domain.Car{{ID: 1, PricePerDay: 92}}, Total: 1, Page: 1, PageSize: 10, Pages: 1}
		cars.On("List", mock.Anything, params).Return(page, nil).Once()

		res, err := svc.ListCars(ctx, domain.CarListParams{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Len(t, res.Items, 1)

		_, err = svc.ListCars(ctx, domain.CarListParams{Page: 1, PageSize: 10})
		require.NoError(t, err)
		cars.AssertNumberOfCalls(t, "List", 1)
	})

	t.Run("Invalid params issue no request", func(t *testing.T) {
		_, cars, _, _, svc := newCarFixture()
		_, err := svc.ListCars(ctx, domain.CarListParams{PageSize: 500})
		assert.ErrorIs(t, err, domain.ErrValidation)
		cars.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}

func TestCarService_GetCar(t *testing.T) {
	ctx := context.Background()

	t.Run("Each currency is its own read", func(t *testing.T) {
		_, cars, cache, _, svc := newCarFixture()
		cars.On("Get", mock.Anything, int64(5), domain.CurrencyUSD).Return(&domain.Car{ID: 5, PricePerDay: 100}, nil).Once()
		cars.On("Get", mock.Anything, int64(5), domain.CurrencyEUR).Return(&domain.Car{ID: 5, PricePerDay: 92}, nil).Once()

		usd, err := svc.GetCar(ctx, 5, "")
		require.NoError(t, err)
		eur, err := svc.GetCar(ctx, 5, domain.CurrencyEUR)
		require.NoError(t, err)

		assert.Equal(t, domain.Money(100), usd.PricePerDay)
		assert.Equal(t, domain.Money(92), eur.PricePerDay)
		assert.Equal(t, 2, cache.Len())
	})

	t.Run("Missing id is disabled", func(t *testing.T) {
		backend, _, _, _, svc := newCarFixture()
		_, err := svc.GetCar(ctx, 0, domain.CurrencyUSD)
		assert.ErrorIs(t, err, domain.ErrQueryDisabled)
		backend.AssertNotCalled(t, "Cars", mock.Anything)
	})

	t.Run("Not signed in", func(t *testing.T) {
		backend := new(MockBackend)
		backend.On("Cars", mock.Anything).Return(nil, domain.ErrUnauthenticated)
		svc := NewCarService(backend, query.NewClient(), appstate.NewCurrencySelector(domain.CurrencyUSD))

		_, err := svc.GetCar(ctx, 5, "")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("Not found", func(t *testing.T) {
		_, cars, _, _, svc := newCarFixture()
		cars.On("Get", mock.Anything, int64(99), domain.CurrencyUSD).Return(nil, domain.ErrNotFound)

		_, err := svc.GetCar(ctx, 99, "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCarService_WatchCar(t *testing.T) {
	t.Run("Disabled without id", func(t *testing.T) {
		backend, _, cache, _, svc := newCarFixture()
		v := svc.WatchCar(0)
		defer v.Close()

		assert.Equal(t, query.StatusDisabled, v.Result().Status)
		assert.Equal(t, 0, cache.Len())
		backend.AssertNotCalled(t, "Cars", mock.Anything)
	})

	t.Run("Follows the selected currency", func(t *testing.T) {
		_, cars, _, selector, svc := newCarFixture()
		cars.On("Get", mock.Anything, int64(5), domain.CurrencyUSD).Return(&domain.Car{ID: 5, PricePerDay: 100}, nil)
		cars.On("Get", mock.Anything, int64(5), domain.CurrencyEUR).Return(&domain.Car{ID: 5, PricePerDay: 92}, nil)

		v := svc.WatchCar(5)
		defer v.Close()
		assert.Eventually(t, func() bool {
			r := v.Result()
			return r.Status == query.StatusSuccess && r.Data.PricePerDay == 100
		}, time.Second, 5*time.Millisecond)

		_, err := selector.Set("EUR")
		require.NoError(t, err)
		assert.Eventually(t, func() bool {
			r := v.Result()
			return r.Key.Currency == domain.CurrencyEUR && !r.IsPreviousData && r.HasData && r.Data.PricePerDay == 92
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("Rapid changes settle on the last currency", func(t *testing.T) {
		_, cars, _, selector, svc := newCarFixture()
		cars.On("Get", mock.Anything, int64(5), domain.CurrencyUSD).Return(&domain.Car{ID: 5, PricePerDay: 100}, nil)
		cars.On("Get", mock.Anything, int64(5), domain.CurrencyEUR).
			After(100*time.Millisecond).Return(&domain.Car{ID: 5, PricePerDay: 92}, nil)
		cars.On("Get", mock.Anything, int64(5), domain.CurrencyGBP).Return(&domain.Car{ID: 5, PricePerDay: 80}, nil)

		v := svc.WatchCar(5)
		defer v.Close()
		assert.Eventually(t, func() bool { return v.Result().Status == query.StatusSuccess }, time.Second, 5*time.Millisecond)

		_, err := selector.Set("EUR")
		require.NoError(t, err)
		_, err = selector.Set("GBP")
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			r := v.Result()
			return r.Key.Currency == domain.CurrencyGBP && !r.IsPreviousData && r.HasData && r.Data.PricePerDay == 80
		}, time.Second, 5*time.Millisecond)
		assert.Never(t, func() bool {
			return v.Result().Key.Currency != domain.CurrencyGBP || v.Result().Data.PricePerDay != 80
		}, 250*time.Millisecond, 10*time.Millisecond)
	})

	t.Run("Closed view stops following", func(t *testing.T) {
		_, cars, _, selector, svc := newCarFixture()
		cars.On("Get", mock.Anything, int64(5), domain.CurrencyUSD).Return(&domain.Car{ID: 5, PricePerDay: 100}, nil)

		v := svc.WatchCar(5)
		assert.Eventually(t, func() bool { return v.Result().Status == query.StatusSuccess }, time.Second, 5*time.Millisecond)
		v.Close()

		_, err := selector.Set("JPY")
		require.NoError(t, err)
		cars.AssertNotCalled(t, "Get", mock.Anything, int64(5), domain.CurrencyJPY)
	})
}
