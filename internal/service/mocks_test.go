package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"carrental-client/internal/domain"
)

// MockBackend
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Cars(ctx context.Context) (CarBackend, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(CarBackend), args.Error(1)
}
func (m *MockBackend) Bookings(ctx context.Context) (BookingBackend, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(BookingBackend), args.Error(1)
}

// MockCarBackend
type MockCarBackend struct {
	mock.Mock
}

func (m *MockCarBackend) List(ctx context.Context, params domain.CarListParams) (*domain.Page[domain.Car], error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.Car]), args.Error(1)
}
func (m *MockCarBackend) Get(ctx context.Context, carID int64, currency domain.Currency) (*domain.Car, error) {
	args := m.Called(ctx, carID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

// MockBookingBackend
type MockBookingBackend struct {
	mock.Mock
}

func (m *MockBookingBackend) ListMine(ctx context.Context, params domain.BookingListParams) (*domain.Page[domain.Booking], error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.Booking]), args.Error(1)
}
func (m *MockBookingBackend) Get(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingBackend) Create(ctx context.Context, in domain.BookingCreate) (*domain.Booking, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingBackend) Update(ctx context.Context, bookingID int64, in domain.BookingUpdate) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

// MockKVStore
type MockKVStore struct {
	mock.Mock
}

func (m *MockKVStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}
func (m *MockKVStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
func (m *MockKVStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockKVStore) Close() error {
	return m.Called().Error(0)
}
