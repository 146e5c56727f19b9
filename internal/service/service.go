package service

import (
	"context"
	"time"

	"carrental-client/internal/domain"
)

type CarService interface {
	ListCars(ctx context.Context, params domain.CarListParams) (*domain.Page[domain.Car], error)
	GetCar(ctx context.Context, carID int64, currency domain.Currency) (*domain.Car, error)
	WatchCar(carID int64) *CarDetailView
}

type BookingService interface {
	ListMyBookings(ctx context.Context, params domain.BookingListParams) (*domain.Page[domain.Booking], error)
	GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
	CreateBooking(ctx context.Context, in domain.BookingCreate) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, bookingID int64, in domain.BookingUpdate) (*domain.Booking, error)
	PickUp(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Return(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Cancel(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ApplyAction(ctx context.Context, bookingID int64, action domain.BookingAction) (*domain.Booking, error)
	EstimateCost(ctx context.Context, carID int64, startDate, endDate string) (*CostEstimate, error)
}

type ThemeService interface {
	GetTheme(ctx context.Context) (domain.Theme, error)
	SetTheme(ctx context.Context, theme string) (domain.Theme, error)
	RootClass(ctx context.Context) (string, error)
}

// CarBackend is the cars resource of the backend
type CarBackend interface {
	List(ctx context.Context, params domain.CarListParams) (*domain.Page[domain.Car], error)
	Get(ctx context.Context, carID int64, currency domain.Currency) (*domain.Car, error)
}

// BookingBackend is the bookings resource of the backend
type BookingBackend interface {
	ListMine(ctx context.Context, params domain.BookingListParams) (*domain.Page[domain.Booking], error)
	Get(ctx context.Context, bookingID int64) (*domain.Booking, error)
	Create(ctx context.Context, in domain.BookingCreate) (*domain.Booking, error)
	Update(ctx context.Context, bookingID int64, in domain.BookingUpdate) (*domain.Booking, error)
}

// Backend hands out resource handles bound to the current session. Both
// calls fail with domain.ErrUnauthenticated when nobody is signed in.
type Backend interface {
	Cars(ctx context.Context) (CarBackend, error)
	Bookings(ctx context.Context) (BookingBackend, error)
}

// CostEstimate is a display-only price preview
type CostEstimate struct {
	CarID       int64           `json:"car_id"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Currency    domain.Currency `json:"currency_code"`
	PricePerDay domain.Money    `json:"price_per_day"`
	TotalCost   domain.Money    `json:"total_cost"`
}

// Clock returns the current time; tests substitute a fixed one
type Clock func() time.Time
