package service

import (
	"context"
	"fmt"
	"time"

	"carrental-client/internal/appstate"
	"carrental-client/internal/domain"
	"carrental-client/internal/logger"
	"carrental-client/internal/query"
	"carrental-client/internal/utils"
)

type bookingUpdate struct {
	bookingID int64
	update    domain.BookingUpdate
}

type bookingService struct {
	backend  Backend
	cache    *query.Client
	cars     CarService
	currency *appstate.CurrencySelector
	now      Clock

	create query.Mutation[domain.BookingCreate, *domain.Booking]
	update query.Mutation[bookingUpdate, *domain.Booking]
	pickUp query.Mutation[*domain.Booking, *domain.Booking]
	ret    query.Mutation[*domain.Booking, *domain.Booking]
	cancel query.Mutation[*domain.Booking, *domain.Booking]
}

func NewBookingService(backend Backend, cache *query.Client, cars CarService, currency *appstate.CurrencySelector, now Clock) BookingService {
	if now == nil {
		now = time.Now
	}
	s := &bookingService{
		backend:  backend,
		cache:    cache,
		cars:     cars,
		currency: currency,
		now:      now,
	}

	s.create = query.Mutation[domain.BookingCreate, *domain.Booking]{
		Name: "create_booking",
		Do: func(ctx context.Context, in domain.BookingCreate) (*domain.Booking, error) {
			bookings, err := s.backend.Bookings(ctx)
			if err != nil {
				return nil, err
			}
			return bookings.Create(ctx, in)
		},
		Invalidates: func(domain.BookingCreate, *domain.Booking) []query.Filter {
			return []query.Filter{query.All(query.ResourceBookings)}
		},
	}

	s.update = query.Mutation[bookingUpdate, *domain.Booking]{
		Name: "update_booking",
		Do: func(ctx context.Context, in bookingUpdate) (*domain.Booking, error) {
			bookings, err := s.backend.Bookings(ctx)
			if err != nil {
				return nil, err
			}
			return bookings.Update(ctx, in.bookingID, in.update)
		},
		Invalidates: func(in bookingUpdate, _ *domain.Booking) []query.Filter {
			return []query.Filter{
				query.All(query.ResourceBookings),
				query.ByID(query.ResourceBooking, in.bookingID),
			}
		},
	}

	s.pickUp = s.lifecycleMutation("pick_up_booking", domain.BookingActionPickUp)
	s.ret = s.lifecycleMutation("return_booking", domain.BookingActionReturn)
	s.cancel = s.lifecycleMutation("cancel_booking", domain.BookingActionCancel)
	return s
}

// lifecycleMutation builds a status-changing mutation. Status changes can flip
// car availability on the server, so the car entries are invalidated too.
func (s *bookingService) lifecycleMutation(name string, action domain.BookingAction) query.Mutation[*domain.Booking, *domain.Booking] {
	return query.Mutation[*domain.Booking, *domain.Booking]{
		Name: name,
		Do: func(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
			next, err := b.Status.Next(action)
			if err != nil {
				return nil, err
			}
			update := domain.BookingUpdate{Status: &next}
			if action == domain.BookingActionReturn {
				today := utils.FormatDate(s.now())
				update.ReturnDate = &today
			}

			bookings, err := s.backend.Bookings(ctx)
			if err != nil {
				return nil, err
			}
			return bookings.Update(ctx, b.ID, update)
		},
		Invalidates: func(b *domain.Booking, _ *domain.Booking) []query.Filter {
			return []query.Filter{
				query.ByID(query.ResourceBooking, b.ID),
				query.All(query.ResourceBookings),
				query.ByID(query.ResourceCar, b.CarID),
				query.All(query.ResourceCars),
			}
		},
	}
}

func (s *bookingService) ListMyBookings(ctx context.Context, params domain.BookingListParams) (*domain.Page[domain.Booking], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return query.Fetch(ctx, s.cache, query.BookingsKey(params), func(ctx context.Context) (*domain.Page[domain.Booking], error) {
		bookings, err := s.backend.Bookings(ctx)
		if err != nil {
			return nil, err
		}
		return bookings.ListMine(ctx, params)
	})
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: booking id is required", domain.ErrQueryDisabled)
	}
	return query.Fetch(ctx, s.cache, query.BookingKey(bookingID), func(ctx context.Context) (*domain.Booking, error) {
		bookings, err := s.backend.Bookings(ctx)
		if err != nil {
			return nil, err
		}
		return bookings.Get(ctx, bookingID)
	})
}

// CreateBooking validates the payload and submits it. An empty currency means
// the selected one. The returned booking carries the backend's total cost.
func (s *bookingService) CreateBooking(ctx context.Context, in domain.BookingCreate) (*domain.Booking, error) {
	if in.CurrencyCode == "" {
		in.CurrencyCode = s.currency.Get()
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := utils.ValidateDateRange(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	return query.Mutate(ctx, s.cache, s.create, in)
}

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID int64, in domain.BookingUpdate) (*domain.Booking, error) {
	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: booking id is required", domain.ErrValidation)
	}
	if in.Status != nil && !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *in.Status)
	}
	return query.Mutate(ctx, s.cache, s.update, bookingUpdate{bookingID: bookingID, update: in})
}

func (s *bookingService) PickUp(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	return query.Mutate(ctx, s.cache, s.pickUp, booking)
}

func (s *bookingService) Return(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	return query.Mutate(ctx, s.cache, s.ret, booking)
}

func (s *bookingService) Cancel(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	return query.Mutate(ctx, s.cache, s.cancel, booking)
}

// ApplyAction reads the booking and runs the mutation for action
func (s *bookingService) ApplyAction(ctx context.Context, bookingID int64, action domain.BookingAction) (*domain.Booking, error) {
	booking, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch action {
	case domain.BookingActionPickUp:
		return s.PickUp(ctx, booking)
	case domain.BookingActionReturn:
		return s.Return(ctx, booking)
	case domain.BookingActionCancel:
		return s.Cancel(ctx, booking)
	}
	logger.Warn("Unknown booking action", "booking_id", bookingID, "action", action)
	return nil, fmt.Errorf("%w: unknown action %q", domain.ErrValidation, action)
}

// EstimateCost prices a date range with the car's rate in the selected currency
func (s *bookingService) EstimateCost(ctx context.Context, carID int64, startDate, endDate string) (*CostEstimate, error) {
	currency := s.currency.Get()
	car, err := s.cars.GetCar(ctx, carID, currency)
	if err != nil {
		return nil, err
	}
	total, err := utils.EstimateTotalCostForDates(startDate, endDate, car.PricePerDay)
	if err != nil {
		return nil, err
	}
	return &CostEstimate{
		CarID:       carID,
		StartDate:   startDate,
		EndDate:     endDate,
		Currency:    currency,
		PricePerDay: car.PricePerDay,
		TotalCost:   total,
	}, nil
}
