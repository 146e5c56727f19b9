package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"carrental-client/internal/domain"
)

// BookingsAPI is the bookings resource of the signed-in user
type BookingsAPI struct {
	c *client
}

func (a *BookingsAPI) ListMine(ctx context.Context, params domain.BookingListParams) (*domain.Page[domain.Booking], error) {
	q := url.Values{}
	setPaging(q, params.Page, params.PageSize, params.SortBy, params.SortOrder)
	if params.Status != "" {
		q.Set("status", string(params.Status))
	}
	if params.CarID != 0 {
		q.Set("car_id", fmt.Sprint(params.CarID))
	}

	var raw json.RawMessage
	if err := a.c.do(ctx, "ListMyBookings", http.MethodGet, "/api/v1/bookings/my", q, nil, &raw); err != nil {
		return nil, err
	}
	page, err := decodePage[domain.Booking](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: ListMyBookings: failed to decode response: %w", domain.ErrTransport, err)
	}
	return page, nil
}

func (a *BookingsAPI) Get(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := a.c.do(ctx, "GetBooking", http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (a *BookingsAPI) Create(ctx context.Context, in domain.BookingCreate) (*domain.Booking, error) {
	var b domain.Booking
	if err := a.c.do(ctx, "CreateBooking", http.MethodPost, "/api/v1/bookings/", nil, in, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (a *BookingsAPI) Update(ctx context.Context, bookingID int64, in domain.BookingUpdate) (*domain.Booking, error) {
	var b domain.Booking
	if err := a.c.do(ctx, "UpdateBooking", http.MethodPut, fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, in, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
