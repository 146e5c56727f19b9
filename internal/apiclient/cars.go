package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"carrental-client/internal/domain"
)

// CarsAPI is the read-only cars resource
type CarsAPI struct {
	c *client
}

func (a *CarsAPI) List(ctx context.Context, params domain.CarListParams) (*domain.Page[domain.Car], error) {
	q := url.Values{}
	setPaging(q, params.Page, params.PageSize, params.SortBy, params.SortOrder)
	if params.Name != "" {
		q.Set("name", params.Name)
	}
	if params.AvailableOnly {
		q.Set("available_only", "true")
	}
	if params.Currency != "" {
		q.Set("currency_code", string(params.Currency))
	}

	var raw json.RawMessage
	if err := a.c.do(ctx, "ListCars", http.MethodGet, "/api/v1/cars/", q, nil, &raw); err != nil {
		return nil, err
	}
	page, err := decodePage[domain.Car](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCars: failed to decode response: %w", domain.ErrTransport, err)
	}
	return page, nil
}

func (a *CarsAPI) Get(ctx context.Context, carID int64, currency domain.Currency) (*domain.Car, error) {
	q := url.Values{}
	if currency != "" {
		q.Set("currency_code", string(currency))
	}
	var car domain.Car
	if err := a.c.do(ctx, "GetCar", http.MethodGet, fmt.Sprintf("/api/v1/cars/%d", carID), q, nil, &car); err != nil {
		return nil, err
	}
	return &car, nil
}
