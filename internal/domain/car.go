package domain

import (
	"bytes"
	"fmt"
	"strconv"
)

// Money is a decimal amount. The backend serializes decimals as JSON strings,
// older endpoints as numbers; both are accepted.
type Money float64

func (m *Money) UnmarshalJSON(data []byte) error {
	raw := bytes.Trim(data, `"`)
	if len(raw) == 0 || string(raw) == "null" {
		*m = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return fmt.Errorf("invalid decimal %s: %w", data, err)
	}
	*m = Money(v)
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(m), 'f', -1, 64)), nil
}

// Car as returned by the backend. PricePerDay is denominated in the currency
// the read was issued with.
type Car struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Model       string   `json:"model"`
	PricePerDay Money    `json:"price_per_day"`
	IsAvailable bool     `json:"is_available"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// CarListParams filters the car list
type CarListParams struct {
	Page          int
	PageSize      int
	Name          string
	AvailableOnly bool
	SortBy        string
	SortOrder     string
	Currency      Currency
}

// Page is the paginated envelope used by every list endpoint
type Page[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Pages    int `json:"pages"`
}
