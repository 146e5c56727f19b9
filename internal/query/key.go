package query

import (
	"fmt"

	"carrental-client/internal/domain"
)

// Resource is the entity type part of a cache key
type Resource string

const (
	ResourceCars     Resource = "cars"
	ResourceCar      Resource = "car"
	ResourceBookings Resource = "bookings"
	ResourceBooking  Resource = "booking"
)

// ListParams are the list parameters that affect a list read
type ListParams struct {
	Page          int
	PageSize      int
	Name          string
	AvailableOnly bool
	Status        domain.BookingStatus
	CarID         int64
	SortBy        string
	SortOrder     string
}

// Key identifies one cached read. It is a comparable value: two reads share an
// entry exactly when every field is equal, so (car 12, "3") and (car 1, "23")
// can never collide.
type Key struct {
	Resource Resource
	ID       int64
	Currency domain.Currency
	List     ListParams
}

func CarsKey(p domain.CarListParams) Key {
	return Key{
		Resource: ResourceCars,
		Currency: p.Currency,
		List: ListParams{
			Page:          p.Page,
			PageSize:      p.PageSize,
			Name:          p.Name,
			AvailableOnly: p.AvailableOnly,
			SortBy:        p.SortBy,
			SortOrder:     p.SortOrder,
		},
	}
}

func CarKey(carID int64, currency domain.Currency) Key {
	return Key{Resource: ResourceCar, ID: carID, Currency: currency}
}

func BookingsKey(p domain.BookingListParams) Key {
	return Key{
		Resource: ResourceBookings,
		List: ListParams{
			Page:      p.Page,
			PageSize:  p.PageSize,
			Status:    p.Status,
			CarID:     p.CarID,
			SortBy:    p.SortBy,
			SortOrder: p.SortOrder,
		},
	}
}

func BookingKey(bookingID int64) Key {
	return Key{Resource: ResourceBooking, ID: bookingID}
}

// String is an injective rendering (string fields are quoted) used for logs
// and for de-duplicating in-flight reads.
func (k Key) String() string {
	l := k.List
	return fmt.Sprintf("%s|%d|%q|%d|%d|%q|%t|%q|%d|%q|%q",
		k.Resource, k.ID, k.Currency,
		l.Page, l.PageSize, l.Name, l.AvailableOnly, l.Status, l.CarID, l.SortBy, l.SortOrder)
}

// Filter selects the cache entries an invalidation applies to. A filter
// without an id covers every entry of the resource (all currencies, all list
// variants); with an id it covers that entity in every currency.
type Filter struct {
	Resource Resource
	ID       int64
	MatchID  bool
}

// All matches every entry of a resource
func All(r Resource) Filter {
	return Filter{Resource: r}
}

// ByID matches every entry of a resource for one entity id
func ByID(r Resource, id int64) Filter {
	return Filter{Resource: r, ID: id, MatchID: true}
}

func (f Filter) Matches(k Key) bool {
	if f.Resource != k.Resource {
		return false
	}
	return !f.MatchID || f.ID == k.ID
}

func (f Filter) String() string {
	if f.MatchID {
		return fmt.Sprintf("%s:%d", f.Resource, f.ID)
	}
	return string(f.Resource)
}
