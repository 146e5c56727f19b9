package service

import (
	"carrental-client/internal/domain"
	"carrental-client/internal/query"
)

// CarDetailView follows one car in the selected currency. A currency change
// re-keys the read; the previous price stays visible until the new one lands.
type CarDetailView struct {
	observer    *query.Observer[*domain.Car]
	unsubscribe func()
}

// WatchCar starts a detail view. A zero id yields a disabled view that never fetches.
func (s *carService) WatchCar(carID int64) *CarDetailView {
	v := &CarDetailView{observer: query.NewObserver[*domain.Car](s.cache, nil)}
	if carID <= 0 {
		return v
	}

	// follow re-reads the selector so an older notification never wins
	follow := func() {
		c := s.currency.Get()
		v.observer.SetKey(query.CarKey(carID, c), s.carFetcher(carID, c))
	}
	v.unsubscribe = s.currency.Subscribe(func(domain.Currency) { follow() })
	follow()
	return v
}

// Result is the current render state
func (v *CarDetailView) Result() query.Result[*domain.Car] {
	return v.observer.Result()
}

// Refetch re-reads the car, e.g. after a user retry
func (v *CarDetailView) Refetch() {
	v.observer.Refetch()
}

// Close detaches the view. Reads already in flight still populate the cache.
func (v *CarDetailView) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
	}
	v.observer.Close()
}
