package appstate

import (
	"sync"

	"carrental-client/internal/domain"
	"carrental-client/internal/logger"
)

// CurrencySelector holds the currency every price-bearing read is issued in.
// It lives in memory only and has a single writer, Set.
type CurrencySelector struct {
	// notifyMu serializes deliveries so subscribers see changes in order
	notifyMu    sync.Mutex
	mu          sync.RWMutex
	current     domain.Currency
	subscribers map[uint64]func(domain.Currency)
	nextID      uint64
}

func NewCurrencySelector(initial domain.Currency) *CurrencySelector {
	if !initial.Valid() {
		initial = domain.CurrencyUSD
	}
	return &CurrencySelector{
		current:     initial,
		subscribers: make(map[uint64]func(domain.Currency)),
	}
}

// Get returns the selected currency
func (s *CurrencySelector) Get() domain.Currency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set validates and stores a new currency, then notifies subscribers.
// Setting the current value again is a no-op. Subscribers always receive the
// value selected at delivery time, so the last delivery matches Get.
// A subscriber must not call Set.
func (s *CurrencySelector) Set(code string) (domain.Currency, error) {
	c, err := domain.ParseCurrency(code)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	if c == s.current {
		s.mu.Unlock()
		return c, nil
	}
	previous := s.current
	s.current = c
	s.mu.Unlock()

	logger.Info("Currency changed", "from", previous, "to", c)
	s.deliver()
	return c, nil
}

func (s *CurrencySelector) deliver() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.RLock()
	current := s.current
	subs := make([]func(domain.Currency), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(current)
	}
}

// Subscribe registers fn for currency changes
func (s *CurrencySelector) Subscribe(fn func(domain.Currency)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}
