package service

import (
	"context"

	"carrental-client/internal/apiclient"
)

// FactoryBackend resolves handles through the API client factory on every
// call, so a token refreshed between calls is picked up.
type FactoryBackend struct {
	factory *apiclient.Factory
}

func NewFactoryBackend(factory *apiclient.Factory) *FactoryBackend {
	return &FactoryBackend{factory: factory}
}

func (b *FactoryBackend) Cars(ctx context.Context) (CarBackend, error) {
	clients, err := b.factory.Clients(ctx)
	if err != nil {
		return nil, err
	}
	return clients.Cars, nil
}

func (b *FactoryBackend) Bookings(ctx context.Context) (BookingBackend, error) {
	clients, err := b.factory.Clients(ctx)
	if err != nil {
		return nil, err
	}
	return clients.Bookings, nil
}
