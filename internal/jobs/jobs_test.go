package jobs

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"carrental-client/internal/config"
	"carrental-client/internal/domain"
	"carrental-client/internal/logger"
	"carrental-client/internal/query"
	"carrental-client/internal/security"
)

type MockSession struct {
	mock.Mock
}

func (m *MockSession) AccessTokenExpiry() (time.Time, error) {
	args := m.Called()
	return args.Get(0).(time.Time), args.Error(1)
}

func testConfig(t *testing.T) *config.Config {
	cfg, err := config.Parse([]byte("cache:\n  gc_time_seconds: 60\n"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func TestCollectGarbage(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cache := query.NewClient(query.WithClock(func() time.Time { return now }))
	_, _ = query.Fetch(context.Background(), cache, query.CarKey(1, domain.CurrencyUSD), func(ctx context.Context) (*domain.Car, error) {
		return &domain.Car{ID: 1}, nil
	})

	jr := NewJobRunner(cache, new(MockSession), testConfig(t))

	jr.CollectGarbage()
	assert.Equal(t, 1, cache.Len())

	now = now.Add(2 * time.Minute)
	jr.CollectGarbage()
	assert.Equal(t, 0, cache.Len())
}

func TestCheckSessionExpiry(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	run := func(expiry time.Time, err error) string {
		var buf bytes.Buffer
		logger.InitializeWithWriter("debug", "text", &buf)
		t.Cleanup(func() { logger.Initialize("info", "text") })

		session := new(MockSession)
		session.On("AccessTokenExpiry").Return(expiry, err)
		jr := NewJobRunner(query.NewClient(), session, testConfig(t))
		jr.now = func() time.Time { return now }
		jr.CheckSessionExpiry()
		return buf.String()
	}

	t.Run("Expiring soon", func(t *testing.T) {
		out := run(now.Add(5*time.Minute), nil)
		assert.Contains(t, out, "Session expires soon")
	})

	t.Run("Plenty of time", func(t *testing.T) {
		out := run(now.Add(time.Hour), nil)
		assert.NotContains(t, out, "Session expires soon")
	})

	t.Run("No session", func(t *testing.T) {
		out := run(time.Time{}, security.ErrNoSession)
		assert.Contains(t, out, "No usable session")
	})
}
