package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrental-client/internal/domain"
	"carrental-client/internal/security"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// fakeBackend records what the client sent
type fakeBackend struct {
	mu            sync.Mutex
	registrations []domain.UserRegister
	registerAuth  string
	carsAuth      string
	carsQuery     string
	registerCode  int
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/register-cognito-user", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var reg domain.UserRegister
		_ = json.NewDecoder(r.Body).Decode(&reg)
		f.registrations = append(f.registrations, reg)
		f.registerAuth = r.Header.Get("Authorization")
		if f.registerCode != 0 {
			w.WriteHeader(f.registerCode)
			w.Write([]byte(`{"detail":"registration unavailable"}`))
			return
		}
		json.NewEncoder(w).Encode(domain.User{ID: 1, CognitoID: reg.CognitoID})
	})
	mux.HandleFunc("/api/v1/cars/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.carsAuth = r.Header.Get("Authorization")
		f.carsQuery = r.URL.RawQuery
		f.mu.Unlock()

		switch r.URL.Path {
		case "/api/v1/cars/":
			w.Write([]byte(`[{"id":1,"name":"Civic","model":"Honda","price_per_day":"45.50","is_available":true}]`))
		case "/api/v1/cars/5":
			w.Write([]byte(`{"id":5,"name":"Model 3","model":"Tesla","price_per_day":"92.00","is_available":false}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"Car not found"}`))
		}
	})
	mux.HandleFunc("/api/v1/bookings/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"loc":["body","end_date"],"msg":"End date must be after start date","type":"value_error"}]}`))
	})
	return mux
}

func (f *fakeBackend) snapshot() (regs []domain.UserRegister, registerAuth, carsAuth, carsQuery string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.UserRegister(nil), f.registrations...), f.registerAuth, f.carsAuth, f.carsQuery
}

func issueTokens(t *testing.T, identity domain.IdentityClaims) (string, string) {
	issuer := security.NewTokenIssuer(testSecret)
	access, err := issuer.IssueAccessToken(identity.Subject, time.Hour)
	require.NoError(t, err)
	id, err := issuer.IssueIDToken(identity, time.Hour)
	require.NoError(t, err)
	return access, id
}

func TestFactory_Clients(t *testing.T) {
	ctx := context.Background()
	identity := domain.IdentityClaims{GivenName: "Ada", FamilyName: "Lovelace", Email: "ada@example.com", PhoneNumber: "+44 20 7946 0000", Subject: "sub-1"}

	t.Run("No session fails before any request", func(t *testing.T) {
		fb := &fakeBackend{}
		srv := httptest.NewServer(fb.handler())
		defer srv.Close()

		f := NewFactory(srv.URL, srv.Client(), security.NewTokenSession("", "", testSecret))
		_, err := f.Clients(ctx)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		regs, _, _, _ := fb.snapshot()
		assert.Empty(t, regs)
	})

	t.Run("Registers once per session", func(t *testing.T) {
		fb := &fakeBackend{}
		srv := httptest.NewServer(fb.handler())
		defer srv.Close()

		access, id := issueTokens(t, identity)
		f := NewFactory(srv.URL, srv.Client(), security.NewTokenSession(access, id, testSecret))

		clients, err := f.Clients(ctx)
		require.NoError(t, err)
		_, err = f.Clients(ctx)
		require.NoError(t, err)

		regs, registerAuth, _, _ := fb.snapshot()
		require.Len(t, regs, 1)
		assert.Equal(t, "Bearer "+id, registerAuth)
		assert.Equal(t, "+442079460000", regs[0].PhoneNumber)
		assert.Equal(t, "sub-1", regs[0].CognitoID)

		_, err = clients.Cars.Get(ctx, 5, domain.CurrencyEUR)
		require.NoError(t, err)
		_, _, carsAuth, _ := fb.snapshot()
		assert.Equal(t, "Bearer "+access, carsAuth)

		f.Reset()
		_, err = f.Clients(ctx)
		require.NoError(t, err)
		regs, _, _, _ = fb.snapshot()
		assert.Len(t, regs, 2)
	})

	t.Run("Registration failure does not block", func(t *testing.T) {
		fb := &fakeBackend{registerCode: http.StatusInternalServerError}
		srv := httptest.NewServer(fb.handler())
		defer srv.Close()

		access, id := issueTokens(t, identity)
		f := NewFactory(srv.URL, srv.Client(), security.NewTokenSession(access, id, testSecret))

		clients, err := f.Clients(ctx)
		require.NoError(t, err)
		require.NotNil(t, clients.Cars)
		regs, _, _, _ := fb.snapshot()
		assert.Len(t, regs, 1)
	})
}

func TestRegistrationFromClaims(t *testing.T) {
	t.Run("Placeholders", func(t *testing.T) {
		reg := RegistrationFromClaims(domain.IdentityClaims{Subject: "abc"})
		assert.Equal(t, "Unknown", reg.FirstName)
		assert.Equal(t, "User", reg.LastName)
		assert.Equal(t, "no-email-abc@example.com", reg.Email)
		assert.Equal(t, "0000000000", reg.PhoneNumber)
		assert.Equal(t, "abc", reg.CognitoID)
	})

	t.Run("Phone whitespace is stripped", func(t *testing.T) {
		reg := RegistrationFromClaims(domain.IdentityClaims{Subject: "abc", PhoneNumber: " +1 555\t0100 "})
		assert.Equal(t, "+15550100", reg.PhoneNumber)
	})
}

func TestResources(t *testing.T) {
	ctx := context.Background()
	fb := &fakeBackend{}
	srv := httptest.NewServer(fb.handler())
	defer srv.Close()

	token := func(ctx context.Context) (string, error) { return "tok", nil }
	c := newClient(srv.URL+"/", srv.Client(), token)
	cars := &CarsAPI{c: c}
	bookings := &BookingsAPI{c: c}

	t.Run("Car detail carries the currency", func(t *testing.T) {
		car, err := cars.Get(ctx, 5, domain.CurrencyEUR)
		require.NoError(t, err)
		assert.Equal(t, domain.Money(92), car.PricePerDay)
		_, _, _, query := fb.snapshot()
		assert.Equal(t, "currency_code=EUR", query)
	})

	t.Run("Bare list response is wrapped in a page", func(t *testing.T) {
		page, err := cars.List(ctx, domain.CarListParams{Page: 1, PageSize: 20, AvailableOnly: true, Currency: domain.CurrencyUSD})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, domain.Money(45.5), page.Items[0].PricePerDay)
		assert.Equal(t, 1, page.Total)
		_, _, _, query := fb.snapshot()
		assert.Contains(t, query, "available_only=true")
		assert.Contains(t, query, "page_size=20")
	})

	t.Run("404 maps to not found", func(t *testing.T) {
		_, err := cars.Get(ctx, 77, domain.CurrencyUSD)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Car not found", apiErr.Message)
	})

	t.Run("Validation detail is kept", func(t *testing.T) {
		_, err := bookings.Create(ctx, domain.BookingCreate{CarID: 1})
		assert.ErrorIs(t, err, domain.ErrValidation)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Len(t, apiErr.Details, 1)
		assert.Equal(t, "End date must be after start date", apiErr.Details[0].Msg)
	})

	t.Run("Network failure is a transport error", func(t *testing.T) {
		dead := httptest.NewServer(http.NotFoundHandler())
		dead.Close()
		_, err := (&CarsAPI{c: newClient(dead.URL, nil, token)}).Get(ctx, 5, domain.CurrencyUSD)
		assert.ErrorIs(t, err, domain.ErrTransport)
	})
}
