package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"carrental-client/internal/domain"
	"carrental-client/internal/logger"
	"carrental-client/internal/security"
)

// Placeholders for identity claims the provider did not supply
const (
	placeholderFirstName = "Unknown"
	placeholderLastName  = "User"
	placeholderPhone     = "0000000000"
)

// Clients are the request handles bound to the current session
type Clients struct {
	Cars     *CarsAPI
	Bookings *BookingsAPI
}

// Factory builds request handles and, on first use after sign-in, registers
// the signed-in user with the backend.
type Factory struct {
	baseURL    string
	httpClient *http.Client
	session    security.SessionProvider

	mu           sync.Mutex
	bootstrapped bool
}

func NewFactory(baseURL string, httpClient *http.Client, session security.SessionProvider) *Factory {
	return &Factory{
		baseURL:    baseURL,
		httpClient: httpClient,
		session:    session,
	}
}

// Clients returns handles for the Cars and Bookings resources. It fails with
// an authentication error before any request when there is no valid session.
func (f *Factory) Clients(ctx context.Context) (*Clients, error) {
	if _, err := f.session.AccessToken(ctx); err != nil {
		return nil, err
	}

	f.bootstrap(ctx)

	c := newClient(f.baseURL, f.httpClient, f.session.AccessToken)
	return &Clients{
		Cars:     &CarsAPI{c: c},
		Bookings: &BookingsAPI{c: c},
	}, nil
}

// Reset starts a new session bootstrap; call it after a fresh sign-in.
func (f *Factory) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bootstrapped = false
}

func (f *Factory) bootstrap(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bootstrapped {
		return
	}
	f.bootstrapped = true

	// The user is already authenticated, a failed sync must not block the app.
	if err := f.registerCurrentUser(ctx); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			logger.Error("[registerCurrentUser] backend rejected registration",
				"status", apiErr.StatusCode, "detail", apiErr.Details, "message", apiErr.Message)
			return
		}
		logger.Error("[registerCurrentUser] registration failed", "error", err)
	}
}

func (f *Factory) registerCurrentUser(ctx context.Context) error {
	claims, err := f.session.IdentityClaims(ctx)
	if err != nil {
		return fmt.Errorf("failed to read identity claims: %w", err)
	}

	auth := &AuthAPI{c: newClient(f.baseURL, f.httpClient, f.session.IdentityToken)}
	if _, err := auth.RegisterCognitoUser(ctx, RegistrationFromClaims(*claims)); err != nil {
		return err
	}
	logger.Info("[registerCurrentUser] user registered/updated", "subject", claims.Subject)
	return nil
}

// RegistrationFromClaims builds the upsert payload, substituting placeholders
// for missing claims.
func RegistrationFromClaims(claims domain.IdentityClaims) domain.UserRegister {
	reg := domain.UserRegister{
		FirstName:   claims.GivenName,
		LastName:    claims.FamilyName,
		Email:       claims.Email,
		PhoneNumber: claims.PhoneNumber,
		CognitoID:   claims.Subject,
	}
	if reg.FirstName == "" {
		reg.FirstName = placeholderFirstName
	}
	if reg.LastName == "" {
		reg.LastName = placeholderLastName
	}
	if reg.Email == "" {
		reg.Email = fmt.Sprintf("no-email-%s@example.com", claims.Subject)
	}
	if reg.PhoneNumber == "" {
		reg.PhoneNumber = placeholderPhone
	}
	reg.PhoneNumber = strings.Join(strings.Fields(reg.PhoneNumber), "")
	return reg
}
