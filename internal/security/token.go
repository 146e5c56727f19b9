package security

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"carrental-client/internal/domain"
)

var (
	ErrNoSession      = fmt.Errorf("%w: no session token, sign in first", domain.ErrUnauthenticated)
	ErrInvalidToken   = fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
	ErrExpiredToken   = fmt.Errorf("%w: token has expired", domain.ErrUnauthenticated)
	ErrWrongTokenType = fmt.Errorf("%w: wrong token type", domain.ErrUnauthenticated)
)

type TokenUse string

const (
	TokenUseAccess TokenUse = "access"
	TokenUseID     TokenUse = "id"
)

// SessionClaims covers both identity provider token kinds. Access tokens
// carry only the registered claims and token_use.
type SessionClaims struct {
	TokenUse    TokenUse `json:"token_use"`
	GivenName   string   `json:"given_name,omitempty"`
	FamilyName  string   `json:"family_name,omitempty"`
	Email       string   `json:"email,omitempty"`
	PhoneNumber string   `json:"phone_number,omitempty"`
	jwt.RegisteredClaims
}

// SessionProvider is the identity provider as seen by the client
type SessionProvider interface {
	// AccessToken returns a bearer token for API calls.
	AccessToken(ctx context.Context) (string, error)
	// IdentityToken returns the ID token, used only for user registration.
	IdentityToken(ctx context.Context) (string, error)
	IdentityClaims(ctx context.Context) (*domain.IdentityClaims, error)
}

// TokenSession holds tokens obtained from the identity provider after sign-in.
// With a secret the signatures are verified (local HMAC provider); without one
// the tokens are only decoded and checked for expiry, the backend verifies them.
type TokenSession struct {
	mu          sync.RWMutex
	accessToken string
	idToken     string
	secret      []byte
	now         func() time.Time
}

func NewTokenSession(accessToken, idToken, secret string) *TokenSession {
	s := &TokenSession{
		accessToken: accessToken,
		idToken:     idToken,
		now:         time.Now,
	}
	if secret != "" {
		s.secret = []byte(secret)
	}
	return s
}

// SignIn replaces the session tokens
func (s *TokenSession) SignIn(accessToken, idToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	s.idToken = idToken
}

// SignOut drops the session tokens
func (s *TokenSession) SignOut() {
	s.SignIn("", "")
}

func (s *TokenSession) AccessToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	raw := s.accessToken
	s.mu.RUnlock()
	if _, err := s.parse(raw, TokenUseAccess); err != nil {
		return "", err
	}
	return raw, nil
}

func (s *TokenSession) IdentityToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	raw := s.idToken
	s.mu.RUnlock()
	if _, err := s.parse(raw, TokenUseID); err != nil {
		return "", err
	}
	return raw, nil
}

func (s *TokenSession) IdentityClaims(ctx context.Context) (*domain.IdentityClaims, error) {
	s.mu.RLock()
	raw := s.idToken
	s.mu.RUnlock()
	claims, err := s.parse(raw, TokenUseID)
	if err != nil {
		return nil, err
	}
	return &domain.IdentityClaims{
		GivenName:   claims.GivenName,
		FamilyName:  claims.FamilyName,
		Email:       claims.Email,
		PhoneNumber: claims.PhoneNumber,
		Subject:     claims.Subject,
	}, nil
}

// AccessTokenExpiry reports when the current access token stops being usable
func (s *TokenSession) AccessTokenExpiry() (time.Time, error) {
	s.mu.RLock()
	raw := s.accessToken
	s.mu.RUnlock()
	claims, err := s.parse(raw, TokenUseAccess)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}

func (s *TokenSession) parse(raw string, use TokenUse) (*SessionClaims, error) {
	if raw == "" {
		return nil, ErrNoSession
	}

	claims := &SessionClaims{}
	if s.secret != nil {
		_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return s.secret, nil
		}, jwt.WithTimeFunc(s.now))
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return nil, ErrExpiredToken
			}
			return nil, ErrInvalidToken
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
			return nil, ErrInvalidToken
		}
		if claims.ExpiresAt != nil && !s.now().Before(claims.ExpiresAt.Time) {
			return nil, ErrExpiredToken
		}
	}

	if claims.TokenUse != "" && claims.TokenUse != use {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// TokenIssuer mints HMAC-signed tokens for a local identity provider
type TokenIssuer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), issuer: "carrental-dev-idp", now: time.Now}
}

func (i *TokenIssuer) IssueAccessToken(subject string, ttl time.Duration) (string, error) {
	return i.sign(SessionClaims{
		TokenUse:         TokenUseAccess,
		RegisteredClaims: i.registered(subject, ttl),
	})
}

func (i *TokenIssuer) IssueIDToken(identity domain.IdentityClaims, ttl time.Duration) (string, error) {
	return i.sign(SessionClaims{
		TokenUse:         TokenUseID,
		GivenName:        identity.GivenName,
		FamilyName:       identity.FamilyName,
		Email:            identity.Email,
		PhoneNumber:      identity.PhoneNumber,
		RegisteredClaims: i.registered(identity.Subject, ttl),
	})
}

func (i *TokenIssuer) registered(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := i.now()
	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    i.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (i *TokenIssuer) sign(claims SessionClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}
