package apiclient

import (
	"context"
	"net/http"

	"carrental-client/internal/domain"
)

// AuthAPI authenticates with the ID token rather than the access token
type AuthAPI struct {
	c *client
}

// RegisterCognitoUser upserts the signed-in user; repeated calls are idempotent
func (a *AuthAPI) RegisterCognitoUser(ctx context.Context, in domain.UserRegister) (*domain.User, error) {
	var u domain.User
	if err := a.c.do(ctx, "RegisterCognitoUser", http.MethodPost, "/api/v1/auth/register-cognito-user", nil, in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
