package rest

import (
	"context"

	"github.com/adhithya-electronics/storefront-client/internal/session/domain"
	"github.com/adhithya-electronics/storefront-client/pkg/httpclient"
)

// AuthAPI talks to the /auth endpoints.
type AuthAPI struct {
	client *httpclient.Client
}

func NewAuthAPI(client *httpclient.Client) *AuthAPI {
	return &AuthAPI{client: client}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	AccessToken string      `json:"access_token"`
	User        domain.User `json:"user"`
}

func (a *AuthAPI) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	var res authResponse
	if err := a.client.PostJSON(ctx, "/auth/login", credentials{Email: email, Password: password}, &res); err != nil {
		return "", domain.User{}, err
	}
	return res.AccessToken, res.User, nil
}

func (a *AuthAPI) Register(ctx context.Context, reg domain.Registration) (string, domain.User, error) {
	var res authResponse
	if err := a.client.PostJSON(ctx, "/auth/register", reg, &res); err != nil {
		return "", domain.User{}, err
	}
	return res.AccessToken, res.User, nil
}
