package api

import (
	"context"
	"errors"
	"net/url"
)

const (
	LoginPath    = "/users/login"
	RegisterPath = "/users/register"
	MePath       = "/users/me"
	PingPath     = "/users/ping"
)

var ErrMissingAccessToken = errors.New("login response did not contain an access token")

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	ID      int    `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

type PingResponse struct {
	Status string `json:"status"`
}

// Login exchanges credentials for an access token. The API expects the
// OAuth2 password form, so the email travels as username.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var token TokenResponse
	_, err := c.Post(ctx, LoginPath, nil,
		WithFormData(form),
		WithResult(&token),
	)
	if err != nil {
		return nil, err
	}

	if len(token.AccessToken) == 0 {
		return nil, ErrMissingAccessToken
	}

	return &token, nil
}

func (c *Client) Register(ctx context.Context, email, password string) (*User, error) {

	var user User
	_, err := c.Post(ctx, RegisterPath, RegisterRequest{
		Email:    email,
		Password: password,
	}, WithResult(&user))

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Me returns the profile of the user owning the current token.
func (c *Client) Me(ctx context.Context) (*User, error) {

	var user User
	_, err := c.Get(ctx, MePath, WithResult(&user))
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) Ping(ctx context.Context) (*PingResponse, error) {

	var ping PingResponse
	_, err := c.Get(ctx, PingPath, WithResult(&ping))
	if err != nil {
		return nil, err
	}

	return &ping, nil
}
