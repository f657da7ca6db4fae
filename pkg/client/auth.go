package client

import (
	"context"
	"net/http"

	"github.com/finova-data/finova-client/pkg/models/api"
	"github.com/rs/zerolog"
)

// Session probes the cookie-mode session endpoint. The response may carry
// a rotated session key, which the gateway consumes before returning.
func (c *Client) Session(ctx context.Context) (*api.SessionPayload, error) {
	var payload api.SessionPayload
	err := c.do(ctx, "/auth/session/", requestOptions{method: http.MethodGet}, &payload)
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

// Login authenticates with the remote engine. The call presents no stored
// credential and never redirects on 401: a failed login belongs on the
// form, not on the sign-in surface it already came from. In token mode a
// returned token is stored for subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	err := c.do(ctx, "/auth/login/", requestOptions{
		method:           http.MethodPost,
		jsonBody:         api.LoginRequest{Username: username, Password: password},
		skipAuth:         true,
		suppressRedirect: true,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.storeIssuedToken(resp.Token)
	return &resp, nil
}

// Register creates an account and, like Login, signs the session in
// directly on success.
func (c *Client) Register(ctx context.Context, username, password, email string) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	err := c.do(ctx, "/auth/register/", requestOptions{
		method:           http.MethodPost,
		jsonBody:         api.RegisterRequest{Username: username, Password: password, Email: email},
		skipAuth:         true,
		suppressRedirect: true,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.storeIssuedToken(resp.Token)
	return &resp, nil
}

// Logout ends the remote session best-effort. The local credential is
// cleared regardless of the remote outcome; from the client's point of
// view logout is unconditionally effective, so a remote failure is logged
// and suppressed.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, "/auth/logout/", requestOptions{
		method:           http.MethodPost,
		jsonBody:         map[string]interface{}{},
		suppressRedirect: true,
		skipBody:         true,
	}, nil)

	_ = c.store.Clear()

	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("remote logout failed, local session cleared anyway")
	}
	return nil
}

// Me fetches the profile for a previously stored token. Token-mode
// deployments use it instead of the cookie session probe.
func (c *Client) Me(ctx context.Context) (*api.UserProfile, error) {
	var profile api.UserProfile
	err := c.do(ctx, "/auth/me/", requestOptions{method: http.MethodGet}, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) storeIssuedToken(token string) {
	if c.mode == ModeToken && token != "" {
		_ = c.store.Write(token)
	}
}
