package authsdk

import (
	"context"
	"net/http"
)

// Login exchanges an identifier and secret for an access token. The refresh
// token cookie lands in the client's cookie jar.
func (c *SDKClient) Login(ctx context.Context, identifier, secret string) (*LoginResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/login", LoginRequest{
		Identifier: identifier,
		Secret:     secret,
	}, "")
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh rotates the refresh cookie and returns a new access token. The
// previous access token may already be expired but must be genuine.
func (c *SDKClient) Refresh(ctx context.Context, accessToken string) (*LoginResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/refresh", nil, accessToken)
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout drops the server side refresh session and expires the cookie.
func (c *SDKClient) Logout(ctx context.Context, accessToken string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/logout", nil, accessToken)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Me describes the given access token as the server sees it.
func (c *SDKClient) Me(ctx context.Context, accessToken string) (*MeResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/auth/me", nil, accessToken)
	if err != nil {
		return nil, err
	}

	var out MeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser creates a user. The access token must carry ROLE_ADMIN.
func (c *SDKClient) CreateUser(ctx context.Context, accessToken string, req CreateUserRequest) (*UserResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/users", req, accessToken)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}
