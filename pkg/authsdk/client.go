package authsdk

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// SDKClient is a client for the token auth service. It provides access to
// unauthenticated operations and can create authenticated Sessions.
//
// The refresh token is an HttpOnly cookie, so the HTTP client carries a
// cookie jar; one SDKClient therefore holds at most one login at a time.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new auth service client with its own cookie jar.
func NewSDKClient(baseURL string) *SDKClient {
	// cookiejar.New only fails when given a bad PublicSuffixList.
	jar, _ := cookiejar.New(nil)

	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}
}

// AuthenticateWithPassword logs in and returns a Session that refreshes its
// access token automatically.
func (c *SDKClient) AuthenticateWithPassword(ctx context.Context, identifier, secret string) (*Session, error) {
	loginResp, err := c.Login(ctx, identifier, secret)
	if err != nil {
		return nil, err
	}

	return newSession(c, loginResp)
}
