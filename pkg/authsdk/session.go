package authsdk

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/aussiebroadwan/tokenauth/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
)

// refreshBuffer refreshes slightly ahead of the real expiry so a token does
// not lapse in flight.
const refreshBuffer = 30 * time.Second

// ErrLoggedOut is returned by Session methods after Logout.
var ErrLoggedOut = errors.New("authsdk: session logged out")

// Session represents an authenticated session with automatic token refresh.
// All Session methods automatically handle token expiration and refresh when needed.
type Session struct {
	client *SDKClient

	mu          sync.RWMutex
	accessToken string
	subject     string
	roles       []string
	expiresAt   time.Time
	now         func() time.Time
}

// newSession creates a new authenticated session from a login response. The
// token is only decoded here, the server is the one that verifies it.
func newSession(client *SDKClient, loginResp *LoginResponse) (*Session, error) {
	s := &Session{client: client, now: time.Now}
	if err := s.setToken(loginResp.AccessToken); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) setToken(token string) error {
	var claims jwtx.AccessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return fmt.Errorf("failed to decode access token: %w", err)
	}

	s.accessToken = token
	s.subject = claims.Subject
	s.roles = claims.Roles
	s.expiresAt = claims.Expiry().Add(-refreshBuffer)
	return nil
}

// getValidToken returns a valid access token, automatically refreshing if expired.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if s.accessToken != "" && s.now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock (another goroutine may have refreshed)
	if s.accessToken == "" {
		return "", ErrLoggedOut
	}
	if s.now().Before(s.expiresAt) {
		return s.accessToken, nil
	}

	resp, err := s.client.Refresh(ctx, s.accessToken)
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}
	if err := s.setToken(resp.AccessToken); err != nil {
		return "", err
	}

	return s.accessToken, nil
}

// Me returns the server's view of the current access token.
func (s *Session) Me(ctx context.Context) (*MeResponse, error) {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.Me(ctx, token)
}

// CreateUser creates a user. Requires ROLE_ADMIN.
func (s *Session) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.CreateUser(ctx, token, req)
}

// Logout ends the session on the server. The Session is unusable afterwards.
func (s *Session) Logout(ctx context.Context) error {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return err
	}
	if err := s.client.Logout(ctx, token); err != nil {
		return err
	}

	s.mu.Lock()
	s.accessToken = ""
	s.mu.Unlock()
	return nil
}

// AccessToken returns the current access token without checking expiration.
// For most use cases, prefer using the Session methods which handle refresh automatically.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// Subject returns the user id the access token was issued to.
func (s *Session) Subject() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subject
}

// Roles returns a copy of the roles carried by the current access token.
func (s *Session) Roles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.roles)
}

// HasRole reports whether the current access token carries role.
func (s *Session) HasRole(role string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.roles, role)
}
