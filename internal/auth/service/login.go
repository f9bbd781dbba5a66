package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/tokenauth/internal/auth/domain"
	"github.com/aussiebroadwan/tokenauth/internal/auth/metrics"
	"github.com/aussiebroadwan/tokenauth/internal/auth/store"
	"github.com/aussiebroadwan/tokenauth/pkg/jwtx"
	"github.com/aussiebroadwan/tokenauth/pkg/slogx"
)

// LoginService runs the login, refresh and logout flows.
type LoginService struct {
	Credentials *CredentialService
	Tokens      *jwtx.TokenProvider
	Sessions    store.RefreshSessions
	Metrics     metrics.Recorder
}

// Login authenticates cred, then issues an access and a refresh token and
// records the refresh token id as the user's only live session. If the
// session write fails no tokens are returned.
func (s *LoginService) Login(ctx context.Context, cred domain.Credential, issuer string) (*domain.LoginResult, error) {
	rec := metrics.OrNoop(s.Metrics)

	id, err := s.Credentials.Authenticate(ctx, cred)
	if err != nil {
		rec.RecordLogin(loginOutcome(err))
		return nil, err
	}

	res, err := s.issue(ctx, id, issuer)
	if err != nil {
		rec.RecordLogin(metrics.OutcomeError)
		return nil, err
	}

	slogx.FromContext(ctx).Info("login succeeded", slog.String("user_id", id.UserID))
	rec.RecordLogin(metrics.OutcomeSuccess)
	return res, nil
}

// Refresh trades a refresh token for a fresh token pair. The access token
// names the user and may already be expired, but must be genuine. The
// refresh token must be unexpired and still match the stored session.
// The stored id is rotated, so each refresh token works once.
func (s *LoginService) Refresh(ctx context.Context, accessToken, refreshToken, issuer string) (*domain.LoginResult, error) {
	rec := metrics.OrNoop(s.Metrics)
	l := slogx.FromContext(ctx)

	reject := func(reason string) (*domain.LoginResult, error) {
		l.Info("refresh rejected", slog.String("reason", reason))
		rec.RecordRefresh(metrics.OutcomeInvalidRefresh)
		return nil, ErrInvalidRefresh
	}

	access, err := s.Tokens.ParseClaims(accessToken)
	if err != nil && !errors.Is(err, jwtx.ErrExpired) {
		return reject("access_token")
	}
	if _, err := s.Tokens.ParseRefreshClaims(refreshToken); err != nil {
		return reject("refresh_token")
	}

	sess, err := s.Sessions.GetRefreshSession(ctx, access.Subject)
	if errors.Is(err, store.ErrNotFound) {
		return reject("no_session")
	}
	if err != nil {
		rec.RecordRefresh(metrics.OutcomeError)
		return nil, fmt.Errorf("load refresh session: %w", err)
	}
	if !s.Tokens.EqualRefreshTokenID(sess.TokenID, refreshToken) {
		return reject("superseded")
	}

	id, err := s.Credentials.LookupIdentity(ctx, access.Subject)
	if errors.Is(err, store.ErrNotFound) {
		return reject("unknown_user")
	}
	if err != nil {
		rec.RecordRefresh(metrics.OutcomeError)
		return nil, fmt.Errorf("lookup identity: %w", err)
	}

	res, err := s.issue(ctx, id, issuer)
	if err != nil {
		rec.RecordRefresh(metrics.OutcomeError)
		return nil, err
	}

	l.Info("refresh succeeded", slog.String("user_id", id.UserID))
	rec.RecordRefresh(metrics.OutcomeSuccess)
	return res, nil
}

// Logout forgets the user's refresh session. Outstanding access tokens stay
// valid until they expire.
func (s *LoginService) Logout(ctx context.Context, userID string) error {
	if err := s.Sessions.DeleteRefreshSession(ctx, userID); err != nil {
		return fmt.Errorf("delete refresh session: %w", err)
	}
	slogx.FromContext(ctx).Info("logout", slog.String("user_id", userID))
	metrics.OrNoop(s.Metrics).RecordLogout()
	return nil
}

// issue mints both tokens, then persists the refresh id. Issue first,
// persist second; nothing is returned unless both succeed.
func (s *LoginService) issue(ctx context.Context, id domain.Identity, issuer string) (*domain.LoginResult, error) {
	access, accessClaims, err := s.Tokens.IssueAccessToken(id.UserID, id.Roles, issuer)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refresh, refreshClaims, err := s.Tokens.IssueRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	err = s.Sessions.UpsertRefreshSession(ctx, domain.RefreshSession{
		UserID:    id.UserID,
		TokenID:   refreshClaims.Value,
		ExpiresAt: refreshClaims.Expiry(),
		UpdatedAt: refreshClaims.Issued(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionPersistence, err)
	}

	return &domain.LoginResult{
		Identity:         id,
		AccessToken:      access,
		AccessExpiresAt:  accessClaims.Expiry(),
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshClaims.Expiry(),
	}, nil
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, ErrMalformedRequest):
		return metrics.OutcomeMalformed
	case errors.Is(err, ErrInvalidCredentials):
		return metrics.OutcomeInvalidCredentials
	default:
		return metrics.OutcomeError
	}
}
