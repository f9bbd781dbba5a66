package jwtx

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// MinSecretLength is the minimum HMAC secret size in bytes, matching the
// SHA-512 block output used by HS512.
const MinSecretLength = 64

var (
	ErrWeakSecret   = errors.New("jwtx: secret shorter than 64 bytes")
	ErrInvalidTTL   = errors.New("jwtx: token lifetime must be a positive whole number of seconds")
	ErrEmptySubject = errors.New("jwtx: empty subject")
)

// Config configures a TokenProvider.
type Config struct {
	// Secret is the shared HMAC secret used to sign and verify every token.
	Secret []byte

	// AccessTTL is the lifetime of access tokens.
	AccessTTL time.Duration

	// RefreshTTL is the lifetime of refresh tokens.
	RefreshTTL time.Duration

	// Now overrides the clock, mainly for tests. Defaults to time.Now.
	Now func() time.Time

	// Logger receives validation failure reasons. Defaults to a discard logger.
	Logger *slog.Logger
}

// TokenProvider issues and validates HS512 signed access and refresh tokens.
// It is safe for concurrent use; all state is read-only after construction.
type TokenProvider struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
	logger     *slog.Logger
	parser     *jwt.Parser
}

// NewTokenProvider validates cfg and returns a ready TokenProvider.
func NewTokenProvider(cfg Config) (*TokenProvider, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	if err := checkTTL(cfg.AccessTTL); err != nil {
		return nil, fmt.Errorf("access token: %w", err)
	}
	if err := checkTTL(cfg.RefreshTTL); err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// Copy the secret so callers can't mutate it underneath us.
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	return &TokenProvider{
		secret:     secret,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        now,
		logger:     logger,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
			jwt.WithTimeFunc(now),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}, nil
}

func checkTTL(ttl time.Duration) error {
	if ttl <= 0 || ttl%time.Second != 0 {
		return ErrInvalidTTL
	}
	return nil
}

// AccessTTL returns the configured access token lifetime.
func (p *TokenProvider) AccessTTL() time.Duration { return p.accessTTL }

// RefreshTTL returns the configured refresh token lifetime.
func (p *TokenProvider) RefreshTTL() time.Duration { return p.refreshTTL }

// IssueAccessToken mints an access token for userID carrying roles. The
// issuer is the URI the login request arrived on.
func (p *TokenProvider) IssueAccessToken(userID string, roles []string, issuer string) (string, AccessClaims, error) {
	if userID == "" {
		return "", AccessClaims{}, ErrEmptySubject
	}

	claims := NewAccessClaims(userID, roles, issuer, p.accessTTL, p.issueTime())
	token, err := p.sign(claims)
	if err != nil {
		return "", AccessClaims{}, err
	}
	return token, claims, nil
}

// IssueRefreshToken mints a refresh token carrying a fresh random id.
func (p *TokenProvider) IssueRefreshToken() (string, RefreshClaims, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", RefreshClaims{}, fmt.Errorf("jwtx: generate refresh token id: %w", err)
	}

	claims := NewRefreshClaims(id.String(), p.refreshTTL, p.issueTime())
	token, err := p.sign(claims)
	if err != nil {
		return "", RefreshClaims{}, err
	}
	return token, claims, nil
}

// issueTime is truncated to the second since exp and iat are encoded as
// whole seconds on the wire.
func (p *TokenProvider) issueTime() time.Time {
	return p.now().UTC().Truncate(time.Second)
}

func (p *TokenProvider) sign(claims jwt.Claims) (string, error) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign token: %w", err)
	}
	return token, nil
}

func (p *TokenProvider) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrAlgMismatch
	}
	return p.secret, nil
}
