package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token lifetimes, used when the service is not configured otherwise.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 30 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 14 * 24 * time.Hour
)

// AccessClaims are the claims carried by an access token. Roles travel with
// the token so downstream authorization does not need a second lookup.
type AccessClaims struct {
	jwt.RegisteredClaims

	// Roles granted to the subject, e.g. ["ROLE_USER", "ROLE_ADMIN"].
	Roles []string `json:"roles"`
}

// RefreshClaims are the claims carried by a refresh token. There is no
// subject: the binding to a user lives in the session store.
type RefreshClaims struct {
	jwt.RegisteredClaims

	// Value is the refresh token id compared against the stored session.
	Value string `json:"value"`
}

// NewAccessClaims builds access claims issued at now and expiring after ttl.
func NewAccessClaims(subject string, roles []string, issuer string, ttl time.Duration, now time.Time) AccessClaims {
	return AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Roles: roles,
	}
}

// NewRefreshClaims builds refresh claims for the given token id.
func NewRefreshClaims(tokenID string, ttl time.Duration, now time.Time) RefreshClaims {
	return RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Value: tokenID,
	}
}

// HasRole reports whether the claims grant role.
func (c *AccessClaims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// Expiry returns the exp claim, or the zero time when absent.
func (c *AccessClaims) Expiry() time.Time {
	return numericTime(c.ExpiresAt)
}

// Issued returns the iat claim, or the zero time when absent.
func (c *AccessClaims) Issued() time.Time {
	return numericTime(c.IssuedAt)
}

// Expiry returns the exp claim, or the zero time when absent.
func (c *RefreshClaims) Expiry() time.Time {
	return numericTime(c.ExpiresAt)
}

// Issued returns the iat claim, or the zero time when absent.
func (c *RefreshClaims) Issued() time.Time {
	return numericTime(c.IssuedAt)
}

func numericTime(d *jwt.NumericDate) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time.UTC()
}

// checkStructure reports the claims that must be present once the signature
// has been verified.
func (c *AccessClaims) checkStructure() error {
	if c.Subject == "" || c.IssuedAt == nil || c.ExpiresAt == nil {
		return ErrMalformed
	}
	return nil
}

func (c *RefreshClaims) checkStructure() error {
	if c.Value == "" || c.IssuedAt == nil || c.ExpiresAt == nil {
		return ErrMalformed
	}
	return nil
}
