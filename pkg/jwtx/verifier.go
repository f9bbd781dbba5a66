package jwtx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates an access token and gives you back the claims if it's
// legit.
type Verifier interface {
	Verify(token string) (AccessClaims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

type structuredClaims interface {
	jwt.Claims
	checkStructure() error
}

// anyClaims accepts both access and refresh tokens.
type anyClaims struct {
	jwt.RegisteredClaims
}

func (c *anyClaims) checkStructure() error {
	if c.IssuedAt == nil || c.ExpiresAt == nil {
		return ErrMalformed
	}
	return nil
}

// Verify implements Verifier. Expired tokens are rejected.
func (p *TokenProvider) Verify(token string) (AccessClaims, error) {
	return p.ParseClaims(token)
}

// ParseClaims verifies an access token and returns its claims. Failures are
// reported in order: ErrInvalidSig, then ErrMalformed, then ErrExpired. On
// ErrExpired the returned claims are fully populated.
func (p *TokenProvider) ParseClaims(token string) (AccessClaims, error) {
	var claims AccessClaims
	err := p.parse(token, &claims)
	if err != nil && !errors.Is(err, ErrExpired) {
		return AccessClaims{}, err
	}
	return claims, err
}

// ParseRefreshClaims is ParseClaims for refresh tokens.
func (p *TokenProvider) ParseRefreshClaims(token string) (RefreshClaims, error) {
	var claims RefreshClaims
	err := p.parse(token, &claims)
	if err != nil && !errors.Is(err, ErrExpired) {
		return RefreshClaims{}, err
	}
	return claims, err
}

// Validate reports whether token is correctly signed, well formed and not
// expired. Works for access and refresh tokens.
func (p *TokenProvider) Validate(token string) bool {
	var claims anyClaims
	if err := p.parse(token, &claims); err != nil {
		p.logger.Debug("jwt validation failed", "reason", reason(err))
		return false
	}
	return true
}

// ExpiresAt returns the expiry of a correctly signed token, whether or not it
// has already expired.
func (p *TokenProvider) ExpiresAt(token string) (time.Time, error) {
	var claims anyClaims
	if err := p.parse(token, &claims); err != nil && !errors.Is(err, ErrExpired) {
		return time.Time{}, err
	}
	return numericTime(claims.ExpiresAt), nil
}

// RefreshTokenID returns the id carried by a correctly signed refresh token,
// whether or not it has already expired.
func (p *TokenProvider) RefreshTokenID(token string) (string, error) {
	claims, err := p.ParseRefreshClaims(token)
	if err != nil && !errors.Is(err, ErrExpired) {
		return "", err
	}
	return claims.Value, nil
}

// EqualRefreshTokenID reports whether the refresh token carries storedID.
// Any failure to read the presented token counts as a mismatch.
func (p *TokenProvider) EqualRefreshTokenID(storedID, token string) bool {
	if storedID == "" {
		return false
	}
	id, err := p.RefreshTokenID(token)
	if err != nil {
		p.logger.Debug("refresh token comparison failed", "reason", reason(err))
		return false
	}
	return id == storedID
}

func (p *TokenProvider) parse(raw string, claims structuredClaims) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrMalformed
	}

	_, err := p.parser.ParseWithClaims(raw, claims, p.keyFunc)

	// 1. Signature, including algorithm confusion.
	if err != nil && (errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrTokenUnverifiable)) {
		return fmt.Errorf("%w: %w", ErrInvalidSig, err)
	}

	// 2. Structure. Undecodable tokens never reach signature verification.
	if err != nil && (errors.Is(err, jwt.ErrTokenMalformed) || errors.Is(err, jwt.ErrTokenRequiredClaimMissing)) {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if serr := claims.checkStructure(); serr != nil {
		return serr
	}

	// 3. Time.
	switch {
	case err == nil:
		return nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenUsedBeforeIssued), errors.Is(err, jwt.ErrTokenNotValidYet):
		return fmt.Errorf("%w: %w", ErrNotYetValid, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}

// reason maps a parse error to a short label for logs.
func reason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidSig):
		return "invalid_signature"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrNotYetValid):
		return "not_yet_valid"
	default:
		return "malformed"
	}
}
