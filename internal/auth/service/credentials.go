package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/tokenauth/internal/auth/domain"
	"github.com/aussiebroadwan/tokenauth/internal/auth/store"
	"github.com/aussiebroadwan/tokenauth/pkg/cryptox"
	"github.com/aussiebroadwan/tokenauth/pkg/slogx"
)

// CredentialService checks identifier/secret pairs against the user store.
type CredentialService struct {
	Users store.Users
}

// Authenticate verifies cred and returns the matching identity. Unknown users
// and wrong secrets both yield ErrInvalidCredentials after the same amount of
// hashing work.
func (s *CredentialService) Authenticate(ctx context.Context, cred domain.Credential) (domain.Identity, error) {
	l := slogx.FromContext(ctx)

	if cred.Identifier == "" || cred.Secret == "" {
		return domain.Identity{}, ErrMalformedRequest
	}

	user, err := s.Users.GetUserByUsername(ctx, cred.Identifier)
	if errors.Is(err, store.ErrNotFound) {
		_ = cryptox.VerifyDummy(cred.Secret)
		l.Info("login rejected", slog.String("reason", "unknown_user"))
		return domain.Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(cred.Secret, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			l.Info("login rejected", slog.String("reason", "bad_secret"), slog.String("user_id", user.Username))
			return domain.Identity{}, ErrInvalidCredentials
		}
		return domain.Identity{}, fmt.Errorf("verify password for %s: %w", user.Username, err)
	}

	return identityOf(user), nil
}

// LookupIdentity re-reads a user's current roles, used when refreshing.
func (s *CredentialService) LookupIdentity(ctx context.Context, userID string) (domain.Identity, error) {
	user, err := s.Users.GetUserByUsername(ctx, userID)
	if err != nil {
		return domain.Identity{}, err
	}
	return identityOf(user), nil
}

func identityOf(u domain.User) domain.Identity {
	roles := u.Roles
	if len(roles) == 0 {
		roles = []string{domain.RoleUser}
	}
	return domain.Identity{UserID: u.Username, Roles: roles}
}
