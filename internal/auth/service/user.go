package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/tokenauth/internal/auth/domain"
	"github.com/aussiebroadwan/tokenauth/internal/auth/store"
	"github.com/aussiebroadwan/tokenauth/pkg/cryptox"
	"github.com/aussiebroadwan/tokenauth/pkg/idx"
	"github.com/aussiebroadwan/tokenauth/pkg/slogx"
)

// MaxUsernameLength bounds usernames; they double as the token subject.
const MaxUsernameLength = 64

type UserService struct {
	Users store.Users
}

// GetUserByUsername fetches a user by username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return s.Users.GetUserByUsername(ctx, username)
}

// CreateUser hashes password and stores a new user. Roles default to
// ROLE_USER and must come from domain.KnownRoles.
func (s *UserService) CreateUser(ctx context.Context, username, password string, roles []string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || len(username) > MaxUsernameLength || strings.ContainsAny(username, " \t\r\n") {
		return domain.User{}, ErrMalformedRequest
	}

	roles, err := domain.NormalizeRoles(roles)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", ErrInvalidRole, err)
	}
	if len(roles) == 0 {
		roles = []string{domain.RoleUser}
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.NewAt(now).String(),
		Username:     username,
		PasswordHash: hash,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUserExists
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	slogx.FromContext(ctx).Info("user created",
		slog.String("user_id", u.Username),
		slog.Any("roles", u.Roles),
	)
	return u, nil
}

// SeedAdmin creates the first admin when the user table is empty. With no
// password a random one is generated and logged once. It returns false when
// users already exist or no username is configured.
func (s *UserService) SeedAdmin(ctx context.Context, username, password string) (bool, error) {
	l := slogx.FromContext(ctx)

	if strings.TrimSpace(username) == "" {
		return false, nil
	}

	empty, err := s.Users.IsEmpty(ctx)
	if err != nil {
		return false, fmt.Errorf("check users: %w", err)
	}
	if !empty {
		return false, nil
	}

	generated := password == ""
	if generated {
		password, err = cryptox.GeneratePassword()
		if err != nil {
			return false, err
		}
	}

	if _, err := s.CreateUser(ctx, username, password, []string{domain.RoleAdmin, domain.RoleUser}); err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}

	if generated {
		l.Warn("generated admin password, change it", slog.String("username", username), slog.String("password", password))
	} else {
		l.Info("seeded admin user", slog.String("username", username))
	}
	return true, nil
}
