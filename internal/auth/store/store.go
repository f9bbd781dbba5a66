package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/tokenauth/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this.
// It exposes sub-repositories to keep concerns tidy and testable, and so a
// transaction can't be started from inside another one.
type Store interface {
	Users() Users
	RefreshSessions() RefreshSessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// A taken username yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// DeleteUser removes the user; the sqlite schema cascades to refresh_sessions.
	DeleteUser(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

// RefreshSessions holds at most one live refresh token id per user.
type RefreshSessions interface {
	// UpsertRefreshSession atomically replaces the user's session. Concurrent
	// writers race and the last one wins.
	UpsertRefreshSession(ctx context.Context, s domain.RefreshSession) error

	// GetRefreshSession returns the user's unexpired session or ErrNotFound.
	GetRefreshSession(ctx context.Context, userID string) (domain.RefreshSession, error)

	// DeleteRefreshSession removes the user's session. Missing is not an error.
	DeleteRefreshSession(ctx context.Context, userID string) error

	// DeleteExpiredRefreshSessions is optional housekeeping.
	DeleteExpiredRefreshSessions(ctx context.Context) error
}
