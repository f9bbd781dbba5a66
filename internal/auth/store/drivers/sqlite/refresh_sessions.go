package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tokenauth/internal/auth/domain"
	"github.com/aussiebroadwan/tokenauth/internal/auth/store/drivers/sqlite/gen"
)

type refreshSessionsRepo struct {
	q   *gen.Queries
	now func() time.Time
}

// UpsertRefreshSession is a single INSERT .. ON CONFLICT statement, so two
// logins racing for the same user never leave two rows behind.
func (r *refreshSessionsRepo) UpsertRefreshSession(ctx context.Context, s domain.RefreshSession) error {
	updated := s.UpdatedAt
	if updated.IsZero() {
		updated = r.now()
	}

	return r.q.UpsertRefreshSession(ctx, gen.UpsertRefreshSessionParams{
		UserID:    s.UserID,
		TokenID:   s.TokenID,
		ExpiresAt: s.ExpiresAt.Unix(),
		UpdatedAt: updated.Unix(),
	})
}

func (r *refreshSessionsRepo) GetRefreshSession(ctx context.Context, userID string) (domain.RefreshSession, error) {
	row, err := r.q.GetRefreshSession(ctx, gen.GetRefreshSessionParams{
		UserID:    userID,
		ExpiresAt: r.now().Unix(),
	})
	if err != nil {
		return domain.RefreshSession{}, mapNotFound(err)
	}
	return mapRefreshSession(row), nil
}

func (r *refreshSessionsRepo) DeleteRefreshSession(ctx context.Context, userID string) error {
	return r.q.DeleteRefreshSession(ctx, userID)
}

func (r *refreshSessionsRepo) DeleteExpiredRefreshSessions(ctx context.Context) error {
	_, err := r.q.DeleteExpiredRefreshSessions(ctx, r.now().Unix())
	return err
}
