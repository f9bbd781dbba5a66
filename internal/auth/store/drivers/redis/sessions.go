// Package redis keeps refresh sessions in redis, one key per user with a TTL
// equal to the refresh token lifetime.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/tokenauth/internal/auth/domain"
	"github.com/aussiebroadwan/tokenauth/internal/auth/store"
	goredis "github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces session keys: refresh_session:<userId>.
const KeyPrefix = "refresh_session:"

// Config holds the connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int

	// DialTimeout bounds the startup ping. Defaults to 5s.
	DialTimeout time.Duration
}

// Dial connects to redis and pings it once.
func Dial(ctx context.Context, cfg Config) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// Sessions implements store.RefreshSessions.
type Sessions struct {
	client goredis.UniversalClient
	now    func() time.Time
}

var _ store.RefreshSessions = (*Sessions)(nil)

func NewSessions(client goredis.UniversalClient) *Sessions {
	return &Sessions{client: client, now: time.Now}
}

func key(userID string) string { return KeyPrefix + userID }

// Ping verifies the redis connection is still alive.
func (s *Sessions) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// UpsertRefreshSession is a single SET with an expiry, so it is atomic and
// the last writer wins.
func (s *Sessions) UpsertRefreshSession(ctx context.Context, rs domain.RefreshSession) error {
	ttl := rs.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.DeleteRefreshSession(ctx, rs.UserID)
	}

	if err := s.client.Set(ctx, key(rs.UserID), rs.TokenID, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *Sessions) GetRefreshSession(ctx context.Context, userID string) (domain.RefreshSession, error) {
	k := key(userID)

	var get *goredis.StringCmd
	var pttl *goredis.DurationCmd
	_, err := s.client.Pipelined(ctx, func(p goredis.Pipeliner) error {
		get = p.Get(ctx, k)
		pttl = p.PTTL(ctx, k)
		return nil
	})
	if errors.Is(err, goredis.Nil) {
		return domain.RefreshSession{}, store.ErrNotFound
	}
	if err != nil {
		return domain.RefreshSession{}, fmt.Errorf("redis get session: %w", err)
	}

	tokenID, err := get.Result()
	if errors.Is(err, goredis.Nil) {
		return domain.RefreshSession{}, store.ErrNotFound
	}
	if err != nil {
		return domain.RefreshSession{}, fmt.Errorf("redis get session: %w", err)
	}

	rs := domain.RefreshSession{UserID: userID, TokenID: tokenID}
	// A key without a TTL is never written by Upsert; leave ExpiresAt zero.
	if ttl := pttl.Val(); ttl > 0 {
		rs.ExpiresAt = s.now().Add(ttl).UTC()
	}
	return rs, nil
}

func (s *Sessions) DeleteRefreshSession(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

// DeleteExpiredRefreshSessions is a no-op: redis expires keys on its own.
func (s *Sessions) DeleteExpiredRefreshSessions(ctx context.Context) error {
	return nil
}
