//go:build integration

package redis_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/tokenauth/internal/auth/domain"
	"github.com/aussiebroadwan/tokenauth/internal/auth/store"
	redisstore "github.com/aussiebroadwan/tokenauth/internal/auth/store/drivers/redis"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedisContainer starts a real redis and returns its address.
func setupRedisContainer(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor: wait.ForLog("Ready to accept connections").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("%s:%s", host, mappedPort.Port())
}

func TestSessionsAgainstRealRedis(t *testing.T) {
	ctx := context.Background()
	addr := setupRedisContainer(t)

	client, err := redisstore.Dial(ctx, redisstore.Config{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sessions := redisstore.NewSessions(client)

	require.NoError(t, sessions.UpsertRefreshSession(ctx, domain.RefreshSession{
		UserID: "alice", TokenID: "first", ExpiresAt: time.Now().Add(2 * time.Second),
	}))
	got, err := sessions.GetRefreshSession(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "first", got.TokenID)

	require.Eventually(t, func() bool {
		_, err := sessions.GetRefreshSession(ctx, "alice")
		return errors.Is(err, store.ErrNotFound)
	}, 5*time.Second, 100*time.Millisecond)
}
