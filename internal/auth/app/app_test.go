package app

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/tokenauth/internal/auth/store/drivers/redis"
	"github.com/aussiebroadwan/tokenauth/pkg/authsdk"
	"github.com/aussiebroadwan/tokenauth/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()

	cfg := Config{
		TokenSecret:          testSecret,
		AccessTokenLifetime:  time.Minute,
		RefreshTokenLifetime: time.Hour,
		DatabaseFile:         filepath.Join(dir, "auth.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		SessionStore:         SessionStoreSQLite,
		CookieName:           "refreshToken",
		Timezone:             "UTC",
		AdminUsername:        "admin",
		AdminPassword:        "admin-password",
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 8080,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
		RateLimits:           httpx.DefaultRateLimits(),
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func newTestApp(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()

	a, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.closeStores() })

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func exerciseLogin(t *testing.T, srv *httptest.Server) {
	t.Helper()
	ctx := context.Background()

	session, err := authsdk.NewSDKClient(srv.URL).AuthenticateWithPassword(ctx, "admin", "admin-password")
	require.NoError(t, err)
	require.True(t, session.HasRole("ROLE_ADMIN"))

	created, err := session.CreateUser(ctx, authsdk.CreateUserRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, []string{"ROLE_USER"}, created.Roles)

	client := authsdk.NewSDKClient(srv.URL)
	first, err := client.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	_, err = client.Refresh(ctx, first.AccessToken)
	require.NoError(t, err)

	ready, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
}

func TestApplicationSQLiteSessions(t *testing.T) {
	cfg := testConfig(t)
	srv := newTestApp(t, cfg)
	exerciseLogin(t, srv)
}

func TestApplicationRedisSessions(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig(t)
	cfg.SessionStore = SessionStoreRedis
	cfg.Redis = redis.Config{Addr: mr.Addr()}

	srv := newTestApp(t, cfg)
	exerciseLogin(t, srv)

	require.True(t, mr.Exists(redis.KeyPrefix+"alice"))
	require.True(t, mr.Exists(redis.KeyPrefix+"admin"))
	require.Greater(t, mr.TTL(redis.KeyPrefix+"alice"), 59*time.Minute)
}

func TestApplicationRedisUnavailable(t *testing.T) {
	cfg := testConfig(t)
	cfg.SessionStore = SessionStoreRedis
	cfg.Redis = redis.Config{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond}

	_, err := New(cfg)
	require.Error(t, err)
}
