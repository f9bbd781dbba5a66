package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = strings.Repeat("0123456789abcdef", 4)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := loadConfig(envMap(map[string]string{"AUTH_TOKEN_SECRET": testSecret}))
	require.NoError(t, cfg.Validate())

	require.Equal(t, 30*time.Minute, cfg.AccessTokenLifetime)
	require.Equal(t, 14*24*time.Hour, cfg.RefreshTokenLifetime)
	require.Equal(t, SessionStoreSQLite, cfg.SessionStore)
	require.Equal(t, "refreshToken", cfg.CookieName)
	require.True(t, cfg.CookieSecure)
	require.Equal(t, time.UTC, cfg.Location())
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
	require.Equal(t, 5, cfg.RateLimits.Strict.RequestsPerWindow)
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg := loadConfig(envMap(map[string]string{
		"AUTH_TOKEN_SECRET":              testSecret,
		"AUTH_ACCESS_TOKEN_LIFETIME_MS":  "60000",
		"AUTH_REFRESH_TOKEN_LIFETIME_MS": "3600000",
		"AUTH_SESSION_STORE":             "Redis",
		"AUTH_REDIS_ADDR":                "cache:6379",
		"AUTH_REDIS_DB":                  "2",
		"AUTH_COOKIE_SECURE":             "false",
		"AUTH_TIMEZONE":                  "UTC",
		"HOUSEKEEPING_INTERVAL":          "15",
		"RATELIMIT_STRICT_REQUESTS":      "9",
	}))
	require.NoError(t, cfg.Validate())

	require.Equal(t, time.Minute, cfg.AccessTokenLifetime)
	require.Equal(t, time.Hour, cfg.RefreshTokenLifetime)
	require.Equal(t, SessionStoreRedis, cfg.SessionStore)
	require.Equal(t, "cache:6379", cfg.Redis.Addr)
	require.Equal(t, 2, cfg.Redis.DB)
	require.False(t, cfg.CookieSecure)
	require.Equal(t, 15*time.Minute, cfg.HousekeepingInterval)
	require.Equal(t, 9, cfg.RateLimits.Strict.RequestsPerWindow)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "missing secret",
			env:  map[string]string{},
			want: "AUTH_TOKEN_SECRET",
		},
		{
			name: "short secret",
			env:  map[string]string{"AUTH_TOKEN_SECRET": "short"},
			want: "AUTH_TOKEN_SECRET",
		},
		{
			name: "sub-second lifetime",
			env:  map[string]string{"AUTH_TOKEN_SECRET": testSecret, "AUTH_ACCESS_TOKEN_LIFETIME_MS": "1500"},
			want: "AUTH_ACCESS_TOKEN_LIFETIME_MS",
		},
		{
			name: "negative lifetime",
			env:  map[string]string{"AUTH_TOKEN_SECRET": testSecret, "AUTH_REFRESH_TOKEN_LIFETIME_MS": "-1000"},
			want: "AUTH_REFRESH_TOKEN_LIFETIME_MS",
		},
		{
			name: "unknown session store",
			env:  map[string]string{"AUTH_TOKEN_SECRET": testSecret, "AUTH_SESSION_STORE": "memcached"},
			want: "AUTH_SESSION_STORE",
		},
		{
			name: "unknown timezone",
			env:  map[string]string{"AUTH_TOKEN_SECRET": testSecret, "AUTH_TIMEZONE": "Mars/Olympus_Mons"},
			want: "AUTH_TIMEZONE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadConfig(envMap(tt.env))
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}
