package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/tokenauth/internal/auth/store/drivers/redis"
	"github.com/aussiebroadwan/tokenauth/pkg/httpx"
	"github.com/aussiebroadwan/tokenauth/pkg/jwtx"
	"github.com/joho/godotenv"
)

// Session store backends.
const (
	SessionStoreSQLite = "sqlite"
	SessionStoreRedis  = "redis"
)

type Config struct {
	TokenSecret          string        // Required: HMAC secret, at least 64 bytes
	AccessTokenLifetime  time.Duration // Optional: access token lifetime (default: 30m)
	RefreshTokenLifetime time.Duration // Optional: refresh token lifetime (default: 14 days)

	DatabaseFile string       // Optional: path to SQLite database file (default: ./auth.db)
	PepperFile   string       // Optional: path to file containing pepper for password hashing (default: ./pepper)
	SessionStore string       // Optional: where refresh sessions live (sqlite, redis) (default: sqlite)
	Redis        redis.Config // Required when SessionStore is redis

	CookieName   string // Optional: refresh cookie name (default: refreshToken)
	CookieSecure bool   // Optional: Secure flag on the refresh cookie (default: true)
	Timezone     string // Optional: zone for expiredTime in login responses (default: UTC)

	AdminUsername string // Optional: admin seeded into an empty user table
	AdminPassword string // Optional: generated and logged once when empty

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	RateLimits           httpx.RateLimits

	location *time.Location
}

// LoadConfig reads an optional .env file, then the environment. Variables
// already set in the environment win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := loadConfig(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadConfig(getenv func(string) string) Config {
	env := envReader(getenv)

	return Config{
		TokenSecret:          getenv("AUTH_TOKEN_SECRET"),
		AccessTokenLifetime:  env.millis("AUTH_ACCESS_TOKEN_LIFETIME_MS", 30*time.Minute),
		RefreshTokenLifetime: env.millis("AUTH_REFRESH_TOKEN_LIFETIME_MS", 14*24*time.Hour),
		DatabaseFile:         env.str("AUTH_DATABASE_FILE", "auth.db"),
		PepperFile:           env.str("AUTH_PEPPER_FILE", "pepper"),
		SessionStore:         strings.ToLower(env.str("AUTH_SESSION_STORE", SessionStoreSQLite)),
		Redis: redis.Config{
			Addr:     env.str("AUTH_REDIS_ADDR", "localhost:6379"),
			Password: getenv("AUTH_REDIS_PASSWORD"),
			DB:       env.integer("AUTH_REDIS_DB", 0),
		},
		CookieName:           env.str("AUTH_COOKIE_NAME", "refreshToken"),
		CookieSecure:         env.boolean("AUTH_COOKIE_SECURE", true),
		Timezone:             env.str("AUTH_TIMEZONE", "UTC"),
		AdminUsername:        getenv("AUTH_ADMIN_USERNAME"),
		AdminPassword:        getenv("AUTH_ADMIN_PASSWORD"),
		Env:                  env.str("ENV", "dev"),
		LogLevel:             env.str("LOG_LEVEL", "info"),
		LogFormat:            env.str("LOG_FORMAT", "json"),
		Port:                 env.integer("PORT", 8080),
		ShutdownGracePeriod:  env.duration("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: env.duration("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		RateLimits:           httpx.LoadRateLimits(getenv),
	}
}

// Validate checks the config and resolves the timezone.
func (c *Config) Validate() error {
	var errs []error

	if len(c.TokenSecret) < jwtx.MinSecretLength {
		errs = append(errs, fmt.Errorf("AUTH_TOKEN_SECRET must be at least %d bytes", jwtx.MinSecretLength))
	}
	if c.AccessTokenLifetime < time.Second || c.AccessTokenLifetime%time.Second != 0 {
		errs = append(errs, errors.New("AUTH_ACCESS_TOKEN_LIFETIME_MS must be a positive whole number of seconds"))
	}
	if c.RefreshTokenLifetime < time.Second || c.RefreshTokenLifetime%time.Second != 0 {
		errs = append(errs, errors.New("AUTH_REFRESH_TOKEN_LIFETIME_MS must be a positive whole number of seconds"))
	}

	switch c.SessionStore {
	case SessionStoreSQLite:
	case SessionStoreRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("AUTH_REDIS_ADDR is required for the redis session store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH_SESSION_STORE %q", c.SessionStore))
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		errs = append(errs, fmt.Errorf("unknown AUTH_TIMEZONE %q", c.Timezone))
	}
	c.location = loc

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", c.Port))
	}

	return errors.Join(errs...)
}

// Location is the resolved AUTH_TIMEZONE, UTC before Validate.
func (c Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

type envReader func(string) string

func (e envReader) str(key, defaultValue string) string {
	if value := e(key); value != "" {
		return value
	}
	return defaultValue
}

func (e envReader) integer(key string, defaultValue int) int {
	if v, err := strconv.Atoi(e(key)); err == nil {
		return v
	}
	return defaultValue
}

func (e envReader) boolean(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(e(key)); err == nil {
		return v
	}
	return defaultValue
}

// millis reads a whole number of milliseconds. Invalid values fall back to
// the default.
func (e envReader) millis(key string, defaultValue time.Duration) time.Duration {
	v, err := strconv.ParseInt(e(key), 10, 64)
	if err != nil {
		return defaultValue
	}
	return time.Duration(v) * time.Millisecond
}

func (e envReader) duration(key string, defaultValue time.Duration) time.Duration {
	value := e(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
