package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/tokenauth/pkg/jwtx"
)

// InitTokenProvider builds the HS512 provider from the configured secret and
// lifetimes. The secret itself is never logged.
func InitTokenProvider(cfg Config, logger *slog.Logger) (*jwtx.TokenProvider, error) {
	p, err := jwtx.NewTokenProvider(jwtx.Config{
		Secret:     []byte(cfg.TokenSecret),
		AccessTTL:  cfg.AccessTokenLifetime,
		RefreshTTL: cfg.RefreshTokenLifetime,
		Logger:     logger.With("component", "jwtx"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create token provider: %w", err)
	}

	logger.Info("token provider ready",
		"alg", "HS512",
		"access_ttl", cfg.AccessTokenLifetime,
		"refresh_ttl", cfg.RefreshTokenLifetime,
	)
	return p, nil
}
