//go:build e2e

package auth_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/tokenauth/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitLoginEndpoint verifies that /v1/auth/login is rate limited.
// This endpoint has strict limits (5 req/min) to prevent brute force attacks.
func TestRateLimitLoginEndpoint(t *testing.T) {
	baseURL := setupAuthContainerWithDefaultRateLimits(t)

	client := authsdk.NewSDKClient(baseURL)
	ctx := context.Background()

	// Make requests until we hit the rate limit (strict limit is 5 req/min)
	for i := range 5 {
		_, err := client.Login(ctx, "wronguser", "wrongpass")
		assertAPIError(t, err, http.StatusUnauthorized, "Invalid credentials should fail")
		t.Logf("request %d rejected with 401", i+1)
	}

	// Even correct credentials are refused now
	_, err := client.Login(ctx, adminUsername, adminPassword)
	assertAPIError(t, err, http.StatusTooManyRequests, "Should be rate limited after 5 requests")
	require.ErrorContains(t, err, authsdk.ErrorCodeRateLimitExceeded)
}

// TestRateLimitDoesNotAffectHealth verifies health probes use their own budget.
func TestRateLimitDoesNotAffectHealth(t *testing.T) {
	baseURL := setupAuthContainerWithDefaultRateLimits(t)

	client := authsdk.NewSDKClient(baseURL)
	ctx := context.Background()

	for range 6 {
		_, _ = client.Login(ctx, "wronguser", "wrongpass")
	}

	health, err := client.GetLiveness(ctx)
	assertHealthy(t, health, err)
}
