//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/tokenauth/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestLoginRefreshLogout tests the complete flow:
// 1. Admin creates a user
// 2. User logs in
// 3. Refresh rotates the cookie
// 4. A second login supersedes the first refresh token
// 5. Logout ends the session
func TestLoginRefreshLogout(t *testing.T) {
	baseURL := setupAuthContainer(t)
	ctx := t.Context()

	admin := loginAdmin(t, authsdk.NewSDKClient(baseURL))
	_, err := admin.CreateUser(ctx, authsdk.CreateUserRequest{Username: "alice", Password: "alice-pw"})
	require.NoError(t, err)

	client := authsdk.NewSDKClient(baseURL)
	login, err := client.Login(ctx, "alice", "alice-pw")
	require.NoError(t, err)
	require.NotEmpty(t, login.ExpiredTime)

	refreshed, err := client.Refresh(ctx, login.AccessToken)
	require.NoError(t, err)
	require.NotEqual(t, login.AccessToken, refreshed.AccessToken, "Access token should be rotated")

	me, err := client.Me(ctx, refreshed.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "alice", me.UserID)
	require.Equal(t, "/v1/auth/refresh", me.Issuer)

	// Logging in elsewhere replaces the session.
	_, err = authsdk.NewSDKClient(baseURL).Login(ctx, "alice", "alice-pw")
	require.NoError(t, err)
	_, err = client.Refresh(ctx, refreshed.AccessToken)
	require.ErrorIs(t, err, authsdk.ErrInvalidGrant)

	// Logout still works with a valid access token.
	require.NoError(t, client.Logout(ctx, refreshed.AccessToken))
}

// TestCreateUserRequiresAdmin verifies role enforcement on /v1/users.
func TestCreateUserRequiresAdmin(t *testing.T) {
	baseURL := setupAuthContainer(t)
	ctx := t.Context()

	admin := loginAdmin(t, authsdk.NewSDKClient(baseURL))
	_, err := admin.CreateUser(ctx, authsdk.CreateUserRequest{Username: "bob", Password: "bob-pw"})
	require.NoError(t, err)

	_, err = admin.CreateUser(ctx, authsdk.CreateUserRequest{Username: "bob", Password: "bob-pw"})
	assertAPIError(t, err, http.StatusConflict, "Duplicate username")

	bob, err := authsdk.NewSDKClient(baseURL).AuthenticateWithPassword(ctx, "bob", "bob-pw")
	require.NoError(t, err)
	_, err = bob.CreateUser(ctx, authsdk.CreateUserRequest{Username: "carol", Password: "pw"})
	assertAPIError(t, err, http.StatusForbidden, "Non-admin creating a user")
}
