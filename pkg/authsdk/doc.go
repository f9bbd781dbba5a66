/*
Package authsdk provides a client SDK for the token auth service, plus the
wire and error types the service itself writes.

# SDKClient vs Session

  - SDKClient: unauthenticated operations and thin wrappers around each endpoint
  - Session: authenticated operations with automatic access token refresh

	client := authsdk.NewSDKClient("https://auth.example.com")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Log in
	session, err := client.AuthenticateWithPassword(ctx, "alice", "correct")

	// Who am I?
	me, err := session.Me(ctx)

# Refresh tokens

The service never puts the refresh token in a response body. It is set as an
HttpOnly cookie scoped to /v1/auth, which the SDKClient keeps in its cookie
jar. When a Session's access token is within 30 seconds of expiry the next call
posts the old access token plus the cookie to /v1/auth/refresh and swaps both.
Logging in again from anywhere supersedes the cookie, after which refresh
fails with ErrInvalidGrant.

# Error Handling

Every non-2xx response is returned as an *APIError. The predefined values
compare with errors.Is by status and code:

	_, err := client.Login(ctx, "alice", "wrong")
	if errors.Is(err, authsdk.ErrInvalidCredentials) {
		// unknown user and wrong password look the same
	}

# Thread Safety

Sessions are safe for concurrent use. Concurrent callers that find the token
expired perform a single refresh.
*/
package authsdk
