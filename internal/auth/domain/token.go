package domain

import "time"

// RefreshSession binds a user to the id of their one live refresh token. A
// newer login overwrites it, which is what invalidates older refresh tokens.
type RefreshSession struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
	UpdatedAt time.Time
}

// LoginResult is what a login or refresh hands back to the transport layer.
type LoginResult struct {
	Identity Identity

	AccessToken     string
	AccessExpiresAt time.Time

	// RefreshToken only ever leaves the service in a cookie.
	RefreshToken     string
	RefreshExpiresAt time.Time
}
