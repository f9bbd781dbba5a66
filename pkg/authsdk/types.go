package authsdk

import "time"

// ExpiredTimeLayout is the layout of LoginResponse.ExpiredTime.
const ExpiredTimeLayout = "2006-01-02 15:04:05"

// ErrorResponse is the JSON error body. Used internally for parsing HTTP
// error responses; client code should use APIError instead.
type ErrorResponse struct {
	// Error is the error code (e.g., "invalid_request", "invalid_grant")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Login Types
// ============================================================================

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

// LoginResponse is returned by the login and refresh endpoints. The refresh
// token never appears in the body; it travels in an HttpOnly cookie.
type LoginResponse struct {
	// AccessToken is the HS512 signed JWT to present as a Bearer token.
	AccessToken string `json:"accessToken"`

	// ExpiredTime is the access token expiry formatted with ExpiredTimeLayout
	// in the server's configured time zone.
	ExpiredTime string `json:"expiredTime"`
}

// MeResponse describes the caller's verified access token.
type MeResponse struct {
	UserID    string    `json:"userId"`
	Roles     []string  `json:"roles"`
	Issuer    string    `json:"issuer"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ============================================================================
// User Types
// ============================================================================

// CreateUserRequest is the body of POST /v1/users. Roles defaults to
// ["ROLE_USER"] when empty.
type CreateUserRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Roles    []string `json:"roles,omitempty"`
}

// UserResponse describes a user record. The password hash is never exposed.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

// ============================================================================
// Health Check Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the sqlite connection status
	Database string `json:"database"`

	// SessionStore indicates the refresh session store status. Equal to
	// Database when sessions live in sqlite.
	SessionStore string `json:"sessionStore"`
}
