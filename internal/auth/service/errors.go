package service

import "errors"

var (
	ErrMalformedRequest   = errors.New("malformed_request")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrSessionPersistence = errors.New("session_persistence_failed")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
	ErrUserExists         = errors.New("user_exists")
	ErrInvalidRole        = errors.New("invalid_role")
)
