package domain

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string   // argon2 encoded
	Roles        []string // Parsed from space-delimited storage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
