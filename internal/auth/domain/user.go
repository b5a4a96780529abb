package domain

import "time"

// User is the credential identity owned by the auth subsystem. Other
// subsystems only ever see its ID.
type User struct {
	ID           string
	Email        string
	PasswordHash string // argon2 encoded, never serialized outward
	IsActive     bool   // false until email verification succeeds
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
