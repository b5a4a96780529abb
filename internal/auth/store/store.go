package store

import (
	"context"
	"errors"

	"github.com/traintrack-app/traintrack/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Users() Users
	Profiles() Profiles

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetByID returns a user by id.
	GetByID(ctx context.Context, id string) (domain.User, error)

	// GetByEmail is used during login; email is the login key.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// Create inserts a new user (id is provided by app via ULID).
	// The email uniqueness constraint lives in the database; a duplicate
	// insert returns ErrAlreadyExists even under concurrent registration.
	Create(ctx context.Context, u domain.User) error

	// Activate flips is_active exactly once after email verification.
	Activate(ctx context.Context, userID string) error

	// UpdateLastLogin stamps last_login_at and bumps updated_at.
	UpdateLastLogin(ctx context.Context, userID string) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// Delete cascades to the profile record (per schema).
	Delete(ctx context.Context, userID string) error
}

type Profiles interface {
	// Create inserts the profile record seeded at registration.
	Create(ctx context.Context, p domain.Profile) error

	// GetByUserID returns the profile for a user.
	GetByUserID(ctx context.Context, userID string) (domain.Profile, error)

	// UpdateName mutates the display name and bumps updated_at.
	UpdateName(ctx context.Context, userID string, name string) error
}
