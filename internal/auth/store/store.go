package store

import (
	"context"
	"errors"
	"time"

	"github.com/flicknest/flicknest/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres later) implement this. It exposes sub-repositories to keep
// concerns tidy and testable.
type Store interface {
	Users() Users
	RevokedTokens() RevokedTokens

	ApplyMigrations() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

type Users interface {
	// GetUserByID is the administrative lookup used by the refresh flow to
	// read live account state.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// UpsertUser writes or updates an account record. Called on token
	// exchange with fields taken from verified identity-provider claims.
	UpsertUser(ctx context.Context, u domain.User) error

	// DeleteUser removes an account record.
	DeleteUser(ctx context.Context, id string) error
}

type RevokedTokens interface {
	// InsertRevokedToken adds a ledger entry. Inserting an already-present
	// jti is a no-op, which makes revocation idempotent.
	InsertRevokedToken(ctx context.Context, t domain.RevokedToken) error

	// IsTokenRevoked reports whether a ledger entry exists for the jti.
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)

	// DeleteExpiredRevokedTokens removes entries whose original expiry has
	// passed and returns how many were deleted. Safe to run concurrently
	// with lookups.
	DeleteExpiredRevokedTokens(ctx context.Context, now time.Time) (int64, error)
}
