package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/flicknest/flicknest/internal/auth/domain"
	"github.com/flicknest/flicknest/internal/auth/store"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestUsersCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Users().UpsertUser(ctx, domain.User{
		ID:    "user-1",
		Email: "alice@example.com",
		Role:  "authenticated",
	}))

	u, err := s.Users().GetUserByID(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", u.Email)
	require.Equal(t, "authenticated", u.Role)
	require.False(t, u.CreatedAt.IsZero())

	// Upserting the same id updates in place.
	require.NoError(t, s.Users().UpsertUser(ctx, domain.User{
		ID:    "user-1",
		Email: "alice@example.com",
		Role:  "admin",
	}))

	u, err = s.Users().GetUserByID(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "admin", u.Role)

	require.NoError(t, s.Users().DeleteUser(ctx, "user-1"))
	_, err = s.Users().GetUserByID(ctx, "user-1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRevokedTokensInsertAndLookup(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	revoked, err := s.RevokedTokens().IsTokenRevoked(ctx, "unknown-jti")
	require.NoError(t, err)
	require.False(t, revoked)

	entry := domain.RevokedToken{
		JTI:       "jti-1",
		UserID:    "user-1",
		RevokedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(15 * time.Minute),
	}
	require.NoError(t, s.RevokedTokens().InsertRevokedToken(ctx, entry))

	revoked, err = s.RevokedTokens().IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, revoked)

	// Re-inserting the same jti is a no-op, not an error.
	require.NoError(t, s.RevokedTokens().InsertRevokedToken(ctx, entry))
}

func TestDeleteExpiredRevokedTokens(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Now().UTC()

	require.NoError(t, s.RevokedTokens().InsertRevokedToken(ctx, domain.RevokedToken{
		JTI: "expired", UserID: "u", RevokedAt: now.Add(-time.Hour), ExpiresAt: now.Add(-time.Minute),
	}))
	require.NoError(t, s.RevokedTokens().InsertRevokedToken(ctx, domain.RevokedToken{
		JTI: "live", UserID: "u", RevokedAt: now, ExpiresAt: now.Add(time.Hour),
	}))

	deleted, err := s.RevokedTokens().DeleteExpiredRevokedTokens(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	// The live entry still reads revoked after the sweep.
	revoked, err := s.RevokedTokens().IsTokenRevoked(ctx, "live")
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = s.RevokedTokens().IsTokenRevoked(ctx, "expired")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Ping(context.Background()))
}
