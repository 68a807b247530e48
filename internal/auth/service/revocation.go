package service

import (
	"context"
	"time"

	"github.com/flicknest/flicknest/internal/auth/domain"
	"github.com/flicknest/flicknest/internal/auth/store"
	"github.com/flicknest/flicknest/pkg/jwtx"
	"github.com/flicknest/flicknest/pkg/slogx"
)

// RevocationService owns the revocation ledger: the persisted set of
// application-token identifiers that have been logged out or force-expired.
// It is the single source of truth for "is this jti revoked"; every
// app-token validation costs one store lookup, no in-memory cache.
type RevocationService struct {
	Store store.Store
	Keys  *jwtx.Keyring
}

// Revoke adds a ledger entry for jti, keyed to its owning subject and the
// token's original expiry. It is idempotent. Store unavailability is
// logged and reported as false rather than propagated, because logout must
// not hard-fail the client-visible response.
func (s *RevocationService) Revoke(
	ctx context.Context,
	jti, userID string,
	expiresAt time.Time,
) bool {
	l := slogx.FromContext(ctx)

	err := s.Store.RevokedTokens().InsertRevokedToken(ctx, domain.RevokedToken{
		JTI:       jti,
		UserID:    userID,
		RevokedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		l.Error("failed to insert revocation entry", "error", err, "jti", jti)
		return false
	}
	return true
}

// IsRevoked reports whether jti is present in the ledger. When the store
// is unreachable this returns false and logs the failure: an accepted,
// documented fail-open tradeoff, bounded by the short access-token expiry.
// Flagged for security sign-off rather than silently resolved.
func (s *RevocationService) IsRevoked(ctx context.Context, jti string) bool {
	revoked, err := s.Store.RevokedTokens().IsTokenRevoked(ctx, jti)
	if err != nil {
		slogx.FromContext(ctx).Error("revocation lookup failed, treating token as not revoked",
			"error", err, "jti", jti)
		return false
	}
	return revoked
}

// SweepExpired deletes ledger entries whose original expiry has passed.
// Lookups racing the sweep stay correct: a not-yet-swept entry still reads
// revoked, and an already-swept entry belongs to a token that is invalid
// by expiry anyway.
func (s *RevocationService) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	return s.Store.RevokedTokens().DeleteExpiredRevokedTokens(ctx, now)
}

// RevokeCurrent implements the logout path: if raw decodes as a valid
// application access token carrying a jti, that jti is revoked with the
// token's original expiry. Any decode failure is a silent no-op; logout
// always succeeds from the caller's perspective.
func (s *RevocationService) RevokeCurrent(ctx context.Context, raw string) {
	if raw == "" || !s.Keys.Ready() {
		return
	}

	claims, err := s.Keys.Access.Decode(raw, jwtx.DecodeOptions{
		RequiredClaims: []string{jwtx.ClaimSubject, jwtx.ClaimExpiresAt, jwtx.ClaimJTI},
		TokenType:      jwtx.TokenTypeAccess,
	})
	if err != nil {
		slogx.FromContext(ctx).Debug("logout token not revocable", "error", err)
		return
	}

	s.Revoke(ctx, claims.ID, claims.Subject, claims.ExpiresAt.Time)
}
