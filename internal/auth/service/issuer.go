package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flicknest/flicknest/internal/auth/domain"
	"github.com/flicknest/flicknest/internal/auth/store"
	"github.com/flicknest/flicknest/pkg/jwtx"
	"github.com/flicknest/flicknest/pkg/slogx"
)

// Issuer mints application access+refresh token pairs, exchanges verified
// identity-provider tokens for application pairs, and rotates refresh
// tokens against live account state.
type Issuer struct {
	Keys   *jwtx.Keyring
	Store  store.Store
	Ledger *RevocationService

	// TokenIssuer and Audience are stamped into minted claims.
	TokenIssuer string
	Audience    string

	// RotateRefresh switches refresh rotation from additive (the consumed
	// refresh token stays valid until natural expiry) to single-use (the
	// consumed token's jti is revoked and later redemptions are refused).
	RotateRefresh bool
}

// MintAccessToken signs a fresh access token for the identity.
func (s *Issuer) MintAccessToken(id domain.Identity, now time.Time) (string, jwtx.Claims, error) {
	claims := jwtx.NewAccessClaims(
		id.ID, id.Email, id.Role,
		s.Keys.AccessTTL,
		s.TokenIssuer, s.Audience,
		now,
	)
	raw, err := s.Keys.Access.Encode(claims)
	if err != nil {
		return "", jwtx.Claims{}, fmt.Errorf("mint access token: %w", err)
	}
	return raw, claims, nil
}

// MintRefreshToken signs a fresh refresh token for the subject.
func (s *Issuer) MintRefreshToken(subject string, now time.Time) (string, jwtx.Claims, error) {
	claims := jwtx.NewRefreshClaims(subject, s.Keys.RefreshTTL, s.TokenIssuer, now)
	raw, err := s.Keys.Refresh.Encode(claims)
	if err != nil {
		return "", jwtx.Claims{}, fmt.Errorf("mint refresh token: %w", err)
	}
	return raw, claims, nil
}

// Exchange validates an identity-provider token and mints an application
// pair for its subject. The verified claims are also upserted into the
// user table so later refreshes can re-read live account state.
func (s *Issuer) Exchange(ctx context.Context, idpToken string) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	if !s.Keys.HasIdP() {
		l.Error("token exchange requested but no IdP secret is configured")
		return nil, ErrInvalidCredential
	}

	claims, err := decodeIdP(s.Keys, idpToken)
	if err != nil {
		l.Info("identity-provider token rejected during exchange", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	identity := identityFromIdP(claims)

	// Best effort: a failed sync only degrades future refreshes, it does
	// not invalidate the identity the IdP just proved.
	if err := s.Store.Users().UpsertUser(ctx, domain.User{
		ID:    identity.ID,
		Email: identity.Email,
		Role:  identity.Role,
	}); err != nil {
		l.Warn("failed to sync user record from IdP claims", "error", err, "user_id", identity.ID)
	}

	return s.mintPair(identity, time.Now().UTC())
}

// Refresh redeems a refresh token for a new pair. The subject is looked up
// in the store first: refresh must reflect live account state, not the
// stale claims inside the token. Store unavailability surfaces to the
// caller, since minting a credential without confirming the user is
// unsafe.
func (s *Issuer) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.Keys.Refresh.Decode(refreshToken, jwtx.DecodeOptions{
		RequiredClaims: []string{jwtx.ClaimSubject, jwtx.ClaimIssuedAt, jwtx.ClaimExpiresAt},
		TokenType:      jwtx.TokenTypeRefresh,
	})
	if err != nil {
		l.Info("refresh token rejected", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	if s.RotateRefresh && claims.ID != "" && s.Ledger.IsRevoked(ctx, claims.ID) {
		l.Info("refresh token already consumed", "jti", claims.ID)
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredential, ErrRevoked)
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("refresh user lookup: %w", err)
	}

	snapshot := user.Snapshot()
	pair, err := s.mintPair(domain.Identity{
		ID:    snapshot.ID,
		Email: snapshot.Email,
		Role:  snapshot.Role,
	}, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if s.RotateRefresh && claims.ID != "" {
		// Single-use rotation: retire the consumed token. Best effort; a
		// ledger failure here widens the reuse window but must not fail
		// the rotation the user just completed.
		s.Ledger.Revoke(ctx, claims.ID, claims.Subject, claims.ExpiresAt.Time)
	}

	return pair, nil
}

func (s *Issuer) mintPair(id domain.Identity, now time.Time) (*domain.TokenPair, error) {
	access, _, err := s.MintAccessToken(id, now)
	if err != nil {
		return nil, err
	}

	refresh, _, err := s.MintRefreshToken(id.ID, now)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.Keys.AccessTTL.Seconds()),
		User: domain.UserSnapshot{
			ID:    id.ID,
			Email: id.Email,
			Role:  id.Role,
		},
	}, nil
}
