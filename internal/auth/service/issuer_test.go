package service

import (
	"context"
	"testing"
	"time"

	"github.com/flicknest/flicknest/internal/auth/domain"
	"github.com/flicknest/flicknest/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T, keys *jwtx.Keyring) *Issuer {
	t.Helper()

	st := newTestStore(t)
	return &Issuer{
		Keys:        keys,
		Store:       st,
		Ledger:      &RevocationService{Store: st, Keys: keys},
		TokenIssuer: "flicknest",
		Audience:    "flicknest-users",
	}
}

func TestExchangeMintsPairForIdPToken(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeyring()
	issuer := newTestIssuer(t, keys)

	idpToken := signIdPToken(t, keys, "user-1", "alice@example.com", "", time.Minute)

	pair, err := issuer.Exchange(ctx, idpToken)
	require.NoError(t, err)
	require.NotNil(t, pair)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, "bearer", pair.TokenType)
	require.EqualValues(t, keys.AccessTTL.Seconds(), pair.ExpiresIn)
	require.Equal(t, "user-1", pair.User.ID)
	require.Equal(t, "alice@example.com", pair.User.Email)

	// The minted access token verifies under the application secret and
	// carries the configured issuer and audience.
	claims, err := keys.Access.Decode(pair.AccessToken, jwtx.DecodeOptions{
		TokenType: jwtx.TokenTypeAccess,
	})
	require.NoError(t, err)
	require.Equal(t, "flicknest", claims.Issuer)
	require.ElementsMatch(t, []string{"flicknest-users"}, claims.Audience)

	// Exchange syncs the account record for later refreshes.
	u, err := issuer.Store.Users().GetUserByID(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", u.Email)
}

func TestExchangeRejectsAppToken(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeyring()
	issuer := newTestIssuer(t, keys)

	// A token minted under the application secret is not an IdP credential.
	claims := jwtx.NewAccessClaims("user-1", "", "", time.Minute, "flicknest", "", time.Now().UTC())
	token, err := keys.Access.Encode(claims)
	require.NoError(t, err)

	_, err = issuer.Exchange(ctx, token)
	require.ErrorIs(t, err, ErrInvalidCredential)
}

func TestExchangeRejectsExpiredIdPToken(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeyring()
	issuer := newTestIssuer(t, keys)

	claims := jwtx.NewAccessClaims("user-1", "", "", time.Minute, "external-idp", "", time.Now().UTC().Add(-time.Hour))
	claims.TokenType = ""
	token, err := keys.IdP.Encode(claims)
	require.NoError(t, err)

	_, err = issuer.Exchange(ctx, token)
	require.ErrorIs(t, err, ErrInvalidCredential)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestExchangeWithoutIdPSecret(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeyring()
	keys.IdP = nil
	issuer := newTestIssuer(t, keys)

	_, err := issuer.Exchange(ctx, "any-token")
	require.ErrorIs(t, err, ErrInvalidCredential)
}

func TestRefreshMintsNewPairFromLiveUser(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeyring()
	issuer := newTestIssuer(t, keys)

	require.NoError(t, issuer.Store.Users().UpsertUser(ctx, domain.User{
		ID:    "user-1",
		Email: "alice@example.com",
		Role:  "authenticated",
	}))

	refresh, _, err := issuer.MintRefreshToken("user-1", time.Now().UTC())
	require.NoError(t, err)

	// Account state changes between mint and redemption; the new pair
	// reflects the store, not the old claims.
	require.NoError(t, issuer.Store.Users().UpsertUser(ctx, domain.User{
		ID:    "user-1",
		Email: "alice@example.com",
		Role:  "admin",
	}))

	pair, err := issuer.Refresh(ctx, refresh)
	require.NoError(t, err)
	require.Equal(t, "admin", pair.User.Role)

	claims, err := keys.Access.Decode(pair.AccessToken, jwtx.DecodeOptions{TokenType: jwtx.TokenTypeAccess})
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Role)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeyring()
	issuer := newTestIssuer(t, keys)

	access, _, err := issuer.MintAccessToken(domain.Identity{ID: "user-1"}, time.Now().UTC())
	require.NoError(t, err)

	_, err = issuer.Refresh(ctx, access)
	require.ErrorIs(t, err, ErrInvalidCredential)
}

func TestRefreshUnknownUser(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeyring()
	issuer := newTestIssuer(t, keys)

	refresh, _, err := issuer.MintRefreshToken("ghost", time.Now().UTC())
	require.NoError(t, err)

	_, err = issuer.Refresh(ctx, refresh)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestRefreshReuseModeAllowsRepeatedRedemption(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeyring()
	issuer := newTestIssuer(t, keys)

	require.NoError(t, issuer.Store.Users().UpsertUser(ctx, domain.User{ID: "user-1"}))

	refresh, _, err := issuer.MintRefreshToken("user-1", time.Now().UTC())
	require.NoError(t, err)

	_, err = issuer.Refresh(ctx, refresh)
	require.NoError(t, err)

	// Default mode keeps the consumed token valid until natural expiry.
	_, err = issuer.Refresh(ctx, refresh)
	require.NoError(t, err)
}

func TestRefreshRotateModeEnforcesSingleUse(t *testing.T) {
	ctx := context.Background()
	keys := newTestKeyring()
	issuer := newTestIssuer(t, keys)
	issuer.RotateRefresh = true

	require.NoError(t, issuer.Store.Users().UpsertUser(ctx, domain.User{ID: "user-1"}))

	refresh, _, err := issuer.MintRefreshToken("user-1", time.Now().UTC())
	require.NoError(t, err)

	pair, err := issuer.Refresh(ctx, refresh)
	require.NoError(t, err)
	require.NotNil(t, pair)

	_, err = issuer.Refresh(ctx, refresh)
	require.ErrorIs(t, err, ErrInvalidCredential)
	require.ErrorIs(t, err, ErrRevoked)

	// The replacement refresh token from the pair still works.
	_, err = issuer.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
}
