package service

import (
	"context"
	"errors"

	"github.com/flicknest/flicknest/internal/auth/domain"
	"github.com/flicknest/flicknest/pkg/jwtx"
	"github.com/flicknest/flicknest/pkg/slogx"
)

// Validator resolves a bearer credential against both configured issuers
// and normalizes the result into a canonical identity.
//
// Trial order is IdP first, then application access secret. IdP tokens are
// the common case for browsing traffic, and succeeding on that branch
// skips the revocation-ledger round-trip entirely. If both secrets happen
// to verify the same bytes (pathological misconfiguration where the
// secrets coincide) the IdP branch wins because it runs first; that
// ambiguity is accepted and documented, not silently resolved.
type Validator struct {
	Keys   *jwtx.Keyring
	Ledger *RevocationService
}

// Validate verifies raw and returns the canonical identity it proves.
// Returned errors are ErrNoToken, ErrRevoked, ErrMisconfigured, or the
// most specific jwtx decode error encountered across both attempts.
func (v *Validator) Validate(ctx context.Context, raw string) (domain.Identity, error) {
	if raw == "" {
		return domain.Identity{}, ErrNoToken
	}

	if !v.Keys.HasIdP() && !v.Keys.Ready() {
		slogx.FromContext(ctx).Error("no verification secrets configured, failing closed")
		return domain.Identity{}, ErrMisconfigured
	}

	var idpErr error
	if v.Keys.HasIdP() {
		claims, err := decodeIdP(v.Keys, raw)
		if err == nil {
			return identityFromIdP(claims), nil
		}
		idpErr = err
	}

	claims, appErr := v.Keys.Access.Decode(raw, jwtx.DecodeOptions{
		RequiredClaims: []string{jwtx.ClaimSubject, jwtx.ClaimIssuedAt, jwtx.ClaimExpiresAt},
		TokenType:      jwtx.TokenTypeAccess,
	})
	if appErr == nil {
		if claims.ID != "" && v.Ledger.IsRevoked(ctx, claims.ID) {
			return domain.Identity{}, ErrRevoked
		}
		return identityFromApp(claims), nil
	}

	return domain.Identity{}, mostSpecific(idpErr, appErr)
}

// decodeIdP verifies raw against the identity-provider secret. The
// audience claim is deliberately NOT validated; the IdP's audience is
// accepted as opaque metadata. A token_type tag, when present, must be
// "access": the IdP never mints refresh-kind tokens, so anything else is
// not an identity credential.
func decodeIdP(keys *jwtx.Keyring, raw string) (jwtx.Claims, error) {
	claims, err := keys.IdP.Decode(raw, jwtx.DecodeOptions{
		RequiredClaims: []string{jwtx.ClaimSubject, jwtx.ClaimIssuedAt, jwtx.ClaimExpiresAt},
	})
	if err != nil {
		return jwtx.Claims{}, err
	}
	if claims.TokenType != "" && claims.TokenType != jwtx.TokenTypeAccess {
		return jwtx.Claims{}, jwtx.ErrTokenType
	}
	return claims, nil
}

func identityFromIdP(c jwtx.Claims) domain.Identity {
	id := identityFromClaims(c)
	id.Source = domain.SourceIdP
	return id
}

func identityFromApp(c jwtx.Claims) domain.Identity {
	id := identityFromClaims(c)
	id.Source = domain.SourceApp
	return id
}

func identityFromClaims(c jwtx.Claims) domain.Identity {
	role := c.Role
	if role == "" {
		role = domain.RoleAuthenticated
	}

	id := domain.Identity{
		ID:       c.Subject,
		Email:    c.Email,
		Role:     role,
		JTI:      c.ID,
		Issuer:   c.Issuer,
		Audience: c.Audience,
	}
	if c.IssuedAt != nil {
		id.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.Time
	}
	return id
}

// mostSpecific picks the decode error that tells the caller the most:
// expiry beats signature problems, signature problems beat structural
// ones. Ties go to the application attempt since it ran last.
func mostSpecific(idpErr, appErr error) error {
	if idpErr == nil {
		return appErr
	}
	if appErr == nil {
		return idpErr
	}
	if specificity(idpErr) > specificity(appErr) {
		return idpErr
	}
	return appErr
}

func specificity(err error) int {
	switch {
	case errors.Is(err, jwtx.ErrExpired):
		return 4
	case errors.Is(err, jwtx.ErrInvalidSig), errors.Is(err, jwtx.ErrAlgMismatch):
		return 3
	case errors.Is(err, jwtx.ErrNotYetValid),
		errors.Is(err, jwtx.ErrTokenType),
		errors.Is(err, jwtx.ErrMissingClaim):
		return 2
	default:
		return 1
	}
}
