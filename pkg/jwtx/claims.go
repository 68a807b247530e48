package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants for the application token domains.
// These provide sensible security defaults but can be overridden per-service.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	// Short-lived for security - typical range is 15m to 1h.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	// Longer-lived for user convenience - typical range is 7d to 30d.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour

	// DefaultLeeway is the default clock-skew tolerance applied to
	// iat/nbf/exp checks. Because time sync is never perfect.
	DefaultLeeway = 10 * time.Second
)

// Token type tags carried in the "token_type" claim of application tokens.
// Identity-provider tokens normally carry no tag at all.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// JTI entropy sizes in bytes (before base64url encoding).
const (
	// JTISizeAccess is used for access-token identifiers.
	JTISizeAccess = 16
	// JTISizeRefresh is used for refresh-token identifiers, which live
	// longer and therefore get more entropy.
	JTISizeRefresh = 32
)

// Registered claim names used when enforcing claim presence on decode.
const (
	ClaimSubject   = "sub"
	ClaimEmail     = "email"
	ClaimIssuedAt  = "iat"
	ClaimExpiresAt = "exp"
	ClaimTokenType = "token_type"
	ClaimJTI       = "jti"
)

// Claims is the single claims shape shared by all three secret domains.
// Identity-provider tokens populate Email/Role and leave TokenType empty,
// access tokens carry TokenType "access" plus a jti, refresh tokens carry
// TokenType "refresh" and nothing else beyond the registered set. Decoding
// never trusts which fields are set; DecodeOptions enforces that.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the authenticated user, when the issuer knows it.
	Email string `json:"email,omitempty"`

	// Role for downstream authorization ("authenticated", "admin", ...).
	Role string `json:"role,omitempty"`

	// TokenType distinguishes application token kinds ("access",
	// "refresh"). Absent on identity-provider tokens.
	TokenType string `json:"token_type,omitempty"`
}

// NewAccessClaims builds minimally-correct application access-token claims.
func NewAccessClaims(
	subject, email, role string,
	ttl time.Duration,
	issuer, audience string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(JTISizeAccess),
		},
		Email:     email,
		Role:      role,
		TokenType: TokenTypeAccess,
	}
}

// NewRefreshClaims builds application refresh-token claims. Refresh tokens
// deliberately carry no email/role; live account state is re-read from the
// store when the token is redeemed.
func NewRefreshClaims(subject string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(JTISizeRefresh),
		},
		TokenType: TokenTypeRefresh,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim with n
// bytes of entropy.
func NewJTI(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// ExpiresAtUnix returns the exp claim in seconds since epoch, or 0.
func (c *Claims) ExpiresAtUnix() int64 {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Unix()
}

// IssuedAtUnix returns the iat claim in seconds since epoch, or 0.
func (c *Claims) IssuedAtUnix() int64 {
	if c.IssuedAt == nil {
		return 0
	}
	return c.IssuedAt.Unix()
}

// has reports whether the named claim is populated. Used to enforce
// DecodeOptions.RequiredClaims after a structurally valid parse.
func (c *Claims) has(name string) bool {
	switch name {
	case ClaimSubject:
		return c.Subject != ""
	case ClaimEmail:
		return c.Email != ""
	case ClaimIssuedAt:
		return c.IssuedAt != nil
	case ClaimExpiresAt:
		return c.ExpiresAt != nil
	case ClaimTokenType:
		return c.TokenType != ""
	case ClaimJTI:
		return c.ID != ""
	default:
		return false
	}
}
