package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrAlgMismatch  = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrMissingClaim = errors.New("jwtx: missing required claim")
	ErrTokenType    = errors.New("jwtx: unexpected token type")
	ErrNoSecret     = errors.New("jwtx: no signing secret configured")
)

// Codec signs and verifies compact HS256 tokens for a single secret
// domain. The algorithm is pinned: tokens whose header claims anything
// other than HS256 (including "none") are rejected before signature
// verification, which closes off algorithm-confusion forgeries.
//
// A nil Codec, or one with an empty secret, fails every operation with
// ErrNoSecret so a missing secret can never validate open.
type Codec struct {
	secret []byte
	leeway time.Duration
}

// NewCodec returns a Codec for the given symmetric secret. leeway <= 0
// falls back to DefaultLeeway.
func NewCodec(secret []byte, leeway time.Duration) *Codec {
	if leeway <= 0 {
		leeway = DefaultLeeway
	}
	return &Codec{secret: secret, leeway: leeway}
}

// Ready reports whether the codec holds a usable secret.
func (c *Codec) Ready() bool { return c != nil && len(c.secret) > 0 }

// Leeway returns the configured clock-skew tolerance.
func (c *Codec) Leeway() time.Duration {
	if c == nil {
		return 0
	}
	return c.leeway
}

// DecodeOptions captures per-call expectations for Decode.
type DecodeOptions struct {
	// RequiredClaims must all be populated after a structurally valid
	// parse, otherwise Decode fails with ErrMissingClaim.
	RequiredClaims []string

	// TokenType, when non-empty, must equal the token_type claim exactly.
	TokenType string
}

// Encode signs claims into the compact serialization. It fails only when
// serialization itself fails; valid claims always encode.
func (c *Codec) Encode(claims Claims) (string, error) {
	if !c.Ready() {
		return "", ErrNoSecret
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: encode: %w", err)
	}
	return raw, nil
}

// Decode verifies raw against the codec's secret and returns the claims.
// Expiry and issued-at are validated with the configured leeway applied
// symmetrically. Failures map onto the package sentinel errors.
func (c *Codec) Decode(raw string, opts DecodeOptions) (Claims, error) {
	if !c.Ready() {
		return Claims{}, ErrNoSecret
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrAlgMismatch
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(c.leeway),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	for _, name := range opts.RequiredClaims {
		if !claims.has(name) {
			return Claims{}, fmt.Errorf("%w: %s", ErrMissingClaim, name)
		}
	}
	if opts.TokenType != "" && claims.TokenType != opts.TokenType {
		return Claims{}, ErrTokenType
	}

	return claims, nil
}

// mapParseError flattens golang-jwt errors onto the package taxonomy so
// callers can branch with errors.Is without importing the jwt module.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, ErrAlgMismatch):
		return ErrAlgMismatch
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
