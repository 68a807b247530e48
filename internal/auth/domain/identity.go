package domain

import "time"

// Identity sources, recorded so callers can tell which issuer produced a
// credential without re-deriving it. Downstream authorization must not
// branch on this; it exists for introspection and session reporting.
const (
	SourceIdP = "idp"
	SourceApp = "app"
)

// RoleAuthenticated is the generic role assigned when a token carries none.
const RoleAuthenticated = "authenticated"

// RoleAdmin gates administrative operations like the revocation sweep.
const RoleAdmin = "admin"

// Identity is the canonical result of a successful credential validation.
// Both identity-provider and application tokens normalize into this one
// shape; it is the only representation exposed to authorization logic.
type Identity struct {
	ID    string
	Email string
	Role  string

	// Source is SourceIdP or SourceApp.
	Source string

	// JTI is the unique token identifier; empty for IdP tokens without one.
	JTI string

	// Passthrough metadata from the original claims. Audience and Issuer
	// are opaque here; the validator never enforces them.
	Issuer   string
	Audience []string

	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasRole reports whether the identity carries the given role. Role checks
// are plain function calls applied by route handlers, not middleware baked
// into the validation core.
func (i Identity) HasRole(role string) bool {
	return i.Role == role
}
