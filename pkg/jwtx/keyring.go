package jwtx

import "time"

// Keyring bundles the three secret domains the service deals with: tokens
// minted by the upstream identity provider, application access tokens, and
// application refresh tokens. It is built once at startup and treated as
// immutable afterwards, so concurrent reads need no synchronization.
//
// The IdP codec is optional. Without it the service still issues and
// validates its own tokens; identity-provider credentials simply fail
// closed.
type Keyring struct {
	// IdP verifies identity-provider tokens. Nil when no IdP secret is
	// configured.
	IdP *Codec

	// Access signs and verifies application access tokens.
	Access *Codec

	// Refresh signs and verifies application refresh tokens.
	Refresh *Codec

	// AccessTTL and RefreshTTL are the mint-time lifetimes.
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Leeway is the shared clock-skew tolerance.
	Leeway time.Duration
}

// Ready reports whether the keyring can at least handle the application
// token domains. The IdP codec is not required.
func (k *Keyring) Ready() bool {
	return k != nil && k.Access.Ready() && k.Refresh.Ready()
}

// HasIdP reports whether identity-provider verification is configured.
func (k *Keyring) HasIdP() bool {
	return k != nil && k.IdP.Ready()
}
