package domain

import "time"

// TokenPair is what the exchange and refresh endpoints return: a
// short-lived access token and a longer-lived refresh token, both JWTs
// signed under independent secrets. The two tokens share only the subject;
// there is no embedded linkage between them.
type TokenPair struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"` // always "bearer"
	ExpiresIn    int64        `json:"expires_in"` // access-token lifetime in seconds
	User         UserSnapshot `json:"user"`
}

// UserSnapshot is the identity snapshot embedded in token responses.
type UserSnapshot struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// RevokedToken models a row in the revocation ledger. Presence of a row
// makes the token identifier invalid until the sweep removes it; removal
// after ExpiresAt is storage cleanup only, since an expired token is
// already invalid by expiry.
type RevokedToken struct {
	JTI       string
	UserID    string
	RevokedAt time.Time
	ExpiresAt time.Time
}
