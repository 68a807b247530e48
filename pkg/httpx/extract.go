package httpx

import (
	"net/http"
	"strings"
)

// Names of the non-header credential carriers.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
	TokenQueryParam    = "token"
)

// BearerToken extracts a bearer credential from the request, trying in
// order: the Authorization header, the access_token cookie, and the token
// query parameter (the latter exists for WebSocket-style clients that
// cannot set headers). Returns "" when no credential is present.
//
// An Authorization header that is neither "Bearer "- nor "Basic "-prefixed
// is treated as a raw token; Basic credentials are never a bearer token
// and are skipped.
func BearerToken(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); authz != "" {
		switch {
		case strings.HasPrefix(authz, "Bearer "):
			return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
		case strings.HasPrefix(authz, "Basic "):
			// fall through to cookie/query
		default:
			return strings.TrimSpace(authz)
		}
	}

	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}

	if tok := r.URL.Query().Get(TokenQueryParam); tok != "" {
		return tok
	}

	return ""
}
