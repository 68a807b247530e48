package http

import (
	"net/http"

	"github.com/flicknest/flicknest/internal/auth/domain"
	"github.com/flicknest/flicknest/pkg/httpx"
)

// SessionHandler serves GET /v1/auth/session behind optionalAuth.
// Unauthenticated requests get a well-formed "not signed in" body rather
// than an error.
type SessionHandler struct{}

type sessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *identityBody `json:"user"`
	Session       *sessionInfo  `json:"session"`
}

type sessionInfo struct {
	ExpiresAt int64  `json:"expires_at"`
	IssuedAt  int64  `json:"issued_at"`
	TokenType string `json:"token_type"` // "idp" or "app"
}

// ServeHTTP godoc
//
//	@Summary		Current session information
//	@Description	Reports whether the request carries a valid credential and, if so, for whom.
//	@Tags			Session
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	sessionResponse
//	@Router			/v1/auth/session [get].
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromCtx(r.Context())
	if !ok {
		httpx.WriteJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
		return
	}

	tokenType := "app"
	if identity.Source == domain.SourceIdP {
		tokenType = "idp"
	}

	httpx.WriteJSON(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		User: &identityBody{
			ID:    identity.ID,
			Email: identity.Email,
			Role:  identity.Role,
		},
		Session: &sessionInfo{
			ExpiresAt: identity.ExpiresAt.Unix(),
			IssuedAt:  identity.IssuedAt.Unix(),
			TokenType: tokenType,
		},
	})
}
