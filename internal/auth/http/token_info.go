package http

import (
	"net/http"

	"github.com/flicknest/flicknest/pkg/httpx"
)

// TokenInfoHandler serves GET /v1/auth/token/info behind requireAuth.
type TokenInfoHandler struct{}

type tokenInfoResponse struct {
	User      identityBody  `json:"user"`
	TokenInfo tokenMetadata `json:"token_info"`
}

type tokenMetadata struct {
	ExpiresAt int64    `json:"expires_at"`
	IssuedAt  int64    `json:"issued_at"`
	Issuer    string   `json:"issuer"`
	Audience  []string `json:"audience,omitempty"`
}

// ServeHTTP godoc
//
//	@Summary		Current token information
//	@Description	Returns the authenticated user and metadata of the presented token.
//	@Tags			Tokens
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	tokenInfoResponse
//	@Failure		401	{object}	httpx.ErrorBody
//	@Router			/v1/auth/token/info [get].
func (h *TokenInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromCtx(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenInfoResponse{
		User: identityBody{
			ID:    identity.ID,
			Email: identity.Email,
			Role:  identity.Role,
		},
		TokenInfo: tokenMetadata{
			ExpiresAt: identity.ExpiresAt.Unix(),
			IssuedAt:  identity.IssuedAt.Unix(),
			Issuer:    identity.Issuer,
			Audience:  identity.Audience,
		},
	})
}
