package http

import (
	"errors"
	"net/http"

	"github.com/flicknest/flicknest/internal/auth/service"
	"github.com/flicknest/flicknest/pkg/httpx"
	"github.com/flicknest/flicknest/pkg/slogx"
)

// ExchangeHandler serves POST /v1/auth/token/exchange. It takes a verified
// identity-provider token (header, cookie, or query parameter) and mints
// an application access+refresh pair for its subject.
type ExchangeHandler struct {
	Issuer *service.Issuer
}

// ServeHTTP godoc
//
//	@Summary		Exchange an identity-provider token for an application token pair
//	@Description	Verifies the presented IdP token and mints a fresh access+refresh pair.
//	@Tags			Tokens
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	domain.TokenPair
//	@Failure		400	{object}	httpx.ErrorBody	"no identity token provided"
//	@Failure		401	{object}	httpx.ErrorBody	"invalid identity token"
//	@Header			200	{string}	Cache-Control	"no-store"
//	@Router			/v1/auth/token/exchange [post].
func (h *ExchangeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := httpx.BearerToken(r)
	if token == "" {
		httpx.WriteError(w, http.StatusBadRequest, "no identity token provided")
		return
	}

	pair, err := h.Issuer.Exchange(ctx, token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredential) {
			writeUnauthenticated(w, err)
			return
		}
		slogx.FromContext(ctx).Error("token exchange failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "token exchange failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, pair)
}
