package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flicknest/flicknest/internal/auth/service"
	"github.com/flicknest/flicknest/pkg/httpx"
	"github.com/flicknest/flicknest/pkg/slogx"
)

// RefreshHandler serves POST /v1/auth/token/refresh. The refresh token
// comes from the JSON body, falling back to the refresh_token cookie for
// browser clients.
type RefreshHandler struct {
	Issuer *service.Issuer
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ServeHTTP godoc
//
//	@Summary		Rotate a refresh token into a new token pair
//	@Description	Validates the refresh token, re-reads the account from the store, and mints a new pair.
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			request	body	refreshRequest	false	"Refresh token (falls back to refresh_token cookie)"
//	@Success		200	{object}	domain.TokenPair
//	@Failure		400	{object}	httpx.ErrorBody	"no refresh token provided"
//	@Failure		401	{object}	httpx.ErrorBody	"invalid refresh token or unknown user"
//	@Failure		503	{object}	httpx.ErrorBody	"account lookup unavailable"
//	@Header			200	{string}	Cache-Control	"no-store"
//	@Router			/v1/auth/token/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req refreshRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.RefreshToken == "" {
		if c, err := r.Cookie(httpx.RefreshTokenCookie); err == nil {
			req.RefreshToken = c.Value
		}
	}
	if req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "no refresh token provided")
		return
	}

	pair, err := h.Issuer.Refresh(ctx, req.RefreshToken)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, pair)
	case errors.Is(err, service.ErrInvalidCredential), errors.Is(err, service.ErrUserNotFound):
		writeUnauthenticated(w, err)
	default:
		// Minting a credential without confirming the account is unsafe,
		// so store trouble surfaces instead of degrading.
		slogx.FromContext(ctx).Error("refresh failed", "error", err)
		httpx.WriteError(w, http.StatusServiceUnavailable, "account lookup unavailable")
	}
}
