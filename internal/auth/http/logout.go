package http

import (
	"net/http"

	"github.com/flicknest/flicknest/internal/auth/service"
	"github.com/flicknest/flicknest/pkg/httpx"
)

// LogoutHandler serves POST /v1/auth/logout. Revocation is best effort and
// the response is a generic acknowledgment regardless of prior token
// validity; repeating a logout is harmless.
type LogoutHandler struct {
	Revocation *service.RevocationService
}

// ServeHTTP godoc
//
//	@Summary		Log out the current session
//	@Description	Revokes the presented application access token (if revocable) and clears auth cookies.
//	@Tags			Session
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	map[string]string	"message"
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Revocation.RevokeCurrent(r.Context(), httpx.BearerToken(r))

	clearCookie(w, httpx.AccessTokenCookie)
	clearCookie(w, httpx.RefreshTokenCookie)

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "successfully logged out",
	})
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
