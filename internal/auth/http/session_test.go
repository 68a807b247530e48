package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flicknest/flicknest/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func timeAgo() time.Time {
	return time.Now().UTC().Add(-time.Minute)
}

func TestSessionHandler(t *testing.T) {
	r, keys, _ := newTestRouter(t)

	t.Run("unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/auth/session", nil)

		rec := doRequest(t, r, req)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeBody[sessionResponse](t, rec)
		require.False(t, resp.Authenticated)
		require.Nil(t, resp.User)
		require.Nil(t, resp.Session)
	})

	t.Run("authenticated with app token", func(t *testing.T) {
		token, _ := signAppToken(t, keys, "user-1", "alice@example.com", "authenticated")
		req := httptest.NewRequest(http.MethodGet, "/v1/auth/session", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := doRequest(t, r, req)
		resp := decodeBody[sessionResponse](t, rec)
		require.True(t, resp.Authenticated)
		require.Equal(t, "user-1", resp.User.ID)
		require.Equal(t, "app", resp.Session.TokenType)
	})

	t.Run("authenticated via cookie", func(t *testing.T) {
		token, _ := signAppToken(t, keys, "user-2", "", "")
		req := httptest.NewRequest(http.MethodGet, "/v1/auth/session", nil)
		req.AddCookie(&http.Cookie{Name: httpx.AccessTokenCookie, Value: token})

		rec := doRequest(t, r, req)
		resp := decodeBody[sessionResponse](t, rec)
		require.True(t, resp.Authenticated)
	})

	t.Run("invalid token reads as signed out", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/auth/session", nil)
		req.Header.Set("Authorization", "Bearer garbage")

		rec := doRequest(t, r, req)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeBody[sessionResponse](t, rec)
		require.False(t, resp.Authenticated)
	})
}

func TestLogoutHandler(t *testing.T) {
	r, keys, _ := newTestRouter(t)

	t.Run("revokes the presented access token", func(t *testing.T) {
		token, claims := signAppToken(t, keys, "user-1", "", "")

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := doRequest(t, r, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, r.Revocation.IsRevoked(req.Context(), claims.ID))

		// The revoked token no longer validates.
		vreq := httptest.NewRequest(http.MethodPost, "/v1/auth/token/validate", nil)
		vreq.Header.Set("Authorization", "Bearer "+token)

		vrec := doRequest(t, r, vreq)
		resp := decodeBody[validateResponse](t, vrec)
		require.False(t, resp.Valid)
		require.Equal(t, "token has been revoked", resp.Error)
	})

	t.Run("clears auth cookies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)

		rec := doRequest(t, r, req)
		require.Equal(t, http.StatusOK, rec.Code)

		cleared := map[string]bool{}
		for _, c := range rec.Result().Cookies() {
			if c.MaxAge < 0 {
				cleared[c.Name] = true
			}
		}
		require.True(t, cleared[httpx.AccessTokenCookie])
		require.True(t, cleared[httpx.RefreshTokenCookie])
	})

	t.Run("logout without a token succeeds", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)

		rec := doRequest(t, r, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCleanupHandler(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		r, _, _ := newTestRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/admin/cleanup-tokens", nil)

		rec := doRequest(t, r, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("requires admin role", func(t *testing.T) {
		r, keys, _ := newTestRouter(t)
		token, _ := signAppToken(t, keys, "user-1", "", "authenticated")

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/admin/cleanup-tokens", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := doRequest(t, r, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin sweeps expired entries", func(t *testing.T) {
		r, keys, _ := newTestRouter(t)

		ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
		require.True(t, r.Revocation.Revoke(ctx, "stale", "user-1", timeAgo()))

		token, _ := signAppToken(t, keys, "admin-1", "", "admin")
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/admin/cleanup-tokens", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := doRequest(t, r, req)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeBody[cleanupResponse](t, rec)
		require.EqualValues(t, 1, resp.Deleted)
	})
}
