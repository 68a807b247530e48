package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flicknest/flicknest/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestBearerTokenFromHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc.def.ghi")

	require.Equal(t, "abc.def.ghi", httpx.BearerToken(r))
}

func TestBearerTokenRawHeaderValue(t *testing.T) {
	// A header without a recognized scheme is treated as the token itself.
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "abc.def.ghi")

	require.Equal(t, "abc.def.ghi", httpx.BearerToken(r))
}

func TestBearerTokenSkipsBasicAuth(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	r.AddCookie(&http.Cookie{Name: httpx.AccessTokenCookie, Value: "cookie-token"})

	// Basic credentials are never a bearer token; the cookie wins.
	require.Equal(t, "cookie-token", httpx.BearerToken(r))
}

func TestBearerTokenFromCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: httpx.AccessTokenCookie, Value: "xyz"})

	require.Equal(t, "xyz", httpx.BearerToken(r))
}

func TestBearerTokenFromQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws?token=qqq", nil)

	require.Equal(t, "qqq", httpx.BearerToken(r))
}

func TestBearerTokenPrecedence(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?token=from-query", nil)
	r.Header.Set("Authorization", "Bearer from-header")
	r.AddCookie(&http.Cookie{Name: httpx.AccessTokenCookie, Value: "from-cookie"})

	require.Equal(t, "from-header", httpx.BearerToken(r))

	r.Header.Del("Authorization")
	require.Equal(t, "from-cookie", httpx.BearerToken(r))
}

func TestBearerTokenAbsent(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	require.Empty(t, httpx.BearerToken(r))
}

func TestBearerTokenEmptyCookieIgnored(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?token=fallback", nil)
	r.AddCookie(&http.Cookie{Name: httpx.AccessTokenCookie, Value: ""})

	require.Equal(t, "fallback", httpx.BearerToken(r))
}
