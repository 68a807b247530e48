package http

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/flicknest/flicknest/internal/auth/service"
	"github.com/flicknest/flicknest/internal/auth/store"
	"github.com/flicknest/flicknest/internal/auth/store/drivers/sqlite"
	"github.com/flicknest/flicknest/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testIdPSecret     = "idp-test-secret"
	testAccessSecret  = "access-test-secret"
	testRefreshSecret = "refresh-test-secret"
)

func newTestKeyring() *jwtx.Keyring {
	return &jwtx.Keyring{
		IdP:        jwtx.NewCodec([]byte(testIdPSecret), time.Second),
		Access:     jwtx.NewCodec([]byte(testAccessSecret), time.Second),
		Refresh:    jwtx.NewCodec([]byte(testRefreshSecret), time.Second),
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		Leeway:     time.Second,
	}
}

// newTestRouter wires a full router over an in-memory store, mirroring the
// production wiring in the app package.
func newTestRouter(t *testing.T) (*Router, *jwtx.Keyring, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	keys := newTestKeyring()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ledger := &service.RevocationService{Store: st, Keys: keys}
	r := NewRouter(keys, "test", st, logger)
	r.Validator = &service.Validator{Keys: keys, Ledger: ledger}
	r.Issuer = &service.Issuer{
		Keys:        keys,
		Store:       st,
		Ledger:      ledger,
		TokenIssuer: "flicknest",
		Audience:    "flicknest-users",
	}
	r.Revocation = ledger
	r.ApplyRoutes()

	return r, keys, st
}

func signIdPToken(t *testing.T, keys *jwtx.Keyring, subject, email string) string {
	t.Helper()

	claims := jwtx.NewAccessClaims(subject, email, "", time.Minute, "external-idp", "idp-audience", time.Now().UTC())
	claims.TokenType = ""
	claims.ID = ""

	raw, err := keys.IdP.Encode(claims)
	require.NoError(t, err)
	return raw
}

func signAppToken(t *testing.T, keys *jwtx.Keyring, subject, email, role string) (string, jwtx.Claims) {
	t.Helper()

	claims := jwtx.NewAccessClaims(subject, email, role, time.Minute, "flicknest", "flicknest-users", time.Now().UTC())
	raw, err := keys.Access.Encode(claims)
	require.NoError(t, err)
	return raw, claims
}
