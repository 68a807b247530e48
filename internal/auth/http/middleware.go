package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/flicknest/flicknest/internal/auth/domain"
	"github.com/flicknest/flicknest/internal/auth/service"
	"github.com/flicknest/flicknest/pkg/httpx"
	"github.com/flicknest/flicknest/pkg/jwtx"
)

type ctxKey string

const identityKey ctxKey = "identity"

// requireAuth extracts and validates the bearer credential, rejecting the
// request with a uniform 401 when it does not prove an identity.
func (r *Router) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		identity, err := r.Validator.Validate(req.Context(), httpx.BearerToken(req))
		if err != nil {
			writeUnauthenticated(w, err)
			return
		}
		next.ServeHTTP(w, req.WithContext(contextWithIdentity(req.Context(), identity)))
	})
}

// optionalAuth validates the credential when one is present but lets the
// request through unauthenticated otherwise.
func (r *Router) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		identity, err := r.Validator.Validate(req.Context(), httpx.BearerToken(req))
		if err != nil {
			next.ServeHTTP(w, req)
			return
		}
		next.ServeHTTP(w, req.WithContext(contextWithIdentity(req.Context(), identity)))
	})
}

func contextWithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func identityFromCtx(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	return id, ok
}

// writeUnauthenticated converts any validation-path error into the uniform
// 401 body. Reasons stay human-readable but never leak configuration state
// or secret material; a misconfigured secret reads as a generic invalid
// token to the caller.
func writeUnauthenticated(w http.ResponseWriter, err error) {
	httpx.WriteError(w, http.StatusUnauthorized, errorReason(err))
}

// errorReason maps validation errors onto client-facing reason strings.
func errorReason(err error) string {
	switch {
	case errors.Is(err, service.ErrNoToken):
		return "no token provided"
	case errors.Is(err, service.ErrRevoked):
		return "token has been revoked"
	case errors.Is(err, service.ErrUserNotFound):
		return "user not found"
	case errors.Is(err, jwtx.ErrExpired):
		return "token has expired"
	case errors.Is(err, jwtx.ErrInvalidSig), errors.Is(err, jwtx.ErrAlgMismatch):
		return "invalid token signature"
	default:
		return "invalid token"
	}
}
