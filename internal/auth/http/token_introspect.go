package http

import (
	"net/http"

	"github.com/flicknest/flicknest/internal/auth/domain"
	"github.com/flicknest/flicknest/internal/auth/service"
	"github.com/flicknest/flicknest/pkg/httpx"
	"github.com/flicknest/flicknest/pkg/slogx"
)

// IntrospectionResponse reports token metadata, loosely following the
// RFC7662 shape. When the token is inactive only the "active" field is
// returned, without revealing why.
type IntrospectionResponse struct {
	Active bool `json:"active"`

	// Optional fields (only present when active=true)
	TokenType string `json:"token_type,omitempty"` // "idp" or "app"
	Sub       string `json:"sub,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	Exp       int64  `json:"exp,omitempty"`
	Iat       int64  `json:"iat,omitempty"`
	Jti       string `json:"jti,omitempty"`
}

// IntrospectHandler serves POST /v1/auth/token/introspect.
type IntrospectHandler struct {
	Validator *service.Validator
}

// ServeHTTP godoc
//
//	@Summary		Token Introspection Endpoint
//	@Description	Introspects the presented credential and returns metadata about it.
//	@Description	Inactive tokens yield only {"active": false}.
//	@Tags			Tokens
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	IntrospectionResponse
//	@Header			200	{string}	Cache-Control	"no-store"
//	@Router			/v1/auth/token/introspect [post].
func (h *IntrospectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := h.Validator.Validate(ctx, httpx.BearerToken(r))
	if err != nil {
		slogx.FromContext(ctx).Debug("introspection on inactive token", "error", err)
		httpx.WriteJSON(w, http.StatusOK, IntrospectionResponse{Active: false})
		return
	}

	tokenType := "app"
	if identity.Source == domain.SourceIdP {
		tokenType = "idp"
	}

	httpx.WriteJSON(w, http.StatusOK, IntrospectionResponse{
		Active:    true,
		TokenType: tokenType,
		Sub:       identity.ID,
		Email:     identity.Email,
		Role:      identity.Role,
		Exp:       identity.ExpiresAt.Unix(),
		Iat:       identity.IssuedAt.Unix(),
		Jti:       identity.JTI,
	})
}
