package http

import (
	"net/http"

	"github.com/flicknest/flicknest/internal/auth/service"
	"github.com/flicknest/flicknest/pkg/httpx"
)

// ValidateHandler serves POST /v1/auth/token/validate. It always answers
// 200; the body says whether the presented credential is valid and why
// not when it isn't.
type ValidateHandler struct {
	Validator *service.Validator
}

type validateResponse struct {
	Valid     bool          `json:"valid"`
	User      *identityBody `json:"user,omitempty"`
	TokenType string        `json:"token_type,omitempty"`
	ExpiresAt int64         `json:"expires_at,omitempty"`
	Error     string        `json:"error,omitempty"`
}

type identityBody struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ServeHTTP godoc
//
//	@Summary		Validate the presented credential
//	@Description	Checks the bearer credential against both issuers and reports the outcome.
//	@Tags			Tokens
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	validateResponse
//	@Router			/v1/auth/token/validate [post].
func (h *ValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, err := h.Validator.Validate(r.Context(), httpx.BearerToken(r))
	if err != nil {
		httpx.WriteJSON(w, http.StatusOK, validateResponse{
			Valid: false,
			Error: errorReason(err),
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, validateResponse{
		Valid: true,
		User: &identityBody{
			ID:    identity.ID,
			Email: identity.Email,
			Role:  identity.Role,
		},
		TokenType: "bearer",
		ExpiresAt: identity.ExpiresAt.Unix(),
	})
}
