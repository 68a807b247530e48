package http

import (
	"net/http"
	"time"

	"github.com/flicknest/flicknest/internal/auth/domain"
	"github.com/flicknest/flicknest/internal/auth/service"
	"github.com/flicknest/flicknest/pkg/httpx"
	"github.com/flicknest/flicknest/pkg/slogx"
)

// CleanupHandler serves POST /v1/auth/admin/cleanup-tokens behind
// requireAuth. The handler applies the role check itself; authorization is
// a plain function call, not middleware.
type CleanupHandler struct {
	Revocation *service.RevocationService
}

type cleanupResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

// ServeHTTP godoc
//
//	@Summary		Sweep expired revocation entries
//	@Description	Deletes ledger entries whose original token expiry has passed. Admin only.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	cleanupResponse
//	@Failure		401	{object}	httpx.ErrorBody
//	@Failure		403	{object}	httpx.ErrorBody	"admin access required"
//	@Router			/v1/auth/admin/cleanup-tokens [post].
func (h *CleanupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := identityFromCtx(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if !identity.HasRole(domain.RoleAdmin) {
		httpx.WriteError(w, http.StatusForbidden, "admin access required")
		return
	}

	deleted, err := h.Revocation.SweepExpired(ctx, time.Now().UTC())
	if err != nil {
		slogx.FromContext(ctx).Error("revocation sweep failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "cleanup failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, cleanupResponse{
		Message: "expired tokens cleaned up successfully",
		Deleted: deleted,
	})
}
