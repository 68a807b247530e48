package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/flicknest/flicknest/internal/auth/domain"
)

type revokedTokensRepo struct {
	db *sql.DB
}

func (r *revokedTokensRepo) InsertRevokedToken(ctx context.Context, t domain.RevokedToken) error {
	// OR IGNORE keeps revocation idempotent: re-revoking a jti is a no-op.
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO revoked_tokens (jti, user_id, revoked_at, expires_at)
		VALUES (?, ?, ?, ?)`,
		t.JTI, t.UserID, t.RevokedAt.UTC(), t.ExpiresAt.UTC())
	return err
}

func (r *revokedTokensRepo) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT 1 FROM revoked_tokens WHERE jti = ? LIMIT 1`, jti)

	var one int
	switch err := row.Scan(&one); err {
	case nil:
		return true, nil
	case sql.ErrNoRows:
		return false, nil
	default:
		return false, err
	}
}

func (r *revokedTokensRepo) DeleteExpiredRevokedTokens(
	ctx context.Context,
	now time.Time,
) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM revoked_tokens WHERE expires_at < ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
